package transcript

import (
	"errors"
	"fmt"
)

// ErrMalformedDate is the only condition that fails a whole transform.
var ErrMalformedDate = errors.New("malformed date")

// DateError describes a date string that could not be parsed.
type DateError struct {
	// Record names the record kind and ID, e.g. "reportingTerms[12]".
	Record string
	Field  string
	Value  string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", e.Record, e.Field, e.Value, ErrMalformedDate)
}

func (e *DateError) Unwrap() error {
	return ErrMalformedDate
}

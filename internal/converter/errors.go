package converter

import "errors"

var (
	// ErrValidation is returned when document validation stops a run.
	ErrValidation = errors.New("document failed validation")

	// ErrUnknownFormat is returned for an output format with no writer.
	ErrUnknownFormat = errors.New("unknown output format")
)

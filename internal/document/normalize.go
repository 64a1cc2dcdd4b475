// =============================================================================
// Transcript Converter - Collection Normalizer
// =============================================================================
//
// The student-information service emits every collection in one of two
// shapes: a JSON array when there are several records, or a bare JSON object
// when there is exactly one. Normalize folds both shapes (and null/absent)
// into a plain sequence so that nothing downstream ever has to ask
// "is this a list?".
//
//   [ {...}, {...} ]  ->  [ {...}, {...} ]
//   {...}             ->  [ {...} ]
//   null / absent     ->  [ ]
//
// =============================================================================

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Normalize coerces a raw JSON value into a sequence of raw records.
//
// It never fails: an array yields its elements, null or blank input yields an
// empty sequence, and any other value is wrapped as a single element.
func Normalize(raw json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return items
		}
	}

	return []json.RawMessage{trimmed}
}

// List is a collection field that accepts either a JSON array or a single bare
// record. Decoding always runs the value through Normalize first, then drops
// any element that is not a JSON object (the service sends "" for some empty
// collections).
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	items := Normalize(data)
	if len(items) == 0 {
		*l = nil
		return nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, v)
	}

	if len(out) == 0 {
		out = nil
	}
	*l = out
	return nil
}

package document

import (
	"bytes"
	"encoding/json"
)

// Text is a loosely typed scalar. The service is inconsistent about whether
// identifiers and display values are strings or numbers, so Text accepts a JSON
// string, number, boolean or null and keeps its textual form. An object or
// array (the service's {"nil":true} marker, for one) reads as empty.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")),
		data[0] == '{', data[0] == '[':
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*t = Text(data)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// String returns the textual value.
func (t Text) String() string { return string(t) }

// Flag is a boolean that the service transmits as the string "true"/"false".
type Flag bool

// UnmarshalJSON implements json.Unmarshaler. Only JSON true and the exact
// string "true" set the flag.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = s == "true"
		return nil
	}

	*f = Flag(bytes.Equal(data, []byte("true")))
	return nil
}

package transcript

import (
	"strings"
	"time"
)

// DefaultDateLayouts are the formats the service has been observed to emit,
// most specific first. RFC 3339 also covers fractional seconds on parse.
var DefaultDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateParser converts the service's date strings into comparable instants.
// Zone-less values are interpreted in Location.
type DateParser struct {
	Location *time.Location
	Layouts  []string
}

// NewDateParser returns a parser for the default layouts in loc. A nil loc
// means UTC.
func NewDateParser(loc *time.Location) DateParser {
	if loc == nil {
		loc = time.UTC
	}
	return DateParser{Location: loc, Layouts: DefaultDateLayouts}
}

// Parse returns the instant for value, or false when no layout matches.
func (p DateParser) Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	layouts := p.Layouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

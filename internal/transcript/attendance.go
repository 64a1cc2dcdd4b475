package transcript

import (
	"log/slog"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// presentDescription is the description whose events are always coded "P",
// whatever the school's own code for it is.
const presentDescription = "Present"

// AttendanceOptions controls how unresolvable attendance events are treated.
type AttendanceOptions struct {
	// KeepUnmatched keeps events whose enrollment ID matches no section,
	// with empty period and name. By default such events are skipped.
	KeepUnmatched bool
}

// indexEnrollments maps every enrollment ID found on a section to that
// section. Later sections win on duplicate enrollment IDs.
func indexEnrollments(sections []document.Section) map[string]document.Section {
	index := make(map[string]document.Section, len(sections))
	for _, s := range sections {
		for _, e := range s.Enrollments {
			index[e.ID.String()] = s
		}
	}
	return index
}

// AssembleAttendance resolves attendance events against attendance codes and
// sections, in source order.
//
// FILTERS (an event is skipped, not reported as an error, when):
//   - its attendance code is not in the document
//   - the code has an empty description, or an empty code that is not
//     overridden by the "Present" rule
//   - its enrollment ID (ccid) matches no section, unless KeepUnmatched
func AssembleAttendance(
	raw []document.Attendance,
	codes map[string]document.AttendanceCode,
	sections []document.Section,
	opts AttendanceOptions,
	logger *slog.Logger,
) []types.AttendanceEntry {
	logger = orDiscard(logger)
	bySection := indexEnrollments(sections)
	entries := make([]types.AttendanceEntry, 0, len(raw))

	for _, a := range raw {
		code, ok := codes[a.CodeID.String()]
		if !ok {
			continue
		}

		description := code.Description.String()
		value := code.Code.String()
		if description == presentDescription {
			value = "P"
		}
		if description == "" || value == "" {
			continue
		}

		entry := types.AttendanceEntry{
			Code:        value,
			Description: description,
			Date:        a.Date.String(),
		}

		section, ok := bySection[a.CCID.String()]
		switch {
		case ok:
			entry.Period = section.Expression.String()
			entry.Name = section.SchoolCourseTitle.String()
		case opts.KeepUnmatched:
			logger.Debug("attendance event kept without section", "ccid", a.CCID.String(), "date", a.Date.String())
		default:
			logger.Debug("attendance event skipped: no section for enrollment", "ccid", a.CCID.String(), "date", a.Date.String())
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}

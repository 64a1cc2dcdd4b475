// =============================================================================
// Transcript Converter - Report Types
// =============================================================================
//
// This package contains the report aggregates shared by the transform and
// every output writer. Keeping them here avoids import cycles between:
//   - transcript  (builds the report)
//   - converter   (orchestrates a run)
//   - xmlwriter / xlsxwriter / csvwriter (render the report)
//
// Aggregates are built once per document and never mutated afterwards.
//
// =============================================================================

package types

import (
	"encoding/json"
	"time"

	"github.com/ginjaninja78/transcript-converter/internal/document"
)

// =============================================================================
// REPORT
// =============================================================================

// Report is the result of transforming one transcript document.
//
// Exactly one of two shapes is produced: a populated report (Disabled is nil),
// or a disabled notice (Disabled is set and Sections/Attendances are empty).
type Report struct {
	// Information is the student record, passed through untouched.
	Information json.RawMessage `json:"information,omitempty"`

	// Sections are ordered by (expression, name).
	Sections []Section `json:"sections"`

	// Attendances are in source order.
	Attendances []AttendanceEntry `json:"attendances"`

	// Disabled is set when the school has disabled transcript access.
	Disabled *DisabledNotice `json:"disabled,omitempty"`
}

// IsDisabled reports whether the report is a disabled notice.
func (r *Report) IsDisabled() bool {
	return r.Disabled != nil
}

// AssignmentCount returns the number of assignments across all sections.
func (r *Report) AssignmentCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Assignments)
	}
	return n
}

// DisabledNotice is returned instead of a report when the school has disabled
// transcript access.
type DisabledNotice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// =============================================================================
// SECTION
// =============================================================================

// Section is one enrolled course period with everything cross-referenced.
type Section struct {
	// Section is the source record.
	Section document.Section `json:"section"`

	// Name is the course title used for ordering and display.
	Name string `json:"name"`

	// Assignments is nil when the document held no assignments for the
	// section. "No assignments" and "assignments unavailable" are not
	// distinguished by the source.
	Assignments []Assignment `json:"assignments"`

	// FinalGrades follows the same nil-when-missing contract as Assignments.
	FinalGrades []document.FinalGrade `json:"finalGrades"`

	// ReportingTerms is the document's full term list, shared by every section.
	ReportingTerms []ReportingTerm `json:"reportingTerms"`

	// Teacher is nil when the section's teacher is not in the document.
	Teacher *document.Teacher `json:"teacher"`

	// CitizenGrades maps reporting term ID to citizenship code, shared by
	// every section. A nil value marks a grade whose code was not found.
	CitizenGrades map[string]*document.CitizenCode `json:"citizenGrades"`
}

// Expression returns the section's period expression.
func (s *Section) Expression() string {
	return s.Section.Expression.String()
}

// =============================================================================
// ASSIGNMENT
// =============================================================================

// Assignment is a raw assignment joined to its category, score and terms.
type Assignment struct {
	Assignment document.Assignment          `json:"assignment"`
	Category   *document.AssignmentCategory `json:"category"`
	Score      *document.AssignmentScore    `json:"score"`

	// Terms holds the abbreviations of every reporting term whose interval
	// strictly contains the due date, deduplicated in first-seen order.
	Terms []string `json:"terms"`
}

// =============================================================================
// REPORTING TERM
// =============================================================================

// ReportingTerm is a grading period with parsed bounds.
type ReportingTerm struct {
	ID           string    `json:"id"`
	Abbreviation string    `json:"abbreviation"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

// Contains reports whether t lies strictly inside the term.
//
// Both bounds are exclusive, so an instant exactly on the start or end of a
// term belongs to no term, matching the service's own bucketing.
func (r ReportingTerm) Contains(t time.Time) bool {
	return r.Start.Before(t) && r.End.After(t)
}

// =============================================================================
// ATTENDANCE
// =============================================================================

// AttendanceEntry is one resolved attendance event.
type AttendanceEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Period      string `json:"period"`
	Name        string `json:"name"`
}

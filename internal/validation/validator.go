// =============================================================================
// Transcript Converter - Document Validation
// =============================================================================
//
// This module checks a decoded transcript document for hygiene problems
// before it is transformed. The transform itself tolerates most of these
// (dangling references become nil fields or dropped entries); validation
// makes them visible.
//
// CHECKS:
//   1. Terms:       missing IDs (warning), unparsable bounds (error)
//   2. Sections:    missing IDs (warning), duplicate IDs (warning),
//                   unknown teacher (warning)
//   3. Assignments: unknown section or category (warning),
//                   unparsable due date (error)
//   4. Grades:      final grades for unknown sections (warning),
//                   unknown citizenship codes (warning)
//   5. Attendance:  unknown attendance codes (warning),
//                   enrollments matching no section (warning)
//
// ERROR HANDLING:
//   - Findings are collected, never returned as a Go error
//   - "error" findings make the same document fail to transform
//   - "warning" findings describe data the report will silently omit
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/transcript"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity indicates the severity of the finding.
	// "error" = the document cannot be transformed
	// "warning" = the document transforms, but data is dropped
	Severity string

	// Record locates the offending record, e.g. "assignments[12]".
	Record string

	// Field is the JSON name of the field that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Record,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all findings (including warnings).
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// RecordsValidated is the total number of records inspected.
	RecordsValidated int
}

func (r *ValidationResult) add(err *ValidationError) {
	r.Errors = append(r.Errors, err)
	if err.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator performs validation on transcript documents.
type Validator struct {
	dates transcript.DateParser
}

// NewValidator creates a new Validator. Date strings without a zone are
// read in dates' location, as the transform does.
func NewValidator(dates transcript.DateParser) *Validator {
	return &Validator{dates: dates}
}

// Validate checks doc with a UTC date parser.
func Validate(doc *document.Document) *ValidationResult {
	return NewValidator(transcript.NewDateParser(nil)).ValidateDocument(doc)
}

// ValidateDocument runs every check against doc.
//
// PARAMETERS:
//   - doc: The decoded document.
//
// RETURNS:
//   - The collected findings. A disabled school yields an empty, valid
//     result since nothing beyond the notice is rendered.
func (v *Validator) ValidateDocument(doc *document.Document) *ValidationResult {
	result := &ValidationResult{
		IsValid: true,
		Errors:  make([]*ValidationError, 0),
	}
	if doc == nil {
		return result
	}
	if school, ok := doc.School(); ok && bool(school.Disabled) {
		return result
	}

	sections := v.validateSections(doc, result)
	v.validateTerms(doc.ReportingTerms, result)
	v.validateAssignments(doc, sections, result)
	v.validateGrades(doc, sections, result)
	v.validateAttendance(doc, result)

	return result
}

// =============================================================================
// CHECKS
// =============================================================================

func (v *Validator) validateTerms(terms []document.ReportingTerm, result *ValidationResult) {
	for i, term := range terms {
		result.RecordsValidated++
		record := recordName("reportingTerms", term.ID.String(), i)

		if term.ID == "" {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "id",
				Rule:     "required",
				Message:  "Reporting term has no id",
			})
		}
		for _, bound := range []struct {
			field string
			value document.Text
		}{{"startDate", term.StartDate}, {"endDate", term.EndDate}} {
			if _, ok := v.dates.Parse(bound.value.String()); !ok {
				result.add(&ValidationError{
					Severity: SeverityError,
					Record:   record,
					Field:    bound.field,
					Value:    bound.value.String(),
					Rule:     "date",
					Message:  "Reporting term bound is not a valid date",
				})
			}
		}
	}
}

func (v *Validator) validateSections(doc *document.Document, result *ValidationResult) map[string]bool {
	teachers := make(map[string]bool, len(doc.Teachers))
	for _, t := range doc.Teachers {
		teachers[t.ID.String()] = true
	}

	seen := make(map[string]bool, len(doc.Sections))
	for i, section := range doc.Sections {
		result.RecordsValidated++
		id := section.ID.String()
		record := recordName("sections", id, i)

		switch {
		case id == "":
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "id",
				Rule:     "required",
				Message:  "Section has no id",
			})
		case seen[id]:
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "id",
				Value:    id,
				Rule:     "unique",
				Message:  "Duplicate section id",
			})
		}
		seen[id] = true

		if tid := section.TeacherID.String(); tid != "" && !teachers[tid] {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "teacherID",
				Value:    tid,
				Rule:     "reference",
				Message:  "Teacher not found",
			})
		}
	}
	return seen
}

func (v *Validator) validateAssignments(doc *document.Document, sections map[string]bool, result *ValidationResult) {
	categories := make(map[string]bool, len(doc.AssignmentCategories))
	for _, c := range doc.AssignmentCategories {
		categories[c.ID.String()] = true
	}

	for i, a := range doc.Assignments {
		result.RecordsValidated++
		record := recordName("assignments", a.ID.String(), i)

		if sid := a.SectionID.String(); !sections[sid] {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "sectionid",
				Value:    sid,
				Rule:     "reference",
				Message:  "Assignment belongs to no section and will not be reported",
			})
		}
		if cid := a.CategoryID.String(); !categories[cid] {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "categoryId",
				Value:    cid,
				Rule:     "reference",
				Message:  "Assignment category not found",
			})
		}
		if due := a.DueDate.String(); due != "" {
			if _, ok := v.dates.Parse(due); !ok {
				result.add(&ValidationError{
					Severity: SeverityError,
					Record:   record,
					Field:    "dueDate",
					Value:    due,
					Rule:     "date",
					Message:  "Due date is not a valid date",
				})
			}
		}
	}
}

func (v *Validator) validateGrades(doc *document.Document, sections map[string]bool, result *ValidationResult) {
	for i, g := range doc.FinalGrades {
		result.RecordsValidated++
		if sid := g.SectionID.String(); !sections[sid] {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   recordName("finalGrades", g.ID.String(), i),
				Field:    "sectionid",
				Value:    sid,
				Rule:     "reference",
				Message:  "Final grade belongs to no section",
			})
		}
	}

	if len(doc.CitizenCodes) == 0 {
		return
	}
	codes := make(map[string]bool, len(doc.CitizenCodes))
	for _, c := range doc.CitizenCodes {
		codes[c.ID.String()] = true
	}
	for i, g := range doc.CitizenGrades {
		result.RecordsValidated++
		if cid := g.CodeID.String(); !codes[cid] {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   recordName("citizenGrades", g.ID.String(), i),
				Field:    "codeId",
				Value:    cid,
				Rule:     "reference",
				Message:  "Citizenship code not found",
			})
		}
	}
}

func (v *Validator) validateAttendance(doc *document.Document, result *ValidationResult) {
	codes := make(map[string]bool, len(doc.AttendanceCodes))
	for _, c := range doc.AttendanceCodes {
		codes[c.ID.String()] = true
	}
	enrollments := make(map[string]bool)
	for _, s := range doc.Sections {
		for _, e := range s.Enrollments {
			enrollments[e.ID.String()] = true
		}
	}

	for i, a := range doc.Attendance {
		result.RecordsValidated++
		record := recordName("attendance", a.ID.String(), i)

		if cid := a.CodeID.String(); !codes[cid] {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "attCodeid",
				Value:    cid,
				Rule:     "reference",
				Message:  "Attendance code not found",
			})
		}
		if ccid := a.CCID.String(); !enrollments[ccid] {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Record:   record,
				Field:    "ccid",
				Value:    ccid,
				Rule:     "reference",
				Message:  "Enrollment matches no section",
			})
		}
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// recordName names a record by ID, or by position when it has none.
func recordName(collection, id string, index int) string {
	if id == "" {
		return fmt.Sprintf("%s[#%d]", collection, index)
	}
	return fmt.Sprintf("%s[%s]", collection, id)
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation findings for display or logging.
//
// PARAMETERS:
//   - errors: The findings to format.
//
// RETURNS:
//   - A formatted string containing all findings.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "Validation completed with %d finding(s):\n\n", len(errors))

	for i, err := range errors {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, err.Error())
	}

	return builder.String()
}

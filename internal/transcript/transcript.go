// =============================================================================
// Transcript Converter - Transcript Transform
// =============================================================================
//
// Transform turns one raw transcript document into one report.
//
// PIPELINE (leaves first):
//   0. Disabled-school guard      -> short-circuits with a notice
//   1. Collection normalization   -> done while decoding (document.List)
//   2. Indexes                    -> categories, scores, teachers, codes
//   3. Reporting terms            -> parsed bounds, document order
//   4. Citizenship                -> term ID -> citizenship code
//   5. Assignments                -> grouped by section ID
//   6. Sections                   -> joined and sorted
//   7. Attendance                 -> resolved ledger
//
// ERROR POLICY:
//   Missing collections are empty. Unresolved references become nil fields
//   or filtered entries. Only a malformed date fails the transform, with an
//   error matching ErrMalformedDate.
//
// CONCURRENCY:
//   A Transformer holds configuration only. Every call builds its own
//   indexes, so one Transformer may be used from several goroutines.
//
// =============================================================================

package transcript

import (
	"log/slog"
	"time"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Transformer.
type Options struct {
	// Location is used for date strings that carry no zone. Default: UTC.
	Location *time.Location

	// ProductName is named in the disabled-notice suffix.
	// Default: DefaultProductName.
	ProductName string

	// Attendance controls treatment of unresolvable attendance events.
	Attendance AttendanceOptions

	// Logger receives anomaly reports. Default: discard.
	Logger *slog.Logger
}

// =============================================================================
// TRANSFORMER
// =============================================================================

// Transformer converts transcript documents into reports.
type Transformer struct {
	dates   DateParser
	product string
	attend  AttendanceOptions
	logger  *slog.Logger
}

// New creates a Transformer.
func New(opts Options) *Transformer {
	product := opts.ProductName
	if product == "" {
		product = DefaultProductName
	}
	return &Transformer{
		dates:   NewDateParser(opts.Location),
		product: product,
		attend:  opts.Attendance,
		logger:  orDiscard(opts.Logger),
	}
}

// Transform builds the report for doc. It does not modify doc.
func (t *Transformer) Transform(doc *document.Document) (*types.Report, error) {
	if doc == nil {
		doc = &document.Document{}
	}

	if notice := t.disabledNotice(doc); notice != nil {
		t.logger.Info("school has disabled transcript access", "title", notice.Title)
		return &types.Report{
			Information: doc.Student,
			Sections:    []types.Section{},
			Attendances: []types.AttendanceEntry{},
			Disabled:    notice,
		}, nil
	}

	categories := GroupByID(doc.AssignmentCategories, categoryID)
	scores := indexScores(doc.AssignmentScores)
	finalGrades := groupFinalGrades(doc.FinalGrades)
	teachers := GroupByID(doc.Teachers, teacherID)
	attendanceCodes := GroupByID(doc.AttendanceCodes, attendanceCodeID)

	terms, err := ResolveTerms(doc.ReportingTerms, t.dates)
	if err != nil {
		return nil, err
	}

	citizenGrades := ResolveCitizenship(doc.CitizenGrades, doc.CitizenCodes, t.logger)

	assignments, err := AssembleAssignments(doc.Assignments, categories, scores, terms, t.dates)
	if err != nil {
		return nil, err
	}

	sections := AssembleSections(doc.Sections, SectionInputs{
		Assignments:   assignments,
		FinalGrades:   finalGrades,
		Teachers:      teachers,
		Terms:         terms,
		CitizenGrades: citizenGrades,
	}, t.logger)

	attendances := AssembleAttendance(doc.Attendance, attendanceCodes, doc.Sections, t.attend, t.logger)

	t.logger.Debug("transcript transformed",
		"sections", len(sections),
		"assignments", len(doc.Assignments),
		"attendances", len(attendances),
		"dropped_attendances", len(doc.Attendance)-len(attendances))

	return &types.Report{
		Information: doc.Student,
		Sections:    sections,
		Attendances: attendances,
	}, nil
}

// disabledNotice returns the notice for a disabled school, or nil.
func (t *Transformer) disabledNotice(doc *document.Document) *types.DisabledNotice {
	school, ok := doc.School()
	if !ok || !bool(school.Disabled) {
		return nil
	}
	return &types.DisabledNotice{
		Title:   school.DisabledTitle.String(),
		Message: FormatDisabledMessage(school.DisabledMessage.String(), t.product),
	}
}

// Transform converts doc with default options.
func Transform(doc *document.Document) (*types.Report, error) {
	return New(Options{}).Transform(doc)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

package transcript

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// SectionInputs bundles the resolved collections a section is built from.
type SectionInputs struct {
	Assignments   map[string][]types.Assignment
	FinalGrades   map[string][]document.FinalGrade
	Teachers      map[string]document.Teacher
	Terms         []types.ReportingTerm
	CitizenGrades map[string]*document.CitizenCode
}

// AssembleSections builds one Section per raw section and orders them by
// (expression, name).
//
// A section with no entry in the assignment or final-grade groups gets a nil
// slice for that field. Every section shares the same Terms slice and
// CitizenGrades map; callers must treat them as read-only.
func AssembleSections(raw []document.Section, in SectionInputs, logger *slog.Logger) []types.Section {
	logger = orDiscard(logger)
	sections := make([]types.Section, 0, len(raw))

	for _, s := range raw {
		id := s.ID.String()

		assignments, ok := in.Assignments[id]
		if !ok {
			logger.Debug("section has no assignments", "section_id", id)
		}
		finalGrades, ok := in.FinalGrades[id]
		if !ok {
			logger.Debug("section has no final grades", "section_id", id)
		}

		sections = append(sections, types.Section{
			Section:        s,
			Name:           s.SchoolCourseTitle.String(),
			Assignments:    assignments,
			FinalGrades:    finalGrades,
			ReportingTerms: in.Terms,
			Teacher:        lookup(in.Teachers, s.TeacherID.String()),
			CitizenGrades:  in.CitizenGrades,
		})
	}

	SortSections(sections)
	return sections
}

// sectionKey is the total ordering key for sections.
type sectionKey struct {
	expression string
	name       string
}

func keyOf(s *types.Section) sectionKey {
	return sectionKey{expression: s.Expression(), name: s.Name}
}

func compareKeys(a, b sectionKey) int {
	return cmp.Or(
		strings.Compare(a.expression, b.expression),
		strings.Compare(a.name, b.name),
	)
}

// SortSections orders sections by expression, then name, using plain
// byte-wise string comparison ("10" sorts before "2"). The sort is stable.
func SortSections(sections []types.Section) {
	slices.SortStableFunc(sections, func(a, b types.Section) int {
		return compareKeys(keyOf(&a), keyOf(&b))
	})
}

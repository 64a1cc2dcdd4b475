// =============================================================================
// Transcript Converter - Indexer
// =============================================================================
//
// The document has no foreign keys, only parallel collections that name each
// other by ID. Every join in the transform goes through an index built here.
//
// COLLISION POLICY:
//   When two records share an ID, the record that comes later in the
//   document replaces the earlier one. The earlier record is dropped without
//   an error. This is deliberate and applies to every index below.
//
// =============================================================================

package transcript

import "github.com/ginjaninja78/transcript-converter/internal/document"

// GroupByID indexes items by the key returned from id. On duplicate keys the
// later item wins.
func GroupByID[T any](items []T, id func(T) string) map[string]T {
	index := make(map[string]T, len(items))
	for _, item := range items {
		index[id(item)] = item
	}
	return index
}

func categoryID(c document.AssignmentCategory) string { return c.ID.String() }
func teacherID(t document.Teacher) string             { return t.ID.String() }
func attendanceCodeID(c document.AttendanceCode) string {
	return c.ID.String()
}
func citizenCodeID(c document.CitizenCode) string { return c.ID.String() }

// indexScores indexes scores by assignment ID. Scores without an assignment
// ID are skipped, so assignments never resolve to them.
func indexScores(scores []document.AssignmentScore) map[string]document.AssignmentScore {
	index := make(map[string]document.AssignmentScore, len(scores))
	for _, s := range scores {
		if s.AssignmentID == "" {
			continue
		}
		index[s.AssignmentID.String()] = s
	}
	return index
}

// groupFinalGrades collects final grades per section ID, keeping source order.
func groupFinalGrades(grades []document.FinalGrade) map[string][]document.FinalGrade {
	groups := make(map[string][]document.FinalGrade)
	for _, g := range grades {
		key := g.SectionID.String()
		groups[key] = append(groups[key], g)
	}
	return groups
}

// lookup returns a pointer to a copy of the indexed record, or nil when key is
// not present.
func lookup[T any](index map[string]T, key string) *T {
	v, ok := index[key]
	if !ok {
		return nil
	}
	return &v
}

package transcript

import (
	"fmt"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// ResolveTerms parses every reporting term's bounds.
//
// The result keeps document order. A term ID seen twice keeps its first
// position and takes the later record's values. A start or end date that
// cannot be parsed fails the call with a *DateError.
func ResolveTerms(raw []document.ReportingTerm, dates DateParser) ([]types.ReportingTerm, error) {
	terms := make([]types.ReportingTerm, 0, len(raw))
	position := make(map[string]int, len(raw))

	for _, r := range raw {
		id := r.ID.String()
		record := fmt.Sprintf("reportingTerms[%s]", id)

		start, ok := dates.Parse(r.StartDate.String())
		if !ok {
			return nil, &DateError{Record: record, Field: "startDate", Value: r.StartDate.String()}
		}
		end, ok := dates.Parse(r.EndDate.String())
		if !ok {
			return nil, &DateError{Record: record, Field: "endDate", Value: r.EndDate.String()}
		}

		term := types.ReportingTerm{
			ID:           id,
			Abbreviation: r.Abbreviation.String(),
			Start:        start,
			End:          end,
		}

		if i, seen := position[id]; seen {
			terms[i] = term
			continue
		}
		position[id] = len(terms)
		terms = append(terms, term)
	}

	return terms, nil
}

package transcript

import (
	"fmt"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// AssembleAssignments joins each raw assignment to its category, score and
// reporting terms and groups the results by section ID.
//
// JOIN RULES:
//   - category: by categoryId; nil when the category is not in the document
//   - score:    by assignment id; nil when no score references it
//   - terms:    every term whose interval strictly contains the due date
//
// An assignment with no due date belongs to no term. A due date that is
// present but unparseable fails the call with a *DateError.
func AssembleAssignments(
	raw []document.Assignment,
	categories map[string]document.AssignmentCategory,
	scores map[string]document.AssignmentScore,
	terms []types.ReportingTerm,
	dates DateParser,
) (map[string][]types.Assignment, error) {
	grouped := make(map[string][]types.Assignment)

	for _, a := range raw {
		matched, err := matchTerms(a, terms, dates)
		if err != nil {
			return nil, err
		}

		key := a.SectionID.String()
		grouped[key] = append(grouped[key], types.Assignment{
			Assignment: a,
			Category:   lookup(categories, a.CategoryID.String()),
			Score:      lookup(scores, a.ID.String()),
			Terms:      matched,
		})
	}

	return grouped, nil
}

// matchTerms returns the abbreviations of the terms containing the
// assignment's due date, without duplicates, in term order.
func matchTerms(a document.Assignment, terms []types.ReportingTerm, dates DateParser) ([]string, error) {
	matched := []string{}
	if a.DueDate == "" {
		return matched, nil
	}

	due, ok := dates.Parse(a.DueDate.String())
	if !ok {
		return nil, &DateError{
			Record: fmt.Sprintf("assignments[%s]", a.ID),
			Field:  "dueDate",
			Value:  a.DueDate.String(),
		}
	}

	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		if !term.Contains(due) || seen[term.Abbreviation] {
			continue
		}
		seen[term.Abbreviation] = true
		matched = append(matched, term.Abbreviation)
	}

	return matched, nil
}

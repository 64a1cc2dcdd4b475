package transcript

import (
	"log/slog"

	"github.com/ginjaninja78/transcript-converter/internal/document"
)

// ResolveCitizenship maps each citizenship grade's reporting term to the code
// it references. A grade naming an unknown code still gets an entry, with a
// nil value. Later grades for the same term replace earlier ones.
func ResolveCitizenship(grades []document.CitizenGrade, codes []document.CitizenCode, logger *slog.Logger) map[string]*document.CitizenCode {
	logger = orDiscard(logger)
	resolved := make(map[string]*document.CitizenCode, len(grades))
	if len(grades) == 0 || len(codes) == 0 {
		return resolved
	}

	index := GroupByID(codes, citizenCodeID)
	for _, g := range grades {
		code := lookup(index, g.CodeID.String())
		if code == nil {
			logger.Warn("citizenship grade references unknown code",
				"reporting_term_id", g.ReportingTermID.String(),
				"code_id", g.CodeID.String())
		}
		resolved[g.ReportingTermID.String()] = code
	}

	return resolved
}

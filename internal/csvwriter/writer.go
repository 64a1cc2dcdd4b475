// =============================================================================
// Transcript Converter - CSV Writer Module
// =============================================================================
//
// This module writes a report's attendance ledger as CSV, one row per
// resolved attendance event, in report order.
//
// OUTPUT (default settings):
//   code,description,date,period,name
//   P,Present,2016-09-02,1(A),Algebra
//   A,Absent,2016-09-03,2(A),Biology
//
// A disabled report has no ledger; only the header row is written.
//
// =============================================================================

package csvwriter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// Header is the ledger's column order.
var Header = []string{"code", "description", "date", "period", "name"}

// Settings controls the CSV dialect.
type Settings struct {
	// Delimiter separates fields: "comma", "tab", "pipe" or "semicolon".
	// Default: "comma"
	Delimiter string

	// OmitHeader drops the header row.
	OmitHeader bool

	// UseCRLF ends lines with \r\n.
	UseCRLF bool
}

// Generate renders the attendance ledger into memory.
func Generate(report *types.Report, settings Settings) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(&buffer, report, settings); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Write renders the attendance ledger to w.
//
// PARAMETERS:
//   - w: The destination.
//   - report: The transformed report.
//   - settings: The CSV dialect.
//
// RETURNS:
//   - An error if the report is nil or writing fails.
func Write(w io.Writer, report *types.Report, settings Settings) error {
	if report == nil {
		return fmt.Errorf("failed to generate CSV: nil report")
	}

	writer := csv.NewWriter(w)
	configureWriter(writer, settings)

	if !settings.OmitHeader {
		if err := writer.Write(Header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for i, entry := range report.Attendances {
		row := []string{entry.Code, entry.Description, entry.Date, entry.Period, entry.Name}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write attendance row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// configureWriter configures the CSV writer based on the settings.
func configureWriter(writer *csv.Writer, settings Settings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		writer.Comma = '\t'
	case "|", "pipe", "PIPE":
		writer.Comma = '|'
	case ";", "semicolon":
		writer.Comma = ';'
	case ",", "comma", "":
		writer.Comma = ','
	default:
		writer.Comma = rune(settings.Delimiter[0])
	}

	writer.UseCRLF = settings.UseCRLF
}

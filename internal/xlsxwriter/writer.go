// =============================================================================
// Transcript Converter - XLSX Writer Module
// =============================================================================
//
// This module renders a transcript report as an Excel workbook.
//
// WORKBOOK STRUCTURE:
//
//   | Sheet       | One row per          | Columns                               |
//   |-------------|----------------------|---------------------------------------|
//   | Sections    | section              | Expression, Course, Room, Teacher,    |
//   |             |                      | Assignments, Final Grades, Citizenship|
//   | Assignments | assignment           | Expression, Course, Assignment,       |
//   |             |                      | Category, Due Date, Score, Percent,   |
//   |             |                      | Letter Grade, Terms                   |
//   | Attendance  | attendance event     | Code, Description, Date, Period,      |
//   |             |                      | Course                                |
//
// A disabled report produces a single "Notice" sheet (Title, Message).
//
// The first row of every sheet is a bold header.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/transcript-converter/internal/types"
)

// Sheet names.
const (
	SheetSections    = "Sections"
	SheetAssignments = "Assignments"
	SheetAttendance  = "Attendance"
	SheetNotice      = "Notice"
)

// defaultSheet is the sheet excelize creates with a new file.
const defaultSheet = "Sheet1"

var (
	sectionHeader    = []string{"Expression", "Course", "Room", "Teacher", "Assignments", "Final Grades", "Citizenship"}
	assignmentHeader = []string{"Expression", "Course", "Assignment", "Category", "Due Date", "Score", "Percent", "Letter Grade", "Terms"}
	attendanceHeader = []string{"Code", "Description", "Date", "Period", "Course"}
	noticeHeader     = []string{"Title", "Message"}
)

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// Generate renders report as an XLSX workbook.
//
// PARAMETERS:
//   - report: The transformed report.
//
// RETURNS:
//   - The workbook bytes.
//   - An error if the workbook cannot be built.
func Generate(report *types.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("failed to generate XLSX: nil report")
	}

	f := excelize.NewFile()
	defer f.Close()

	b := &builder{file: f}
	if err := b.init(); err != nil {
		return nil, err
	}

	var err error
	if report.IsDisabled() {
		err = b.writeNotice(report.Disabled)
	} else {
		err = b.writeReport(report)
	}
	if err != nil {
		return nil, err
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}

// builder carries the workbook being built and its shared header style.
type builder struct {
	file        *excelize.File
	headerStyle int
	sheets      int
}

func (b *builder) init() error {
	style, err := b.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	b.headerStyle = style
	return nil
}

func (b *builder) writeReport(report *types.Report) error {
	sections := make([][]any, 0, len(report.Sections))
	var assignments [][]any
	for _, s := range report.Sections {
		sections = append(sections, sectionRow(s))
		for _, a := range s.Assignments {
			assignments = append(assignments, assignmentRow(s, a))
		}
	}

	attendance := make([][]any, 0, len(report.Attendances))
	for _, e := range report.Attendances {
		attendance = append(attendance, []any{e.Code, e.Description, e.Date, e.Period, e.Name})
	}

	if err := b.writeSheet(SheetSections, sectionHeader, sections); err != nil {
		return err
	}
	if err := b.writeSheet(SheetAssignments, assignmentHeader, assignments); err != nil {
		return err
	}
	return b.writeSheet(SheetAttendance, attendanceHeader, attendance)
}

func (b *builder) writeNotice(notice *types.DisabledNotice) error {
	return b.writeSheet(SheetNotice, noticeHeader, [][]any{{notice.Title, notice.Message}})
}

// writeSheet adds a sheet with a header row followed by rows. The first
// sheet written takes over the default sheet.
func (b *builder) writeSheet(name string, header []string, rows [][]any) error {
	if b.sheets == 0 {
		if err := b.file.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to rename sheet %s: %w", name, err)
		}
	} else if _, err := b.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	b.sheets++

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := b.file.SetSheetRow(name, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := b.file.SetRowStyle(name, 1, 1, b.headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", name, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := b.file.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := b.file.SetColWidth(name, "A", last, 18); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", name, err)
	}
	return nil
}

// =============================================================================
// ROW BUILDERS
// =============================================================================

func sectionRow(s types.Section) []any {
	teacher := ""
	if t := s.Teacher; t != nil {
		teacher = strings.TrimSpace(t.FirstName.String() + " " + t.LastName.String())
	}

	grades := make([]string, 0, len(s.FinalGrades))
	for _, g := range s.FinalGrades {
		grades = append(grades, g.ReportingTermID.String()+": "+g.Grade.String())
	}

	citizenship := make([]string, 0, len(s.CitizenGrades))
	for _, term := range slices.Sorted(maps.Keys(s.CitizenGrades)) {
		name := "(unknown)"
		if code := s.CitizenGrades[term]; code != nil {
			name = code.CodeName.String()
		}
		citizenship = append(citizenship, term+": "+name)
	}

	return []any{
		s.Expression(),
		s.Name,
		s.Section.RoomName.String(),
		teacher,
		len(s.Assignments),
		strings.Join(grades, "; "),
		strings.Join(citizenship, "; "),
	}
}

func assignmentRow(s types.Section, a types.Assignment) []any {
	category := ""
	if a.Category != nil {
		category = a.Category.Name.String()
	}
	var score, percent, letter string
	if sc := a.Score; sc != nil {
		score, percent, letter = sc.Score.String(), sc.Percent.String(), sc.LetterGrade.String()
	}

	return []any{
		s.Expression(),
		s.Name,
		a.Assignment.Name.String(),
		category,
		a.Assignment.DueDate.String(),
		score,
		percent,
		letter,
		strings.Join(a.Terms, ", "),
	}
}

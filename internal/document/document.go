// =============================================================================
// Transcript Converter - Raw Document Model
// =============================================================================
//
// This package describes the transcript document exactly as the
// student-information service sends it: a flat bag of independently keyed
// record collections with no foreign-key enforcement.
//
// DOCUMENT SHAPE:
//   {
//     "studentDataVOs": {                 <-- optional envelope
//       "student": {...},
//       "schools": {"schoolDisabled": "false", ...},
//       "assignmentCategories": [...],    <-- any collection may also be a
//       "assignmentScores": [...],            single bare object
//       "finalGrades": [...],
//       "reportingTerms": [...],
//       "teachers": [...],
//       "citizenGrades": [...],
//       "citizenCodes": [...],
//       "attendanceCodes": [...],
//       "assignments": [...],
//       "sections": [...],
//       "attendance": [...]
//     }
//   }
//
// Only the fields the transform reads (plus a few display fields worth
// carrying into the report) are modelled. Everything is optional.
//
// =============================================================================

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyDocument is returned by Decode when the input holds no JSON value.
var ErrEmptyDocument = errors.New("empty transcript document")

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is one student's transcript as returned by the service.
type Document struct {
	// Student is the student information record. It is not interpreted,
	// only carried through to the report.
	Student json.RawMessage `json:"student,omitempty"`

	// Schools carries the school-disabled flag and notice text.
	Schools List[School] `json:"schools,omitempty"`

	AssignmentCategories List[AssignmentCategory] `json:"assignmentCategories,omitempty"`
	AssignmentScores     List[AssignmentScore]    `json:"assignmentScores,omitempty"`
	FinalGrades          List[FinalGrade]         `json:"finalGrades,omitempty"`
	ReportingTerms       List[ReportingTerm]      `json:"reportingTerms,omitempty"`
	Teachers             List[Teacher]            `json:"teachers,omitempty"`
	CitizenGrades        List[CitizenGrade]       `json:"citizenGrades,omitempty"`
	CitizenCodes         List[CitizenCode]        `json:"citizenCodes,omitempty"`
	AttendanceCodes      List[AttendanceCode]     `json:"attendanceCodes,omitempty"`
	Assignments          List[Assignment]         `json:"assignments,omitempty"`
	Sections             List[Section]            `json:"sections,omitempty"`
	Attendance           List[Attendance]         `json:"attendance,omitempty"`
}

// School returns the school record that carries the disabled flag. The
// service sends one; if it ever sends several, the first one is authoritative.
func (d *Document) School() (School, bool) {
	if len(d.Schools) == 0 {
		return School{}, false
	}
	return d.Schools[0], true
}

// Envelope is the outer wrapper the service puts around a Document.
type Envelope struct {
	StudentDataVOs *Document `json:"studentDataVOs"`
}

// Decode reads one transcript document. Both the enveloped form
// ({"studentDataVOs": {...}}) and a bare document are accepted.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode over an in-memory payload.
func DecodeBytes(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if env.StudentDataVOs != nil {
		return env.StudentDataVOs, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &doc, nil
}

// =============================================================================
// RECORDS
// =============================================================================

// School holds the school-level switches relevant to the transform.
type School struct {
	SchoolID        Text `json:"schoolId,omitempty"`
	Name            Text `json:"name,omitempty"`
	Disabled        Flag `json:"schoolDisabled"`
	DisabledTitle   Text `json:"schoolDisabledTitle,omitempty"`
	DisabledMessage Text `json:"schoolDisabledMessage,omitempty"`
}

// AssignmentCategory is keyed by ID and otherwise opaque to the transform.
type AssignmentCategory struct {
	ID           Text `json:"id"`
	Name         Text `json:"name,omitempty"`
	Abbreviation Text `json:"abbreviation,omitempty"`
	Description  Text `json:"description,omitempty"`
}

// AssignmentScore is keyed by AssignmentID. Scores without an AssignmentID
// are never indexed.
type AssignmentScore struct {
	AssignmentID Text `json:"assignmentId,omitempty"`
	Score        Text `json:"score,omitempty"`
	Percent      Text `json:"percent,omitempty"`
	LetterGrade  Text `json:"letterGrade,omitempty"`
	Exempt       Text `json:"exempt,omitempty"`
	Late         Text `json:"late,omitempty"`
	Missing      Text `json:"missing,omitempty"`
	Collected    Text `json:"collected,omitempty"`
	Comment      Text `json:"comment,omitempty"`
}

// FinalGrade is a per-term grade for a section.
type FinalGrade struct {
	ID              Text `json:"id,omitempty"`
	SectionID       Text `json:"sectionid"`
	ReportingTermID Text `json:"reportingTermId,omitempty"`
	Grade           Text `json:"grade,omitempty"`
	Percent         Text `json:"percent,omitempty"`
	Comment         Text `json:"commentValue,omitempty"`
	DateStored      Text `json:"dateStored,omitempty"`
}

// ReportingTerm is a grading period with textual start and end dates.
type ReportingTerm struct {
	ID           Text `json:"id"`
	Abbreviation Text `json:"abbreviation"`
	Title        Text `json:"title,omitempty"`
	StartDate    Text `json:"startDate"`
	EndDate      Text `json:"endDate"`
}

// Teacher is keyed by ID.
type Teacher struct {
	ID          Text `json:"id"`
	FirstName   Text `json:"firstName,omitempty"`
	LastName    Text `json:"lastName,omitempty"`
	Email       Text `json:"email,omitempty"`
	SchoolPhone Text `json:"schoolPhone,omitempty"`
}

// CitizenGrade links a reporting term to a citizenship code.
type CitizenGrade struct {
	ID              Text `json:"id,omitempty"`
	ReportingTermID Text `json:"reportingTermId"`
	CodeID          Text `json:"codeId"`
	SectionID       Text `json:"sectionid,omitempty"`
}

// CitizenCode is keyed by ID.
type CitizenCode struct {
	ID          Text `json:"id"`
	CodeName    Text `json:"codeName,omitempty"`
	Description Text `json:"description,omitempty"`
}

// AttendanceCode is keyed by ID. A null description decodes to "".
type AttendanceCode struct {
	ID          Text `json:"id"`
	Code        Text `json:"attCode"`
	Description Text `json:"description"`
}

// Assignment is a raw gradebook assignment.
type Assignment struct {
	ID                   Text `json:"id"`
	SectionID            Text `json:"sectionid"`
	CategoryID           Text `json:"categoryId"`
	DueDate              Text `json:"dueDate"`
	Name                 Text `json:"name,omitempty"`
	Abbreviation         Text `json:"abbreviation,omitempty"`
	Description          Text `json:"description,omitempty"`
	PointsPossible       Text `json:"pointspossible,omitempty"`
	Weight               Text `json:"weight,omitempty"`
	IncludeInFinalGrades Text `json:"includeinfinalgrades,omitempty"`
}

// Section is one enrolled course period.
type Section struct {
	ID                Text             `json:"id"`
	Expression        Text             `json:"expression"`
	SchoolCourseTitle Text             `json:"schoolCourseTitle"`
	TeacherID         Text             `json:"teacherID,omitempty"`
	RoomName          Text             `json:"roomName,omitempty"`
	TermID            Text             `json:"termID,omitempty"`
	Enrollments       List[Enrollment] `json:"enrollments,omitempty"`
}

// Enrollment identifies the student's enrollment in a section. Attendance
// events reference sections through the enrollment ID.
type Enrollment struct {
	ID        Text `json:"id"`
	StartDate Text `json:"startDate,omitempty"`
	EndDate   Text `json:"endDate,omitempty"`
}

// Attendance is a single attendance event.
type Attendance struct {
	ID         Text `json:"id,omitempty"`
	CodeID     Text `json:"attCodeid"`
	Date       Text `json:"attDate"`
	CCID       Text `json:"ccid"`
	PeriodID   Text `json:"periodid,omitempty"`
	AttComment Text `json:"attComment,omitempty"`
}

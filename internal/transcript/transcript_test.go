package transcript_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/transcript"
)

const fullDocument = `{
  "studentDataVOs": {
    "student": {"id": 55, "firstName": "Ada"},
    "schools": {"schoolDisabled": "false"},
    "assignmentCategories": [
      {"id": 1, "name": "Homework"},
      {"id": 2, "name": "Test"}
    ],
    "assignmentScores": [
      {"assignmentId": 100, "score": "9"},
      {"score": "orphan"}
    ],
    "finalGrades": [
      {"id": 1, "sectionid": 10, "reportingTermId": 1, "grade": "A"},
      {"id": 2, "sectionid": 10, "reportingTermId": 2, "grade": "B"}
    ],
    "reportingTerms": [
      {"id": 1, "abbreviation": "S1", "startDate": "2016-08-01T00:00:00.000Z", "endDate": "2017-01-15T00:00:00.000Z"},
      {"id": 2, "abbreviation": "Q1", "startDate": "2016-08-01T00:00:00.000Z", "endDate": "2016-10-15T00:00:00.000Z"}
    ],
    "teachers": {"id": 7, "lastName": "Ng"},
    "citizenGrades": {"reportingTermId": 1, "codeId": 3},
    "citizenCodes": [{"id": 3, "codeName": "E"}],
    "attendanceCodes": [
      {"id": 1, "attCode": "X", "description": "Present"},
      {"id": 2, "attCode": "A", "description": "Absent"},
      {"id": 3, "attCode": "Q", "description": null}
    ],
    "assignments": [
      {"id": 100, "sectionid": 10, "categoryId": 1, "dueDate": "2016-09-01T00:00:00.000Z", "name": "HW1"},
      {"id": 101, "sectionid": 10, "categoryId": 9, "dueDate": "2016-12-01T00:00:00.000Z", "name": "HW2"},
      {"id": 102, "sectionid": 20, "categoryId": 2, "dueDate": "", "name": "Undated"}
    ],
    "sections": [
      {"id": 20, "expression": "2(A)", "schoolCourseTitle": "Biology", "teacherID": 99, "enrollments": {"id": 2000}},
      {"id": 10, "expression": "1(A)", "schoolCourseTitle": "Algebra", "teacherID": 7, "enrollments": {"id": 1000}},
      {"id": 30, "expression": "1(A)", "schoolCourseTitle": "Advisory", "enrollments": [{"id": 3000}]}
    ],
    "attendance": [
      {"attCodeid": 1, "attDate": "2016-09-02", "ccid": 1000},
      {"attCodeid": 2, "attDate": "2016-09-03", "ccid": 2000},
      {"attCodeid": 3, "attDate": "2016-09-04", "ccid": 2000},
      {"attCodeid": 8, "attDate": "2016-09-05", "ccid": 2000},
      {"attCodeid": 2, "attDate": "2016-09-06", "ccid": 4040}
    ]
  }
}`

func decode(t *testing.T, payload string) *document.Document {
	t.Helper()
	doc, err := document.DecodeBytes([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

func TestTransformFullDocument(t *testing.T) {
	report, err := transcript.Transform(decode(t, fullDocument))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if report.IsDisabled() {
		t.Fatal("report unexpectedly disabled")
	}
	if string(report.Information) != `{"id": 55, "firstName": "Ada"}` {
		t.Errorf("information = %s", report.Information)
	}

	var names []string
	for _, s := range report.Sections {
		names = append(names, s.Name)
	}
	if want := []string{"Advisory", "Algebra", "Biology"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("section order = %v, want %v", names, want)
	}

	advisory, algebra, biology := report.Sections[0], report.Sections[1], report.Sections[2]

	if advisory.Assignments != nil || advisory.FinalGrades != nil {
		t.Errorf("advisory assignments/finalGrades = %v/%v, want nil/nil", advisory.Assignments, advisory.FinalGrades)
	}
	if advisory.Teacher != nil {
		t.Errorf("advisory teacher = %+v, want nil", advisory.Teacher)
	}

	if algebra.Teacher == nil || algebra.Teacher.LastName != "Ng" {
		t.Errorf("algebra teacher = %+v", algebra.Teacher)
	}
	if len(algebra.FinalGrades) != 2 {
		t.Errorf("algebra final grades = %d, want 2", len(algebra.FinalGrades))
	}
	if len(algebra.Assignments) != 2 {
		t.Fatalf("algebra assignments = %d, want 2", len(algebra.Assignments))
	}

	hw1, hw2 := algebra.Assignments[0], algebra.Assignments[1]
	if hw1.Category == nil || hw1.Category.Name != "Homework" {
		t.Errorf("hw1 category = %+v", hw1.Category)
	}
	if hw1.Score == nil || hw1.Score.Score != "9" {
		t.Errorf("hw1 score = %+v", hw1.Score)
	}
	if !reflect.DeepEqual(hw1.Terms, []string{"S1", "Q1"}) {
		t.Errorf("hw1 terms = %v, want [S1 Q1]", hw1.Terms)
	}
	if hw2.Category != nil {
		t.Errorf("hw2 category = %+v, want nil", hw2.Category)
	}
	if hw2.Score != nil {
		t.Errorf("hw2 score = %+v, want nil", hw2.Score)
	}
	if !reflect.DeepEqual(hw2.Terms, []string{"S1"}) {
		t.Errorf("hw2 terms = %v, want [S1]", hw2.Terms)
	}

	if biology.Teacher != nil {
		t.Errorf("biology teacher = %+v, want nil", biology.Teacher)
	}
	if len(biology.Assignments) != 1 || len(biology.Assignments[0].Terms) != 0 {
		t.Errorf("biology assignments = %+v", biology.Assignments)
	}

	if len(algebra.ReportingTerms) != 2 || algebra.ReportingTerms[0].Abbreviation != "S1" {
		t.Errorf("reporting terms = %+v", algebra.ReportingTerms)
	}
	code, ok := algebra.CitizenGrades["1"]
	if !ok || code == nil || code.CodeName != "E" {
		t.Errorf("citizen grades = %+v", algebra.CitizenGrades)
	}

	wantAttendance := []struct{ code, description, date, period, name string }{
		{"P", "Present", "2016-09-02", "1(A)", "Algebra"},
		{"A", "Absent", "2016-09-03", "2(A)", "Biology"},
	}
	if len(report.Attendances) != len(wantAttendance) {
		t.Fatalf("attendances = %+v", report.Attendances)
	}
	for i, want := range wantAttendance {
		got := report.Attendances[i]
		if got.Code != want.code || got.Description != want.description || got.Date != want.date ||
			got.Period != want.period || got.Name != want.name {
			t.Errorf("attendance[%d] = %+v, want %+v", i, got, want)
		}
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	doc := decode(t, fullDocument)
	tr := transcript.New(transcript.Options{})

	first, err := tr.Transform(doc)
	if err != nil {
		t.Fatalf("first Transform: %v", err)
	}
	second, err := tr.Transform(doc)
	if err != nil {
		t.Fatalf("second Transform: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two transforms of the same document differ")
	}
}

func TestTransformDisabledSchool(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantMessage func(string) bool
	}{
		{
			"empty message gets no suffix",
			"",
			func(m string) bool { return m == "" },
		},
		{
			"message gets bilingual suffix",
			"Grades are closed.",
			func(m string) bool {
				return strings.HasPrefix(m, "Grades are closed.\n\n(") &&
					strings.Contains(m, "SchoolPower") &&
					strings.Contains(m, "provided by school")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, `{"schools":{"schoolDisabled":"true","schoolDisabledTitle":"Closed","schoolDisabledMessage":"`+tt.message+`"},
				"sections":[{"id":1,"expression":"1","schoolCourseTitle":"Math"}],
				"reportingTerms":{"id":1,"abbreviation":"S1","startDate":"garbage","endDate":"garbage"}}`)

			report, err := transcript.Transform(doc)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if !report.IsDisabled() {
				t.Fatal("report not disabled")
			}
			if report.Disabled.Title != "Closed" {
				t.Errorf("title = %q, want Closed", report.Disabled.Title)
			}
			if !tt.wantMessage(report.Disabled.Message) {
				t.Errorf("message = %q", report.Disabled.Message)
			}
			if report.Sections == nil || len(report.Sections) != 0 {
				t.Errorf("sections = %v, want empty", report.Sections)
			}
			if report.Attendances == nil || len(report.Attendances) != 0 {
				t.Errorf("attendances = %v, want empty", report.Attendances)
			}
		})
	}
}

func TestTransformMissingCategories(t *testing.T) {
	doc := decode(t, `{
		"assignments":[
			{"id":1,"sectionid":5,"categoryId":1,"dueDate":"2016-09-01"},
			{"id":2,"sectionid":5,"categoryId":2,"dueDate":"2016-09-02"}
		],
		"sections":{"id":5,"expression":"3","schoolCourseTitle":"Art"}
	}`)

	report, err := transcript.Transform(doc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(report.Sections) != 1 || len(report.Sections[0].Assignments) != 2 {
		t.Fatalf("sections = %+v", report.Sections)
	}
	for i, a := range report.Sections[0].Assignments {
		if a.Category != nil {
			t.Errorf("assignment %d category = %+v, want nil", i, a.Category)
		}
	}
}

func TestTransformEmptyDocument(t *testing.T) {
	report, err := transcript.Transform(&document.Document{})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if report.IsDisabled() {
		t.Error("empty document reported as disabled")
	}
	if report.Sections == nil || len(report.Sections) != 0 {
		t.Errorf("sections = %v, want empty", report.Sections)
	}
	if report.Attendances == nil || len(report.Attendances) != 0 {
		t.Errorf("attendances = %v, want empty", report.Attendances)
	}
}

func TestTransformMalformedDates(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{
			"term start",
			`{"reportingTerms":{"id":1,"abbreviation":"S1","startDate":"soon","endDate":"2017-01-01"}}`,
			"startDate",
		},
		{
			"term end",
			`{"reportingTerms":{"id":1,"abbreviation":"S1","startDate":"2016-01-01","endDate":""}}`,
			"endDate",
		},
		{
			"assignment due date",
			`{"assignments":{"id":4,"sectionid":1,"categoryId":1,"dueDate":"31/12/2016"}}`,
			"dueDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := transcript.Transform(decode(t, tt.payload))
			if report != nil {
				t.Errorf("report = %+v, want nil", report)
			}
			if !errors.Is(err, transcript.ErrMalformedDate) {
				t.Fatalf("err = %v, want ErrMalformedDate", err)
			}
			var dateErr *transcript.DateError
			if !errors.As(err, &dateErr) || dateErr.Field != tt.field {
				t.Errorf("err = %#v, want DateError on %s", err, tt.field)
			}
		})
	}
}

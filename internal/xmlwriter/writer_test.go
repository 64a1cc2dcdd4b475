package xmlwriter

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

func sampleReport() *types.Report {
	code := &document.CitizenCode{ID: "3", CodeName: "E"}
	return &types.Report{
		Information: json.RawMessage(`{"id": 55, "firstName": "Ada", "tags": ["a", "b"]}`),
		Sections: []types.Section{
			{
				Section: document.Section{ID: "30", Expression: "1(A)", SchoolCourseTitle: "Advisory"},
				Name:    "Advisory",
			},
			{
				Section: document.Section{ID: "10", Expression: "1(A)", SchoolCourseTitle: "Algebra & Trig"},
				Name:    "Algebra & Trig",
				Teacher: &document.Teacher{ID: "7", LastName: "Ng"},
				Assignments: []types.Assignment{{
					Assignment: document.Assignment{ID: "100", Name: "HW<1>", DueDate: "2016-09-01"},
					Category:   &document.AssignmentCategory{ID: "1", Name: "Homework"},
					Score:      &document.AssignmentScore{AssignmentID: "100", Score: "9"},
					Terms:      []string{"S1", "Q1"},
				}},
				FinalGrades:   []document.FinalGrade{{SectionID: "10", ReportingTermID: "1", Grade: "A"}},
				CitizenGrades: map[string]*document.CitizenCode{"1": code, "2": nil},
			},
		},
		Attendances: []types.AttendanceEntry{
			{Code: "P", Description: "Present", Date: "2016-09-02", Period: "1(A)", Name: "Algebra & Trig"},
		},
	}
}

func TestGenerateReport(t *testing.T) {
	out, err := Generate(sampleReport())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<field name="firstName">Ada</field>`,
		`<field name="id">55</field>`,
		`<field name="tags">[&#34;a&#34;,&#34;b&#34;]</field>`,
		`<section n="1" id="30">`,
		`<section n="2" id="10">`,
		`<name>Algebra &amp; Trig</name>`,
		`<teacher id="7">`,
		`<name>HW&lt;1&gt;</name>`,
		`<category>Homework</category>`,
		`<term>S1</term>`,
		`<finalGrade term="1">`,
		`<grade term="1">E</grade>`,
		`<grade term="2"/>`,
		`<attendance n="1">`,
		`<code>P</code>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %s\n%s", want, got)
		}
	}

	// Advisory has neither assignments nor a teacher.
	advisory := got[strings.Index(got, `<section n="1"`):strings.Index(got, `<section n="2"`)]
	if strings.Contains(advisory, "<assignments") || strings.Contains(advisory, "<teacher") {
		t.Errorf("advisory section rendered missing data:\n%s", advisory)
	}
}

func TestGenerateIsWellFormed(t *testing.T) {
	out, err := Generate(sampleReport())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var doc struct {
		XMLName  xml.Name `xml:"transcript"`
		Sections []struct {
			ID   string `xml:"id,attr"`
			Name string `xml:"name"`
		} `xml:"sections>section"`
		Attendances []struct {
			Name string `xml:"name"`
		} `xml:"attendances>attendance"`
	}
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out)
	}
	if len(doc.Sections) != 2 || doc.Sections[1].Name != "Algebra & Trig" {
		t.Errorf("sections = %+v", doc.Sections)
	}
	if len(doc.Attendances) != 1 || doc.Attendances[0].Name != "Algebra & Trig" {
		t.Errorf("attendances = %+v", doc.Attendances)
	}
}

func TestGenerateDisabledNotice(t *testing.T) {
	report := &types.Report{
		Sections:    []types.Section{},
		Attendances: []types.AttendanceEntry{},
		Disabled:    &types.DisabledNotice{Title: "Closed", Message: "See office."},
	}

	out, err := Generate(report)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got := string(out)

	if !strings.Contains(got, "<title>Closed</title>") || !strings.Contains(got, "<message>See office.</message>") {
		t.Errorf("notice not rendered:\n%s", got)
	}
	if strings.Contains(got, "<sections") || strings.Contains(got, "<information") {
		t.Errorf("disabled report rendered extra elements:\n%s", got)
	}
}

func TestGenerateNilReport(t *testing.T) {
	if _, err := Generate(nil); err == nil {
		t.Error("expected error for nil report")
	}
}

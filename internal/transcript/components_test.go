package transcript_test

import (
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/ginjaninja78/transcript-converter/internal/document"
	"github.com/ginjaninja78/transcript-converter/internal/transcript"
	"github.com/ginjaninja78/transcript-converter/internal/types"
)

func TestGroupByIDLastWins(t *testing.T) {
	type rec struct {
		id int
		v  string
	}
	items := []rec{{1, "a"}, {1, "b"}, {2, "c"}}

	got := transcript.GroupByID(items, func(r rec) string { return strconv.Itoa(r.id) })

	want := map[string]rec{"1": {1, "b"}, "2": {2, "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupByID = %v, want %v", got, want)
	}
}

func TestResolveTermsDuplicateKeepsPosition(t *testing.T) {
	raw := []document.ReportingTerm{
		{ID: "1", Abbreviation: "S1", StartDate: "2016-08-01", EndDate: "2017-01-15"},
		{ID: "2", Abbreviation: "S2", StartDate: "2017-01-16", EndDate: "2017-06-01"},
		{ID: "1", Abbreviation: "Y1", StartDate: "2016-08-01", EndDate: "2017-06-01"},
	}

	terms, err := transcript.ResolveTerms(raw, transcript.NewDateParser(nil))
	if err != nil {
		t.Fatalf("ResolveTerms: %v", err)
	}

	var abbrs []string
	for _, term := range terms {
		abbrs = append(abbrs, term.Abbreviation)
	}
	if want := []string{"Y1", "S2"}; !reflect.DeepEqual(abbrs, want) {
		t.Errorf("terms = %v, want %v", abbrs, want)
	}
}

func TestTermBoundaries(t *testing.T) {
	t0 := time.Date(2016, 8, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2016, 10, 15, 0, 0, 0, 0, time.UTC)
	terms := []types.ReportingTerm{{ID: "1", Abbreviation: "Q1", Start: t0, End: t1}}

	tests := []struct {
		name string
		due  time.Time
		want []string
	}{
		{"at start", t0, []string{}},
		{"one second after start", t0.Add(time.Second), []string{"Q1"}},
		{"inside", t0.Add(24 * time.Hour), []string{"Q1"}},
		{"at end", t1, []string{}},
		{"after end", t1.Add(time.Second), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []document.Assignment{{
				ID:        "1",
				SectionID: "9",
				DueDate:   document.Text(tt.due.Format(time.RFC3339)),
			}}

			grouped, err := transcript.AssembleAssignments(raw, nil, nil, terms, transcript.NewDateParser(nil))
			if err != nil {
				t.Fatalf("AssembleAssignments: %v", err)
			}
			if got := grouped["9"][0].Terms; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("terms = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignmentTermsDeduplicated(t *testing.T) {
	start := time.Date(2016, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)
	terms := []types.ReportingTerm{
		{ID: "1", Abbreviation: "S1", Start: start, End: end},
		{ID: "2", Abbreviation: "Y1", Start: start, End: end},
		{ID: "3", Abbreviation: "S1", Start: start, End: end},
	}
	raw := []document.Assignment{{ID: "1", SectionID: "9", DueDate: "2016-09-01"}}

	grouped, err := transcript.AssembleAssignments(raw, nil, nil, terms, transcript.NewDateParser(nil))
	if err != nil {
		t.Fatalf("AssembleAssignments: %v", err)
	}
	if got, want := grouped["9"][0].Terms, []string{"S1", "Y1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("terms = %v, want %v", got, want)
	}
}

func TestScoresWithoutAssignmentIDNeverMatch(t *testing.T) {
	doc := &document.Document{
		AssignmentScores: document.List[document.AssignmentScore]{{Score: "10"}},
		Assignments:      document.List[document.Assignment]{{ID: "", SectionID: "1"}},
		Sections:         document.List[document.Section]{{ID: "1"}},
	}

	report, err := transcript.Transform(doc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if score := report.Sections[0].Assignments[0].Score; score != nil {
		t.Errorf("score = %+v, want nil", score)
	}
}

func TestSortSections(t *testing.T) {
	section := func(expression, name string) types.Section {
		return types.Section{
			Section: document.Section{Expression: document.Text(expression)},
			Name:    name,
		}
	}

	tests := []struct {
		name string
		in   []types.Section
		want []string
	}{
		{
			"by expression",
			[]types.Section{section("2", "B"), section("1", "Z")},
			[]string{"1/Z", "2/B"},
		},
		{
			"by name on equal expression",
			[]types.Section{section("1", "B"), section("1", "A")},
			[]string{"1/A", "1/B"},
		},
		{
			"string not numeric order",
			[]types.Section{section("2", "A"), section("10", "A")},
			[]string{"10/A", "2/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcript.SortSections(tt.in)
			var got []string
			for _, s := range tt.in {
				got = append(got, s.Expression()+"/"+s.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCitizenship(t *testing.T) {
	grades := []document.CitizenGrade{
		{ReportingTermID: "1", CodeID: "3"},
		{ReportingTermID: "2", CodeID: "404"},
	}
	codes := []document.CitizenCode{{ID: "3", CodeName: "E"}}

	got := transcript.ResolveCitizenship(grades, codes, nil)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got["1"] == nil || got["1"].CodeName != "E" {
		t.Errorf("term 1 = %+v", got["1"])
	}
	if code, ok := got["2"]; !ok || code != nil {
		t.Errorf("term 2 = %+v (present %v), want nil entry", code, ok)
	}

	if empty := transcript.ResolveCitizenship(grades, nil, nil); len(empty) != 0 {
		t.Errorf("without codes = %v, want empty", empty)
	}
}

func TestAssembleAttendance(t *testing.T) {
	sections := []document.Section{{
		ID:                "10",
		Expression:        "1(A)",
		SchoolCourseTitle: "Algebra",
		Enrollments:       document.List[document.Enrollment]{{ID: "1000"}},
	}}
	codes := map[string]document.AttendanceCode{
		"1": {ID: "1", Code: "X", Description: "Present"},
		"2": {ID: "2", Code: "Q", Description: ""},
		"3": {ID: "3", Code: "", Description: "Tardy"},
		"4": {ID: "4", Code: "", Description: "Present"},
	}

	tests := []struct {
		name  string
		event document.Attendance
		opts  transcript.AttendanceOptions
		want  []types.AttendanceEntry
	}{
		{
			"present overrides code",
			document.Attendance{CodeID: "1", Date: "2016-09-02", CCID: "1000"},
			transcript.AttendanceOptions{},
			[]types.AttendanceEntry{{Code: "P", Description: "Present", Date: "2016-09-02", Period: "1(A)", Name: "Algebra"}},
		},
		{
			"present with empty code",
			document.Attendance{CodeID: "4", Date: "2016-09-02", CCID: "1000"},
			transcript.AttendanceOptions{},
			[]types.AttendanceEntry{{Code: "P", Description: "Present", Date: "2016-09-02", Period: "1(A)", Name: "Algebra"}},
		},
		{
			"null description dropped",
			document.Attendance{CodeID: "2", Date: "2016-09-02", CCID: "1000"},
			transcript.AttendanceOptions{},
			[]types.AttendanceEntry{},
		},
		{
			"empty code dropped",
			document.Attendance{CodeID: "3", Date: "2016-09-02", CCID: "1000"},
			transcript.AttendanceOptions{},
			[]types.AttendanceEntry{},
		},
		{
			"unknown code dropped",
			document.Attendance{CodeID: "77", Date: "2016-09-02", CCID: "1000"},
			transcript.AttendanceOptions{},
			[]types.AttendanceEntry{},
		},
		{
			"unknown enrollment skipped",
			document.Attendance{CodeID: "1", Date: "2016-09-02", CCID: "5"},
			transcript.AttendanceOptions{},
			[]types.AttendanceEntry{},
		},
		{
			"unknown enrollment kept",
			document.Attendance{CodeID: "1", Date: "2016-09-02", CCID: "5"},
			transcript.AttendanceOptions{KeepUnmatched: true},
			[]types.AttendanceEntry{{Code: "P", Description: "Present", Date: "2016-09-02"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transcript.AssembleAttendance([]document.Attendance{tt.event}, codes, sections, tt.opts, nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("entries = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatDisabledMessage(t *testing.T) {
	if got := transcript.FormatDisabledMessage("", "Acme"); got != "" {
		t.Errorf("empty message = %q, want empty", got)
	}

	got := transcript.FormatDisabledMessage("Closed for audit.", "Acme")
	want := "Closed for audit.\n\n(以上消息由学校提供，与 Acme 无关。若有疑问，请联系学校。" +
		"\nThe above message is provided by school and is not related with Acme." +
		"Please contact your school directly for any questions.)"
	if got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestDateParserLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	p := transcript.NewDateParser(loc)

	got, ok := p.Parse("2016-09-01")
	if !ok {
		t.Fatal("Parse failed")
	}
	if want := time.Date(2016, 9, 1, 0, 0, 0, 0, loc); !got.Equal(want) {
		t.Errorf("zone-less = %v, want %v", got, want)
	}

	got, ok = p.Parse("2016-09-01T16:00:00.000Z")
	if !ok {
		t.Fatal("Parse RFC 3339 failed")
	}
	if want := time.Date(2016, 9, 1, 16, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("zoned = %v, want %v", got, want)
	}
}

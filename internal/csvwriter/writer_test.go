package csvwriter

import (
	"bytes"
	"testing"

	"github.com/ginjaninja78/transcript-converter/internal/types"
)

func TestWrite(t *testing.T) {
	report := &types.Report{
		Attendances: []types.AttendanceEntry{
			{Code: "P", Description: "Present", Date: "2016-09-02", Period: "1(A)", Name: "Algebra"},
			{Code: "A", Description: "Absent, excused", Date: "2016-09-03", Period: "2(A)", Name: "Biology"},
		},
	}

	tests := []struct {
		name     string
		settings Settings
		want     string
	}{
		{
			"default",
			Settings{},
			"code,description,date,period,name\n" +
				"P,Present,2016-09-02,1(A),Algebra\n" +
				"A,\"Absent, excused\",2016-09-03,2(A),Biology\n",
		},
		{
			"pipe without header",
			Settings{Delimiter: "pipe", OmitHeader: true},
			"P|Present|2016-09-02|1(A)|Algebra\n" +
				"A|Absent, excused|2016-09-03|2(A)|Biology\n",
		},
		{
			"semicolon by name",
			Settings{Delimiter: "semicolon", OmitHeader: true},
			"P;Present;2016-09-02;1(A);Algebra\n" +
				"A;Absent, excused;2016-09-03;2(A);Biology\n",
		},
		{
			"tab with crlf",
			Settings{Delimiter: "tab", OmitHeader: true, UseCRLF: true},
			"P\tPresent\t2016-09-02\t1(A)\tAlgebra\r\n" +
				"A\tAbsent, excused\t2016-09-03\t2(A)\tBiology\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := Write(&buffer, report, tt.settings); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if got := buffer.String(); got != tt.want {
				t.Errorf("output =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestGenerateDisabledReport(t *testing.T) {
	out, err := Generate(&types.Report{Disabled: &types.DisabledNotice{Title: "Closed"}}, Settings{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got, want := string(out), "code,description,date,period,name\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestGenerateNilReport(t *testing.T) {
	if _, err := Generate(nil, Settings{}); err == nil {
		t.Error("expected error for nil report")
	}
}

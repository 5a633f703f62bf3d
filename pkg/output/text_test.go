package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lanhill/grdecl/pkg/parser"
)

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format_Empty(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := NewReport(nil, nil, Metadata{})

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "grdecl Extraction Report") {
		t.Error("Output missing header")
	}
	if !strings.Contains(output, "0 keywords requested") {
		t.Error("Output missing summary")
	}
}

func TestTextFormatter_Format_Results(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"[case.GRDECL]",
		"Dimensions: 2 x 1 x 2 (4 cells)",
		"PORO    4 value(s)",
		"ACTNUM  2 value(s) (unterminated)",
		"PERMX   not found",
		"Missing: PERMX",
		"1 unterminated",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}

	// Values are only listed in verbose mode
	if strings.Contains(output, "0.25 0.3") {
		t.Error("Non-verbose output should not list values")
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "===") {
		t.Error("Quiet output should not contain header")
	}
	if !strings.Contains(output, "grdecl: 3 keywords requested, 2 found, 1 missing, 6 values") {
		t.Errorf("Quiet output = %q", output)
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport()

	var buf bytes.Buffer
	err := f.Format(context.Background(), report, &buf)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"lines: 4-6",
		"lines: 8-EOF",
		"0.25 0.3 0.1 0.2",
		"Files read: 1",
		"Config: grdecl.yaml",
		"Duration: 42ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Verbose output missing %q:\n%s", want, output)
		}
	}
}

func TestTextFormatter_Format_WrapsValues(t *testing.T) {
	values := make([]parser.Value, 10)
	for i := range values {
		values[i] = parser.IntValue(int64(i))
	}
	result := &parser.Result{Source: "a.GRDECL", Entries: []*parser.Entry{
		{Keyword: "SATNUM", Values: values, Found: true, Terminated: true, StartLine: 1, EndLine: 3},
	}}
	report := NewReport([]*parser.Result{result}, []string{"SATNUM"}, Metadata{Sources: []string{"a.GRDECL"}})

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{Verbose: true}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "    0 1 2 3 4 5 6 7\n    8 9\n") {
		t.Errorf("Values not wrapped:\n%s", output)
	}
	if !strings.Contains(output, "Dimensions: unknown") {
		t.Error("Output missing unknown dimensions")
	}
}

func TestTextFormatter_Format_Merged(t *testing.T) {
	result := &parser.Result{Entries: []*parser.Entry{
		{Keyword: "PORO", Values: []parser.Value{parser.FloatValue(0.2)}, Found: true, Terminated: true, StartLine: 2, EndLine: 3, Source: "props.GRDECL"},
	}}
	report := NewReport([]*parser.Result{result}, []string{"PORO"}, Metadata{
		Sources: []string{"grid.GRDECL", "props.GRDECL"},
		Merged:  true,
	})

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{Verbose: true}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "[merged]") {
		t.Error("Output missing merged title")
	}
	if !strings.Contains(output, "from: props.GRDECL") {
		t.Error("Output missing entry source")
	}
}

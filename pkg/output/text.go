package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lanhill/grdecl/pkg/parser"
)

// valuesPerLine is how many values a verbose listing prints per row.
const valuesPerLine = 8

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "grdecl: %s\n", summaryLine(report.Summary))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== grdecl Extraction Report ===")
	fmt.Fprintln(w)

	for _, result := range report.Results {
		if result == nil {
			continue
		}
		f.formatResult(result, report.Metadata.Merged, w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %s\n", summaryLine(report.Summary))
	if len(report.Summary.Missing) > 0 {
		fmt.Fprintf(w, "Missing: %s\n", strings.Join(report.Summary.Missing, ", "))
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Files read: %d\n", report.Summary.Files)
		if report.Metadata.ConfigFile != "" {
			fmt.Fprintf(w, "Config: %s\n", report.Metadata.ConfigFile)
		}
		_, err := fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
		return err
	}

	return nil
}

func (f *TextFormatter) formatResult(result *parser.Result, merged bool, w io.Writer) {
	title := result.Source
	if merged || title == "" {
		title = "merged"
	}
	fmt.Fprintf(w, "[%s]\n", title)

	if result.Dimensions != nil {
		fmt.Fprintf(w, "  Dimensions: %s (%d cells)\n", result.Dimensions, result.Dimensions.Cells())
	} else {
		fmt.Fprintln(w, "  Dimensions: unknown")
	}

	width := 0
	for _, e := range result.Entries {
		width = max(width, len(e.Keyword))
	}

	for _, e := range result.Entries {
		f.formatEntry(e, width, merged, w)
	}
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatEntry(e *parser.Entry, width int, merged bool, w io.Writer) {
	if !e.Found {
		fmt.Fprintf(w, "  %-*s  not found\n", width, e.Keyword)
		return
	}

	status := ""
	if !e.Terminated {
		status = " (unterminated)"
	}
	fmt.Fprintf(w, "  %-*s  %d value(s)%s\n", width, e.Keyword, e.Len(), status)

	if !f.opts.Verbose {
		return
	}

	if merged && e.Source != "" {
		fmt.Fprintf(w, "    from: %s\n", e.Source)
	}
	if e.StartLine > 0 {
		end := "EOF"
		if e.EndLine > 0 {
			end = fmt.Sprint(e.EndLine)
		}
		fmt.Fprintf(w, "    lines: %d-%s\n", e.StartLine, end)
	}
	for i := 0; i < len(e.Values); i += valuesPerLine {
		row := e.Values[i:min(i+valuesPerLine, len(e.Values))]
		parts := make([]string, len(row))
		for j, v := range row {
			parts[j] = v.String()
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(parts, " "))
	}
}

func summaryLine(s Summary) string {
	line := fmt.Sprintf("%d keywords requested, %d found, %d missing, %d values",
		s.Keywords, s.Found, len(s.Missing), s.Values)
	if s.Unterminated > 0 {
		line += fmt.Sprintf(", %d unterminated", s.Unterminated)
	}
	return line
}

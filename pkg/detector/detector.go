// Package detector inventories the keyword sections of GRDECL files.
package detector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lanhill/grdecl/pkg/parser"
)

// DetectionResult holds the sections found in a file.
type DetectionResult struct {
	Sections     []Section          // In order of first appearance
	ScannedLines int                // Number of lines inspected for markers
	Dimensions   *parser.Dimensions // Sniffed grid dimensions, if declared
}

// Section describes the first occurrence of one keyword.
type Section struct {
	Keyword    string
	Line       int  // 1-based marker line
	Values     int  // Number of numeric values in the section
	Terminated bool // False when the section runs to end of file
	Numeric    bool // False when the payload is not numeric (e.g. MAPUNITS)
	Note       string
	Known      *KnownKeyword
}

// Detector finds marker lines and measures their sections.
type Detector struct {
	conv     parser.Conventions
	marker   *regexp.Regexp
	maxLines int
	known    map[string]KnownKeyword
}

// Option configures the Detector.
type Option func(*Detector)

// WithConventions sets the comment, delimiter and terminator conventions.
func WithConventions(conv parser.Conventions) Option {
	return func(d *Detector) {
		d.conv = conv
	}
}

// WithMaxLines limits marker discovery to the first n lines (default: all).
// Sections found are still measured over the whole file.
func WithMaxLines(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.maxLines = n
		}
	}
}

// WithMarkerPattern replaces DefaultMarkerPattern.
func WithMarkerPattern(re *regexp.Regexp) Option {
	return func(d *Detector) {
		if re != nil {
			d.marker = re
		}
	}
}

// New creates a Detector with the default GRDECL conventions.
func New(opts ...Option) *Detector {
	marker, err := compileMarkerPattern(DefaultMarkerPattern)
	if err != nil {
		panic(fmt.Sprintf("detector: invalid default marker pattern: %v", err))
	}

	d := &Detector{
		conv:   parser.DefaultConventions(),
		marker: marker,
		known:  KnownKeywords(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.conv = d.conv.Normalize()
	return d
}

// DetectFromFile reads a file and inventories its sections.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	doc, err := parser.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromDocument(doc), nil
}

// DetectFromLines inventories an in-memory line slice.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	return d.DetectFromDocument(parser.NewDocument(lines...))
}

// DetectFromDocument inventories a document.
func (d *Detector) DetectFromDocument(doc *parser.Document) *DetectionResult {
	result := &DetectionResult{}

	limit := len(doc.Lines)
	if d.maxLines > 0 && d.maxLines < limit {
		limit = d.maxLines
	}
	result.ScannedLines = limit

	// Malformed dimensions are reported on the section itself.
	if dims, err := parser.SniffDimensions(doc, d.conv); err == nil {
		result.Dimensions = dims
	}

	seen := make(map[string]bool)
	for _, raw := range doc.Lines[:limit] {
		line := strings.TrimSpace(raw)
		if line == "" || line == d.conv.Terminator || seen[line] {
			continue
		}
		if d.conv.Comments != "" && strings.HasPrefix(line, d.conv.Comments) {
			continue
		}
		if !d.marker.MatchString(line) {
			continue
		}
		seen[line] = true
		result.Sections = append(result.Sections, d.measure(doc, line))
	}

	return result
}

// measure extracts keyword's section to count its values.
func (d *Detector) measure(doc *parser.Document, keyword string) Section {
	section := Section{Keyword: keyword}
	if k, ok := d.known[keyword]; ok {
		section.Known = &k
	}

	entry, err := parser.ExtractKeyword(doc, keyword, d.conv)
	if err != nil {
		var litErr *parser.LiteralError
		if errors.As(err, &litErr) {
			section.Note = fmt.Sprintf("non-numeric payload at line %d (%q)", litErr.Line, litErr.Token)
		} else {
			section.Note = err.Error()
		}
		section.Line = firstLine(doc, keyword)
		return section
	}

	section.Line = entry.StartLine
	section.Values = entry.Len()
	section.Terminated = entry.Terminated
	section.Numeric = true
	if !entry.Terminated {
		section.Note = "no terminator before end of file"
	}
	return section
}

func firstLine(doc *parser.Document, keyword string) int {
	for i, raw := range doc.Lines {
		if strings.TrimSpace(raw) == keyword {
			return i + 1
		}
	}
	return 0
}

// Keywords returns the numeric section keywords in file order.
func (r *DetectionResult) Keywords() []string {
	var out []string
	for _, s := range r.Sections {
		if s.Numeric {
			out = append(out, s.Keyword)
		}
	}
	return out
}

// HasSections returns true if at least one section was found.
func (r *DetectionResult) HasSections() bool {
	return len(r.Sections) > 0
}

// Section returns the section for keyword, or nil.
func (r *DetectionResult) Section(keyword string) *Section {
	for i := range r.Sections {
		if r.Sections[i].Keyword == keyword {
			return &r.Sections[i]
		}
	}
	return nil
}

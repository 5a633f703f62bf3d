// Package output provides formatting and output generation for extraction results.
package output

import (
	"time"

	"github.com/lanhill/grdecl/pkg/parser"
)

// Report is the complete extraction output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Results holds one result per file, or a single merged result.
	Results []*parser.Result `json:"results" yaml:"results"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Files is the number of files read.
	Files int `json:"files" yaml:"files"`

	// Keywords is the number of distinct keywords requested.
	Keywords int `json:"keywords" yaml:"keywords"`

	// Found is the number of requested keywords present in at least one result.
	Found int `json:"found" yaml:"found"`

	// Missing lists requested keywords found in no result.
	Missing []string `json:"missing" yaml:"missing"`

	// Unterminated counts sections that ran to end of file.
	Unterminated int `json:"unterminated" yaml:"unterminated"`

	// Values is the total number of extracted values, DIMENS excluded.
	Values int `json:"values" yaml:"values"`
}

// Metadata provides context about the extraction run.
type Metadata struct {
	// ConfigFile is the path to the configuration file used, if any.
	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`

	// Sources lists the files that were read.
	Sources []string `json:"sources" yaml:"sources"`

	// Merged is true when Results holds a single merged result.
	Merged bool `json:"merged" yaml:"merged"`

	// AnalyzedAt is when the extraction finished.
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`

	// Duration is how long the extraction took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewReport summarizes results for the requested keywords. A requested DIMENS
// keyword counts like any other; a synthesized DIMENS entry does not.
func NewReport(results []*parser.Result, keywords []string, meta Metadata) *Report {
	report := &Report{
		Results:  results,
		Metadata: meta,
		Summary:  Summary{Files: len(meta.Sources), Missing: []string{}},
	}

	requested := make(map[string]bool, len(keywords))
	var ordered []string
	for _, kw := range keywords {
		if !requested[kw] {
			requested[kw] = true
			ordered = append(ordered, kw)
		}
	}
	report.Summary.Keywords = len(ordered)

	found := make(map[string]bool, len(ordered))
	for _, result := range results {
		if result == nil {
			continue
		}
		for _, e := range result.Entries {
			if !requested[e.Keyword] {
				continue
			}
			if e.Found {
				found[e.Keyword] = true
				if !e.Terminated {
					report.Summary.Unterminated++
				}
			}
			report.Summary.Values += e.Len()
		}
	}

	for _, kw := range ordered {
		if found[kw] {
			report.Summary.Found++
		} else {
			report.Summary.Missing = append(report.Summary.Missing, kw)
		}
	}

	return report
}

// HasMissing returns true if any requested keyword was not found.
func (r *Report) HasMissing() bool {
	return len(r.Summary.Missing) > 0
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/lanhill/grdecl/pkg/config"
	"github.com/lanhill/grdecl/pkg/detector"
	"github.com/lanhill/grdecl/pkg/parser"
)

// KeywordsOptions holds command-line options for the keywords command.
type KeywordsOptions struct {
	Output      string
	MaxLines    int
	ShowAll     bool
	WriteConfig string
	Marker      string
	Comments    string
	Delimiter   string
	Terminator  string
}

// NewKeywordsCommand creates the keywords command.
func NewKeywordsCommand() *cobra.Command {
	opts := &KeywordsOptions{}

	cmd := &cobra.Command{
		Use:   "keywords <grdecl-file>",
		Short: "List the keyword sections in a GRDECL file",
		Long: `Inventory the keyword sections of a GRDECL file.

Every bare upper-case line is treated as a section marker. For each section
the marker line, the number of numeric values and whether a terminator was
found are reported. Sections whose payload is not numeric (MAPUNITS,
GRIDUNIT) are listed with a note.

Use --marker to recognize other keyword spellings, and --comments,
--delimiter and --terminator for files that do not follow the GRDECL
conventions. Optionally generates a starter config file with --write-config;
it records the conventions used.

Example:
  grdecl keywords case.GRDECL
  grdecl keywords --all -o json case.GRDECL
  grdecl keywords --comments '#' --terminator END export.txt
  grdecl keywords --write-config grdecl.yaml case.GRDECL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeywords(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.MaxLines, "max-lines", "n", 0, "Only look for markers in the first n lines (0 = all)")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show descriptions of well-known keywords")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")
	cmd.Flags().StringVar(&opts.Marker, "marker", detector.DefaultMarkerPattern, "Regular expression a marker line must match")
	addConventionFlags(cmd, &opts.Comments, &opts.Delimiter, &opts.Terminator)

	return cmd
}

func runKeywords(cmd *cobra.Command, args []string, opts *KeywordsOptions) error {
	file := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		return fmt.Errorf("grdecl file not found: %s", file)
	}

	conv, err := flagConventions(opts.Comments, opts.Delimiter, opts.Terminator)
	if err != nil {
		return err
	}
	marker, err := regexp.Compile(opts.Marker)
	if err != nil {
		return fmt.Errorf("invalid --marker pattern: %w", err)
	}

	d := detector.New(
		detector.WithConventions(conv),
		detector.WithMarkerPattern(marker),
		detector.WithMaxLines(opts.MaxLines),
	)

	result, err := d.DetectFromFile(ctx, file)
	if err != nil {
		return fmt.Errorf("inventory failed: %w", err)
	}

	w := cmd.OutOrStdout()

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, file, conv, opts.WriteConfig, w); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputKeywordsJSON(result, file, w)
	default:
		return outputKeywordsText(result, file, opts, w)
	}
}

func outputKeywordsText(result *detector.DetectionResult, file string, opts *KeywordsOptions, w io.Writer) error {
	fmt.Fprintln(w, "=== GRDECL Section Inventory ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", file)
	fmt.Fprintf(w, "Lines scanned: %d\n", result.ScannedLines)
	if result.Dimensions != nil {
		fmt.Fprintf(w, "Dimensions: %s (%d cells)\n", result.Dimensions, result.Dimensions.Cells())
	} else {
		fmt.Fprintln(w, "Dimensions: not declared")
	}
	fmt.Fprintln(w)

	if !result.HasSections() {
		fmt.Fprintln(w, "No keyword sections found.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: markers must be alone on their line, upper-case, at most 8 characters.")
		return nil
	}

	fmt.Fprintf(w, "%-10s %7s %9s  %s\n", "KEYWORD", "LINE", "VALUES", "STATUS")
	for _, s := range result.Sections {
		fmt.Fprintf(w, "%-10s %7d %9d  %s\n", s.Keyword, s.Line, s.Values, sectionStatus(s))
		if s.Note != "" {
			fmt.Fprintf(w, "%-10s %7s %9s  note: %s\n", "", "", "", s.Note)
		}
		if opts.ShowAll && s.Known != nil {
			fmt.Fprintf(w, "%-10s %7s %9s  %s\n", "", "", "", s.Known.Description)
		}
	}
	fmt.Fprintln(w)

	keywords := extractableKeywords(result)
	if len(keywords) > 0 {
		fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "keywords:")
		for _, kw := range keywords {
			fmt.Fprintf(w, "  - %s\n", kw)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func sectionStatus(s detector.Section) string {
	switch {
	case !s.Numeric:
		return "non-numeric"
	case !s.Terminated:
		return "unterminated"
	default:
		return "ok"
	}
}

// extractableKeywords returns numeric sections other than the dimension
// markers, which every extraction reports on its own.
func extractableKeywords(result *detector.DetectionResult) []string {
	var out []string
	for _, kw := range result.Keywords() {
		if kw == parser.KeywordDimens || kw == parser.KeywordSpecGrid {
			continue
		}
		out = append(out, kw)
	}
	return out
}

// JSONSection represents a section in JSON output.
type JSONSection struct {
	Keyword     string `json:"keyword"`
	Line        int    `json:"line"`
	Values      int    `json:"values"`
	Terminated  bool   `json:"terminated"`
	Numeric     bool   `json:"numeric"`
	Note        string `json:"note,omitempty"`
	Description string `json:"description,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string             `json:"file"`
	ScannedLines int                `json:"scanned_lines"`
	Dimensions   *parser.Dimensions `json:"dimensions,omitempty"`
	Sections     []JSONSection      `json:"sections"`
}

func outputKeywordsJSON(result *detector.DetectionResult, file string, w io.Writer) error {
	out := JSONOutput{
		File:         file,
		ScannedLines: result.ScannedLines,
		Dimensions:   result.Dimensions,
		Sections:     make([]JSONSection, 0, len(result.Sections)),
	}

	for _, s := range result.Sections {
		js := JSONSection{
			Keyword:    s.Keyword,
			Line:       s.Line,
			Values:     s.Values,
			Terminated: s.Terminated,
			Numeric:    s.Numeric,
			Note:       s.Note,
		}
		if s.Known != nil {
			js.Description = s.Known.Description
		}
		out.Sections = append(out.Sections, js)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file listing the file's
// numeric sections.
func writeStarterConfig(result *detector.DetectionResult, file string, conv parser.Conventions, configPath string, w io.Writer) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	keywords := extractableKeywords(result)
	if len(keywords) == 0 {
		return fmt.Errorf("cannot generate config: no numeric sections found")
	}

	data, err := generateStarterConfig(file, keywords, conv)
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a YAML config for file and keywords read
// with conv.
func generateStarterConfig(file string, keywords []string, conv parser.Conventions) ([]byte, error) {
	absFile := file
	if abs, err := filepath.Abs(file); err == nil {
		absFile = abs
	}

	cfg := config.DefaultConfig()
	cfg.Sources = []string{absFile}
	cfg.Keywords = keywords
	cfg.Comments = conv.Comments
	cfg.Delimiter = conv.Delimiter
	cfg.Terminator = conv.Terminator

	header := fmt.Sprintf(`grdecl configuration
Generated by: grdecl keywords %s
%d numeric section(s) found

Add more files or globs to sources; the first file providing a keyword
wins when merge is true. Set cast to int or float to force a value kind.`,
		filepath.Base(file), len(keywords))

	return config.Encode(cfg, header)
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lanhill/grdecl/pkg/config"
	"github.com/lanhill/grdecl/pkg/detector"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <config-file>",
		Short: "Diagnose common configuration issues",
		Long: `Diagnose common configuration issues.

This command checks your configuration file for common problems:
- Config file syntax and structure
- Source file existence and accessibility
- Conventions that can never match (terminator hidden by the delimiter
  or by the comment prefix)
- Requested keywords against the sections actually present

Example:
  grdecl diagnose grdecl.yaml
  grdecl diagnose -v grdecl.yaml  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runDiagnose(ctx, args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, configPath string, opts *DiagnoseOptions, w io.Writer) error {
	results := []DiagnosticResult{}

	// 1. Check config file existence
	result := checkConfigExists(configPath)
	results = append(results, result)
	if result.Status == "error" {
		finishDiagnostics(results, opts, w)
		return nil
	}

	// 2. Parse config file
	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == "error" {
		finishDiagnostics(results, opts, w)
		return nil
	}

	// 3. Check sources
	sourceResults, files := checkSources(cfg)
	results = append(results, sourceResults...)

	// 4. Check conventions
	results = append(results, checkConventions(cfg))

	// 5. Check requested keywords against the files
	results = append(results, checkKeywords(ctx, cfg, files)...)

	finishDiagnostics(results, opts, w)
	return nil
}

// finishDiagnostics prints the report and sets ExitCode to 1 if any check failed.
func finishDiagnostics(results []DiagnosticResult, opts *DiagnoseOptions, w io.Writer) {
	printDiagnostics(results, opts, w)
	for _, r := range results {
		if r.Status == "error" {
			ExitCode = 1
			return
		}
	}
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'grdecl keywords <grdecl-file> --write-config grdecl.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Config file is empty"
		result.Suggests = []string{
			"Use 'grdecl keywords <grdecl-file> --write-config grdecl.yaml' to generate a starter config",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		switch {
		case strings.EqualFold(filepath.Ext(path), ".hcl"):
			result.Suggests = []string{
				"Check HCL syntax - attributes are written as name = value",
			}
		case strings.Contains(err.Error(), "yaml"):
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Sources: %d", len(cfg.Sources)),
		fmt.Sprintf("Keywords: %s", strings.Join(cfg.Keywords, ", ")),
	}
	return cfg, result
}

// checkSources reports on each source pattern and returns the readable
// files in pattern order.
func checkSources(cfg *config.Config) ([]DiagnosticResult, []string) {
	results := []DiagnosticResult{}
	var files []string

	if len(cfg.Sources) == 0 {
		results = append(results, DiagnosticResult{
			Check:   "Sources",
			Status:  "error",
			Message: "No sources defined",
			Suggests: []string{
				"Add a sources section to your config",
				"Example: sources:\n  - grid/*.GRDECL",
			},
		})
		return results, nil
	}

	for _, source := range cfg.Sources {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Source: %s", source),
		}

		if strings.ContainsAny(source, "*?[") {
			matches, err := filepath.Glob(source)
			if err != nil {
				result.Status = "error"
				result.Message = fmt.Sprintf("Invalid glob pattern: %v", err)
			} else if len(matches) == 0 {
				result.Status = "warning"
				result.Message = "Glob pattern matches no files"
				result.Suggests = []string{
					"Check if the GRDECL files exist at this path",
					"Verify the glob pattern syntax",
				}
			} else {
				result.Status = "ok"
				result.Message = fmt.Sprintf("Matches %d file(s)", len(matches))
				result.Details = append(result.Details, matches...)
				files = append(files, matches...)
			}
		} else {
			info, err := os.Stat(source)
			if os.IsNotExist(err) {
				result.Status = "error"
				result.Message = "File does not exist"
				result.Suggests = []string{
					"Check if the GRDECL file path is correct",
				}
			} else if err != nil {
				result.Status = "error"
				result.Message = fmt.Sprintf("Cannot access file: %v", err)
				result.Suggests = []string{"Check file permissions"}
			} else if info.IsDir() {
				result.Status = "error"
				result.Message = "Path is a directory, not a file"
				result.Suggests = []string{
					"Use a glob pattern to match files in directory",
					"Example: grid/*.GRDECL",
				}
			} else if info.Size() == 0 {
				result.Status = "warning"
				result.Message = "File is empty (0 bytes)"
			} else {
				result.Status = "ok"
				result.Message = fmt.Sprintf("File exists (%d bytes)", info.Size())
				files = append(files, source)
			}
		}

		results = append(results, result)
	}

	if len(files) == 0 {
		results = append(results, DiagnosticResult{
			Check:   "Sources Summary",
			Status:  "error",
			Message: "No accessible GRDECL files found",
			Suggests: []string{
				"Ensure at least one GRDECL file exists and is readable",
			},
		})
	}

	return results, files
}

// checkConventions flags comment, delimiter and terminator settings under
// which a section can never end.
func checkConventions(cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Conventions",
	}
	conv := cfg.Conventions()

	var issues []string
	if conv.Delimiter != "" && strings.Contains(conv.Terminator, conv.Delimiter) {
		issues = append(issues, fmt.Sprintf("terminator %q contains the delimiter %q and is never a whole token", conv.Terminator, conv.Delimiter))
	}
	if conv.Delimiter == "" && strings.ContainsAny(conv.Terminator, " \t") {
		issues = append(issues, fmt.Sprintf("terminator %q contains whitespace and is never a whole token", conv.Terminator))
	}
	if conv.Comments != "" && strings.HasPrefix(conv.Terminator, conv.Comments) {
		issues = append(issues, fmt.Sprintf("terminator %q starts with the comment prefix %q; a bare terminator line is read as a comment", conv.Terminator, conv.Comments))
	}

	if len(issues) > 0 {
		result.Status = "error"
		result.Message = "Sections can never be terminated"
		result.Details = issues
		result.Suggests = []string{"Every section would run to end of file; adjust comments, delimiter or terminator"}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("comments=%q delimiter=%q terminator=%q", conv.Comments, conv.Delimiter, conv.Terminator)
	return result
}

// checkKeywords inventories each file and reports where every requested
// keyword was found.
func checkKeywords(ctx context.Context, cfg *config.Config, files []string) []DiagnosticResult {
	results := []DiagnosticResult{}
	if len(files) == 0 {
		return results
	}

	d := detector.New(detector.WithConventions(cfg.Conventions()))

	type hit struct {
		file    string
		section *detector.Section
	}
	hits := make(map[string][]hit)
	var available []string
	seen := make(map[string]bool)

	for _, file := range files {
		inventory, err := d.DetectFromFile(ctx, file)
		if err != nil {
			results = append(results, DiagnosticResult{
				Check:   fmt.Sprintf("File: %s", file),
				Status:  "error",
				Message: fmt.Sprintf("Cannot read file: %v", err),
			})
			continue
		}

		for _, kw := range cfg.Keywords {
			if s := inventory.Section(kw); s != nil {
				hits[kw] = append(hits[kw], hit{file: file, section: s})
			}
		}
		for _, kw := range inventory.Keywords() {
			if !seen[kw] {
				seen[kw] = true
				available = append(available, kw)
			}
		}
	}

	for _, kw := range cfg.Keywords {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Keyword: %s", kw),
		}

		found := hits[kw]
		if len(found) == 0 {
			result.Status = "error"
			result.Message = "Not found in any source file"
			if len(available) > 0 {
				result.Details = []string{"Available: " + strings.Join(available, ", ")}
			}
			result.Suggests = []string{
				"Keyword markers are case-sensitive and must be alone on their line",
				"Run 'grdecl keywords <grdecl-file>' to list the sections of a file",
			}
			results = append(results, result)
			continue
		}

		var problems []string
		for _, h := range found {
			result.Details = append(result.Details, fmt.Sprintf("%s:%d (%d values)", h.file, h.section.Line, h.section.Values))
			if !h.section.Numeric {
				problems = append(problems, fmt.Sprintf("%s: %s", h.file, h.section.Note))
			} else if !h.section.Terminated {
				problems = append(problems, fmt.Sprintf("%s: no terminator before end of file", h.file))
			}
		}

		first := found[0]
		switch {
		case !first.section.Numeric:
			result.Status = "error"
			result.Message = "Section payload is not numeric"
			result.Details = append(result.Details, problems...)
		case !first.section.Terminated && cfg.Strict:
			result.Status = "error"
			result.Message = "Section is unterminated and strict mode is on"
			result.Details = append(result.Details, problems...)
		case len(problems) > 0:
			result.Status = "warning"
			result.Message = fmt.Sprintf("Found in %d file(s) with %d problem(s)", len(found), len(problems))
			result.Details = append(result.Details, problems...)
		default:
			result.Status = "ok"
			result.Message = fmt.Sprintf("Found in %s (%d values)", first.file, first.section.Values)
		}

		results = append(results, result)
	}

	return results
}

func printDiagnostics(results []DiagnosticResult, opts *DiagnoseOptions, w io.Writer) {
	fmt.Fprintln(w, "=== grdecl Configuration Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running extract.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nConfiguration is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nConfiguration looks good!")
	}
}

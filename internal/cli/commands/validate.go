package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanhill/grdecl/pkg/config"
	"github.com/lanhill/grdecl/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a grdecl configuration file without extracting anything.

Checks:
  - YAML or HCL syntax
  - At least one keyword, none padded with whitespace
  - Non-empty terminator
  - Cast is int, float or empty
  - Dimensions, when given, are three positive integers
  - Source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Sources:    %d pattern(s)\n", len(cfg.Sources))
	fmt.Fprintf(w, "  Keywords:   %d\n", len(cfg.Keywords))
	printConventions(cfg, w)

	fmt.Fprintf(w, "\nKeywords:\n")
	for i, kw := range cfg.Keywords {
		fmt.Fprintf(w, "  %d. %s\n", i+1, kw)
	}

	// Missing sources are warnings only
	files, err := parser.ExpandGlobs(cfg.Sources)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: Error expanding source patterns: %v\n", err)
		return nil
	}

	var found, missing []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
			continue
		}
		found = append(found, f)
	}

	if len(found) == 0 {
		fmt.Fprintf(w, "\nWarning: No files match source patterns\n")
	} else {
		fmt.Fprintf(w, "\nFiles matched: %d\n", len(found))
		for _, f := range found {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
	for _, f := range missing {
		fmt.Fprintf(w, "Warning: %s not found\n", f)
	}

	return nil
}

func printConventions(cfg *config.Config, w io.Writer) {
	fmt.Fprintf(w, "  Comments:   %s\n", describeMarker(cfg.Comments, "disabled"))
	fmt.Fprintf(w, "  Delimiter:  %s\n", describeMarker(cfg.Delimiter, "any whitespace"))
	fmt.Fprintf(w, "  Terminator: %q\n", cfg.Terminator)
	if cast := cfg.ParsedCast(); cast != parser.CastNone {
		fmt.Fprintf(w, "  Cast:       %s\n", cast)
	}
	if dims := cfg.ParsedDimensions(); dims != nil {
		fmt.Fprintf(w, "  Dimensions: %s (fixed)\n", dims)
	}
	if cfg.Strict {
		fmt.Fprintln(w, "  Strict:     yes")
	}
	if cfg.Merge {
		fmt.Fprintln(w, "  Merge:      yes")
	}
}

func describeMarker(s, empty string) string {
	if s == "" {
		return empty
	}
	return fmt.Sprintf("%q", s)
}

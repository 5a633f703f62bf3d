package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lanhill/grdecl/pkg/parser"
)

// DimsOptions holds command-line options for the dims command.
type DimsOptions struct {
	Output     string
	Comments   string
	Delimiter  string
	Terminator string
}

// FileDimensions is the dims result of one file.
type FileDimensions struct {
	File       string             `json:"file"`
	Dimensions *parser.Dimensions `json:"dimensions"`
	Cells      int                `json:"cells,omitempty"`
}

// NewDimsCommand creates the dims command.
func NewDimsCommand() *cobra.Command {
	opts := &DimsOptions{}

	cmd := &cobra.Command{
		Use:   "dims <files...>",
		Short: "Print the grid dimensions declared in GRDECL files",
		Long: `Read the grid dimensions (nx, ny, nz) from the first line after a
SPECGRID or DIMENS marker in each file.

A file without a dimension section is reported as having none. Note that a
bare terminator line anywhere before the dimension line ends the search.

Example:
  grdecl dims grid.GRDECL
  grdecl dims -o json grids/*.GRDECL`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDims(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	addConventionFlags(cmd, &opts.Comments, &opts.Delimiter, &opts.Terminator)

	return cmd
}

// addConventionFlags registers --comments, --delimiter and --terminator with
// the GRDECL defaults.
func addConventionFlags(cmd *cobra.Command, comments, delimiter, terminator *string) {
	cmd.Flags().StringVar(comments, "comments", parser.DefaultComments, "Comment line prefix (empty disables comments)")
	cmd.Flags().StringVar(delimiter, "delimiter", parser.DefaultDelimiter, "Token delimiter (empty splits on any whitespace)")
	cmd.Flags().StringVar(terminator, "terminator", parser.DefaultTerminator, "Section terminator token")
}

// flagConventions checks the convention flags the way config.Validate
// checks a config file.
func flagConventions(comments, delimiter, terminator string) (parser.Conventions, error) {
	if terminator == "" {
		return parser.Conventions{}, errors.New("--terminator must not be empty")
	}
	if strings.TrimSpace(terminator) != terminator {
		return parser.Conventions{}, fmt.Errorf("--terminator %q must not contain surrounding whitespace", terminator)
	}
	return parser.Conventions{
		Comments:   comments,
		Delimiter:  delimiter,
		Terminator: terminator,
	}, nil
}

func runDims(cmd *cobra.Command, args []string, opts *DimsOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	conv, err := flagConventions(opts.Comments, opts.Delimiter, opts.Terminator)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched patterns: %v", args)
	}

	results := make([]FileDimensions, 0, len(files))
	for _, file := range files {
		dims, err := parser.SniffFile(ctx, file, conv)
		if err != nil {
			return fmt.Errorf("reading dimensions: %w", err)
		}
		fd := FileDimensions{File: file, Dimensions: dims}
		if dims != nil {
			fd.Cells = dims.Cells()
		}
		results = append(results, fd)
	}

	w := cmd.OutOrStdout()
	switch opts.Output {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case "text", "":
		outputDimsText(results, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDimsText(results []FileDimensions, w io.Writer) {
	for _, r := range results {
		if r.Dimensions == nil {
			fmt.Fprintf(w, "%s: no dimensions declared\n", r.File)
			continue
		}
		fmt.Fprintf(w, "%s: %s (%d cells)\n", r.File, r.Dimensions, r.Cells)
	}
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lanhill/grdecl/internal/ctxlog"
	"github.com/lanhill/grdecl/pkg/config"
	"github.com/lanhill/grdecl/pkg/output"
	"github.com/lanhill/grdecl/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ExtractOptions holds command-line options for the extract command.
type ExtractOptions struct {
	ConfigFile string
	Keywords   []string
	Comments   string
	Delimiter  string
	Terminator string
	Cast       string
	Dims       string
	Strict     bool
	Merge      bool
	Output     string
	Verbose    bool
	Quiet      bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract keyword sections from GRDECL files",
		Long: `Extract the numeric payload of one or more keywords from GRDECL files.

Keywords and files come from flags and arguments, from a config file
(--config), or both; flags and arguments win. Grid dimensions are read from
the first DIMENS or SPECGRID section unless --dims is given.

Exit codes:
  0 - Every requested keyword was found
  1 - At least one requested keyword was not found
  2 - Configuration or runtime error

Example:
  grdecl extract -k PORO -k PERMX case.GRDECL
  grdecl extract -k ACTNUM --cast int -o json grid.GRDECL
  grdecl extract --merge -k PORO -k PERMX grid.GRDECL props/*.GRDECL
  grdecl extract -c grdecl.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Config file (YAML or HCL)")
	cmd.Flags().StringArrayVarP(&opts.Keywords, "keyword", "k", nil, "Keyword to extract (can be repeated)")
	cmd.Flags().StringVar(&opts.Comments, "comments", parser.DefaultComments, "Comment line prefix (empty disables comments)")
	cmd.Flags().StringVar(&opts.Delimiter, "delimiter", parser.DefaultDelimiter, "Token delimiter (empty splits on any whitespace)")
	cmd.Flags().StringVar(&opts.Terminator, "terminator", parser.DefaultTerminator, "Section terminator token")
	cmd.Flags().StringVar(&opts.Cast, "cast", "", "Convert values to int or float")
	cmd.Flags().StringVar(&opts.Dims, "dims", "", "Grid dimensions nx,ny,nz (skips sniffing)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on sections without a terminator")
	cmd.Flags().BoolVar(&opts.Merge, "merge", false, "Merge all files into one result")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show line spans and values")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	cfg, err := resolveConfig(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(cfg.Sources)
	if err != nil {
		return fmt.Errorf("expanding sources: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched patterns: %v", cfg.Sources)
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	logger.Info("extracting", "files", len(files), "keywords", cfg.Keywords, "merge", cfg.Merge)

	results, err := parser.ExtractFiles(ctx, files, cfg.Request())
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if cfg.Merge {
		results = []*parser.Result{parser.MergeResults(results...)}
	}

	report := output.NewReport(results, cfg.Keywords, output.Metadata{
		ConfigFile: opts.ConfigFile,
		Sources:    files,
		Merged:     cfg.Merge,
		AnalyzedAt: time.Now(),
		Duration:   time.Since(start),
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.HasMissing() {
		logger.Warn("keywords not found", "missing", report.Summary.Missing)
		ExitCode = 1
	}

	return nil
}

// resolveConfig layers flags and arguments over the config file, or over
// the environment defaults when no config file is given, and validates the
// combined result once.
func resolveConfig(ctx context.Context, cmd *cobra.Command, args []string, opts *ExtractOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigFile != "" {
		loaded, err := config.Read(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.FromEnvironment()
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Sources = args
	}
	if len(opts.Keywords) > 0 {
		cfg.Keywords = opts.Keywords
	}
	if flags.Changed("comments") {
		cfg.Comments = opts.Comments
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = opts.Delimiter
	}
	if flags.Changed("terminator") {
		cfg.Terminator = opts.Terminator
	}
	if flags.Changed("cast") {
		cfg.Cast = opts.Cast
	}
	if flags.Changed("dims") {
		dims, err := parseDims(opts.Dims)
		if err != nil {
			return nil, err
		}
		cfg.Dimensions = dims
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.Strict
	}
	if flags.Changed("merge") {
		cfg.Merge = opts.Merge
	}

	if len(cfg.Sources) == 0 {
		return nil, errors.New("no input files: pass files as arguments or set sources in a config file")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return cfg, nil
}

// parseDims parses "nx,ny,nz". Range checks are left to config.Validate.
func parseDims(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	dims := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid --dims %q: want nx,ny,nz", s)
		}
		dims = append(dims, n)
	}
	return dims, nil
}

func createFormatter(opts *ExtractOptions) (output.Formatter, error) {
	return output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
}

// Package cli provides the command-line interface for grdecl.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanhill/grdecl/internal/cli/commands"
	"github.com/lanhill/grdecl/internal/cli/plugins"
	"github.com/lanhill/grdecl/internal/ctxlog"
)

// Execute runs the root command with the process arguments and returns the
// exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes args against a fresh root command and returns the exit code:
// 0 on success, 1 when requested keywords are missing, 2 on error.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	commands.ExitCode = 0

	// The first non-flag argument may name a plugin
	if len(args) > 0 && isPluginCandidate(rootCmd, args[0]) {
		if pluginPath, err := plugins.FindPlugin(args[0]); err == nil {
			return plugins.Execute(pluginPath, args[1:])
		}
	}

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		if len(args) > 0 && isPluginCandidate(rootCmd, args[0]) {
			_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), plugins.FormatNotFoundError(args[0]))
			return 2
		}
		// SilenceErrors keeps Cobra from printing this itself
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// isPluginCandidate reports whether name is neither a flag nor a built-in
// command.
func isPluginCandidate(rootCmd *cobra.Command, name string) bool {
	return name != "" && name[0] != '-' && !isBuiltinCommand(rootCmd, name)
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:   "grdecl",
		Short: "Extract keyword data from Eclipse GRDECL files",
		Long: `grdecl reads line-oriented Eclipse/GRDECL grid and property files and
extracts the numeric payload of named keyword sections.

A section starts at a line holding only its keyword, collects every number
on the following lines (comment lines starting with -- are skipped) and ends
at the first / token. Grid dimensions are read from SPECGRID or DIMENS.

PLUGINS:
  grdecl supports plugins for extended functionality. Plugins are standalone
  binaries named grdecl-<command> that are automatically discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the grdecl binary
    2. ~/.grdecl/plugins/
    3. Anywhere in PATH

  Known plugins:
    plot     Render extracted properties as layer maps`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := ctxlog.New(logLevel, logFormat, cmd.ErrOrStderr())
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewExtractCommand())
	rootCmd.AddCommand(commands.NewDimsCommand())
	rootCmd.AddCommand(commands.NewKeywordsCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

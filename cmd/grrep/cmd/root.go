// Package cmd provides the CLI commands for grrep.
package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/grrep/internal/config"
	"github.com/Aman-CERP/grrep/internal/errors"
	"github.com/Aman-CERP/grrep/internal/logging"
	"github.com/Aman-CERP/grrep/internal/output"
	"github.com/Aman-CERP/grrep/internal/search"
	"github.com/Aman-CERP/grrep/pkg/version"
)

// Exit statuses follow the grep convention.
const (
	exitMatches   = 0
	exitNoMatches = 1
	exitError     = 2
)

// errNoMatches signals a clean run that found nothing.
var errNoMatches = stderrors.New("no matches found")

// rootOptions holds the CLI flags for the search.
type rootOptions struct {
	maxDepth      int
	ignoreCase    bool
	noLineNumbers bool
	format        string
	noIgnore      bool
	debug         bool
}

// NewRootCmd creates the root command for the grrep CLI.
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "grrep <pattern> [path]",
		Short: "Recursive, gitignore-aware line search",
		Long: `grrep searches files line by line for a pattern, starting from a
directory or a single file. Files and directories excluded by any
.gitignore (or .ignore) found along the way are skipped, and excluded
directories are never entered.

Examples:
  grrep "TODO" .
  grrep -i "needle" src/
  grrep -d 1 "main" cmd/grrep
  grrep --format json "hello" notes.txt`,
		Version:       version.Short(),
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	cmd.SetVersionTemplate("grrep version {{.Version}}\n")

	cmd.Flags().IntVarP(&opts.maxDepth, "max-depth", "d", -1,
		"Limit directory recursion depth (-1 unlimited, 0 disables recursion)")
	cmd.Flags().BoolVarP(&opts.ignoreCase, "ignore-case", "i", false,
		"Ignore case when matching")
	cmd.Flags().BoolVarP(&opts.noLineNumbers, "no-line-number", "N", false,
		"Suppress line numbers in output")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text",
		"Output format: text, json")
	cmd.Flags().BoolVar(&opts.noIgnore, "no-ignore", false,
		"Do not respect .gitignore or .ignore files")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"Enable debug logging")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, opts rootOptions) error {
	query := args[0]
	root := "."
	if len(args) > 1 {
		root = args[1]
	}

	cfg, err := config.LoadFromProject(".")
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Output = cmd.ErrOrStderr()
	if opts.debug {
		logCfg.Level = "debug"
	}
	logging.SetupDefault(logCfg)

	// Flags override config only when given explicitly.
	maxDepth := cfg.MaxDepth
	if cmd.Flags().Changed("max-depth") {
		maxDepth = opts.maxDepth
	}
	ignoreCase := cfg.IgnoreCase || opts.ignoreCase
	noIgnore := cfg.NoIgnore || opts.noIgnore

	format := output.Format(opts.format)
	if format != output.FormatText && format != output.FormatJSON {
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"invalid format %q (want text or json)", opts.format)
	}

	report, err := search.Run(cmd.Context(), search.Options{
		Root:        root,
		Query:       query,
		MaxDepth:    maxDepth,
		IgnoreCase:  ignoreCase,
		NoIgnore:    noIgnore,
		MaxFileSize: cfg.MaxFileSize,
	})
	if err != nil {
		return err
	}

	w := output.New(cmd.OutOrStdout(), output.Options{
		Format:          format,
		Color:           cfg.Color,
		ShowLineNumbers: !opts.noLineNumbers,
		Query:           query,
		IgnoreCase:      ignoreCase,
	})
	if err := w.WriteReport(report); err != nil {
		return err
	}
	w.WriteErrors(cmd.ErrOrStderr(), report)

	if report.MatchCount() == 0 {
		return errNoMatches
	}
	return nil
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	cmd := NewRootCmd()
	err := cmd.Execute()
	switch {
	case err == nil:
		return exitMatches
	case stderrors.Is(err, errNoMatches):
		return exitNoMatches
	default:
		fmt.Fprintf(os.Stderr, "grrep: %v\n", err)
		return exitError
	}
}

package search

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/grrep/internal/matcher"
	"github.com/Aman-CERP/grrep/internal/walker"
)

// Run performs one search: walk the root, then scan each discovered file
// in traversal order. Only an invalid root or context cancellation is
// fatal; everything else degrades to report entries.
func Run(ctx context.Context, opts Options) (*Report, error) {
	res, err := walker.Walk(ctx, opts.Root, walker.Options{
		MaxDepth:    opts.MaxDepth,
		MaxFileSize: opts.MaxFileSize,
		NoIgnore:    opts.NoIgnore,
	})
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, w := range res.Warnings {
		report.Errors = append(report.Errors, FileError{
			Path:  w.Path,
			Error: w.Err.Error(),
		})
	}

	rootIsDir := false
	if info, err := os.Stat(opts.Root); err == nil {
		rootIsDir = info.IsDir()
	}

	mopts := matcher.Options{IgnoreCase: opts.IgnoreCase}
	for _, rel := range res.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Walker paths are root-relative for directory roots; join them
		// back under the root as the user gave it so the report shows
		// recognizable paths.
		display := rel
		abs := rel
		if rootIsDir {
			display = filepath.Join(opts.Root, filepath.FromSlash(rel))
			abs = display
		}

		report.FilesScanned++
		matches, err := matcher.SearchFile(abs, opts.Query, mopts)
		if err != nil {
			slog.Debug("skipping unreadable file",
				slog.String("path", display),
				slog.String("error", err.Error()))
			report.Errors = append(report.Errors, FileError{
				Path:  display,
				Error: err.Error(),
			})
			continue
		}
		if len(matches) > 0 {
			report.Matches = append(report.Matches, FileMatch{
				Path:    display,
				Matches: matches,
			})
		}
	}

	return report, nil
}

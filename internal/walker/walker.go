// Package walker discovers the non-ignored files under a root path.
//
// The walk is depth-first with an explicit frame stack: entering a
// directory loads and pushes its ignore rules, leaving it pops them, so
// rule visibility is scoped exactly to the subtree where the ignore file
// was found. Ignored directories are never entered, which means a rule
// excluding a directory excludes its whole contents even if a nested
// ignore file would re-include something inside.
package walker

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/Aman-CERP/grrep/internal/errors"
	"github.com/Aman-CERP/grrep/internal/gitignore"
)

// Options configures a walk.
type Options struct {
	// MaxDepth limits recursion. Negative means unlimited; 0 restricts
	// the walk to the root itself (no descent); 1 yields only the root's
	// immediate children.
	MaxDepth int

	// MaxFileSize skips files larger than this many bytes. 0 = no limit.
	MaxFileSize int64

	// NoIgnore disables ignore-file processing entirely.
	NoIgnore bool

	// Loader supplies rule sets per directory. Nil means a fresh loader.
	Loader *gitignore.Loader
}

// Warning records a directory that could not be fully enumerated.
type Warning struct {
	Path string
	Err  error
}

// Result is the outcome of one walk.
type Result struct {
	// Files holds the discovered file paths in traversal order:
	// root-relative (slash-separated) for directory roots, the path as
	// given for a file root.
	Files []string

	// Warnings lists directories skipped due to read errors.
	Warnings []Warning
}

// frame is one directory on the explicit traversal stack.
type frame struct {
	abs     string
	rel     string // root-relative, "" for the root
	depth   int
	entries []fs.DirEntry
	next    int
	pushed  bool // a rule set was pushed for this directory
}

// Walk traverses root and returns the non-ignored files beneath it.
// A missing root is the only fatal condition besides context
// cancellation; unreadable directories are recorded as warnings and
// skipped.
func Walk(ctx context.Context, root string, opts Options) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoot, err)
	}

	info, err := os.Lstat(absRoot)
	if err != nil {
		return nil, errors.Newf(errors.ErrCodeInvalidRoot,
			"root path does not exist: %s", root)
	}

	loader := opts.Loader
	if loader == nil {
		loader = gitignore.NewLoader()
	}

	if !info.IsDir() {
		return walkFile(root, absRoot, opts, loader)
	}

	res := &Result{}
	var stack gitignore.Stack
	frames := []*frame{newFrame(ctx, absRoot, "", 0, opts, loader, &stack, res)}

	for len(frames) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		top := frames[len(frames)-1]
		if top.next >= len(top.entries) {
			if top.pushed {
				stack.Pop()
			}
			frames = frames[:len(frames)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++

		// Never follow symlinks: avoids traversal cycles.
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		childRel := path.Join(top.rel, entry.Name())
		childDepth := top.depth + 1
		if opts.MaxDepth >= 0 && childDepth > opts.MaxDepth {
			continue
		}

		isDir := entry.IsDir()
		if !opts.NoIgnore && stack.IsIgnored(childRel, isDir) {
			continue
		}

		childAbs := filepath.Join(top.abs, entry.Name())
		if isDir {
			frames = append(frames, newFrame(ctx, childAbs, childRel, childDepth, opts, loader, &stack, res))
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		if opts.MaxFileSize > 0 {
			fi, err := entry.Info()
			if err != nil {
				slog.Debug("skipping unstattable file", slog.String("path", childAbs))
				continue
			}
			if fi.Size() > opts.MaxFileSize {
				slog.Debug("skipping oversized file",
					slog.String("path", childAbs),
					slog.Int64("size", fi.Size()))
				continue
			}
		}

		res.Files = append(res.Files, childRel)
	}

	return res, nil
}

// newFrame enters a directory: loads and pushes its rule set if any,
// then enumerates children. Read failures leave the frame empty and
// record a warning.
func newFrame(ctx context.Context, abs, rel string, depth int, opts Options, loader *gitignore.Loader, stack *gitignore.Stack, res *Result) *frame {
	fr := &frame{abs: abs, rel: rel, depth: depth}

	if !opts.NoIgnore {
		if rs := loader.Load(abs); rs != nil {
			stack.Push(rs, rel)
			fr.pushed = true
		}
	}

	if ctx.Err() != nil {
		return fr
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		slog.Warn("skipping unreadable directory",
			slog.String("path", abs),
			slog.String("error", err.Error()))
		res.Warnings = append(res.Warnings, Warning{
			Path: abs,
			Err:  errors.Wrap(errors.ErrCodeDirRead, err),
		})
		return fr
	}

	fr.entries = entries
	return fr
}

// walkFile handles a root that is itself a file. The file still respects
// the ignore files of its own directory; ancestors further up are not
// consulted.
func walkFile(root, absRoot string, opts Options, loader *gitignore.Loader) (*Result, error) {
	res := &Result{}

	if !opts.NoIgnore {
		dir := filepath.Dir(absRoot)
		if rs := loader.Load(dir); rs != nil {
			if rs.Matches(filepath.Base(absRoot), false) == gitignore.DecisionIgnore {
				return res, nil
			}
		}
	}

	res.Files = append(res.Files, root)
	return res, nil
}

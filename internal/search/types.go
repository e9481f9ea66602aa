// Package search orchestrates the walker and the line matcher into one
// search run and aggregates the results into a report.
package search

import "github.com/Aman-CERP/grrep/internal/matcher"

// Options configures one search run.
type Options struct {
	// Root is the starting path, a directory or a single file.
	Root string
	// Query is the literal pattern to look for in each line.
	Query string
	// MaxDepth limits traversal depth. Negative means unlimited; 0
	// restricts the search to the root itself.
	MaxDepth int
	// IgnoreCase enables case-insensitive matching.
	IgnoreCase bool
	// NoIgnore disables gitignore processing.
	NoIgnore bool
	// MaxFileSize skips files larger than this many bytes. 0 = no limit.
	MaxFileSize int64
}

// FileMatch groups the matching lines of one file.
type FileMatch struct {
	Path    string          `json:"path"`
	Matches []matcher.Match `json:"matches"`
}

// FileError records a file or directory that could not be processed.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report is the aggregated outcome of a search run. Files appear in
// traversal order; per-file errors never discard results from other
// files.
type Report struct {
	Matches      []FileMatch `json:"matches"`
	Errors       []FileError `json:"errors,omitempty"`
	FilesScanned int         `json:"files_scanned"`
}

// MatchCount returns the total number of matching lines.
func (r *Report) MatchCount() int {
	n := 0
	for _, fm := range r.Matches {
		n += len(fm.Matches)
	}
	return n
}

// Package matcher scans files line by line for a search pattern.
package matcher

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Aman-CERP/grrep/internal/errors"
)

// probeSize is how many leading bytes are inspected to classify a file
// as text or binary.
const probeSize = 1024

// maxLineSize bounds the line buffer; longer lines fail the file with a
// read error rather than the whole search.
const maxLineSize = 1024 * 1024

// Options configures line matching.
type Options struct {
	// IgnoreCase enables case-insensitive matching.
	IgnoreCase bool
}

// Match is one matching line. Lines are 1-indexed; a line with several
// occurrences of the pattern still produces exactly one Match.
type Match struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// SearchFile scans the file at path for lines containing query.
// Binary content and read failures yield an ERR_402_FILE_READ error for
// this file only; the caller records it and moves on.
func SearchFile(path, query string, opts Options) ([]Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err)
	}
	defer func() { _ = f.Close() }()

	probe := make([]byte, probeSize)
	n, err := f.Read(probe)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err)
	}
	if isBinary(probe[:n]) {
		return nil, errors.Newf(errors.ErrCodeFileRead, "binary file: %s", path)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err)
	}

	if opts.IgnoreCase {
		query = strings.ToLower(query)
	}

	var matches []Match
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		haystack := line
		if opts.IgnoreCase {
			haystack = strings.ToLower(line)
		}
		if strings.Contains(haystack, query) {
			matches = append(matches, Match{Line: lineNum, Text: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err)
	}

	return matches, nil
}

// isBinary reports whether a content sample looks binary: a NUL byte or
// invalid UTF-8. A multi-byte rune cut off at the end of the sample is
// not treated as invalid.
func isBinary(sample []byte) bool {
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	// Tolerate a multi-byte rune cut off at the probe boundary: retry
	// validation with up to three trailing bytes removed.
	for cut := 0; cut < utf8.UTFMax && cut <= len(sample); cut++ {
		if utf8.Valid(sample[:len(sample)-cut]) {
			return false
		}
	}
	return true
}

package gitignore

import (
	"strings"

	"github.com/Aman-CERP/grrep/internal/errors"
)

// Pattern is one compiled gitignore rule. Immutable after Compile.
type Pattern struct {
	// Raw is the original line text, kept for warnings and debugging.
	Raw string
	// Negated is true for "!pattern" re-include rules.
	Negated bool
	// Anchored is true when the pattern began with "/": it then only
	// matches relative to the directory of its ignore file.
	Anchored bool
	// DirOnly is true when the pattern ended with "/": it then only
	// matches directories.
	DirOnly bool

	segments []segment
}

// segment is one part of a pattern split by "/".
type segment struct {
	value      string // literal or glob text (empty for **)
	glob       bool   // contains *, ?, [...] or \ escapes
	doubleStar bool   // is **
	minConsume int    // for **: minimum path segments consumed
}

// ParseWarning describes a line that was skipped during CompileAll.
type ParseWarning struct {
	Line    int    // 1-indexed line number
	Pattern string // the offending line
	Message string
}

// Compile parses a single gitignore line.
//
// It returns (nil, nil) for blank lines and comments, (nil, err) with an
// ERR_301_PATTERN_SYNTAX error for malformed lines (unterminated character
// class, pattern empty after stripping markers), and a Pattern otherwise.
func Compile(line string) (*Pattern, error) {
	raw := line

	// An escaped trailing space survives trimming; remember it before
	// the trim eats the space and leaves a dangling backslash.
	hasEscapedTrailingSpace := strings.HasSuffix(line, `\ `)

	line = trimTrailingWhitespace(line)

	if line == "" {
		return nil, nil
	}

	// Comment unless the # is escaped.
	if first := strings.TrimLeft(line, " \t"); strings.HasPrefix(first, "#") {
		return nil, nil
	}

	p := &Pattern{Raw: raw}

	// \! escapes the bang; check before ! so escaped bangs stay literal.
	if strings.HasPrefix(line, `\!`) {
		line = line[1:]
	} else if strings.HasPrefix(line, "!") {
		p.Negated = true
		line = line[1:]
	}

	if strings.HasPrefix(line, `\#`) {
		line = line[1:]
	}

	// Restore the escaped trailing space: "file\ " trimmed to "file\"
	// becomes "file " with a literal space.
	if hasEscapedTrailingSpace && strings.HasSuffix(line, `\`) {
		line = strings.TrimSuffix(line, `\`) + " "
	}

	if strings.HasSuffix(line, "/") {
		p.DirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	if strings.HasPrefix(line, "/") {
		p.Anchored = true
		line = strings.TrimPrefix(line, "/")
	}

	segs, err := parseSegments(line)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, errors.Newf(errors.ErrCodePatternSyntax,
			"pattern %q is empty after processing", raw)
	}

	p.segments = segs
	return p, nil
}

// CompileAll compiles every line of an ignore file's content.
// Malformed lines are skipped and reported as warnings; one bad line never
// fails the rest of the file.
func CompileAll(content []byte) ([]*Pattern, []ParseWarning) {
	var patterns []*Pattern
	var warnings []ParseWarning

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		p, err := Compile(line)
		if err != nil {
			warnings = append(warnings, ParseWarning{
				Line:    i + 1,
				Pattern: line,
				Message: err.Error(),
			})
			continue
		}
		if p != nil {
			patterns = append(patterns, p)
		}
	}

	return patterns, warnings
}

// parseSegments splits a pattern by "/" and classifies each part.
// Returns an error for segments with unterminated character classes.
func parseSegments(pattern string) ([]segment, error) {
	parts := strings.Split(pattern, "/")
	segments := make([]segment, 0, len(parts))

	for _, part := range parts {
		// Empty parts come from doubled slashes; drop them.
		if part == "" {
			continue
		}

		seg := segment{value: part}
		if part == "**" {
			seg.doubleStar = true
			seg.value = ""
		} else if strings.ContainsAny(part, `*?[\`) {
			if err := validateSegment(part); err != nil {
				return nil, err
			}
			seg.glob = true
		}

		segments = append(segments, seg)
	}

	// ** consumption rules: a leading ** may consume zero segments
	// (**/foo matches foo); a trailing or interior ** must consume at
	// least one (foo/** matches foo's contents but never foo itself).
	for i := range segments {
		if segments[i].doubleStar && i > 0 {
			segments[i].minConsume = 1
		}
	}

	return segments, nil
}

// validateSegment checks a glob segment for malformed syntax.
// The only hard failure is an unterminated [ character class.
func validateSegment(value string) error {
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++ // escaped character, skip it
		case '[':
			j := i + 1
			if j < len(value) && (value[j] == '!' || value[j] == '^') {
				j++
			}
			// A ] immediately after the opening (or negation) is a
			// literal member, not the closing bracket.
			if j < len(value) && value[j] == ']' {
				j++
			}
			for j < len(value) && value[j] != ']' {
				if value[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(value) {
				return errors.Newf(errors.ErrCodePatternSyntax,
					"unterminated character class in %q", value)
			}
			i = j
		}
	}
	return nil
}

// trimTrailingWhitespace removes unescaped trailing spaces and tabs.
func trimTrailingWhitespace(s string) string {
	return strings.TrimRight(s, " \t")
}

// String returns a debug representation of the pattern.
func (p *Pattern) String() string {
	var flags []string
	if p.Negated {
		flags = append(flags, "negated")
	}
	if p.Anchored {
		flags = append(flags, "anchored")
	}
	if p.DirOnly {
		flags = append(flags, "dirOnly")
	}
	if len(flags) == 0 {
		return p.Raw
	}
	return p.Raw + " [" + strings.Join(flags, ",") + "]"
}

package gitignore

import "strings"

// Match reports whether the pattern matches a candidate path, given as
// slash-separated segments relative to the ignore file's directory.
//
// Anchored patterns must match starting at the first segment. Unanchored
// patterns may match starting at any directory boundary at or below the
// ignore file's directory.
func (p *Pattern) Match(pathSegments []string) bool {
	if len(pathSegments) == 0 {
		return false
	}

	if p.Anchored {
		return matchSegments(p.segments, pathSegments)
	}

	for i := 0; i < len(pathSegments); i++ {
		if matchSegments(p.segments, pathSegments[i:]) {
			return true
		}
	}
	return false
}

// matchSegments matches pattern segments against path segments exactly:
// the whole path must be consumed.
func matchSegments(pattern []segment, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}

	seg := pattern[0]

	if seg.doubleStar {
		for i := seg.minConsume; i <= len(path); i++ {
			if matchSegments(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if !matchSegment(seg, path[0]) {
		return false
	}

	return matchSegments(pattern[1:], path[1:])
}

// matchSegment matches a single pattern segment against a path segment.
func matchSegment(seg segment, pathSeg string) bool {
	if !seg.glob {
		return seg.value == pathSeg
	}
	return matchGlob(seg.value, pathSeg)
}

// matchGlob matches a glob pattern against one path segment.
// * matches any run of characters, ? exactly one, [...] a character class,
// and \ escapes the next character. Neither wildcard crosses a / because
// segments never contain one.
//
// Uses the classic two-pointer algorithm with single-star backtracking,
// so matching is linear for the common patterns.
func matchGlob(pattern, s string) bool {
	var pi, si int
	starPi, starSi := -1, 0

	for si < len(s) {
		if pi < len(pattern) && pattern[pi] == '*' {
			starPi, starSi = pi, si
			pi++
			continue
		}
		if pi < len(pattern) {
			if np, ok := matchOne(pattern, pi, s[si]); ok {
				pi = np
				si++
				continue
			}
		}
		if starPi >= 0 {
			starSi++
			pi, si = starPi+1, starSi
			continue
		}
		return false
	}

	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

// matchOne matches the single pattern element at pi against byte c.
// On success it returns the index of the next pattern element.
func matchOne(pattern string, pi int, c byte) (int, bool) {
	switch pattern[pi] {
	case '?':
		return pi + 1, true
	case '[':
		return matchClass(pattern, pi, c)
	case '\\':
		if pi+1 < len(pattern) {
			return pi + 2, pattern[pi+1] == c
		}
		return pi + 1, c == '\\'
	default:
		return pi + 1, pattern[pi] == c
	}
}

// matchClass matches a [...] character class starting at pi against c.
// Supports ranges (a-z) and negation with a leading ! or ^. The class is
// guaranteed terminated by compile-time validation.
func matchClass(pattern string, pi int, c byte) (int, bool) {
	j := pi + 1
	negated := false
	if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
		negated = true
		j++
	}

	matched := false
	first := true
	for j < len(pattern) && (pattern[j] != ']' || first) {
		first = false

		lo := pattern[j]
		if lo == '\\' && j+1 < len(pattern) {
			j++
			lo = pattern[j]
		}

		if j+2 < len(pattern) && pattern[j+1] == '-' && pattern[j+2] != ']' {
			hi := pattern[j+2]
			if lo <= c && c <= hi {
				matched = true
			}
			j += 3
			continue
		}

		if lo == c {
			matched = true
		}
		j++
	}

	if j >= len(pattern) {
		// Unterminated class; treat as no match. Compile rejects these,
		// so this only guards hand-built patterns.
		return len(pattern), false
	}

	return j + 1, matched != negated
}

// splitPath splits a slash-separated path into segments, dropping empties
// from leading, trailing, or doubled slashes.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

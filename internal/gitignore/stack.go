package gitignore

import "strings"

// Stack tracks the RuleSets active for the subtree currently being
// walked, ordered outermost to innermost. The walker pushes a frame when
// it enters a directory holding ignore files and pops it when traversal
// backtracks past that directory, so at any moment the stack contains
// exactly the rule sets whose directory is an ancestor-or-self of the
// current one.
//
// Stack is not safe for concurrent use; it is owned by a single walk.
type Stack struct {
	frames []stackFrame
}

type stackFrame struct {
	rs *RuleSet
	// prefix is the rule set directory relative to the walk root,
	// slash-separated, "" for the root itself.
	prefix string
}

// Push adds a rule set scoped to the given root-relative prefix.
func (s *Stack) Push(rs *RuleSet, prefix string) {
	s.frames = append(s.frames, stackFrame{rs: rs, prefix: prefix})
}

// Pop removes the innermost rule set.
func (s *Stack) Pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Len returns the number of active rule sets.
func (s *Stack) Len() int {
	return len(s.frames)
}

// IsIgnored decides ignore status for a candidate path, given relative to
// the walk root. Rule sets are consulted innermost first; the first
// definite verdict wins, which lets a nested ignore file override an
// ancestor's rule. With no verdict the path is not ignored.
func (s *Stack) IsIgnored(rel string, isDir bool) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		fr := s.frames[i]

		sub := rel
		if fr.prefix != "" {
			if !strings.HasPrefix(rel, fr.prefix+"/") {
				continue
			}
			sub = rel[len(fr.prefix)+1:]
		}

		switch fr.rs.Matches(sub, isDir) {
		case DecisionIgnore:
			return true
		case DecisionInclude:
			return false
		}
	}
	return false
}

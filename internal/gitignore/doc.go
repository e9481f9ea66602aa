// Package gitignore implements the gitignore pattern syntax as documented
// at https://git-scm.com/docs/gitignore and the machinery to apply it
// during a directory walk.
//
// The package has three layers:
//
//   - Compile turns one gitignore line into a Pattern: a sequence of path
//     segments plus negation, anchoring, and directory-only flags.
//   - RuleSet holds the compiled patterns of one directory's ignore files
//     (.gitignore, then .ignore) and answers Matches for candidate paths
//     relative to that directory. Loader caches RuleSets per directory.
//   - Stack tracks the RuleSets active for the subtree currently being
//     walked and answers IsIgnored with innermost-first precedence.
//
// Within a RuleSet the last matching pattern wins; across the stack the
// nearest ancestor with a definite verdict wins.
package gitignore

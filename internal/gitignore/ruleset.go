package gitignore

import (
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ignoreFileNames lists the ignore files read per directory, in load
// order. Patterns from later files are appended, so on conflict the
// .ignore file overrides .gitignore.
var ignoreFileNames = []string{".gitignore", ".ignore"}

// rulesetCacheSize bounds the Loader's RuleSet cache so repeated walks in
// a long-lived process cannot grow memory without limit.
const rulesetCacheSize = 1000

// Decision is the verdict of a RuleSet for a candidate path.
type Decision int

const (
	// DecisionNone means no pattern matched; defer to outer rule sets.
	DecisionNone Decision = iota
	// DecisionIgnore means the last matching pattern excludes the path.
	DecisionIgnore
	// DecisionInclude means the last matching pattern was a negation.
	DecisionInclude
)

// RuleSet holds the compiled patterns of one directory's ignore files.
type RuleSet struct {
	// Dir is the absolute directory the rules were loaded from.
	Dir string

	patterns []*Pattern
}

// NewRuleSet builds a RuleSet from already-compiled patterns.
// Used by tests and by callers that source patterns outside ignore files.
func NewRuleSet(dir string, patterns []*Pattern) *RuleSet {
	return &RuleSet{Dir: dir, patterns: patterns}
}

// Matches evaluates the rule set for a candidate path given relative to
// the rule set's directory (slash-separated). Patterns are scanned in
// file order in a single pass; the last match wins. Directory-only
// patterns are skipped for non-directories.
func (rs *RuleSet) Matches(rel string, isDir bool) Decision {
	segs := splitPath(rel)
	if len(segs) == 0 {
		return DecisionNone
	}

	verdict := DecisionNone
	for _, p := range rs.patterns {
		if p.DirOnly && !isDir {
			continue
		}
		if p.Match(segs) {
			if p.Negated {
				verdict = DecisionInclude
			} else {
				verdict = DecisionIgnore
			}
		}
	}
	return verdict
}

// Len returns the number of compiled patterns.
func (rs *RuleSet) Len() int {
	return len(rs.patterns)
}

// Loader reads and caches RuleSets by directory.
type Loader struct {
	cache *lru.Cache[string, *RuleSet]
}

// NewLoader creates a Loader with an LRU-bounded cache.
func NewLoader() *Loader {
	// Size is fixed; lru.New only fails for non-positive sizes.
	cache, err := lru.New[string, *RuleSet](rulesetCacheSize)
	if err != nil {
		panic(err)
	}
	return &Loader{cache: cache}
}

// Load returns the RuleSet for a directory, or nil when the directory has
// no ignore files. Unreadable ignore files and malformed lines are logged
// and skipped, never returned as errors, so traversal can continue.
// Results (including nil) are cached per directory.
func (l *Loader) Load(dir string) *RuleSet {
	if rs, ok := l.cache.Get(dir); ok {
		return rs
	}

	rs := loadRuleSet(dir)
	l.cache.Add(dir, rs)
	return rs
}

// Invalidate clears the cache. Call when ignore files may have changed
// between walks.
func (l *Loader) Invalidate() {
	l.cache.Purge()
}

// loadRuleSet reads the ignore files in dir and compiles their patterns.
func loadRuleSet(dir string) *RuleSet {
	var patterns []*Pattern

	for _, name := range ignoreFileNames {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("skipping unreadable ignore file",
					slog.String("path", path),
					slog.String("error", err.Error()))
			}
			continue
		}

		compiled, warnings := CompileAll(content)
		for _, w := range warnings {
			slog.Warn("skipping malformed ignore pattern",
				slog.String("path", path),
				slog.Int("line", w.Line),
				slog.String("pattern", w.Pattern),
				slog.String("reason", w.Message))
		}
		patterns = append(patterns, compiled...)
	}

	if len(patterns) == 0 {
		return nil
	}
	return &RuleSet{Dir: dir, patterns: patterns}
}

// Package match compiles user-supplied exclusion globs into a matcher
// over repository-relative paths.
package match

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// InvalidPatternError reports a pattern that could not be compiled as a
// glob. Misconfiguration, never retried.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// RuleSet holds compiled exclusion globs. Compiled once, reused for
// every path test.
type RuleSet struct {
	patterns []string
	globs    []glob.Glob
}

// Normalize expands comma-separated pattern arguments into individual
// patterns and drops empty entries. Splitting happens before glob
// interpretation, so a literal comma cannot appear inside one pattern.
func Normalize(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		for _, part := range strings.Split(p, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Compile normalizes and compiles the given patterns. '*' matches within
// a path segment, '**' matches across segments; matching is
// case-sensitive with '/' as the separator.
func Compile(patterns []string) (*RuleSet, error) {
	normalized := Normalize(patterns)
	rs := &RuleSet{patterns: normalized}
	for _, p := range normalized {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, &InvalidPatternError{Pattern: p, Err: err}
		}
		rs.globs = append(rs.globs, g)
	}
	return rs, nil
}

// Patterns returns the normalized pattern list, mainly for logging.
func (rs *RuleSet) Patterns() []string {
	return rs.patterns
}

// Matches reports whether any compiled pattern matches the path.
func (rs *RuleSet) Matches(path string) bool {
	for _, g := range rs.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

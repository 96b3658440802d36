package wsync

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ParseIgnorePatterns turns the raw lines of a .cvsignore file into an
// ordered pattern list. Blank lines are skipped. A line consisting solely
// of "!" clears every pattern accumulated so far within lines. The
// synchronizer parses a folder's .cvsignore on its own and appends the
// result to the default list, so a "!" there does not clear the defaults.
func ParseIgnorePatterns(lines []string) []string {
	var patterns []string
	for _, line := range lines {
		if line == "" {
			continue
		}
		if line == "!" {
			patterns = patterns[:0]
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// ValidateIgnorePattern ensures a pattern is syntactically valid glob
// syntax, matching it against a throwaway path so that bad patterns are
// caught at the point they're added rather than at match time.
func ValidateIgnorePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty pattern")
	}
	if _, err := doublestar.Match(pattern, "a"); err != nil {
		return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
	}
	return nil
}

// MatchesIgnored reports whether leafName matches any pattern in an
// ordered CVS-ignore pattern list. Patterns are matched against the child's
// leaf name only (CVS ignore patterns are never path-qualified, unlike
// VCS-style .gitignore patterns), and later patterns take precedence over
// earlier ones only insofar as they're tried in order; CVS ignore lists
// carry no negation within a single list (negation is list-level, via the
// "!" reset handled by ParseIgnorePatterns).
func MatchesIgnored(patterns []string, leafName string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, leafName); err == nil && matched {
			return true
		}
	}
	return false
}

// AppendUniquePattern appends pattern to patterns if it isn't already
// present, returning the (possibly unchanged) slice and whether an append
// occurred.
func AppendUniquePattern(patterns []string, pattern string) ([]string, bool) {
	for _, existing := range patterns {
		if existing == pattern {
			return patterns, false
		}
	}
	return append(patterns, pattern), true
}

// DefaultProjectIgnorePatterns are the patterns every project starts with
// before its own .cvsignore is consulted; this mirrors classic CVS's
// built-in default ignore list for the handful of names that are almost
// never meant to be tracked.
var DefaultProjectIgnorePatterns = []string{
	"RCS", "SCCS", "CVS", "CVS.adm",
	".#*", "*~", "*.bak", "*.orig", "*.rej", ".del-*",
	"*.a", "*.olb", "*.o", "*.obj", "*.so", "*.exe",
	"*.Z", "*.elc", "*.ln", "core",
}

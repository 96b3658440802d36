package wsync

import "testing"

// TestParseIgnorePatterns tests blank-line skipping and the "!" list reset.
func TestParseIgnorePatterns(t *testing.T) {
	tests := []struct {
		lines    []string
		expected []string
	}{
		{nil, nil},
		{[]string{"", "*.o", "", "*.bak"}, []string{"*.o", "*.bak"}},
		{[]string{"*.o", "!", "*.bak"}, []string{"*.bak"}},
		{[]string{"*.o", "*.bak", "!"}, nil},
		{[]string{"!", "*.o"}, []string{"*.o"}},
	}
	for i, test := range tests {
		got := ParseIgnorePatterns(test.lines)
		if !stringSlicesEqual(got, test.expected) {
			t.Errorf("test index %d: got %v, expected %v", i, got, test.expected)
		}
	}
}

// TestValidateIgnorePattern tests that empty and syntactically broken
// patterns are rejected while ordinary glob patterns are accepted.
func TestValidateIgnorePattern(t *testing.T) {
	tests := []struct {
		pattern string
		valid   bool
	}{
		{"", false},
		{"*.o", true},
		{"*.bak", true},
		{"[", false},
	}
	for i, test := range tests {
		err := ValidateIgnorePattern(test.pattern)
		if (err == nil) != test.valid {
			t.Errorf("test index %d: pattern %q validity = %v, expected %v (err: %v)", i, test.pattern, err == nil, test.valid, err)
		}
	}
}

// TestMatchesIgnored tests that patterns are matched against the leaf name
// only.
func TestMatchesIgnored(t *testing.T) {
	patterns := []string{"*.o", "core", "CVS"}
	tests := []struct {
		leafName string
		expected bool
	}{
		{"main.o", true},
		{"core", true},
		{"CVS", true},
		{"main.go", false},
		{"CVS2", false},
	}
	for i, test := range tests {
		if got := MatchesIgnored(patterns, test.leafName); got != test.expected {
			t.Errorf("test index %d: MatchesIgnored(_, %q) = %v, expected %v", i, test.leafName, got, test.expected)
		}
	}
}

// TestAppendUniquePattern tests that duplicate patterns are rejected while
// new ones are appended.
func TestAppendUniquePattern(t *testing.T) {
	patterns := []string{"*.o"}

	updated, appended := AppendUniquePattern(patterns, "*.o")
	if appended {
		t.Error("expected duplicate pattern to not be appended")
	}
	if len(updated) != 1 {
		t.Errorf("expected unchanged slice, got %v", updated)
	}

	updated, appended = AppendUniquePattern(patterns, "*.bak")
	if !appended {
		t.Error("expected new pattern to be appended")
	}
	if !stringSlicesEqual(updated, []string{"*.o", "*.bak"}) {
		t.Errorf("unexpected result: %v", updated)
	}
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

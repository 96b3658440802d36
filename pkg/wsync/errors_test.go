package wsync

import (
	"errors"
	"testing"
)

// TestIoErrorUnwrap tests that errors.Is/As can reach the wrapped cause
// through IoError.
func TestIoErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	wrapped := &IoError{Path: "CVS/Entries", Err: cause}

	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to see through IoError to its cause")
	}
	if wrapped.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}

// TestCommittingSyncInfoFailedUnwrap tests that the multi-error aggregate
// exposes each underlying error via errors.Is.
func TestCommittingSyncInfoFailedUnwrap(t *testing.T) {
	first := errors.New("folder a failed")
	second := errors.New("folder b failed")
	aggregate := &CommittingSyncInfoFailed{Errors: []error{first, second}}

	if !errors.Is(aggregate, first) {
		t.Error("expected errors.Is to find the first aggregated error")
	}
	if !errors.Is(aggregate, second) {
		t.Error("expected errors.Is to find the second aggregated error")
	}
}

// TestErrorMessagesMentionRelevantPaths tests that the path-carrying error
// types surface their path in the rendered message, which diagnostics rely
// on.
func TestErrorMessagesMentionRelevantPaths(t *testing.T) {
	tests := []struct {
		err      error
		contains string
	}{
		{&WorkspaceLocked{Resource: "proj/a.go"}, "proj/a.go"},
		{&InvalidScope{Requested: "b", Active: "a"}, "b"},
		{&LinkedFolderNotWritable{Folder: "linked-dir"}, "linked-dir"},
	}
	for i, test := range tests {
		if !containsSubstring(test.err.Error(), test.contains) {
			t.Errorf("test index %d: expected error message %q to contain %q", i, test.err.Error(), test.contains)
		}
	}
}

func containsSubstring(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

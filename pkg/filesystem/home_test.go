package filesystem

import "testing"

// TestHomeDirectoryReturnsNonEmptyPath tests that HomeDirectory resolves to
// some path in the test environment.
func TestHomeDirectoryReturnsNonEmptyPath(t *testing.T) {
	home, err := HomeDirectory()
	if err != nil {
		t.Fatalf("unable to determine home directory: %v", err)
	}
	if home == "" {
		t.Error("expected a non-empty home directory")
	}
}

package wsmeta

import (
	"strings"
	"testing"
)

// TestVersionStringMatchesComponents tests that Version renders the three
// numeric components in dotted form.
func TestVersionStringMatchesComponents(t *testing.T) {
	want := "0.1.0"
	if Version != want {
		t.Errorf("got version %q, want %q", Version, want)
	}
}

// TestVersionTagIsNotEmptyAndDistinctFromVersion tests that VersionTag is a
// stable, non-empty marker distinct from the dotted Version string.
func TestVersionTagIsNotEmptyAndDistinctFromVersion(t *testing.T) {
	if VersionTag == "" {
		t.Fatal("expected a non-empty version tag")
	}
	if strings.Contains(VersionTag, ".") {
		t.Errorf("expected version tag %q not to look like a dotted version", VersionTag)
	}
}

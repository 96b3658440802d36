//go:build !windows
// +build !windows

package filesystem

import "testing"

// TestSameDeviceTrueForSameTree tests that two paths under the same
// temporary directory report the same device.
func TestSameDeviceTrueForSameTree(t *testing.T) {
	root := t.TempDir()

	same, err := SameDevice(root, root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !same {
		t.Error("expected a path compared against itself to report the same device")
	}
}

// TestSameDeviceDefaultsTrueOnStatFailure tests that a stat failure (here,
// a nonexistent candidate path) defaults to "same device" (true) rather
// than false, per the conservative not-linked default, and still returns
// the error.
func TestSameDeviceDefaultsTrueOnStatFailure(t *testing.T) {
	root := t.TempDir()

	same, err := SameDevice(root, root+"/does-not-exist")
	if err == nil {
		t.Fatal("expected an error for a nonexistent candidate path")
	}
	if !same {
		t.Error("expected SameDevice to default to true (same device) on stat failure")
	}
}

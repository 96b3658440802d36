//go:build !windows
// +build !windows

package filesystem

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DeviceID returns the identifier of the device on which path resides. It is
// the building block used to detect linked (symlinked-in, bind-mounted, or
// otherwise cross-device) folders: two paths that resolve to different
// device identifiers cannot belong to the same on-disk tree that the
// workspace root was checked out into.
func DeviceID(path string) (uint64, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return 0, errors.Wrap(err, "unable to stat path")
	}
	return uint64(stat.Dev), nil
}

// SameDevice reports whether candidate resides on the same device as root,
// which this module takes as its definition of "not a linked folder" (see
// the Open Question decision recorded in DESIGN.md). If either path cannot
// be stat'd, it conservatively reports true (same device, i.e. not linked)
// along with the error, so that a transient stat failure never causes a
// folder to be silently treated as linked and skipped.
func SameDevice(root, candidate string) (bool, error) {
	rootDevice, err := DeviceID(root)
	if err != nil {
		return true, errors.Wrap(err, "unable to determine root device")
	}
	candidateDevice, err := DeviceID(candidate)
	if err != nil {
		return true, errors.Wrap(err, "unable to determine candidate device")
	}
	return rootDevice == candidateDevice, nil
}

// Package filesystem provides the small set of filesystem primitives the
// disk store (pkg/wsync) needs: atomic file writes, Unicode-aware name
// normalization, linked-folder (different-device) detection, and home
// directory resolution.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// atomicWriteTemporaryNamePrefix is the file name prefix used for the
	// intermediate temporary file in an atomic write.
	atomicWriteTemporaryNamePrefix = ".wsync-atomic-write"
)

// WriteFileAtomic writes data to path in an atomic fashion: it writes to an
// intermediate temporary file in the same directory as path, sets
// permissions, and renames the temporary file into place. On POSIX
// filesystems a rename within the same directory is atomic, so readers never
// observe a partially-written control file.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode) error {
	directory := filepath.Dir(path)

	temporary, err := os.CreateTemp(directory, atomicWriteTemporaryNamePrefix)
	if err != nil {
		return errors.Wrap(err, "unable to create temporary file")
	}
	temporaryName := temporary.Name()

	if _, err = temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to write data to temporary file")
	}

	if err = temporary.Close(); err != nil {
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to close temporary file")
	}

	if err = os.Chmod(temporaryName, permissions); err != nil {
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to set temporary file permissions")
	}

	if err = os.Rename(temporaryName, path); err != nil {
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to rename temporary file into place")
	}

	return nil
}

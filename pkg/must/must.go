// Package must provides helpers for deferred cleanup operations whose errors
// can't sensibly propagate (e.g. inside a defer) but shouldn't be silently
// swallowed either.
package must

import (
	"io"
	"os"

	"github.com/cvsmeta/wsync/pkg/logging"
)

// Close closes c, logging a warning if the close fails.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("Unable to close: %v", err)
	}
}

// OSRemove removes the file or (empty) directory at path, logging a warning
// if the removal fails for a reason other than the path already being gone.
func OSRemove(path string, logger *logging.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warnf("Unable to remove %q: %v", path, err)
	}
}

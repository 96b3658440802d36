package filesystem

import (
	"os"

	"github.com/pkg/errors"
)

// HomeDirectory returns the current user's home directory.
func HomeDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to determine home directory")
	}
	return home, nil
}

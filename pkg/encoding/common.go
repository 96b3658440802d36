// Package encoding provides small atomic load/save helpers shared by every
// on-disk codec in the module.
package encoding

import (
	"fmt"
	"os"

	"github.com/cvsmeta/wsync/pkg/filesystem"
)

// LoadAndUnmarshal reads the file at path and invokes unmarshal (usually a
// closure) to decode its contents. A missing file is reported as-is (via
// os.IsNotExist) so that callers can distinguish "absent" from "corrupt".
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("unable to load file: %w", err)
	}
	if err := unmarshal(data); err != nil {
		return fmt.Errorf("unable to unmarshal data: %w", err)
	}
	return nil
}

// MarshalAndSave invokes marshal (usually a closure) and atomically writes
// the result to path with user-only read/write permissions.
func MarshalAndSave(path string, marshal func() ([]byte, error)) error {
	data, err := marshal()
	if err != nil {
		return fmt.Errorf("unable to marshal message: %w", err)
	}
	if err := filesystem.WriteFileAtomic(path, data, 0600); err != nil {
		return fmt.Errorf("unable to write message data: %w", err)
	}
	return nil
}

package wsync

import (
	"os"
	"path/filepath"

	"github.com/cvsmeta/wsync/pkg/encoding"
)

// projectConfigFileName is the project-level configuration file read from
// the workspace root. It supplements spec.md's per-folder .cvsignore with
// a project-wide list of default ignore patterns, the way a real checkout
// might centralize ignore defaults instead of repeating them folder by
// folder.
const projectConfigFileName = ".wsync.yml"

// ProjectConfig is the decoded form of a project's .wsync.yml.
type ProjectConfig struct {
	// IgnoreDefaults are additional ignore patterns applied to every
	// folder in the project, on top of the built-in CVS default list.
	IgnoreDefaults []string `yaml:"ignoreDefaults"`
}

// LoadProjectConfig reads root's .wsync.yml, if present. A missing file is
// not an error; it yields an empty configuration.
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	config := &ProjectConfig{}
	err := encoding.LoadAndUnmarshalYAML(filepath.Join(root, projectConfigFileName), config)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return nil, err
	}
	return config, nil
}

// DefaultIgnorePatterns returns the full set of patterns that apply to
// every folder before that folder's own .cvsignore is consulted: the
// built-in CVS default list plus any project-level additions. A nil
// receiver yields just the built-in list.
func (c *ProjectConfig) DefaultIgnorePatterns() []string {
	defaults := append([]string(nil), DefaultProjectIgnorePatterns...)
	if c == nil {
		return defaults
	}
	return append(defaults, c.IgnoreDefaults...)
}

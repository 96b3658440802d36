// Package wsmeta holds module-wide identifying metadata: the version
// numbers embedded in control files and reported by the CLI.
package wsmeta

import "fmt"

const (
	// VersionMajor is the major version number.
	VersionMajor = 0
	// VersionMinor is the minor version number.
	VersionMinor = 1
	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// VersionTag is a short, undotted format tag for this module. The sync
// record codec does not write it into control files.
const VersionTag = "wsync1"

// Version is the human-readable version string.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

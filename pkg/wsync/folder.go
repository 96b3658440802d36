package wsync

import "strings"

// TagKind classifies the form a CVS/Tag line takes.
type TagKind uint8

const (
	// TagKindNone indicates that no tag is set (no CVS/Tag file).
	TagKindNone TagKind = iota
	// TagKindBranchOrVersion indicates a "T<tag>" line: a sticky branch or
	// version tag.
	TagKindBranchOrVersion
	// TagKindBranch indicates an "N<branch>" line: a sticky branch tag
	// recorded before the branch itself exists in the repository.
	TagKindBranch
	// TagKindDate indicates a "D<date>" line: a sticky date.
	TagKindDate
)

// Tag is the decoded form of a CVS/Tag file.
type Tag struct {
	Kind  TagKind
	Value string
}

// DecodeTag parses a single CVS/Tag line ("T<tag>", "N<branch>", or
// "D<date>"). An empty line decodes to TagKindNone.
func DecodeTag(line string) (Tag, error) {
	if line == "" {
		return Tag{Kind: TagKindNone}, nil
	}
	switch line[0] {
	case 'T':
		return Tag{Kind: TagKindBranchOrVersion, Value: line[1:]}, nil
	case 'N':
		return Tag{Kind: TagKindBranch, Value: line[1:]}, nil
	case 'D':
		return Tag{Kind: TagKindDate, Value: line[1:]}, nil
	default:
		return Tag{}, &MalformedSyncRecord{Offset: 0, Reason: "unrecognized tag line prefix"}
	}
}

// Encode renders a Tag back to its CVS/Tag line form. TagKindNone encodes
// to the empty string (meaning: no CVS/Tag file should be written at all).
func (t Tag) Encode() string {
	switch t.Kind {
	case TagKindBranchOrVersion:
		return "T" + t.Value
	case TagKindBranch:
		return "N" + t.Value
	case TagKindDate:
		return "D" + t.Value
	default:
		return ""
	}
}

// FolderSync is the decoded per-folder sync record: the union of
// CVS/Root, CVS/Repository, and CVS/Tag, plus the static flag derived from
// the presence of a trailing "D" line in CVS/Entries. Absence of a
// FolderSync for a folder means the folder is not a managed folder at all.
type FolderSync struct {
	// Repository is the repository connection string (CVS/Root).
	Repository string
	// RepositoryRelativePath is the folder's path within the repository
	// (CVS/Repository).
	RepositoryRelativePath string
	// Tag is the folder's sticky tag, if any (CVS/Tag).
	Tag Tag
	// IsStatic records whether CVS/Entries carried a trailing "D" line,
	// which marks the folder as not expecting new subdirectories from the
	// repository.
	IsStatic bool
}

// entriesStaticMarker is the trailing line CVS writes to an Entries file to
// mark a folder static.
const entriesStaticMarker = "D"

// decodeEntriesStatic reports whether the raw lines of an Entries file (as
// read from disk, in order) carry the trailing static marker, and returns
// the lines with that marker stripped.
func decodeEntriesStatic(lines []string) (remaining []string, static bool) {
	if n := len(lines); n > 0 && lines[n-1] == entriesStaticMarker {
		return lines[:n-1], true
	}
	return lines, false
}

// encodeEntriesStatic appends the trailing static marker line if static is
// set.
func encodeEntriesStatic(lines []string, static bool) []string {
	if !static {
		return lines
	}
	return append(append([]string(nil), lines...), entriesStaticMarker)
}

// encodeFolderLine renders a child folder's Entries line:
// "D/<name>////".
func encodeFolderLine(name string) string {
	return "D/" + name + "////"
}

// isFolderLine reports whether a raw Entries line is a folder line (as
// opposed to a file line or the trailing static marker).
func isFolderLine(line string) bool {
	return strings.HasPrefix(line, "D/")
}

// folderLineName extracts the child name from a folder Entries line.
func folderLineName(line string) string {
	rest := strings.TrimPrefix(line, "D/")
	if i := strings.IndexByte(rest, '/'); i != -1 {
		return rest[:i]
	}
	return rest
}

package wsync

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cvsmeta/wsync/pkg/filesystem"
	"github.com/cvsmeta/wsync/pkg/logging"
	"github.com/cvsmeta/wsync/pkg/must"
)

// Control directory file names, per the on-disk layout in spec.md §6.
const (
	controlDirName  = "CVS"
	fileRoot        = "Root"
	fileRepository  = "Repository"
	fileEntries     = "Entries"
	fileTag         = "Tag"
	fileIgnore      = ".cvsignore"
	fileNotify      = "Notify"
	fileBaserev     = "Baserev"
	baseSubdirName  = "Base"
	projectIgnoreID = ".wsync.yml" // project-level ignore defaults live alongside this
)

// Store is the disk store (C2): it atomically reads and writes the control
// files of a folder's control directory, and refuses to touch a folder
// whose storage is linked in from outside the project root.
type Store struct {
	// Root is the absolute path of the project root on disk.
	Root string
	// Logger is used to report non-fatal disk anomalies (e.g. a linked
	// folder detection failure).
	Logger *logging.Logger
}

// NewStore creates a disk store rooted at root.
func NewStore(root string, logger *logging.Logger) *Store {
	return &Store{Root: root, Logger: logger}
}

// sameDeviceFunc resolves whether two paths share a device, stubbed out in
// store_test.go to exercise the linked-folder branches without requiring a
// genuine cross-device mount in the test environment.
var sameDeviceFunc = filesystem.SameDevice

// absolute maps a root-relative resource path to an absolute filesystem
// path under the project root.
func (s *Store) absolute(folder Path) string {
	if folder == "" {
		return s.Root
	}
	return filepath.Join(s.Root, filepath.FromSlash(folder))
}

// controlDir returns the absolute path of folder's CVS control directory.
func (s *Store) controlDir(folder Path) string {
	return filepath.Join(s.absolute(folder), controlDirName)
}

// IsLinked reports whether folder's on-disk location is linked in from
// outside the project root (a different device than the root). A stat
// failure is treated conservatively as "not linked" per spec.md §5, which
// SameDevice already implements by defaulting to true (same device) on
// error.
func (s *Store) IsLinked(folder Path) bool {
	if folder == "" {
		return false
	}
	same, err := sameDeviceFunc(s.Root, s.absolute(folder))
	if err != nil {
		s.Logger.Warnf("Unable to determine link status of %q: %v", folder, err)
	}
	return !same
}

// Exists reports whether resource currently has an on-disk presence.
func (s *Store) Exists(resource Path) bool {
	_, err := os.Stat(s.absolute(resource))
	return err == nil
}

// readLines reads a control file and splits it into non-terminator-bearing
// lines. A missing file is reported by returning (nil, nil).
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &IoError{Path: path, Err: err}
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return []string{}, nil
	}
	return strings.Split(text, "\n"), nil
}

// writeLines writes lines to a control file atomically, one per line, with
// a trailing newline.
func writeLines(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &IoError{Path: path, Err: err}
	}
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := filesystem.WriteFileAtomic(path, []byte(content), 0644); err != nil {
		return &IoError{Path: path, Err: err}
	}
	return nil
}

// readSingleLine reads a control file expected to hold exactly one
// meaningful line, returning ("", nil) if the file is absent.
func readSingleLine(path string) (string, error) {
	lines, err := readLines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}

// ReadAllResourceSync reads every child sync-bytes line from folder's
// CVS/Entries file, in on-disk order, excluding the trailing static
// marker line if present. It returns (nil, nil) for a linked folder or a
// folder with no Entries file.
func (s *Store) ReadAllResourceSync(folder Path) ([]SyncBytes, error) {
	if s.IsLinked(folder) {
		return nil, nil
	}
	lines, err := readLines(filepath.Join(s.controlDir(folder), fileEntries))
	if err != nil {
		return nil, err
	}
	remaining, _ := decodeEntriesStatic(lines)
	if remaining == nil {
		return nil, nil
	}
	return remaining, nil
}

// IsStaticOnDisk reports whether folder's CVS/Entries file currently
// carries the trailing static marker line.
func (s *Store) IsStaticOnDisk(folder Path) (bool, error) {
	if s.IsLinked(folder) {
		return false, nil
	}
	lines, err := readLines(filepath.Join(s.controlDir(folder), fileEntries))
	if err != nil {
		return false, err
	}
	_, static := decodeEntriesStatic(lines)
	return static, nil
}

// WriteAllResourceSync writes the full ordered set of child sync-bytes
// lines to folder's CVS/Entries file in one pass. For a linked folder it
// never writes: an empty entries list is a silent no-op, and a non-empty
// one returns LinkedFolderNotWritable.
func (s *Store) WriteAllResourceSync(folder Path, entries []SyncBytes, static bool) error {
	if s.IsLinked(folder) {
		if len(entries) == 0 {
			return nil
		}
		return &LinkedFolderNotWritable{Folder: folder}
	}
	return writeLines(filepath.Join(s.controlDir(folder), fileEntries), encodeEntriesStatic(entries, static))
}

// ReadFolderSync reads folder's CVS/Root, CVS/Repository, and CVS/Tag
// files. It returns (nil, nil) if CVS/Root is absent (no managed folder)
// or the folder is linked.
func (s *Store) ReadFolderSync(folder Path) (*FolderSync, error) {
	if s.IsLinked(folder) {
		return nil, nil
	}

	dir := s.controlDir(folder)

	repository, err := readSingleLine(filepath.Join(dir, fileRoot))
	if err != nil {
		return nil, err
	}
	if repository == "" {
		if _, statErr := os.Stat(filepath.Join(dir, fileRoot)); os.IsNotExist(statErr) {
			return nil, nil
		}
	}

	relativePath, err := readSingleLine(filepath.Join(dir, fileRepository))
	if err != nil {
		return nil, err
	}

	tagLine, err := readSingleLine(filepath.Join(dir, fileTag))
	if err != nil {
		return nil, err
	}
	tag, decodeErr := DecodeTag(tagLine)
	if decodeErr != nil {
		s.Logger.Warnf("Malformed tag in %q: %v", folder, decodeErr)
		tag = Tag{Kind: TagKindNone}
	}

	static, err := s.IsStaticOnDisk(folder)
	if err != nil {
		return nil, err
	}

	return &FolderSync{
		Repository:             repository,
		RepositoryRelativePath: relativePath,
		Tag:                    tag,
		IsStatic:               static,
	}, nil
}

// WriteFolderSync writes folder's CVS/Root, CVS/Repository, and CVS/Tag
// files. It is a no-op for a linked folder.
func (s *Store) WriteFolderSync(folder Path, sync FolderSync) error {
	if s.IsLinked(folder) {
		return nil
	}

	dir := s.controlDir(folder)

	if err := writeLines(filepath.Join(dir, fileRoot), []string{sync.Repository}); err != nil {
		return err
	}
	if err := writeLines(filepath.Join(dir, fileRepository), []string{sync.RepositoryRelativePath}); err != nil {
		return err
	}

	tagPath := filepath.Join(dir, fileTag)
	if encoded := sync.Tag.Encode(); encoded != "" {
		if err := writeLines(tagPath, []string{encoded}); err != nil {
			return err
		}
	} else {
		must.OSRemove(tagPath, s.Logger)
	}

	return nil
}

// DeleteFolderSync removes folder's CVS/Root, CVS/Repository, and CVS/Tag
// files, leaving any Entries/ignore/notify/baserev data untouched. It is a
// no-op for a linked folder.
func (s *Store) DeleteFolderSync(folder Path) error {
	if s.IsLinked(folder) {
		return nil
	}
	dir := s.controlDir(folder)
	must.OSRemove(filepath.Join(dir, fileRoot), s.Logger)
	must.OSRemove(filepath.Join(dir, fileRepository), s.Logger)
	must.OSRemove(filepath.Join(dir, fileTag), s.Logger)
	return nil
}

// ReadCvsIgnore reads folder's ignore pattern list, already parsed per CVS
// reset semantics. It returns (nil, nil) if no ignore file exists.
func (s *Store) ReadCvsIgnore(folder Path) ([]string, error) {
	if s.IsLinked(folder) {
		return nil, nil
	}
	lines, err := readLines(filepath.Join(s.controlDir(folder), fileIgnore))
	if err != nil {
		return nil, err
	}
	if lines == nil {
		return nil, nil
	}
	return ParseIgnorePatterns(lines), nil
}

// WriteCvsIgnore rewrites folder's ignore file wholesale. It is a no-op
// for a linked folder.
func (s *Store) WriteCvsIgnore(folder Path, patterns []string) error {
	if s.IsLinked(folder) {
		return nil
	}
	return writeLines(filepath.Join(s.controlDir(folder), fileIgnore), patterns)
}

// ReadAllNotify reads folder's CVS/Notify side map, raw lines.
func (s *Store) ReadAllNotify(folder Path) ([]string, error) {
	if s.IsLinked(folder) {
		return nil, nil
	}
	return readLines(filepath.Join(s.controlDir(folder), fileNotify))
}

// WriteAllNotify rewrites folder's CVS/Notify side map wholesale.
func (s *Store) WriteAllNotify(folder Path, lines []string) error {
	if s.IsLinked(folder) {
		return nil
	}
	return writeLines(filepath.Join(s.controlDir(folder), fileNotify), lines)
}

// ReadAllBaserev reads folder's CVS/Baserev side map, raw lines.
func (s *Store) ReadAllBaserev(folder Path) ([]string, error) {
	if s.IsLinked(folder) {
		return nil, nil
	}
	return readLines(filepath.Join(s.controlDir(folder), fileBaserev))
}

// WriteAllBaserev rewrites folder's CVS/Baserev side map wholesale.
func (s *Store) WriteAllBaserev(folder Path, lines []string) error {
	if s.IsLinked(folder) {
		return nil
	}
	return writeLines(filepath.Join(s.controlDir(folder), fileBaserev), lines)
}

// IsEdited reports whether file has an active "cvs edit" watch, which this
// implementation takes to mean: file has a CVS/Baserev entry in its parent
// folder.
func (s *Store) IsEdited(file Resource) (bool, error) {
	parent := PathDir(file.Path)
	lines, err := s.ReadAllBaserev(parent)
	if err != nil {
		return false, err
	}
	_, found := FindSideRecordByName(lines, PathBase(file.Path))
	return found, nil
}

// basePath returns the CVS/Base/<name> path for file.
func (s *Store) basePath(file Resource) string {
	parent := PathDir(file.Path)
	return filepath.Join(s.controlDir(parent), baseSubdirName, PathBase(file.Path))
}

// CopyToBase copies file's current on-disk content into its CVS/Base
// pristine copy, used by offline edit workflows.
func (s *Store) CopyToBase(file Resource) error {
	data, err := os.ReadFile(s.absolute(file.Path))
	if err != nil {
		return &IoError{Path: file.Path, Err: err}
	}
	basePath := s.basePath(file)
	if err := os.MkdirAll(filepath.Dir(basePath), 0755); err != nil {
		return &IoError{Path: basePath, Err: err}
	}
	if err := filesystem.WriteFileAtomic(basePath, data, 0644); err != nil {
		return &IoError{Path: basePath, Err: err}
	}
	return nil
}

// RestoreFromBase restores file's on-disk content from its CVS/Base
// pristine copy.
func (s *Store) RestoreFromBase(file Resource) error {
	basePath := s.basePath(file)
	data, err := os.ReadFile(basePath)
	if err != nil {
		return &IoError{Path: basePath, Err: err}
	}
	if err := filesystem.WriteFileAtomic(s.absolute(file.Path), data, 0644); err != nil {
		return &IoError{Path: file.Path, Err: err}
	}
	return nil
}

// DeleteBase removes file's CVS/Base pristine copy, if any.
func (s *Store) DeleteBase(file Resource) error {
	must.OSRemove(s.basePath(file), s.Logger)
	return nil
}

// Package wsync implements the workspace synchronizer: a thread-safe
// in-memory cache of per-resource and per-folder sync metadata, layered
// over a disk store and coordinated by a reentrant batching lock that
// defers writes and change broadcasts until a batch completes.
package wsync

import (
	"sort"
	"strings"
	"sync"

	"github.com/cvsmeta/wsync/pkg/logging"
)

// Synchronizer is C7: the public facade over the session cache, phantom
// cache, dirty propagator, disk store, batch lock, and broadcaster. One
// Synchronizer is created per project root and owned explicitly by its
// caller; it is not process-global mutable state (spec.md §9).
type Synchronizer struct {
	store       *Store
	session     *SessionCache
	phantom     *PhantomCache
	batch       *BatchLock
	broadcaster *Broadcaster
	opLock      sync.Mutex
	dirty       *dirtyPropagator
	config      *ProjectConfig
	logger      *logging.Logger

	ignoreCache map[Path][]string
}

// NewSynchronizer creates a Synchronizer rooted at root, loading its
// project configuration (if any) immediately.
func NewSynchronizer(root string, logger *logging.Logger) (*Synchronizer, error) {
	config, err := LoadProjectConfig(root)
	if err != nil {
		return nil, err
	}

	s := &Synchronizer{
		store:       NewStore(root, logger.Sublogger("store")),
		session:     NewSessionCache(),
		phantom:     NewPhantomCache(),
		batch:       NewBatchLock(),
		broadcaster: NewBroadcaster(logger.Sublogger("broadcast")),
		config:      config,
		logger:      logger,
		ignoreCache: make(map[Path][]string),
	}
	s.dirty = &dirtyPropagator{cacheFor: s.cacheFor}
	return s, nil
}

// Subscribe registers a change listener, returning an unsubscribe
// function. See Broadcaster.Subscribe.
func (s *Synchronizer) Subscribe(listener Listener) func() {
	return s.broadcaster.Subscribe(listener)
}

// Shutdown terminates the synchronizer's broadcast tracker.
func (s *Synchronizer) Shutdown() {
	s.broadcaster.Terminate()
}

// ActiveScopes returns the root rule of every batch currently open on the
// synchronizer, for lock-contention diagnostics.
func (s *Synchronizer) ActiveScopes() []Path {
	return s.batch.ActiveScopes()
}

// cacheFor implements the C7 routing rule: phantom if the resource is
// represented there, session otherwise.
func (s *Synchronizer) cacheFor(r Resource) dirtyIndicatorStore {
	if _, ok := s.phantom.GetSyncBytes(r.Path); ok {
		return s.phantom
	}
	if _, ok := s.phantom.GetFolderSync(r.Path); ok {
		return s.phantom
	}
	return s.session
}

// Begin establishes (or extends, if scope is non-nil) a batch scope rooted
// at resource. Every mutating facade operation requires a scope obtained
// this way.
func (s *Synchronizer) Begin(resource Resource, scope *BatchScope) (*BatchScope, error) {
	return s.batch.Acquire(resource, scope, s.flushCallback)
}

// End releases one level of scope, flushing on the outermost release.
func (s *Synchronizer) End(scope *BatchScope, monitor interface{}) error {
	return s.batch.Release(scope, monitor)
}

// WithBatch runs fn inside a freshly established outermost batch scope
// rooted at resource, always releasing (and so always flushing) before
// returning, even if fn panics.
func (s *Synchronizer) WithBatch(resource Resource, monitor interface{}, fn func(scope *BatchScope) error) error {
	scope, err := s.Begin(resource, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.End(scope, monitor)
	}()
	return fn(scope)
}

// ensureFolderLoaded performs the batched disk read described in spec.md
// §4.3: the first access to any resource under folder triggers a single
// read of the folder's Entries, folder-sync, and ignore files, after which
// every sibling is served from cache. Must be called with the op lock
// held.
func (s *Synchronizer) ensureFolderLoaded(folder Path) error {
	if s.session.IsSyncLoaded(folder) {
		return nil
	}

	entries, err := s.store.ReadAllResourceSync(folder)
	if err != nil {
		return err
	}
	for _, raw := range entries {
		record, decodeErr := DecodeResourceSync(raw)
		if decodeErr != nil {
			s.logger.Warnf("Malformed sync record under %q: %v", folder, decodeErr)
			continue
		}
		s.session.SetSyncBytes(PathJoin(folder, record.Name), raw, true)
	}

	folderSync, err := s.store.ReadFolderSync(folder)
	if err != nil {
		return err
	}
	if folderSync != nil {
		s.session.SetFolderSync(folder, *folderSync, true)
	}

	ignorePatterns, err := s.store.ReadCvsIgnore(folder)
	if err != nil {
		return err
	}
	s.ignoreCache[folder] = append(s.config.DefaultIgnorePatterns(), ignorePatterns...)

	s.session.MarkSyncLoaded(folder)
	return nil
}

// SetFolderSync implements the `set_folder_sync` operation.
func (s *Synchronizer) SetFolderSync(scope *BatchScope, f Path, info FolderSync) error {
	if f == PathRoot {
		return &InvalidScope{Requested: f, Active: PathRoot}
	}

	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(f); err != nil {
		return err
	}

	_, hadOld := s.session.GetFolderSync(f)
	s.session.SetFolderSync(f, info, true)
	if !hadOld {
		s.dirty.adjust(Resource{Path: f, Kind: KindFolder}, DirtyIndicatorRecompute)
	}
	scope.RecordFolderChanged(f)
	return nil
}

// GetFolderSync implements the `get_folder_sync` operation.
func (s *Synchronizer) GetFolderSync(f Path) (FolderSync, bool, error) {
	if f == PathRoot {
		return FolderSync{}, false, nil
	}

	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(f); err != nil {
		return FolderSync{}, false, err
	}
	fs, ok := s.session.GetFolderSync(f)
	return fs, ok, nil
}

// DeleteFolderSync implements the `delete_folder_sync` operation.
func (s *Synchronizer) DeleteFolderSync(scope *BatchScope, f Path) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(f); err != nil {
		return err
	}

	for _, name := range s.session.Children(f) {
		child := PathJoin(f, name)
		if _, ok := s.session.GetSyncBytes(child); ok {
			s.session.SetSyncBytes(child, "", false)
			scope.RecordResourceChanged(child)
		}
	}
	s.session.SetFolderSync(f, FolderSync{}, false)
	scope.RecordFolderChanged(f)
	return nil
}

// SetSyncBytes implements the `set_sync_bytes` operation.
func (s *Synchronizer) SetSyncBytes(scope *BatchScope, r Path, bytes SyncBytes) error {
	parent := PathDir(r)
	if parent == PathRoot {
		return &InvalidScope{Requested: r, Active: PathRoot}
	}

	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(parent); err != nil {
		return err
	}
	s.session.SetSyncBytes(r, bytes, true)
	scope.RecordResourceChanged(r)
	return nil
}

// SetResourceSync implements the `set_resource_sync` operation in terms of
// SetSyncBytes.
func (s *Synchronizer) SetResourceSync(scope *BatchScope, r Path, info ResourceSync) error {
	return s.SetSyncBytes(scope, r, EncodeResourceSync(info))
}

// GetSyncBytes implements the `get_sync_bytes` operation, including the
// workspace-locked fallback to a direct single-record disk read described
// in spec.md §4.6 and §9.
func (s *Synchronizer) GetSyncBytes(r Path) (SyncBytes, bool, error) {
	parent := PathDir(r)

	s.opLock.Lock()
	err := s.ensureFolderLoaded(parent)
	if err != nil {
		s.opLock.Unlock()
		if _, locked := err.(*WorkspaceLocked); locked {
			return s.directReadSyncBytes(r)
		}
		return "", false, err
	}

	if bytes, ok := s.session.GetSyncBytes(r); ok {
		s.opLock.Unlock()
		return bytes, true, nil
	}
	if bytes, ok := s.phantom.GetSyncBytes(r); ok {
		s.opLock.Unlock()
		return bytes, true, nil
	}
	s.opLock.Unlock()
	return "", false, nil
}

// GetResourceSync implements `get_resource_sync` in terms of GetSyncBytes.
func (s *Synchronizer) GetResourceSync(r Path) (ResourceSync, bool, error) {
	bytes, ok, err := s.GetSyncBytes(r)
	if err != nil || !ok {
		return ResourceSync{}, ok, err
	}
	record, decodeErr := DecodeResourceSync(bytes)
	if decodeErr != nil {
		s.logger.Warnf("Malformed sync record for %q: %v", r, decodeErr)
		return SentinelMalformedRecord(PathBase(r)), true, nil
	}
	return record, true, nil
}

// directReadSyncBytes bypasses the session cache entirely, reading a
// single folder's Entries file directly and scanning for r's line. It is
// the fallback the spec mandates for the workspace-locked-during-delta
// race (spec.md §4.6, §7, §9's "exception for control flow" note).
func (s *Synchronizer) directReadSyncBytes(r Path) (SyncBytes, bool, error) {
	parent := PathDir(r)
	name := PathBase(r)

	entries, err := s.store.ReadAllResourceSync(parent)
	if err != nil {
		return "", false, err
	}
	for _, raw := range entries {
		recordName, decodeErr := NameOf(raw)
		if decodeErr != nil {
			continue
		}
		if recordName == name {
			return raw, true, nil
		}
	}
	return "", false, nil
}

// DeleteResourceSync implements the `delete_resource_sync` operation.
func (s *Synchronizer) DeleteResourceSync(scope *BatchScope, r Path) error {
	parent := PathDir(r)

	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(parent); err != nil {
		return err
	}

	if _, ok := s.session.GetSyncBytes(r); ok {
		s.session.SetSyncBytes(r, "", false)
		s.session.FlushDirty(r)
		s.dirty.adjust(Resource{Path: parent, Kind: KindFolder}, DirtyIndicatorRecompute)
		scope.RecordResourceChanged(r)
	}
	return nil
}

// IsIgnored implements the `is_ignored` operation.
func (s *Synchronizer) IsIgnored(r Resource) (bool, error) {
	if r.Kind == KindWorkspaceRoot || r.Kind == KindProject || r.Path == PathRoot {
		return false, nil
	}

	parent := PathDir(r.Path)

	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(parent); err != nil {
		return false, err
	}
	return MatchesIgnored(s.ignoreCache[parent], PathBase(r.Path)), nil
}

// GetNotifyInfo implements `get_notify_info(r)` (spec §4.7): returns r's
// record from its parent folder's CVS/Notify side map, if present. It does
// not touch dirty state and does not require a batch scope, but takes the
// op lock.
func (s *Synchronizer) GetNotifyInfo(r Path) (string, bool, error) {
	return s.getSideRecord(r, s.store.ReadAllNotify)
}

// SetNotifyInfo implements `set_notify_info(r, info)` (spec §4.7): upserts
// r's CVS/Notify record in its parent folder, keyed by r's leaf name.
// Replaces an existing record for the same name silently, per the Open
// Question (a) decision pinned in notify_test.go.
func (s *Synchronizer) SetNotifyInfo(r Path, info string) error {
	return s.setSideRecord(r, info, s.store.ReadAllNotify, s.store.WriteAllNotify)
}

// DeleteNotifyInfo implements `delete_notify_info(r)` (spec §4.7): removes
// r's CVS/Notify record from its parent folder, if present.
func (s *Synchronizer) DeleteNotifyInfo(r Path) error {
	return s.deleteSideRecord(r, s.store.ReadAllNotify, s.store.WriteAllNotify)
}

// GetBaserevInfo, SetBaserevInfo, and DeleteBaserevInfo mirror the notify
// trio above for CVS/Baserev, per spec §4.7's "Baserev is symmetric" note.
func (s *Synchronizer) GetBaserevInfo(r Path) (string, bool, error) {
	return s.getSideRecord(r, s.store.ReadAllBaserev)
}

func (s *Synchronizer) SetBaserevInfo(r Path, info string) error {
	return s.setSideRecord(r, info, s.store.ReadAllBaserev, s.store.WriteAllBaserev)
}

func (s *Synchronizer) DeleteBaserevInfo(r Path) error {
	return s.deleteSideRecord(r, s.store.ReadAllBaserev, s.store.WriteAllBaserev)
}

// getSideRecord looks up r's record, keyed by leaf name, in whichever side
// map read returns for r's parent folder. It returns the record's fields
// after the name, without the separating "/".
func (s *Synchronizer) getSideRecord(r Path, read func(Path) ([]string, error)) (string, bool, error) {
	parent := PathDir(r)

	s.opLock.Lock()
	defer s.opLock.Unlock()

	lines, err := read(parent)
	if err != nil {
		return "", false, err
	}
	record, ok := FindSideRecordByName(lines, PathBase(r))
	if !ok {
		return "", false, nil
	}
	return strings.TrimPrefix(record.Tail, "/"), true, nil
}

// setSideRecord upserts r's record in whichever side map read/write address
// for r's parent folder. info is the record's fields after the name, without
// the separating "/".
func (s *Synchronizer) setSideRecord(r Path, info string, read func(Path) ([]string, error), write func(Path, []string) error) error {
	parent := PathDir(r)

	s.opLock.Lock()
	defer s.opLock.Unlock()

	lines, err := read(parent)
	if err != nil {
		return err
	}
	updated := UpsertSideRecordByName(lines, SideRecord{Name: PathBase(r), Tail: "/" + info})
	return write(parent, updated)
}

// deleteSideRecord removes r's record, if present, from whichever side map
// read/write address for r's parent folder.
func (s *Synchronizer) deleteSideRecord(r Path, read func(Path) ([]string, error), write func(Path, []string) error) error {
	parent := PathDir(r)

	s.opLock.Lock()
	defer s.opLock.Unlock()

	lines, err := read(parent)
	if err != nil {
		return err
	}
	updated := RemoveSideRecordByName(lines, PathBase(r))
	return write(parent, updated)
}

// AddIgnored implements the `add_ignored` operation. The broadcast happens
// at flush time, not synchronously here, and covers f plus the children of
// f held in the session and phantom caches. Files on disk under f that
// have no cached sync are not included, and deeper descendants are not
// visited.
func (s *Synchronizer) AddIgnored(scope *BatchScope, f Path, pattern string) error {
	if err := ValidateIgnorePattern(pattern); err != nil {
		return err
	}

	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(f); err != nil {
		return err
	}
	updated, appended := AppendUniquePattern(s.ignoreCache[f], pattern)
	if !appended {
		return nil
	}
	s.ignoreCache[f] = updated
	scope.RecordIgnoreFileChanged(f)
	return nil
}

// Members implements the `members` operation: it ensures sibling sync is
// loaded (so phantoms materialize) and returns every child name, extant or
// phantom.
func (s *Synchronizer) Members(f Path) ([]string, error) {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	if err := s.ensureFolderLoaded(f); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, name := range s.session.Children(f) {
		seen[name] = true
	}
	for _, name := range s.phantom.Children(f) {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// PrepareForDeletion implements the `prepare_for_deletion` operation.
func (s *Synchronizer) PrepareForDeletion(scope *BatchScope, r Resource) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	s.dirty.adjust(r, DirtyIndicatorRecompute)

	switch r.Kind {
	case KindFile:
		if bytes, ok := s.session.GetSyncBytes(r.Path); ok {
			record, err := DecodeResourceSync(bytes)
			if err == nil && !record.IsAddition() {
				s.phantom.SetSyncBytes(r.Path, EncodeResourceSync(record.ConvertToDeletion()), true)
			}
			s.session.SetSyncBytes(r.Path, "", false)
		}
	case KindProject:
		s.phantom.Purge(r.Path, true)
	default: // KindFolder
		if fs, ok := s.session.GetFolderSync(r.Path); ok {
			s.phantom.SetFolderSync(r.Path, fs, true)
			s.session.SetFolderSync(r.Path, FolderSync{}, false)
		}
		if bytes, ok := s.session.GetSyncBytes(r.Path); ok {
			s.phantom.SetSyncBytes(r.Path, bytes, true)
			s.session.SetSyncBytes(r.Path, "", false)
		}
	}
	scope.RecordResourceChanged(r.Path)
	return nil
}

// PrepareForMoveDelete implements `prepare_for_move_delete`: it visits r's
// subtree depth-first, calling PrepareForDeletion on each member, then
// purges the session cache for r deeply.
func (s *Synchronizer) PrepareForMoveDelete(scope *BatchScope, r Resource, monitor interface{}) error {
	var visit func(node Resource) error
	visit = func(node Resource) error {
		names, err := s.Members(node.Path)
		if err != nil {
			return err
		}
		for _, name := range names {
			child := Resource{Path: PathJoin(node.Path, name), Kind: KindFile}
			if fs, _, _ := s.GetFolderSync(child.Path); fs != (FolderSync{}) {
				child.Kind = KindFolder
			}
			if child.Kind == KindFolder {
				if err := visit(child); err != nil {
					return err
				}
			}
			if err := s.PrepareForDeletion(scope, child); err != nil {
				return err
			}
		}
		return s.PrepareForDeletion(scope, node)
	}

	if err := visit(r); err != nil {
		return err
	}

	s.opLock.Lock()
	s.session.Purge(r.Path, true)
	s.opLock.Unlock()
	return nil
}

// GetModificationState implements `get_modification_state(r)` (spec §4.4):
// it maps r's cached dirty indicator to the caller-facing tri-state,
// routing through the same session/phantom lookup C7 uses everywhere else.
// An indicator that was never cached, same as RECOMPUTE, reports Unknown.
func (s *Synchronizer) GetModificationState(r Resource) ModificationState {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	indicator, ok := s.cacheFor(r).GetDirtyIndicator(r)
	if !ok {
		return ModificationStateUnknown
	}
	return ModificationStateOf(indicator)
}

// MarkDirty directly sets r's dirty indicator and propagates the change to
// its ancestors (spec §4.4, §8 property 3 / scenario S4), without routing
// through a resource-sync write. Like HandleDeleted, it takes the op lock
// but needs no batch scope of its own.
func (s *Synchronizer) MarkDirty(r Resource) {
	s.opLock.Lock()
	s.dirty.adjust(r, DirtyIndicatorDirty)
	s.opLock.Unlock()
}

// MarkClean directly sets r's dirty indicator to NOT_DIRTY, which per
// §4.4's ascent rule leaves every ancestor at RECOMPUTE (Unknown) rather
// than Clean until something re-derives it from r's siblings.
func (s *Synchronizer) MarkClean(r Resource) {
	s.opLock.Lock()
	s.dirty.adjust(r, DirtyIndicatorNotDirty)
	s.opLock.Unlock()
}

// HandleDeleted implements `handle_deleted`.
func (s *Synchronizer) HandleDeleted(r Resource) error {
	if !s.store.Exists(r.Path) {
		s.opLock.Lock()
		s.dirty.adjust(r, DirtyIndicatorRecompute)
		s.opLock.Unlock()
	}
	return nil
}

// Flush implements the `flush` operation: it acquires and immediately
// releases a scope of its own on f, so it waits until any overlapping
// batch held by another goroutine has been released (and so flushed), then
// purges the session cache for f.
func (s *Synchronizer) Flush(f Path, deep bool, monitor interface{}) error {
	scope, err := s.Begin(Resource{Path: f, Kind: KindFolder}, nil)
	if err != nil {
		return err
	}
	flushErr := s.End(scope, monitor)

	s.opLock.Lock()
	s.session.Purge(f, deep)
	s.opLock.Unlock()

	return flushErr
}

// Deconfigure implements the `deconfigure` operation.
func (s *Synchronizer) Deconfigure(project Path) error {
	if err := s.Flush(project, true, nil); err != nil {
		return err
	}
	s.opLock.Lock()
	s.phantom.Purge(project, true)
	s.opLock.Unlock()
	return nil
}

// SyncFilesChanged implements `sync_files_changed`: an external edit was
// detected for each of folders, so their session cache entries are purged
// shallowly and the folder plus its immediate children are broadcast.
func (s *Synchronizer) SyncFilesChanged(folders []Path) {
	for _, f := range folders {
		s.opLock.Lock()
		changed := []Path{f}
		for _, name := range s.session.Children(f) {
			changed = append(changed, PathJoin(f, name))
		}
		for _, name := range s.phantom.Children(f) {
			changed = append(changed, PathJoin(f, name))
		}
		s.session.Purge(f, false)
		s.opLock.Unlock()

		s.broadcaster.Broadcast(changed)
	}
}

// IsSyncInfoLoaded implements `is_sync_info_loaded`: it reports whether
// every ancestor folder of every resource, up to depth levels, has
// already been loaded from disk.
func (s *Synchronizer) IsSyncInfoLoaded(resources []Path, depth int) bool {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	for _, r := range resources {
		folder := r
		for level := 0; level <= depth && folder != PathRoot; level++ {
			folder = PathDir(folder)
			if !s.session.IsSyncLoaded(folder) {
				return false
			}
		}
	}
	return true
}

// EnsureSyncInfoLoaded implements `ensure_sync_info_loaded`.
func (s *Synchronizer) EnsureSyncInfoLoaded(resources []Path, depth int) error {
	s.opLock.Lock()
	defer s.opLock.Unlock()

	for _, r := range resources {
		folder := r
		for level := 0; level <= depth && folder != PathRoot; level++ {
			folder = PathDir(folder)
			if err := s.ensureFolderLoaded(folder); err != nil {
				return err
			}
		}
	}
	return nil
}

// flushCallback is C6's registered flush routine: it implements the
// six-step algorithm in spec.md §4.6.
func (s *Synchronizer) flushCallback(changes *BatchChanges, monitor interface{}) error {
	var errs []error

	changedResources := changes.Resources()
	changedFolders := changes.Folders()

	dirtyParents := make(map[Path]bool)
	for _, r := range changedResources {
		dirtyParents[PathDir(r)] = true
	}

	s.opLock.Lock()
	for _, f := range changedFolders {
		if f == PathRoot || !s.store.Exists(f) {
			continue
		}
		if fs, ok := s.session.GetFolderSync(f); ok {
			if err := s.store.WriteFolderSync(f, fs); err != nil {
				errs = append(errs, err)
				s.session.Purge(f, true)
			}
		} else {
			if err := s.store.DeleteFolderSync(f); err != nil {
				errs = append(errs, err)
				s.session.Purge(f, true)
			} else {
				delete(dirtyParents, f)
			}
		}
	}

	for f := range dirtyParents {
		if f == PathRoot || !s.store.Exists(f) {
			continue
		}
		names := s.session.Children(f)
		entries := make([]SyncBytes, 0, len(names))
		for _, name := range names {
			if bytes, ok := s.session.GetSyncBytes(PathJoin(f, name)); ok {
				entries = append(entries, bytes)
			}
		}
		static := false
		if fs, ok := s.session.GetFolderSync(f); ok {
			static = fs.IsStatic
		}
		if err := s.store.WriteAllResourceSync(f, entries, static); err != nil {
			errs = append(errs, err)
			s.session.Purge(f, false)
		}
	}
	s.opLock.Unlock()

	ignorePeers := make(map[Path]bool)
	for _, f := range changes.IgnoreFiles() {
		s.opLock.Lock()
		// Only the folder's own patterns are written; the default prefix
		// that ensureFolderLoaded put in front of them stays in memory.
		patterns := s.ignoreCache[f]
		if defaults := len(s.config.DefaultIgnorePatterns()); len(patterns) >= defaults {
			patterns = patterns[defaults:]
		}
		if err := s.store.WriteCvsIgnore(f, patterns); err != nil {
			errs = append(errs, err)
		}
		ignorePeers[f] = true
		for _, name := range s.session.Children(f) {
			ignorePeers[PathJoin(f, name)] = true
		}
		for _, name := range s.phantom.Children(f) {
			ignorePeers[PathJoin(f, name)] = true
		}
		s.opLock.Unlock()
	}

	union := make(map[Path]bool)
	for _, r := range changedResources {
		union[r] = true
	}
	for _, f := range changedFolders {
		union[f] = true
	}
	for f := range dirtyParents {
		union[f] = true
	}
	for p := range ignorePeers {
		union[p] = true
	}
	s.broadcaster.Broadcast(pathSetToSlice(union))

	if len(errs) > 0 {
		return &CommittingSyncInfoFailed{Errors: errs}
	}
	return nil
}

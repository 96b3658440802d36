package wsync

// SessionCache is C3: the in-memory mapping for resources that currently
// exist on disk. It is invalidated wholesale for a folder whenever an
// external filesystem edit is detected (sync_files_changed), and
// individually whenever a resource transitions into the phantom cache via
// prepare_for_deletion. All access happens under the op lock; SessionCache
// itself holds no lock of its own.
type SessionCache struct {
	sync       map[Path]SyncBytes
	folderSync map[Path]FolderSync
	dirty      map[Path]DirtyIndicator
	loaded     map[Path]bool
	children   map[Path]map[string]bool
}

// NewSessionCache creates an empty session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		sync:       make(map[Path]SyncBytes),
		folderSync: make(map[Path]FolderSync),
		dirty:      make(map[Path]DirtyIndicator),
		loaded:     make(map[Path]bool),
		children:   make(map[Path]map[string]bool),
	}
}

// GetSyncBytes returns the cached sync bytes for r, if present.
func (c *SessionCache) GetSyncBytes(r Path) (SyncBytes, bool) {
	b, ok := c.sync[r]
	return b, ok
}

// SetSyncBytes records or clears r's sync bytes. present=false removes the
// entry (and its parent's child-name record) entirely.
func (c *SessionCache) SetSyncBytes(r Path, bytes SyncBytes, present bool) {
	if !present {
		delete(c.sync, r)
		c.unregisterChild(r)
		return
	}
	c.sync[r] = bytes
	c.registerChild(r)
}

// GetFolderSync returns the cached folder sync for f, if present.
func (c *SessionCache) GetFolderSync(f Path) (FolderSync, bool) {
	fs, ok := c.folderSync[f]
	return fs, ok
}

// SetFolderSync records or clears f's folder sync.
func (c *SessionCache) SetFolderSync(f Path, fs FolderSync, present bool) {
	if !present {
		delete(c.folderSync, f)
		return
	}
	c.folderSync[f] = fs
}

// GetDirtyIndicator implements dirtyIndicatorStore.
func (c *SessionCache) GetDirtyIndicator(r Resource) (DirtyIndicator, bool) {
	indicator, ok := c.dirty[r.Path]
	return indicator, ok
}

// SetDirtyIndicator implements dirtyIndicatorStore.
func (c *SessionCache) SetDirtyIndicator(r Resource, indicator DirtyIndicator) {
	c.dirty[r.Path] = indicator
}

// FlushDirty discards any cached dirty indicator for r, so that the next
// read is treated as RECOMPUTE (unknown).
func (c *SessionCache) FlushDirty(r Path) {
	delete(c.dirty, r)
}

// IsSyncLoaded reports whether f's children have been populated from disk
// this session.
func (c *SessionCache) IsSyncLoaded(f Path) bool {
	return c.loaded[f]
}

// MarkSyncLoaded marks f's children as populated from disk.
func (c *SessionCache) MarkSyncLoaded(f Path) {
	c.loaded[f] = true
}

// Purge discards all cached state for f. If deep is true, it also discards
// state for every resource in f's subtree that this cache knows about.
func (c *SessionCache) Purge(f Path, deep bool) {
	delete(c.folderSync, f)
	delete(c.dirty, f)
	delete(c.loaded, f)

	if !deep {
		for name := range c.children[f] {
			c.PurgeResourceSync(PathJoin(f, name))
		}
		return
	}

	for path := range c.sync {
		if IsWithin(f, path) {
			delete(c.sync, path)
			delete(c.dirty, path)
		}
	}
	for path := range c.folderSync {
		if IsWithin(f, path) {
			delete(c.folderSync, path)
			delete(c.dirty, path)
			delete(c.loaded, path)
		}
	}
	for path := range c.loaded {
		if IsWithin(f, path) {
			delete(c.loaded, path)
		}
	}
	delete(c.children, f)
}

// PurgeResourceSync discards cached state for a single resource (not its
// descendants).
func (c *SessionCache) PurgeResourceSync(r Path) {
	delete(c.sync, r)
	delete(c.dirty, r)
	c.unregisterChild(r)
}

// Children returns the leaf names of every resource under f that currently
// has cached sync bytes (used by members()).
func (c *SessionCache) Children(f Path) []string {
	names := c.children[f]
	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	return result
}

func (c *SessionCache) registerChild(r Path) {
	parent := PathDir(r)
	set, ok := c.children[parent]
	if !ok {
		set = make(map[string]bool)
		c.children[parent] = set
	}
	set[PathBase(r)] = true
}

func (c *SessionCache) unregisterChild(r Path) {
	parent := PathDir(r)
	if set, ok := c.children[parent]; ok {
		delete(set, PathBase(r))
	}
}

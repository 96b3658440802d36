package wsync

// PhantomCache is C4: the in-memory mapping for resources that no longer
// exist on disk but whose sync must be preserved (so that "removed from
// repository" can still be reported once the deletion is committed). It
// has the same shape as SessionCache but is never backed by disk reads —
// phantom entries are populated only by prepare_for_deletion and cleared
// only by flush/deconfigure.
type PhantomCache struct {
	sync       map[Path]SyncBytes
	folderSync map[Path]FolderSync
	dirty      map[Path]DirtyIndicator
	loaded     map[Path]bool
	children   map[Path]map[string]bool
}

// NewPhantomCache creates an empty phantom cache.
func NewPhantomCache() *PhantomCache {
	return &PhantomCache{
		sync:       make(map[Path]SyncBytes),
		folderSync: make(map[Path]FolderSync),
		dirty:      make(map[Path]DirtyIndicator),
		loaded:     make(map[Path]bool),
		children:   make(map[Path]map[string]bool),
	}
}

func (c *PhantomCache) GetSyncBytes(r Path) (SyncBytes, bool) {
	b, ok := c.sync[r]
	return b, ok
}

func (c *PhantomCache) SetSyncBytes(r Path, bytes SyncBytes, present bool) {
	if !present {
		delete(c.sync, r)
		c.unregisterChild(r)
		return
	}
	c.sync[r] = bytes
	c.registerChild(r)
}

func (c *PhantomCache) GetFolderSync(f Path) (FolderSync, bool) {
	fs, ok := c.folderSync[f]
	return fs, ok
}

func (c *PhantomCache) SetFolderSync(f Path, fs FolderSync, present bool) {
	if !present {
		delete(c.folderSync, f)
		return
	}
	c.folderSync[f] = fs
}

// GetDirtyIndicator implements dirtyIndicatorStore.
func (c *PhantomCache) GetDirtyIndicator(r Resource) (DirtyIndicator, bool) {
	indicator, ok := c.dirty[r.Path]
	return indicator, ok
}

// SetDirtyIndicator implements dirtyIndicatorStore.
func (c *PhantomCache) SetDirtyIndicator(r Resource, indicator DirtyIndicator) {
	c.dirty[r.Path] = indicator
}

func (c *PhantomCache) FlushDirty(r Path) {
	delete(c.dirty, r)
}

func (c *PhantomCache) IsSyncLoaded(f Path) bool {
	return c.loaded[f]
}

func (c *PhantomCache) MarkSyncLoaded(f Path) {
	c.loaded[f] = true
}

// Purge discards all phantom state for f, and for deep, its subtree too.
// This is how deconfigure forgets a pruned project's phantoms entirely.
func (c *PhantomCache) Purge(f Path, deep bool) {
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
	delete(c.children, f)
}

func (c *PhantomCache) PurgeResourceSync(r Path) {
	delete(c.sync, r)
	delete(c.dirty, r)
	c.unregisterChild(r)
}

// Children returns the leaf names of every phantom resource under f.
func (c *PhantomCache) Children(f Path) []string {
	names := c.children[f]
	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	return result
}

func (c *PhantomCache) registerChild(r Path) {
	parent := PathDir(r)
	set, ok := c.children[parent]
	if !ok {
		set = make(map[string]bool)
		c.children[parent] = set
	}
	set[PathBase(r)] = true
}

func (c *PhantomCache) unregisterChild(r Path) {
	parent := PathDir(r)
	if set, ok := c.children[parent]; ok {
		delete(set, PathBase(r))
	}
}

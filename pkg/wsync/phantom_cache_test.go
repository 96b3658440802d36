package wsync

import "testing"

// TestPhantomCacheSurvivesIndependentlyOfSessionCache tests that the
// phantom cache is a wholly separate store from the session cache: entries
// recorded on one are invisible to the other.
func TestPhantomCacheSurvivesIndependentlyOfSessionCache(t *testing.T) {
	session := NewSessionCache()
	phantom := NewPhantomCache()

	deletionRecord := ResourceSync{Name: "gone.go", Revision: "-1.3"}
	phantom.SetSyncBytes("a/gone.go", EncodeResourceSync(deletionRecord), true)

	if _, ok := session.GetSyncBytes("a/gone.go"); ok {
		t.Error("expected the session cache to know nothing about a phantom entry")
	}
	bytes, ok := phantom.GetSyncBytes("a/gone.go")
	if !ok {
		t.Fatal("expected the phantom entry to be retrievable")
	}
	record, err := DecodeResourceSync(bytes)
	if err != nil || !record.IsDeletion() {
		t.Errorf("expected a deletion-form record, got %+v (err: %v)", record, err)
	}
}

// TestPhantomCacheDeepPurgeClearsSubtree tests that Purge(deep=true) clears
// every phantom entry under a folder, mirroring deconfigure's behavior.
func TestPhantomCacheDeepPurgeClearsSubtree(t *testing.T) {
	phantom := NewPhantomCache()
	phantom.SetSyncBytes("a/gone.go", "/gone.go/-1.3/ts//", true)
	phantom.SetFolderSync("a/subgone", FolderSync{}, true)

	phantom.Purge("a", true)

	if _, ok := phantom.GetSyncBytes("a/gone.go"); ok {
		t.Error("expected a/gone.go to be purged")
	}
	if _, ok := phantom.GetFolderSync("a/subgone"); ok {
		t.Error("expected a/subgone's folder sync to be purged")
	}
	if len(phantom.Children("a")) != 0 {
		t.Errorf("expected no remaining children of a, got %v", phantom.Children("a"))
	}
}

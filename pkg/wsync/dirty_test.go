package wsync

import "testing"

// testDirtyStore is a minimal in-memory dirtyIndicatorStore used to exercise
// dirtyPropagator.adjust without a full Synchronizer.
type testDirtyStore struct {
	indicators map[Path]DirtyIndicator
}

func newTestDirtyStore() *testDirtyStore {
	return &testDirtyStore{indicators: make(map[Path]DirtyIndicator)}
}

func (s *testDirtyStore) GetDirtyIndicator(r Resource) (DirtyIndicator, bool) {
	indicator, ok := s.indicators[r.Path]
	return indicator, ok
}

func (s *testDirtyStore) SetDirtyIndicator(r Resource, indicator DirtyIndicator) {
	s.indicators[r.Path] = indicator
}

func newTestPropagator(store dirtyIndicatorStore) *dirtyPropagator {
	return &dirtyPropagator{cacheFor: func(Resource) dirtyIndicatorStore { return store }}
}

// TestAdjustPropagatesDirtyToAncestors tests that marking a deeply nested
// resource dirty marks every ancestor folder dirty as well.
func TestAdjustPropagatesDirtyToAncestors(t *testing.T) {
	store := newTestDirtyStore()
	propagator := newTestPropagator(store)

	leaf := Resource{Path: "a/b/c.go", Kind: KindFile}
	propagator.adjust(leaf, DirtyIndicatorDirty)

	for _, path := range []Path{"a/b/c.go", "a/b", "a"} {
		indicator, ok := store.GetDirtyIndicator(Resource{Path: path, Kind: KindFolder})
		if !ok || indicator != DirtyIndicatorDirty {
			t.Errorf("expected %q to be DIRTY, got %v (present=%v)", path, indicator, ok)
		}
	}
}

// TestAdjustNotDirtyPropagatesRecompute tests that clearing a resource's
// dirty flag marks its ancestors RECOMPUTE rather than NOT_DIRTY, since a
// sibling might still be dirty.
func TestAdjustNotDirtyPropagatesRecompute(t *testing.T) {
	store := newTestDirtyStore()
	propagator := newTestPropagator(store)

	leaf := Resource{Path: "a/b.go", Kind: KindFile}
	propagator.adjust(leaf, DirtyIndicatorNotDirty)

	parent, ok := store.GetDirtyIndicator(Resource{Path: "a", Kind: KindFolder})
	if !ok || parent != DirtyIndicatorRecompute {
		t.Errorf("expected parent to be RECOMPUTE, got %v (present=%v)", parent, ok)
	}
}

// TestAdjustNoOpWhenUnchanged tests that setting the same indicator a
// resource already holds doesn't re-propagate to ancestors.
func TestAdjustNoOpWhenUnchanged(t *testing.T) {
	store := newTestDirtyStore()
	propagator := newTestPropagator(store)

	leaf := Resource{Path: "a/b.go", Kind: KindFile}
	propagator.adjust(leaf, DirtyIndicatorDirty)
	store.SetDirtyIndicator(Resource{Path: "a", Kind: KindFolder}, DirtyIndicatorNotDirty)

	propagator.adjust(leaf, DirtyIndicatorDirty)

	parent, _ := store.GetDirtyIndicator(Resource{Path: "a", Kind: KindFolder})
	if parent != DirtyIndicatorNotDirty {
		t.Errorf("expected no-op adjust to leave parent untouched, got %v", parent)
	}
}

// TestAdjustStopsAtWorkspaceRoot tests that adjust never tries to look up a
// parent for the workspace root.
func TestAdjustStopsAtWorkspaceRoot(t *testing.T) {
	store := newTestDirtyStore()
	propagator := newTestPropagator(store)

	root := Resource{Path: PathRoot, Kind: KindWorkspaceRoot}
	propagator.adjust(root, DirtyIndicatorDirty)

	if _, ok := store.GetDirtyIndicator(root); ok {
		t.Error("expected workspace root to never be recorded in the indicator store")
	}
}

// TestModificationStateOf tests the tri-state mapping, including that
// RECOMPUTE always maps to Unknown.
func TestModificationStateOf(t *testing.T) {
	tests := []struct {
		indicator DirtyIndicator
		expected  ModificationState
	}{
		{DirtyIndicatorDirty, ModificationStateDirty},
		{DirtyIndicatorNotDirty, ModificationStateClean},
		{DirtyIndicatorRecompute, ModificationStateUnknown},
	}
	for i, test := range tests {
		if got := ModificationStateOf(test.indicator); got != test.expected {
			t.Errorf("test index %d: got %v, expected %v", i, got, test.expected)
		}
	}
}

package wsync

import (
	"sync"

	"github.com/google/uuid"
)

// FlushCallback is invoked exactly once, by the goroutine that performs the
// outermost release of a batch scope, with the accumulated change set for
// that batch. Its monitor parameter is whatever cancellation/diagnostic
// token the caller supplied to the outermost Release call.
type FlushCallback func(changes *BatchChanges, monitor interface{}) error

// BatchChanges accumulates every resource, folder, and ignore-file change
// recorded on a single batch for delivery to its flush callback. Go has no
// goroutine-local storage, so unlike a thread-indexed accumulator this is
// carried explicitly on the BatchScope handle returned by Acquire and
// threaded by the caller through its own call stack — the idiomatic
// stand-in for "thread info" in a language without it.
type BatchChanges struct {
	ID          uuid.UUID
	resources   map[Path]bool
	folders     map[Path]bool
	ignoreFiles map[Path]bool
}

func newBatchChanges() *BatchChanges {
	return &BatchChanges{
		ID:          uuid.New(),
		resources:   make(map[Path]bool),
		folders:     make(map[Path]bool),
		ignoreFiles: make(map[Path]bool),
	}
}

// Resources returns the accumulated set of changed resource paths.
func (c *BatchChanges) Resources() []Path {
	return pathSetToSlice(c.resources)
}

// Folders returns the accumulated set of changed folder paths.
func (c *BatchChanges) Folders() []Path {
	return pathSetToSlice(c.folders)
}

// IgnoreFiles returns the accumulated set of changed ignore-file folder
// paths.
func (c *BatchChanges) IgnoreFiles() []Path {
	return pathSetToSlice(c.ignoreFiles)
}

func pathSetToSlice(set map[Path]bool) []Path {
	out := make([]Path, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out
}

// BatchScope is the handle returned by BatchLock.Acquire. It identifies a
// single nested level of a batch: Release pops exactly the level it was
// returned for. Callers must not use a scope after releasing it.
type BatchScope struct {
	lock    *BatchLock
	rule    Path
	changes *BatchChanges
}

// batchState is the bookkeeping BatchLock keeps for one currently-open
// outermost batch, keyed by its rule's root path.
type batchState struct {
	rule     Path
	depth    int
	changes  *BatchChanges
	callback FlushCallback
}

// ruleOverlaps reports whether two scheduling rules (each a resource path
// taken to stand for the chain from the workspace root down to that
// resource) conflict: either is an ancestor of, descendant of, or equal to
// the other. Genuinely disjoint rules — like "A" and "B" in spec.md's S6 —
// don't conflict and may run concurrently.
func ruleOverlaps(a, b Path) bool {
	return IsWithin(a, b) || IsWithin(b, a)
}

// BatchLock is C6: the reentrant batch lock. Acquire establishes or
// extends a batch scope; Release pops one level, flushing on the outermost
// pop. Concurrent batches with non-overlapping rules proceed independently;
// a batch whose rule overlaps an already-active batch's rule blocks until
// that batch fully releases.
type BatchLock struct {
	mu     sync.Mutex
	cond   *sync.Cond
	active map[Path]*batchState
}

// NewBatchLock creates an empty batch lock.
func NewBatchLock() *BatchLock {
	l := &BatchLock{active: make(map[Path]*batchState)}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Acquire establishes a new outermost batch scope for resource (if scope is
// nil) or extends an existing one (if scope is non-nil, in which case
// resource must be contained within scope's established rule). callback is
// only consulted when establishing a new outermost scope; it is ignored on
// nested acquisitions, matching spec.md §4.5 (the flush callback is
// registered once, at the batch's root).
func (l *BatchLock) Acquire(resource Resource, scope *BatchScope, callback FlushCallback) (*BatchScope, error) {
	if scope != nil {
		if !IsWithin(scope.rule, resource.Path) {
			return nil, &InvalidScope{Requested: resource.Path, Active: scope.rule}
		}

		l.mu.Lock()
		state := l.active[scope.rule]
		state.depth++
		l.mu.Unlock()

		return &BatchScope{lock: l, rule: scope.rule, changes: state.changes}, nil
	}

	rule := resource.Path

	l.mu.Lock()
	for {
		conflict := false
		for existingRule := range l.active {
			if ruleOverlaps(existingRule, rule) {
				conflict = true
				break
			}
		}
		if !conflict {
			break
		}
		l.cond.Wait()
	}

	state := &batchState{
		rule:     rule,
		depth:    1,
		changes:  newBatchChanges(),
		callback: callback,
	}
	l.active[rule] = state
	l.mu.Unlock()

	return &BatchScope{lock: l, rule: rule, changes: state.changes}, nil
}

// Release pops one level of scope. On the outermost release, it invokes
// the batch's flush callback exactly once and discards the accumulated
// change set even if the callback returns an error.
func (l *BatchLock) Release(scope *BatchScope, monitor interface{}) error {
	l.mu.Lock()
	state, ok := l.active[scope.rule]
	if !ok {
		l.mu.Unlock()
		return &InvalidScope{Requested: scope.rule}
	}

	state.depth--
	if state.depth > 0 {
		l.mu.Unlock()
		return nil
	}

	delete(l.active, scope.rule)
	l.cond.Broadcast()
	l.mu.Unlock()

	if state.callback == nil {
		return nil
	}
	return state.callback(state.changes, monitor)
}

// RecordResourceChanged records that r changed on scope's batch.
func (s *BatchScope) RecordResourceChanged(r Path) {
	s.changes.resources[r] = true
}

// RecordFolderChanged records that folder f changed on scope's batch.
func (s *BatchScope) RecordFolderChanged(f Path) {
	s.changes.folders[f] = true
}

// RecordIgnoreFileChanged records that f's ignore file changed on scope's
// batch.
func (s *BatchScope) RecordIgnoreFileChanged(f Path) {
	s.changes.ignoreFiles[f] = true
}

// IsWithinActiveRule tests whether r falls within this scope's established
// scheduling rule.
func (s *BatchScope) IsWithinActiveRule(r Path) bool {
	return IsWithin(s.rule, r)
}

// ActiveScopes returns the root rule of every batch currently open on l,
// for diagnostics.
func (l *BatchLock) ActiveScopes() []Path {
	l.mu.Lock()
	defer l.mu.Unlock()
	rules := make([]Path, 0, len(l.active))
	for rule := range l.active {
		rules = append(rules, rule)
	}
	return rules
}

// Package state provides index-based change tracking primitives used to
// bridge synchronous cache mutation and asynchronous change broadcast.
package state

import (
	"context"
	"errors"
	"sync"
)

// ErrTrackingTerminated indicates that tracking was terminated before a
// polling operation saw any changes.
var ErrTrackingTerminated = errors.New("tracking terminated")

// pollResponse is used to respond to a polling request within Tracker.
type pollResponse struct {
	// index is the index at the time of the response.
	index uint64
	// terminated indicates whether or not tracking was terminated at the
	// time of the response.
	terminated bool
}

// pollRequest represents a polling request within Tracker.
type pollRequest struct {
	// previousIndex is the previous index for which state information was
	// seen.
	previousIndex uint64
	// responses is used to respond to the polling request. It must be
	// buffered.
	responses chan<- pollResponse
}

// Tracker provides index-based state tracking using a condition variable. It
// is the mechanism by which the change broadcaster (pkg/wsync) lets pollers
// learn that a flush has completed without forcing every listener onto the
// goroutine that performed the flush.
type Tracker struct {
	// change is the condition variable used to track changes. It also
	// serializes and signals changes to pollRequests.
	change *sync.Cond
	// index is the current state index.
	index uint64
	// terminated indicates whether or not tracking has been terminated.
	terminated bool
	// pollRequests is the set of current pollers.
	pollRequests map[*pollRequest]bool
	// trackDone is closed to signal that the tracking loop has exited.
	trackDone chan struct{}
}

// NewTracker creates a new tracker instance with a state index of 1.
func NewTracker() *Tracker {
	tracker := &Tracker{
		change:       sync.NewCond(&sync.Mutex{}),
		index:        1,
		pollRequests: make(map[*pollRequest]bool),
		trackDone:    make(chan struct{}),
	}
	go tracker.track()
	return tracker
}

// track is the tracking loop entry point. It serves as a bridge between the
// world of condition variables and the world of channels.
func (t *Tracker) track() {
	defer close(t.trackDone)

	t.change.L.Lock()
	defer t.change.L.Unlock()

	for {
		if t.terminated {
			response := pollResponse{t.index, true}
			for r := range t.pollRequests {
				r.responses <- response
				delete(t.pollRequests, r)
			}
			return
		}

		for r := range t.pollRequests {
			if r.previousIndex != t.index {
				r.responses <- pollResponse{t.index, false}
				delete(t.pollRequests, r)
			}
		}

		t.change.Wait()
	}
}

// Terminate terminates tracking.
func (t *Tracker) Terminate() {
	t.change.L.Lock()
	t.terminated = true
	t.change.Signal()
	t.change.L.Unlock()
	<-t.trackDone
}

// NotifyOfChange increments the state index and notifies waiters.
func (t *Tracker) NotifyOfChange() {
	t.change.L.Lock()
	defer t.change.L.Unlock()

	t.index++
	if t.index == 0 {
		t.index = 1
	}

	t.change.Signal()
}

// WaitForChange polls for a state index change from the specified previous
// index. It returns the new index at which the change was seen. If tracking
// is terminated before the polling operation completes, the current state
// index is returned along with ErrTrackingTerminated. If the provided
// context is cancelled first, the current index is returned along with
// context.Canceled. A previous index of 0 requests an immediate read of the
// current index.
func (t *Tracker) WaitForChange(ctx context.Context, previousIndex uint64) (uint64, error) {
	if previousIndex == 0 {
		t.change.L.Lock()
		defer t.change.L.Unlock()
		if t.terminated {
			return t.index, ErrTrackingTerminated
		}
		return t.index, nil
	}

	t.change.L.Lock()

	if t.terminated {
		defer t.change.L.Unlock()
		return t.index, ErrTrackingTerminated
	}

	responses := make(chan pollResponse, 1)
	request := &pollRequest{previousIndex, responses}
	t.pollRequests[request] = true

	t.change.Signal()

	t.change.L.Unlock()

	select {
	case <-ctx.Done():
		t.change.L.Lock()
		delete(t.pollRequests, request)
		defer t.change.L.Unlock()
		return t.index, context.Canceled
	case response := <-responses:
		if response.terminated {
			return response.index, ErrTrackingTerminated
		}
		return response.index, nil
	}
}

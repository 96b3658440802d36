package state

import (
	"context"
	"testing"
	"time"
)

// TestTrackingLock tests that TrackingLock.Unlock notifies a waiting
// poller while UnlockWithoutNotify does not.
func TestTrackingLock(t *testing.T) {
	tracker := NewTracker()
	lock := NewTrackingLock(tracker)
	handoff := make(chan bool)

	go func() {
		firstState, err := tracker.WaitForChange(context.Background(), 1)
		if err != nil || firstState != 2 {
			handoff <- false
			return
		}
		handoff <- true

		finalState, err := tracker.WaitForChange(context.Background(), firstState)
		handoff <- (finalState == firstState && err == ErrTrackingTerminated)
	}()

	lock.Lock()
	lock.Unlock()
	select {
	case value := <-handoff:
		if !value {
			t.Fatal("received failure on state tracking")
		}
	case <-time.After(trackerTestTimeout):
		t.Fatal("timeout failure on state tracking")
	}

	// This acquisition/release shouldn't change tracked state; if it did,
	// the termination check below would observe the wrong state.
	lock.Lock()
	lock.UnlockWithoutNotify()

	tracker.Terminate()
	select {
	case value := <-handoff:
		if !value {
			t.Fatal("received failure on tracking termination")
		}
	case <-time.After(trackerTestTimeout):
		t.Fatal("timeout failure on tracking termination")
	}
}

package playback

import (
	"context"
	"sync"
)

// Rendezvous is a single-slot handoff: Wait blocks until the next Release.
// A Release with nobody waiting is dropped.
type Rendezvous struct {
	mu     sync.Mutex
	waiter chan struct{}
}

func (r *Rendezvous) Wait(ctx context.Context) error {
	ch := make(chan struct{})
	r.mu.Lock()
	r.waiter = ch
	r.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.waiter == ch {
			r.waiter = nil
			return ctx.Err()
		}
		// Release got here first; the step was taken.
		return nil
	}
}

// Release wakes the pending waiter, if any, and reports whether there was one.
func (r *Rendezvous) Release() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.waiter == nil {
		return false
	}
	close(r.waiter)
	r.waiter = nil
	return true
}

func (r *Rendezvous) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.waiter != nil
}

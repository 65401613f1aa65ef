package memoize

import (
	"context"
	"time"
)

// flight is a shared single-resolution handle for one invocation of the
// underlying function. Multiple callers hold references to the same flight,
// each observes the identical outcome.
//
// Publishing (val, err) happens-before close(done), so a reader returning
// from wait observes the final values.
type flight[V any] struct {
	done chan struct{} // closed when val/err are published
	val  V
	err  error
}

func newFlight[V any]() *flight[V] {
	return &flight[V]{done: make(chan struct{})}
}

// resolved reports whether the outcome has been published.
func (f *flight[V]) resolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// wait blocks until the outcome is published or ctx is done.
//
// Cancelling ctx abandons only this caller, the computation keeps running
// for everybody else attached to the flight.
func (f *flight[V]) wait(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// entry couples one flight with its expiration moment.
type entry[V any] struct {
	f   *flight[V]
	exp time.Time
}

package memoize

import (
	"context"
	"time"
)

type skipReadCtxKey struct{}

// WithSkipRead returns context with memoized value reads ignored.
//
// A call made with such context treats its lookup as a miss: the resident
// entry, if any, is discarded and a fresh computation is published in its
// place. Callers already attached to the old flight keep their handle.
func WithSkipRead(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipReadCtxKey{}, true)
}

// SkipRead returns true if memoized value reads are ignored in context.
func SkipRead(ctx context.Context) bool {
	_, ok := ctx.Value(skipReadCtxKey{}).(bool)
	return ok
}

// detachedContext carries the values of its parent, but not cancellation or
// deadline. The underlying function runs with a detached context so that one
// caller giving up cannot fail the outcome shared with other callers.
type detachedContext struct {
	parent context.Context
}

func (d detachedContext) Deadline() (deadline time.Time, ok bool) {
	return time.Time{}, false
}

func (d detachedContext) Done() <-chan struct{} {
	return nil
}

func (d detachedContext) Err() error {
	return nil
}

func (d detachedContext) Value(key interface{}) interface{} {
	return d.parent.Value(key)
}

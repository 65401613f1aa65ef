package memoize

import (
	"fmt"
	"sync"
	"time"
)

// Invalidator is a registry of memoized state reset triggers.
//
// Register Reset or ExpireAll of every memoized function that depends on the
// same upstream state, then call Invalidate when that state changes.
type Invalidator struct {
	sync.Mutex

	// SkipInterval defines minimal duration between two invalidations (flood protection).
	SkipInterval time.Duration

	// Callbacks contains a list of functions to call on invalidate.
	Callbacks []func()

	lastRun time.Time
}

// Add registers a reset callback.
func (i *Invalidator) Add(fn func()) {
	i.Lock()
	defer i.Unlock()

	i.Callbacks = append(i.Callbacks, fn)
}

// Invalidate triggers memoized state reset.
func (i *Invalidator) Invalidate() error {
	i.Lock()
	defer i.Unlock()

	if len(i.Callbacks) == 0 {
		return ErrNothingToInvalidate
	}

	if i.SkipInterval == 0 {
		i.SkipInterval = 15 * time.Second
	}

	if time.Since(i.lastRun) < i.SkipInterval {
		return fmt.Errorf("%w at %s, %s did not pass",
			ErrAlreadyInvalidated, i.lastRun.String(), i.SkipInterval.String())
	}

	i.lastRun = time.Now()
	for _, cb := range i.Callbacks {
		cb()
	}

	return nil
}

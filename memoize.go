package memoize

import (
	"context"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// DefaultTTL is applied when Config.TimeToLive is not positive.
//
// A missing TTL never means "never expire".
const DefaultTTL = 5 * time.Second

// Func is an underlying computation: potentially slow, potentially failing,
// with a result determined by its arguments.
//
// Arguments must be serializable for key derivation, see DeriveKey.
type Func[V any] func(ctx context.Context, args ...interface{}) (V, error)

// Config is optional configuration for New.
type Config struct {
	// Name is added to logs and stats.
	Name string

	// TimeToLive is the validity window of a successful outcome, default 5s.
	TimeToLive time.Duration

	// DeleteExpiredJobInterval is delay between two background cleanups of
	// expired entries, 0 disables the janitor. Expiration itself is always
	// checked on access, the janitor only bounds memory held by keys that
	// are never accessed again.
	DeleteExpiredJobInterval time.Duration

	// ItemsCountReportInterval is items count gauge report interval,
	// 0 disables reporting.
	ItemsCountReportInterval time.Duration

	// Logger collects messages with context.
	Logger ctxd.Logger

	// Stats tracks stats.
	Stats stats.Tracker
}

// Memoized deduplicates and caches invocations of an underlying function.
//
// For any one argument tuple at most one computation is in flight at a time,
// callers issued while it runs attach to the same pending outcome. Successful
// outcomes are served until their validity window passes, failed ones are
// never served from cache.
//
// Please use New to create instance.
type Memoized[V any] struct {
	fn Func[V]

	lock sync.Mutex // Guards data, the check-evict-publish sequence is one critical section.
	data map[string]entry[V]

	closed    chan struct{}
	closeOnce sync.Once

	config Config
	log    ctxd.Logger
	stat   stats.Tracker
}

// New creates a memoized variant of fn with optional configuration
// (only first argument is used).
func New[V any](fn Func[V], cfg ...Config) *Memoized[V] {
	config := Config{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	if config.TimeToLive <= 0 {
		config.TimeToLive = DefaultTTL
	}

	m := &Memoized[V]{
		fn:     fn,
		data:   make(map[string]entry[V]),
		closed: make(chan struct{}),
		config: config,
	}

	m.log = config.Logger
	if m.log == nil {
		m.log = ctxd.NoOpLogger{}
	}

	m.stat = config.Stats
	if m.stat == nil {
		m.stat = stats.NoOp{}
	}

	if config.DeleteExpiredJobInterval > 0 {
		go m.cleaner()
	}

	if config.Stats != nil && config.ItemsCountReportInterval > 0 {
		go m.reportItemsCount()
	}

	return m
}

// Call invokes the underlying function or joins a cached outcome for the
// same argument tuple.
//
// Errors of the underlying function are returned unmodified to every caller
// sharing the invocation, and such invocations are never served from cache
// afterwards. Cancelling ctx abandons the call, not the computation.
func (m *Memoized[V]) Call(ctx context.Context, args ...interface{}) (V, error) {
	key, err := DeriveKey(args...)
	if err != nil {
		var zero V

		return zero, err
	}

	return m.acquire(ctx, key, args).wait(ctx)
}

// acquire returns the shared flight for key, publishing a fresh one when
// there is no live entry.
//
// Lookup, expiry eviction and publish run under a single lock acquisition,
// so two concurrent callers cannot both observe a miss and publish twice
// for one key.
func (m *Memoized[V]) acquire(ctx context.Context, key string, args []interface{}) *flight[V] {
	now := time.Now()

	m.lock.Lock()

	cur, found := m.data[key]
	if found {
		if !now.Before(cur.exp) {
			delete(m.data, key)
			m.stat.Add(ctx, MetricExpired, 1, "name", m.config.Name)

			found = false
		} else if SkipRead(ctx) {
			delete(m.data, key)

			found = false
		}
	}

	if found {
		m.lock.Unlock()

		if cur.f.resolved() {
			m.stat.Add(ctx, MetricHit, 1, "name", m.config.Name)
			m.log.Debug(ctx, "memoized value hit", "name", m.config.Name, "key", key)
		} else {
			m.stat.Add(ctx, MetricJoin, 1, "name", m.config.Name)
			m.log.Debug(ctx, "joined in-flight computation", "name", m.config.Name, "key", key)
		}

		return cur.f
	}

	f := newFlight[V]()
	m.data[key] = entry[V]{f: f, exp: now.Add(m.config.TimeToLive)}
	m.lock.Unlock()

	m.stat.Add(ctx, MetricMiss, 1, "name", m.config.Name)

	go m.build(detachedContext{parent: ctx}, key, f, args)

	return f
}

// build runs the underlying function and publishes the outcome into f.
//
// On failure the entry is evicted before waiters are released, unless a newer
// flight already replaced it after a reset or skip-read, so no caller can
// observe a cached failure.
func (m *Memoized[V]) build(ctx context.Context, key string, f *flight[V], args []interface{}) {
	m.log.Debug(ctx, "building memoized value", "name", m.config.Name, "key", key)
	m.stat.Add(ctx, MetricBuild, 1, "name", m.config.Name)

	v, err := m.fn(ctx, args...)

	f.val, f.err = v, err

	if err != nil {
		m.stat.Add(ctx, MetricFailed, 1, "name", m.config.Name)
		m.log.Warn(ctx, "memoized computation failed",
			"error", err,
			"name", m.config.Name,
			"key", key)

		m.lock.Lock()
		if cur, ok := m.data[key]; ok && cur.f == f {
			delete(m.data, key)
		}
		m.lock.Unlock()
	}

	close(f.done)
}

// Reset discards every entry regardless of expiry or in-flight state.
//
// In-flight computations are not cancelled: callers already holding a handle
// observe its eventual outcome. Reset affects future lookups only. Idempotent.
func (m *Memoized[V]) Reset() {
	m.lock.Lock()
	m.data = make(map[string]entry[V])
	m.lock.Unlock()

	m.stat.Add(context.Background(), MetricReset, 1, "name", m.config.Name)
	m.log.Debug(context.Background(), "memoized entries dropped", "name", m.config.Name)
}

// ExpireAll marks all entries as expired, each key is recomputed on next access.
func (m *Memoized[V]) ExpireAll() {
	now := time.Now()

	m.lock.Lock()
	for k, e := range m.data {
		e.exp = now
		m.data[k] = e
	}
	m.lock.Unlock()
}

// Len returns the number of resident entries, including expired entries that
// were not accessed since expiration.
func (m *Memoized[V]) Len() int {
	m.lock.Lock()
	cnt := len(m.data)
	m.lock.Unlock()

	return cnt
}

// WalkFunc receives diagnostic details of one resident entry.
type WalkFunc func(key string, expiresAt time.Time, resolved bool) error

// Walk calls walkFn for a snapshot of resident entries and fails on first
// error returned by that function.
//
// Count of processed entries is returned.
func (m *Memoized[V]) Walk(walkFn WalkFunc) (int, error) {
	m.lock.Lock()
	snapshot := make(map[string]entry[V], len(m.data))

	for k, e := range m.data {
		snapshot[k] = e
	}
	m.lock.Unlock()

	n := 0

	for k, e := range snapshot {
		if err := walkFn(k, e.exp, e.f.resolved()); err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}

// Close stops background workers. Resident entries are unaffected and the
// memoized function remains usable, this is a soft close.
func (m *Memoized[V]) Close() {
	m.closeOnce.Do(func() {
		close(m.closed)
	})
}

func (m *Memoized[V]) cleaner() {
	for {
		select {
		case <-time.After(m.config.DeleteExpiredJobInterval):
			m.clearExpired()
		case <-m.closed:
			return
		}
	}
}

// clearExpired deletes expired entries with a resolved outcome. Unresolved
// flights are kept so that late joiners still share the pending computation.
func (m *Memoized[V]) clearExpired() {
	keys := make([]string, 0, 100)

	m.lock.Lock()
	now := time.Now()

	for k, e := range m.data {
		if e.exp.Before(now) && e.f.resolved() {
			keys = append(keys, k)
		}
	}

	for _, k := range keys {
		delete(m.data, k)
	}
	m.lock.Unlock()

	if len(keys) > 0 {
		m.log.Debug(context.Background(), "cleared expired memoized entries",
			"name", m.config.Name,
			"count", len(keys))
	}
}

func (m *Memoized[V]) reportItemsCount() {
	for {
		select {
		case <-time.After(m.config.ItemsCountReportInterval):
			m.stat.Set(context.Background(), MetricItems, float64(m.Len()),
				"name", m.config.Name)
		case <-m.closed:
			return
		}
	}
}

package memoize

// Metric names reported to stats tracker.
const (
	// MetricHit is a counter of calls served from a resolved resident entry.
	MetricHit = "memoize_hit"

	// MetricJoin is a counter of calls attached to an in-flight computation.
	MetricJoin = "memoize_join"

	// MetricMiss is a counter of calls that found no resident entry.
	MetricMiss = "memoize_miss"

	// MetricExpired is a counter of entries evicted on access after TTL.
	MetricExpired = "memoize_expired"

	// MetricBuild is a counter of underlying function invocations.
	MetricBuild = "memoize_build"

	// MetricFailed is a counter of failed underlying invocations.
	MetricFailed = "memoize_failed"

	// MetricReset is a counter of mass resets.
	MetricReset = "memoize_reset"

	// MetricItems is a gauge of resident entries.
	MetricItems = "memoize_items"
)

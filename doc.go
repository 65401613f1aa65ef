// Package memoize wraps slow or failure-prone functions with a time-bounded,
// concurrency-safe result cache keyed by argument values.
//
// Features:
//
//   - At most one underlying invocation per argument tuple is in flight,
//     concurrent callers attach to the shared pending outcome.
//   - The pending handle is published before the computation resolves, so
//     late arrivals join it instead of recomputing.
//   - Successful outcomes are reused for a fixed validity window, expiration
//     is checked lazily on access without a scheduler dependency.
//   - Failures propagate to every attached caller unmodified and are never
//     cached, the next call gets a clean attempt.
//   - Arguments are keyed by canonical serialization, value equality counts
//     and object identity does not.
//   - Allows logging and stats collection.
//   - Propagates context values into the computation while detaching caller
//     cancellation from the shared result.
//   - Allows mass reset and expiration (drop memoized state).
package memoize

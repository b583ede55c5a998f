package hookline

import "time"

// Metrics provides observability data for a hook registry. Counter fields
// are maintained with atomic operations; RegisteredHooks and LastEmission
// are read under the registry mutex.
type Metrics struct {
	// Dispatch Counters
	Emissions      int64 // Emit calls observed, including no-listener emits
	ListenersFired int64 // Listener invocations across all emissions
	OnceExpired    int64 // One-shot registrations consumed by dispatch

	// Registration Metrics
	RegisteredHooks int64 // Current registrations across all events

	// LastEmission is the registry clock's timestamp of the most recent
	// Emit call. Zero until the first emission.
	LastEmission time.Time
}

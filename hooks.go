package hookline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// Option configures a Hooks registry during creation.
type Option func(*config)

// config holds internal configuration for registry creation.
type config struct {
	clock clockz.Clock // Time abstraction for deterministic testing
}

// WithClock sets the clock implementation for time operations.
// Default is clockz.RealClock for production use.
// Use clockz.FakeClock for deterministic testing.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// HookOption configures a single listener registration.
type HookOption func(*hookConfig)

// hookConfig holds per-registration configuration.
type hookConfig struct {
	order int
}

// WithOrder sets the dispatch priority for a listener. Listeners fire in
// ascending order value; listeners sharing an order value fire in the order
// they were registered. Default is 0.
//
// Negative orders run before the default band, positive orders after, which
// lets independently authored plugins coordinate their position in the
// pipeline without knowing about each other.
func WithOrder(order int) HookOption {
	return func(c *hookConfig) {
		c.order = order
	}
}

// hookEntry contains a registered callback and its dispatch configuration.
type hookEntry[T, R any] struct {
	id       string         // Unique identifier for this registration
	callback Listener[T, R] // The actual callback function
	order    int            // Dispatch priority, ascending
	once     bool           // Unregister after the next emission
}

// Hooks is the hook registry. It maintains per-event ordered listener
// sequences and provides registration, removal, and emission with
// deterministic ordering and one-shot semantics.
//
// The zero state is an empty registry; absence of listeners for an event is
// the steady state, not an error. The registry holds only the event to
// listener-sequence mapping (plus observability counters); callbacks are
// owned by the registering party and held solely for dispatch.
//
// Thread Safety:
// Registry operations are protected by a mutex, and Emit invokes callbacks
// outside the lock, so listeners may safely call On, Once, Remove, or Emit
// from within their own invocation. Re-entrant mutations take effect for
// subsequent emissions only.
//
// Usage Pattern:
// Embed Hooks as a private field and expose it through an accessor:
//
//	type Renderer struct {
//	    hooks hookline.Hooks[PageEvent, string]
//	}
//
//	func (r *Renderer) Hooks() *hookline.Hooks[PageEvent, string] {
//	    return &r.hooks
//	}
type Hooks[T, R any] struct {
	clock        clockz.Clock // Time abstraction injected at creation
	hooks        map[Key][]hookEntry[T, R]
	mu           sync.Mutex
	totalHooks   int       // Tracks registration count across all events
	lastEmission time.Time // Clock timestamp of the most recent Emit

	// Metrics counters - zero initialization provides safe defaults
	emissions      int64
	listenersFired int64
	onceExpired    int64
}

// New creates an empty hook registry.
//
// Example:
//
//	// Default configuration
//	hooks := hookline.New[Page, string]()
//
//	// Deterministic clock for tests
//	hooks := hookline.New[Page, string](hookline.WithClock(fakeClock))
func New[T, R any](opts ...Option) *Hooks[T, R] {
	cfg := config{
		clock: clockz.RealClock, // default to real clock
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Hooks[T, R]{
		clock: cfg.clock,
		hooks: make(map[Key][]hookEntry[T, R]),
	}
}

// On registers a listener for the specified event and returns a handle that
// removes exactly this registration.
//
// The listener is inserted by ascending order value, after any existing
// listeners with the same order (stable on ties). Registration always
// succeeds; there are no error conditions and no limits.
func (h *Hooks[T, R]) On(event Key, listener Listener[T, R], opts ...HookOption) Hook {
	return h.register(event, listener, false, opts)
}

// Once registers a listener that fires on at most one emission. After the
// emission that dispatches it, the registration is gone; its result still
// contributes to that emission. Ordering semantics are identical to On.
func (h *Hooks[T, R]) Once(event Key, listener Listener[T, R], opts ...HookOption) Hook {
	return h.register(event, listener, true, opts)
}

func (h *Hooks[T, R]) register(event Key, listener Listener[T, R], once bool, opts []HookOption) Hook {
	cfg := hookConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	entry := hookEntry[T, R]{
		id:       h.generateID(),
		callback: listener,
		order:    cfg.order,
		once:     once,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.hooks[event]

	// Insert before the first entry with a strictly greater order. New
	// entries land after existing entries sharing their order value, which
	// keeps ties in registration order.
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].order > entry.order
	})

	entries = append(entries, hookEntry[T, R]{})
	copy(entries[i+1:], entries[i:])
	entries[i] = entry
	h.hooks[event] = entries
	h.totalHooks++

	id := entry.id
	return Hook{
		remove: func() bool {
			return h.removeHook(event, id)
		},
	}
}

// removeHook removes the registration with the given id from the event's
// sequence. Reports whether a registration was removed.
func (h *Hooks[T, R]) removeHook(event Key, id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.hooks[event]
	for i, entry := range entries {
		if entry.id == id {
			h.hooks[event] = append(entries[:i], entries[i+1:]...)

			// Clean up empty events to prevent memory leaks
			if len(h.hooks[event]) == 0 {
				delete(h.hooks, event)
			}

			h.totalHooks--
			return true
		}
	}
	return false
}

// Off removes a specific registration using its handle. Equivalent to
// calling hook.Remove. It is a no-op, not an error, if the registration is
// already gone.
func (h *Hooks[T, R]) Off(hook Hook) bool {
	return hook.Remove()
}

// Emit invokes every listener currently registered for the event, in
// ascending order value (registration order on ties), and returns their
// results positionally. With no listeners registered it returns an empty
// result, never an error.
//
// Dispatch runs against a snapshot: the listener sequence is copied and all
// one-shot registrations are stripped from the stored sequence before any
// callback is invoked. A listener that mutates the registry during its own
// invocation affects subsequent emissions only, and a one-shot listener
// that re-registers itself keeps its new registration.
//
// Emit does not recover panics: a panicking listener propagates to the
// emitter and results collected before it are discarded with the unwinding
// stack. Callers needing isolation wrap their callbacks.
func (h *Hooks[T, R]) Emit(event Key, data T) []R {
	h.mu.Lock()
	atomic.AddInt64(&h.emissions, 1)
	h.lastEmission = h.clock.Now()

	entries := h.hooks[event]
	if len(entries) == 0 {
		h.mu.Unlock()
		return nil
	}

	// Snapshot the sequence so re-entrant mutations cannot affect this
	// dispatch.
	snapshot := make([]hookEntry[T, R], len(entries))
	copy(snapshot, entries)

	// Strip one-shot registrations from the stored sequence before any
	// callback runs. They still fire from the snapshot below.
	kept := entries[:0]
	for _, entry := range entries {
		if entry.once {
			h.totalHooks--
			atomic.AddInt64(&h.onceExpired, 1)
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == 0 {
		delete(h.hooks, event)
	} else {
		h.hooks[event] = kept
	}
	h.mu.Unlock()

	// Invoke outside the lock so listeners can touch the registry.
	results := make([]R, 0, len(snapshot))
	for _, entry := range snapshot {
		results = append(results, entry.callback(data))
		atomic.AddInt64(&h.listenersFired, 1)
	}
	return results
}

// Count reports the number of listeners currently registered for the event.
func (h *Hooks[T, R]) Count(event Key) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.hooks[event])
}

// Clear removes all listeners for the specified event and reports how many
// were removed.
func (h *Hooks[T, R]) Clear(event Key) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := len(h.hooks[event])
	h.totalHooks -= count
	delete(h.hooks, event)
	return count
}

// ClearAll removes all listeners for all events and reports how many were
// removed.
func (h *Hooks[T, R]) ClearAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := h.totalHooks
	h.hooks = make(map[Key][]hookEntry[T, R])
	h.totalHooks = 0
	return count
}

// Metrics returns a snapshot of the registry's observability counters.
// Counter values are read atomically; RegisteredHooks and LastEmission are
// read under the registry mutex for consistency with On/Remove/Emit.
func (h *Hooks[T, R]) Metrics() Metrics {
	h.mu.Lock()
	registered := int64(h.totalHooks)
	last := h.lastEmission
	h.mu.Unlock()

	return Metrics{
		Emissions:       atomic.LoadInt64(&h.emissions),
		ListenersFired:  atomic.LoadInt64(&h.listenersFired),
		OnceExpired:     atomic.LoadInt64(&h.onceExpired),
		RegisteredHooks: registered,
		LastEmission:    last,
	}
}

// generateID creates a cryptographically random unique identifier for a
// registration. Randomness keeps handles unforgeable across registrations,
// so a stale handle can never remove a listener it was not issued for.
func (h *Hooks[T, R]) generateID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID if random fails
		// This should never happen in practice with crypto/rand
		return fmt.Sprintf("%d", h.clock.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

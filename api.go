// Package hookline provides a typed, ordered extension-point hook registry
// for document generation pipelines, with priority ordering, one-shot
// subscriptions, and synchronous value aggregation.
//
// A registry maps event identifiers to ordered listener sequences. Plugins
// register listeners at extension points; the pipeline emits events and
// collects every listener's return value in a deterministic priority order.
//
// Basic Usage:
//
//	// Create a registry for page events producing rendered fragments
//	hooks := hookline.New[Page, string]()
//
//	// Register listeners for events
//	hook := hooks.On("page.begin", func(p Page) string {
//		return "<!-- " + p.Title + " -->"
//	})
//
//	// Emit events and collect every listener's result, in order
//	fragments := hooks.Emit("page.begin", page)
//
//	// Later, remove the listener
//	hook.Remove()
//
// Priority Ordering:
//
//	// Lower order values fire first; ties fire in registration order
//	hooks.On("page.html", rewriteLinks, hookline.WithOrder(-10))
//	hooks.On("page.html", injectFooter) // order 0, fires after
//
// One-Shot Listeners:
//
//	// Fires on the first emission only, then unregisters itself
//	hooks.Once("render.finished", func(p Page) string {
//		return buildSearchIndex(p)
//	})
//
// Dispatch Semantics:
//
// Emit dispatches against a snapshot of the listener sequence taken before
// any callback runs. Listeners may register, remove, or emit re-entrantly;
// such mutations take effect for subsequent emissions only, never for the
// emission in progress. Listeners are invoked synchronously on the emitter's
// goroutine; if the result type is itself deferred (a channel, a future),
// interpreting it is the emitter's responsibility.
//
// Every operation is total: unknown events, empty sequences, and duplicate
// removals are valid steady states, not errors.
package hookline

// Key represents an event identifier used in listener registration and
// emission. It is a type alias for string that encourages package-level
// constants naming each extension point.
//
// Usage with constants (recommended):
//
//	const (
//		PageBegin Key = "page.begin"
//		PageEnd   Key = "page.end"
//	)
//
//	hooks.On(PageBegin, decorateTitle)
//	hooks.Emit(PageBegin, page)
type Key = string

// Listener is a callback registered for an event. It receives the event
// payload and returns a result collected by Emit.
//
// A registry instance fixes one payload type T and one result type R for
// all of its events; pipelines with heterogeneous payload shapes use one
// registry per shape.
type Listener[T, R any] func(T) R

package hookline

// Hook represents a handle to a registered listener. It provides the way to
// remove that registration from its event.
//
// Hook handles are returned by On and Once and should be stored if the
// registration needs to be removed later. Each registration gets its own
// handle: registering the same function twice yields two handles, and each
// removes only the registration it was issued for. Two structurally
// identical listeners registered independently are distinct registrations.
//
// Removal is idempotent. Calling Remove on an already-removed handle (or on
// a zero-value Hook) is a no-op that reports false; it is never an error.
//
// Example:
//
//	hook := hooks.On("page.html", injectFooter)
//
//	// Later, remove the listener
//	if !hook.Remove() {
//	    log.Println("footer hook was already removed")
//	}
type Hook struct {
	// remove performs the actual unregistration. It is set during
	// registration and cleared after the first Remove call.
	remove func() bool
}

// Remove removes this registration from its event and reports whether a
// registration was removed.
//
// After the first call the handle is inert; subsequent calls report false.
// Remove also reports false when the registration is already gone for
// another reason: it was a one-shot listener that fired, or its event was
// cleared.
func (h *Hook) Remove() bool {
	if h.remove == nil {
		return false
	}
	removed := h.remove()
	h.remove = nil
	return removed
}

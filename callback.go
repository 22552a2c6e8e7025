package canopy

// CallbackFunc is the closure body of a Callback. It receives the widget
// that fired it and the click that triggered the firing.
type CallbackFunc func(w *Widget, click ClickKind)

// Callback is a shareable event closure. Widgets hold *Callback, so one
// callback (a shared "accept" action, for instance) can be registered on
// several widgets at once. A callback never stores widget references; it
// navigates from the widget it is handed.
type Callback struct {
	fn CallbackFunc
}

// NewCallback wraps fn.
func NewCallback(fn CallbackFunc) *Callback {
	return &Callback{fn: fn}
}

// Call invokes the callback. A nil callback or body is a no-op.
func (c *Callback) Call(w *Widget, click ClickKind) {
	if c == nil || c.fn == nil {
		return
	}
	c.fn(w, click)
}

// FireCallbacks invokes every callback registered on w in registration
// order. Children added by a callback attach and run OnAdd immediately.
// Removals and InvalidateChildren rebuilds wait for the next sweep, so
// firing is safe mid-dispatch.
func FireCallbacks(w *Widget, click ClickKind) {
	cbs := w.State.callbacks
	for _, cb := range cbs {
		cb.Call(w, click)
	}
}

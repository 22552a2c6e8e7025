package canopy

// EventKind identifies a kind of input event.
type EventKind uint8

const (
	EventMouseMove    EventKind = iota // cursor moved to (X, Y)
	EventMousePress                    // button went down at the cursor
	EventMouseRelease                  // button went up at the cursor
	EventMouseDrag                     // cursor moved to (X, Y) with a button held
	EventMouseExit                     // cursor left the display
	EventKeyPress                      // bound key produced an action
)

var eventKindNames = [...]string{"mouse_move", "mouse_press", "mouse_release", "mouse_drag", "mouse_exit", "key_press"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is one input event. X and Y are absolute cursor positions in UI
// units for moves and drags; DX and DY are filled in by the router from the
// previous cursor position.
type Event struct {
	Kind   EventKind
	X, Y   float64
	DX, DY float64
	Click  ClickKind
	Action InputAction
}

// MouseMove returns a move event to (x, y).
func MouseMove(x, y float64) Event {
	return Event{Kind: EventMouseMove, X: x, Y: y}
}

// MouseDrag returns a drag event to (x, y) with click held.
func MouseDrag(click ClickKind, x, y float64) Event {
	return Event{Kind: EventMouseDrag, Click: click, X: x, Y: y}
}

// MousePress returns a press event at the current cursor.
func MousePress(click ClickKind) Event {
	return Event{Kind: EventMousePress, Click: click}
}

// MouseRelease returns a release event at the current cursor.
func MouseRelease(click ClickKind) Event {
	return Event{Kind: EventMouseRelease, Click: click}
}

// MouseExit returns the event sent when the cursor leaves the display.
func MouseExit() Event {
	return Event{Kind: EventMouseExit}
}

// KeyPress returns a key event for action.
func KeyPress(action InputAction) Event {
	return Event{Kind: EventKeyPress, Action: action}
}

// positional reports whether the event is routed by cursor position.
func (e Event) positional() bool {
	return e.Kind != EventKeyPress && e.Kind != EventMouseExit
}

// --- Dispatch ---

// Dispatch routes ev immediately. Returns true when a widget consumed it.
// Most callers queue with Push instead and let Update dispatch.
func (s *Scene) Dispatch(ev Event) bool {
	switch ev.Kind {
	case EventMouseMove, EventMouseDrag:
		if !s.inDisplay(ev.X, ev.Y) {
			return false
		}
		if s.cursorValid {
			ev.DX, ev.DY = ev.X-s.cursorX, ev.Y-s.cursorY
		}
		s.cursorX, s.cursorY, s.cursorValid = ev.X, ev.Y, true
	case EventMousePress, EventMouseRelease:
		if !s.cursorValid {
			return false
		}
		ev.X, ev.Y = s.cursorX, s.cursorY
	case EventMouseExit:
		s.cursorValid = false
	}
	s.stats.dispatched++

	scope := s.modalScope()
	s.updateHover(scope, ev)

	var consumed bool
	switch {
	case ev.Kind == EventMouseExit:
		consumed = s.fireExits(s.root)
	default:
		consumed = s.dispatchTo(scope, ev)
		for p := scope.parent; !consumed && p != nil; p = p.parent {
			consumed = s.offer(p, ev)
		}
	}
	if ev.Kind == EventMouseRelease {
		s.clearPressed(s.root)
	}
	return consumed
}

func (s *Scene) inDisplay(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(s.width) && y < float64(s.height)
}

// eligible reports whether w may receive input.
func eligible(w *Widget) bool {
	return w.State.visible && w.State.enabled && !w.markedForRemoval && !w.removed
}

// modalScope returns the last visible modal widget in document order, or
// the root when none is attached.
func (s *Scene) modalScope() *Widget {
	scope := s.root
	s.root.Walk(func(w *Widget) bool {
		if w.markedForRemoval || !w.State.visible {
			return false
		}
		if w.State.modal {
			scope = w
		}
		return true
	})
	return scope
}

// dispatchTo offers ev to w's children top-most first, then to w itself.
func (s *Scene) dispatchTo(w *Widget, ev Event) bool {
	if ev.Kind == EventMousePress && w.State.InBounds(ev.X, ev.Y) {
		w.State.pressed = true
	}
	children := w.children
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if !eligible(c) {
			continue
		}
		if ev.positional() && !c.State.InBounds(ev.X, ev.Y) {
			continue
		}
		if s.dispatchTo(c, ev) {
			return true
		}
	}
	return s.offer(w, ev)
}

// offer calls the hook on w's kind matching ev.
func (s *Scene) offer(w *Widget, ev Event) bool {
	var consumed bool
	switch ev.Kind {
	case EventMouseMove:
		if h, ok := w.kind.(MouseMover); ok {
			consumed = h.OnMouseMove(w, ev.DX, ev.DY)
		}
	case EventMouseDrag:
		if h, ok := w.kind.(MouseDragger); ok {
			consumed = h.OnMouseDrag(w, ev.Click, ev.DX, ev.DY)
		}
	case EventMousePress:
		if h, ok := w.kind.(MousePresser); ok {
			consumed = h.OnMousePress(w, ev.Click)
		}
	case EventMouseRelease:
		if h, ok := w.kind.(MouseReleaser); ok {
			consumed = h.OnMouseRelease(w, ev.Click)
		}
	case EventKeyPress:
		if h, ok := w.kind.(KeyPresser); ok {
			consumed = h.OnKeyPress(w, ev.Action)
		}
	}
	if consumed {
		s.emit(w, ev)
	}
	return consumed
}

// updateHover fires enter and exit hooks for widgets whose mouse-inside
// state changed. Widgets outside scope count as not under the cursor.
func (s *Scene) updateHover(scope *Widget, ev Event) {
	if ev.Kind != EventMouseMove && ev.Kind != EventMouseDrag {
		return
	}
	s.hover(s.root, scope, ev.X, ev.Y, true)
}

func (s *Scene) hover(w, scope *Widget, x, y float64, parentOK bool) {
	ok := parentOK && eligible(w)
	inside := ok && w.State.InBounds(x, y) && inScope(w, scope)
	if inside != w.State.mouseInside {
		w.State.mouseInside = inside
		if inside {
			if h, ok := w.kind.(MouseEnterer); ok {
				h.OnMouseEnter(w)
			}
		} else if h, ok := w.kind.(MouseExiter); ok {
			h.OnMouseExit(w)
		}
	}
	children := w.children
	for _, c := range children {
		s.hover(c, scope, x, y, ok)
	}
}

// inScope reports whether w is scope, inside scope, or an ancestor of scope.
func inScope(w, scope *Widget) bool {
	return isAncestor(scope, w) || isAncestor(w, scope)
}

// fireExits clears mouse-inside everywhere, firing exit hooks.
func (s *Scene) fireExits(root *Widget) bool {
	consumed := false
	root.Walk(func(w *Widget) bool {
		if !w.State.mouseInside {
			return true
		}
		w.State.mouseInside = false
		if h, ok := w.kind.(MouseExiter); ok && h.OnMouseExit(w) {
			consumed = true
			s.emit(w, Event{Kind: EventMouseExit})
		}
		return true
	})
	return consumed
}

func (s *Scene) clearPressed(root *Widget) {
	root.Walk(func(w *Widget) bool {
		w.State.pressed = false
		return true
	})
}

// --- Event sink ---

// RoutedEvent describes an event consumed by a widget.
type RoutedEvent struct {
	Event
	WidgetID uint32
	ThemeID  string
}

// EventSink receives every consumed event, for bridges such as an ECS world.
type EventSink interface {
	EmitEvent(ev RoutedEvent)
}

// SetEventSink sets the optional consumer of routed events.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Scene) emit(w *Widget, ev Event) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(RoutedEvent{Event: ev, WidgetID: w.ID, ThemeID: w.FullThemeID()})
}

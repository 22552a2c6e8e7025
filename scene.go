package canopy

import "time"

// Scene owns the widget tree and runs the frame loop: queued input is
// dispatched, structural changes are swept, layouts are recomputed, kinds
// are updated, and the tree is drawn.
type Scene struct {
	root  *Widget
	theme Theme
	atlas *SpriteAtlas
	sink  EventSink
	debug bool

	width, height int

	queue     []Event
	queueNext []Event

	cursorX, cursorY float64
	cursorValid      bool

	mouseOver    *Widget
	mouseOverKey string

	runner *InputRunner
	stats  debugStats
}

// NewScene attaches root to a new scene covering a display of the given
// size in UI units. theme may be nil, in which case every widget uses the
// default entry and keeps the geometry set in code.
func NewScene(root *Widget, width, height int, theme Theme) *Scene {
	if root == nil {
		panic("canopy: scene root must not be nil")
	}
	if root.parent != nil || root.scene != nil {
		panic("canopy: scene root is already owned")
	}
	s := &Scene{root: root, theme: theme, width: width, height: height}
	root.scene = s
	root.State.PlaceAt(0, 0)
	root.State.SetSize(width, height)
	root.InvalidateLayout()
	s.sweep()
	return s
}

// Root returns the root widget.
func (s *Scene) Root() *Widget { return s.root }

// DisplaySize returns the display extent in UI units.
func (s *Scene) DisplaySize() (int, int) { return s.width, s.height }

// Resize changes the display extent and relays out the whole tree.
func (s *Scene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.root.State.SetSize(width, height)
	s.invalidateAll()
}

// SetTheme swaps the theme and re-resolves every widget's entry.
func (s *Scene) SetTheme(theme Theme) {
	s.theme = theme
	s.root.Walk(func(w *Widget) bool {
		w.theme = nil
		return true
	})
	s.invalidateAll()
}

func (s *Scene) invalidateAll() {
	s.root.Walk(func(w *Widget) bool {
		w.layoutInvalid = true
		return true
	})
}

// SetAtlas sets the sprite atlas widget kinds draw theme sprites from.
func (s *Scene) SetAtlas(a *SpriteAtlas) { s.atlas = a }

// Atlas returns the scene's sprite atlas, which may be nil.
func (s *Scene) Atlas() *SpriteAtlas { return s.atlas }

// Cursor returns the last cursor position and whether it is on the display.
func (s *Scene) Cursor() (x, y float64, ok bool) {
	return s.cursorX, s.cursorY, s.cursorValid
}

// Push queues ev for dispatch at the next Update. Events pushed while the
// queue is being drained wait for the following frame.
func (s *Scene) Push(ev Event) {
	s.queueNext = append(s.queueNext, ev)
}

// Pending returns the number of queued events.
func (s *Scene) Pending() int { return len(s.queueNext) }

// Update runs one frame of input and bookkeeping. millis is the time
// elapsed since the previous frame.
func (s *Scene) Update(millis uint32) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
		s.stats = debugStats{}
	}

	if s.runner != nil {
		s.runner.step(s)
	}

	s.queue, s.queueNext = s.queueNext, s.queue[:0]
	for _, ev := range s.queue {
		s.Dispatch(ev)
	}

	if s.debug {
		s.stats.dispatchTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sweep()

	if s.debug {
		s.stats.sweepTime = time.Since(t0)
		t0 = time.Now()
	}

	s.updateKinds(s.root, millis)

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		s.stats.widgetCount = s.countWidgets()
		s.debugLog()
	}
}

// sweep applies structural changes: removals, rebuilds and attaches, then
// pending layouts.
func (s *Scene) sweep() {
	s.stats.removed += s.root.sweepRemovals()
	s.root.attach(s)
	// Rebuilt parents drop their children in attach.
	if s.mouseOver != nil && s.mouseOver.removed {
		s.mouseOver = nil
		s.mouseOverKey = ""
	}
	s.stats.laidOut += s.root.layoutSweep()
}

// Sweep runs the structural phase outside of Update, for callers that
// build a tree and need geometry before the first frame.
func (s *Scene) Sweep() { s.sweep() }

func (s *Scene) updateKinds(w *Widget, millis uint32) {
	if w.markedForRemoval {
		return
	}
	if u, ok := w.kind.(Updater); ok {
		u.Update(w, millis)
	}
	children := w.children
	for _, c := range children {
		s.updateKinds(c, millis)
	}
}

// Draw renders every visible widget in graphics mode, parents before
// children.
func (s *Scene) Draw(r GraphicsRenderer, millis uint32) {
	s.drawGraphics(s.root, r, millis)
}

func (s *Scene) drawGraphics(w *Widget, r GraphicsRenderer, millis uint32) {
	if !w.State.visible || w.markedForRemoval {
		return
	}
	if d, ok := w.kind.(GraphicsDrawer); ok {
		d.DrawGraphicsMode(r, w, millis)
	}
	for _, c := range w.children {
		s.drawGraphics(c, r, millis)
	}
}

// DrawText renders every visible widget onto a character grid.
func (s *Scene) DrawText(r TextRenderer) {
	s.drawText(s.root, r)
}

func (s *Scene) drawText(w *Widget, r TextRenderer) {
	if !w.State.visible || w.markedForRemoval {
		return
	}
	if d, ok := w.kind.(TextDrawer); ok {
		d.DrawTextMode(r, w)
	}
	for _, c := range w.children {
		s.drawText(c, r)
	}
}

// Done reports whether the root has been marked for removal, which ends
// the scene.
func (s *Scene) Done() bool { return s.root.markedForRemoval }

// --- Hover widget ---

// SetMouseOver shows a transient hover widget keyed by key. When key
// matches the current hover widget nothing changes and build is not
// called; otherwise the old widget is marked for removal and build's
// result is attached to the root. Returns the current hover widget.
func (s *Scene) SetMouseOver(key string, build func() *Widget) *Widget {
	if s.mouseOver != nil && !s.mouseOver.markedForRemoval && !s.mouseOver.removed && s.mouseOverKey == key {
		return s.mouseOver
	}
	if s.mouseOver != nil && !s.mouseOver.removed {
		s.mouseOver.MarkForRemoval()
	}
	w := build()
	s.root.AddChild(w)
	s.mouseOver = w
	s.mouseOverKey = key
	return w
}

// ClearMouseOver removes the hover widget, if any.
func (s *Scene) ClearMouseOver() {
	if s.mouseOver != nil {
		s.mouseOver.MarkForRemoval()
	}
	s.mouseOver = nil
	s.mouseOverKey = ""
}

// MouseOver returns the current hover widget and its key.
func (s *Scene) MouseOver() (*Widget, string) {
	return s.mouseOver, s.mouseOverKey
}

// --- Debug ---

// SetDebugMode enables or disables debug mode. When enabled, misuse of
// removed widgets and double ownership panic, tree depth and child count
// warnings are printed, and per-frame stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that widget
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

func (s *Scene) countWidgets() int {
	n := 0
	s.root.Walk(func(*Widget) bool {
		n++
		return true
	})
	return n
}

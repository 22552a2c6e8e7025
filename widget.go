package canopy

import "fmt"

// widgetIDCounter is a plain counter; canopy runs on one goroutine.
var widgetIDCounter uint32

func nextWidgetID() uint32 {
	widgetIDCounter++
	return widgetIDCounter
}

// Widget is one node of the retained UI tree. A parent exclusively owns its
// children; the parent field is a back-reference used only for upward
// navigation and is cleared whenever the widget is detached.
//
// Structural changes requested from event handlers are flags
// (MarkForRemoval, InvalidateChildren) applied by the scene's sweep phase,
// so handlers never mutate a child list that is being iterated.
type Widget struct {
	ID    uint32
	State WidgetState

	kind    WidgetKind
	themeID string
	theme   *ThemeEntry

	parent   *Widget
	children []*Widget

	// scene is set on the root widget only.
	scene *Scene

	markedForRemoval bool
	layoutInvalid    bool
	childrenInvalid  bool
	added            bool
	removed          bool
}

// WithTheme creates a widget pairing kind with the theme id used to look up
// its layout and style.
func WithTheme(kind WidgetKind, themeID string) *Widget {
	if kind == nil {
		panic("canopy: widget kind must not be nil")
	}
	return &Widget{
		ID:            nextWidgetID(),
		State:         newWidgetState(),
		kind:          kind,
		themeID:       themeID,
		layoutInvalid: true,
	}
}

// WithDefaults creates a widget whose theme id is the kind's name.
func WithDefaults(kind WidgetKind) *Widget {
	return WithTheme(kind, kind.Name())
}

// Empty creates a container widget with no behavior of its own.
func Empty(themeID string) *Widget {
	return WithTheme(emptyKind{name: themeID}, themeID)
}

// Kind returns the widget's behavior.
func (w *Widget) Kind() WidgetKind { return w.kind }

// ThemeID returns the id this widget was created with.
func (w *Widget) ThemeID() string { return w.themeID }

// Theme returns the resolved theme entry. Before the widget is attached to a
// scene this is the default entry.
func (w *Widget) Theme() *ThemeEntry {
	if w.theme == nil {
		return &defaultThemeEntry
	}
	return w.theme
}

// FullThemeID returns the dotted path of theme ids from the root.
func (w *Widget) FullThemeID() string {
	if w.parent == nil {
		return w.themeID
	}
	return w.parent.FullThemeID() + "." + w.themeID
}

func (w *Widget) String() string {
	return fmt.Sprintf("Widget(%d %s)", w.ID, w.themeID)
}

// --- Tree manipulation ---

// AddChild appends child, transferring ownership to w. Adding a widget that
// already has a parent is a construction bug: it is logged and ignored, or
// panics in debug mode. Panics if child is nil or an ancestor of w.
func (w *Widget) AddChild(child *Widget) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if globalDebug {
		debugCheckRemoved(w, "AddChild (parent)")
		debugCheckRemoved(child, "AddChild (child)")
	}
	if isAncestor(child, w) {
		panic("canopy: adding child would create a cycle")
	}
	if child.parent != nil || child.scene != nil {
		if globalDebug {
			panic(fmt.Sprintf("canopy: %v already owned by %v", child, child.parent))
		}
		logger.Error("widget already has a parent; not added",
			"child", child.String(), "parent", w.String())
		return
	}
	child.parent = w
	w.children = append(w.children, child)
	child.layoutInvalid = true
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(w)
	}
	// Grafting onto a live tree runs OnAdd right away so the subtree is
	// complete before the next dispatch.
	if w.added && !w.removed {
		if s := w.Scene(); s != nil {
			child.attach(s)
		}
	}
}

// AddChildren appends each widget in order.
func (w *Widget) AddChildren(children ...*Widget) {
	for _, c := range children {
		w.AddChild(c)
	}
}

// MarkForRemoval flags the widget and its subtree for removal at the next
// sweep. Safe to call from any event handler or callback.
func (w *Widget) MarkForRemoval() {
	w.markedForRemoval = true
}

// IsMarkedForRemoval reports whether the widget or any ancestor is flagged.
// Flagged widgets receive no further input or draw calls.
func (w *Widget) IsMarkedForRemoval() bool {
	for p := w; p != nil; p = p.parent {
		if p.markedForRemoval {
			return true
		}
	}
	return false
}

// InvalidateLayout schedules geometry recomputation for this widget and its
// subtree at the next layout sweep. Idempotent.
func (w *Widget) InvalidateLayout() {
	w.layoutInvalid = true
}

// IsLayoutInvalid reports whether a layout is pending.
func (w *Widget) IsLayoutInvalid() bool { return w.layoutInvalid }

// InvalidateChildren schedules a rebuild: at the next sweep every child is
// dropped and the kind's OnAdd runs again to produce a fresh set. Layout is
// invalidated too. Idempotent.
func (w *Widget) InvalidateChildren() {
	w.childrenInvalid = true
	w.layoutInvalid = true
}

// IsRemoved reports whether the sweep has dropped this widget.
func (w *Widget) IsRemoved() bool { return w.removed }

// --- Navigation ---

// Parent returns the owning widget, or nil for a root or detached widget.
func (w *Widget) Parent() *Widget { return w.parent }

// Root walks parent links to the top of the tree.
func (w *Widget) Root() *Widget {
	r := w
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// GoUpTree returns the ancestor levels above w. Walking past the root is a
// construction bug and panics.
func (w *Widget) GoUpTree(levels int) *Widget {
	p := w
	for i := 0; i < levels; i++ {
		if p.parent == nil {
			panic(fmt.Sprintf("canopy: %v has fewer than %d ancestors", w, levels))
		}
		p = p.parent
	}
	return p
}

// Scene returns the scene the widget is attached to, or nil.
func (w *Widget) Scene() *Scene {
	return w.Root().scene
}

// IsAttached reports whether the widget is reachable from a scene root.
func (w *Widget) IsAttached() bool {
	return !w.removed && w.Scene() != nil
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (w *Widget) Children() []*Widget { return w.children }

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int { return len(w.children) }

// ChildAt returns the child at the given index.
func (w *Widget) ChildAt(index int) *Widget { return w.children[index] }

// FindChild returns the first direct child created with themeID.
func (w *Widget) FindChild(themeID string) *Widget {
	for _, c := range w.children {
		if c.themeID == themeID {
			return c
		}
	}
	return nil
}

// --- Sweep phases ---

// sweepRemovals drops every child subtree whose root is flagged and recurses
// into the survivors, all in one pass. Returns the number of widgets dropped.
func (w *Widget) sweepRemovals() int {
	dropped := 0
	kept := w.children[:0]
	for _, c := range w.children {
		if c.markedForRemoval {
			dropped += c.drop()
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(w.children); i++ {
		w.children[i] = nil
	}
	if len(kept) != len(w.children) {
		w.layoutInvalid = true
	}
	w.children = kept
	for _, c := range kept {
		dropped += c.sweepRemovals()
	}
	return dropped
}

// drop detaches the subtree rooted at w, firing OnRemove hooks bottom-up.
func (w *Widget) drop() int {
	n := 1
	for _, c := range w.children {
		n += c.drop()
	}
	if r, ok := w.kind.(Remover); ok {
		r.OnRemove(w)
	}
	w.children = nil
	w.parent = nil
	w.removed = true
	return n
}

// attach runs OnAdd for widgets that have not been added yet and rebuilds
// widgets whose children were invalidated, top-down.
func (w *Widget) attach(s *Scene) {
	if w.childrenInvalid {
		for _, c := range w.children {
			c.drop()
		}
		w.children = nil
		w.added = false
		w.childrenInvalid = false
	}
	if w.theme == nil {
		w.theme = s.resolveTheme(w)
		if w.theme.Text != "" && w.State.text == "" {
			w.State.SetText(w.theme.Text)
		}
	}
	if !w.added {
		w.added = true
		if a, ok := w.kind.(Adder); ok {
			for _, c := range a.OnAdd(w) {
				w.AddChild(c)
			}
		}
		w.layoutInvalid = true
	}
	children := w.children
	for i := 0; i < len(children); i++ {
		children[i].attach(s)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is w or an ancestor of w.
func isAncestor(candidate, w *Widget) bool {
	for p := w; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Walk visits w and every descendant depth-first in child order. Returning
// false from fn skips that widget's subtree.
func (w *Widget) Walk(fn func(*Widget) bool) {
	if !fn(w) {
		return
	}
	for _, c := range w.children {
		c.Walk(fn)
	}
}

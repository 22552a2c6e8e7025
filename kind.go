package canopy

import "fmt"

// WidgetKind is the behavior attached to a widget. Name is the only required
// method; it supplies the default theme id. Every other capability is an
// optional interface below, checked at call time. A kind that does not
// implement a hook gets a no-op.
type WidgetKind interface {
	Name() string
}

// Layouter replaces the default layout. Implementations normally call
// w.DoSelfLayout and then place or lay out children themselves.
type Layouter interface {
	Layout(w *Widget)
}

// Adder is called once when the widget is attached to a scene, and again
// after each InvalidateChildren. The returned widgets are grafted as
// children in order.
type Adder interface {
	OnAdd(w *Widget) []*Widget
}

// Remover is called when the removal sweep drops the widget.
type Remover interface {
	OnRemove(w *Widget)
}

// Updater advances duration-based state once per frame.
type Updater interface {
	Update(w *Widget, millis uint32)
}

// GraphicsDrawer draws the widget with a pixel renderer.
type GraphicsDrawer interface {
	DrawGraphicsMode(r GraphicsRenderer, w *Widget, millis uint32)
}

// TextDrawer draws the widget onto a character grid.
type TextDrawer interface {
	DrawTextMode(r TextRenderer, w *Widget)
}

// Mouse and keyboard hooks return true when the event is consumed, which
// stops propagation to ancestors.

type MouseMover interface {
	OnMouseMove(w *Widget, dx, dy float64) bool
}

type MousePresser interface {
	OnMousePress(w *Widget, click ClickKind) bool
}

type MouseReleaser interface {
	OnMouseRelease(w *Widget, click ClickKind) bool
}

type MouseDragger interface {
	OnMouseDrag(w *Widget, click ClickKind, dx, dy float64) bool
}

type MouseEnterer interface {
	OnMouseEnter(w *Widget) bool
}

type MouseExiter interface {
	OnMouseExit(w *Widget) bool
}

type KeyPresser interface {
	OnKeyPress(w *Widget, action InputAction) bool
}

// KindAs recovers the concrete kind of w. The caller must know the kind
// out of band; a mismatch is a construction bug and panics.
func KindAs[T WidgetKind](w *Widget) T {
	k, ok := w.kind.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("canopy: widget %q has kind %T, not %T", w.themeID, w.kind, zero))
	}
	return k
}

// TryKindAs is the non-panicking form of KindAs for callers probing an
// unknown widget.
func TryKindAs[T WidgetKind](w *Widget) (T, bool) {
	k, ok := w.kind.(T)
	return k, ok
}

// emptyKind is the behavior of plain container widgets.
type emptyKind struct {
	name string
}

func (k emptyKind) Name() string { return k.name }

package view

import (
	"unicode/utf8"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/area"
	"github.com/phanxgames/canopy/widgets"
)

// Action is one thing the player can do at a tile.
type Action struct {
	Label string
	Fire  func()
}

// ActionProvider lists the actions available at an area tile. The first
// action is the default fired by a left click.
type ActionProvider interface {
	ActionsAt(state *area.AreaState, x, y int) []Action
}

// ActionProviderFunc adapts a function to ActionProvider.
type ActionProviderFunc func(state *area.AreaState, x, y int) []Action

func (f ActionProviderFunc) ActionsAt(state *area.AreaState, x, y int) []Action {
	return f(state, x, y)
}

// DefaultActions offers a move for the player entity, centered on the
// target tile, when the move is allowed.
var DefaultActions ActionProvider = ActionProviderFunc(moveActions)

func moveActions(state *area.AreaState, x, y int) []Action {
	pc := state.PC()
	if pc == nil {
		return nil
	}
	n := pc.Size().Size
	tx, ty := x-n/2, y-n/2
	if !pc.CanMoveTo(state, tx, ty) {
		return nil
	}
	return []Action{{
		Label: "Move",
		Fire:  func() { pc.MoveTo(state, tx, ty) },
	}}
}

// ActionMenu is a popup listing actions as buttons, anchored at a cursor
// position. It closes when an action fires, when the cursor leaves it,
// or on Back.
type ActionMenu struct {
	actions []Action
	x, y    int
}

func NewActionMenu(actions []Action, x, y int) *ActionMenu {
	return &ActionMenu{actions: actions, x: x, y: y}
}

func (m *ActionMenu) Name() string { return "action_menu" }

// Actions returns the menu's actions in order.
func (m *ActionMenu) Actions() []Action { return m.actions }

// IsDefaultValid reports whether there is a default action.
func (m *ActionMenu) IsDefaultValid() bool { return len(m.actions) > 0 }

// FireDefault fires the first action, if any.
func (m *ActionMenu) FireDefault() {
	if m.IsDefaultValid() {
		m.actions[0].Fire()
	}
}

func (m *ActionMenu) OnAdd(w *canopy.Widget) []*canopy.Widget {
	w.State.PlaceAt(m.x, m.y)
	if len(m.actions) == 0 {
		none := canopy.WithTheme(widgets.NewLabel("No actions"), "no_actions")
		return []*canopy.Widget{none}
	}
	children := make([]*canopy.Widget, 0, len(m.actions))
	for _, a := range m.actions {
		fire := a.Fire
		b := canopy.WithTheme(widgets.NewTextButton(a.Label), "action_button")
		b.State.AddCallback(canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
			fire()
			if p := b.Parent(); p != nil {
				p.MarkForRemoval()
			}
		}))
		children = append(children, b)
	}
	return children
}

// Layout stacks the entries one row each when the theme leaves the
// geometry to code, then keeps the menu on the display.
func (m *ActionMenu) Layout(w *canopy.Widget) {
	w.DoSelfLayout()
	if w.Theme().IsFallback() {
		width := 0
		for _, c := range w.Children() {
			width = max(width, utf8.RuneCountInString(entryLabel(c))+2)
		}
		w.State.SetSize(width, len(w.Children()))
	}
	if s := w.Scene(); s != nil {
		dw, dh := s.DisplaySize()
		p := w.State.Position
		x := max(0, min(p.X, dw-w.State.Size.Width))
		y := max(0, min(p.Y, dh-w.State.Size.Height))
		w.State.PlaceAt(x, y)
	}
	if !w.Theme().IsFallback() {
		w.DoChildrenLayout()
		return
	}
	inner := w.State.InnerBounds()
	for i, c := range w.Children() {
		c.State.SetPosition(inner.X, inner.Y+i)
		c.State.SetSize(inner.Width, 1)
		c.LayoutNow()
	}
}

func entryLabel(w *canopy.Widget) string {
	if l, ok := canopy.TryKindAs[*widgets.Button](w); ok {
		return l.Text(w)
	}
	if l, ok := canopy.TryKindAs[*widgets.Label](w); ok {
		return l.Text(w)
	}
	return ""
}

func (m *ActionMenu) OnMouseExit(w *canopy.Widget) bool {
	w.MarkForRemoval()
	return true
}

func (m *ActionMenu) OnKeyPress(w *canopy.Widget, action canopy.InputAction) bool {
	if action == canopy.ActionBack {
		w.MarkForRemoval()
		return true
	}
	return false
}

func (m *ActionMenu) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	canopy.DrawBackground(r, w)
}

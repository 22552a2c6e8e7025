package view

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/area"
	"github.com/phanxgames/canopy/widgets"
)

const (
	entityDescription = "#name#\n?faction #faction#\nHP: #hp#\n?effects #effects#"
	propDescription   = "#name#"
)

// EntityMouseover describes the entity under the cursor. Its text args
// (name, faction, hp, effects) are set on a "description" text area.
type EntityMouseover struct {
	entity      *area.EntityState
	x, y        int
	description *canopy.Widget
}

// NewEntityMouseover returns a mouse-over for e whose top edge is
// centered on (x, y).
func NewEntityMouseover(e *area.EntityState, x, y int) *EntityMouseover {
	return &EntityMouseover{entity: e, x: x, y: y}
}

func (m *EntityMouseover) Name() string { return "entity_mouseover" }

// Entity returns the described entity.
func (m *EntityMouseover) Entity() *area.EntityState { return m.entity }

func (m *EntityMouseover) OnAdd(w *canopy.Widget) []*canopy.Widget {
	d := canopy.WithTheme(widgets.NewTextArea(), "description")
	if w.Theme().IsFallback() {
		d.State.SetText(entityDescription)
	}
	e := m.entity
	d.State.AddTextArg("name", e.Actor.Name)
	if e.Actor.Faction != "" {
		d.State.AddTextArg("faction", e.Actor.Faction)
	}
	d.State.AddTextArg("hp", strconv.Itoa(e.HP()))
	if effects := e.Effects(); len(effects) > 0 {
		names := make([]string, len(effects))
		for i, ef := range effects {
			names[i] = ef.Name()
		}
		d.State.AddTextArg("effects", strings.Join(names, ", "))
	}
	m.description = d
	return []*canopy.Widget{d}
}

// MoveTo re-anchors the mouse-over, relaying it out when the anchor
// changed.
func (m *EntityMouseover) MoveTo(w *canopy.Widget, x, y int) {
	if m.x != x || m.y != y {
		m.x, m.y = x, y
		w.InvalidateLayout()
	}
}

func (m *EntityMouseover) Layout(w *canopy.Widget) {
	layoutMouseover(w, m.description, m.x, m.y)
}

func (m *EntityMouseover) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	canopy.DrawBackground(r, w)
}

// PropMouseover names the prop under the cursor.
type PropMouseover struct {
	state       *area.AreaState
	index       int
	x, y        int
	description *canopy.Widget
}

// NewPropMouseover returns a mouse-over for the prop at index whose top
// edge is centered on (x, y).
func NewPropMouseover(state *area.AreaState, index, x, y int) *PropMouseover {
	return &PropMouseover{state: state, index: index, x: x, y: y}
}

func (m *PropMouseover) Name() string { return "prop_mouseover" }

// Index returns the described prop's index in the area.
func (m *PropMouseover) Index() int { return m.index }

func (m *PropMouseover) OnAdd(w *canopy.Widget) []*canopy.Widget {
	d := canopy.WithTheme(widgets.NewTextArea(), "description")
	if w.Theme().IsFallback() {
		d.State.SetText(propDescription)
	}
	if p := m.state.Prop(m.index); p != nil {
		d.State.AddTextArg("name", p.Prop.Name)
	} else {
		canopy.Logger().Warn("mouse-over for missing prop", "index", m.index)
	}
	m.description = d
	return []*canopy.Widget{d}
}

// MoveTo re-anchors the mouse-over, relaying it out when the anchor
// changed.
func (m *PropMouseover) MoveTo(w *canopy.Widget, x, y int) {
	if m.x != x || m.y != y {
		m.x, m.y = x, y
		w.InvalidateLayout()
	}
}

func (m *PropMouseover) Layout(w *canopy.Widget) {
	layoutMouseover(w, m.description, m.x, m.y)
}

func (m *PropMouseover) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	canopy.DrawBackground(r, w)
}

// layoutMouseover sizes w to its description when the theme leaves the
// geometry to code, then centers it horizontally on x with its top at y,
// kept on the display.
func layoutMouseover(w, description *canopy.Widget, x, y int) {
	w.DoSelfLayout()
	fallback := w.Theme().IsFallback()
	if fallback && description != nil {
		lines := strings.Split(description.State.ExpandText(), "\n")
		width := 0
		for _, l := range lines {
			width = max(width, utf8.RuneCountInString(l))
		}
		w.State.SetSize(width, len(lines))
	}
	px := x - w.State.Size.Width/2
	py := y
	if s := w.Scene(); s != nil {
		dw, dh := s.DisplaySize()
		px = max(0, min(px, dw-w.State.Size.Width))
		py = max(0, min(py, dh-w.State.Size.Height))
	}
	w.State.PlaceAt(px, py)
	if fallback && description != nil {
		inner := w.State.InnerBounds()
		description.State.SetPosition(inner.X, inner.Y)
		description.State.SetSize(inner.Width, inner.Height)
		description.LayoutNow()
		return
	}
	w.DoChildrenLayout()
}

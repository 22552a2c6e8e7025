// Package view holds the game screens built on canopy: the area view with
// its render caches, hover widgets and action menu, the character
// selector and the ability pane.
package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/area"
)

const (
	// TileCacheTextureSize is the edge in pixels of each terrain texture.
	TileCacheTextureSize = 2048
	// TileSize is the edge in pixels of one tile in the terrain textures.
	TileSize = 16

	VisibilityTextureID = "__visibility__"
	BaseLayerID         = "base_layer"
	AerialLayerID       = "aerial_layer"
	EntityTextureID     = "__entities__"
)

// cacheTiles is the number of tiles along each edge of a terrain texture.
const cacheTiles = TileCacheTextureSize / TileSize

const (
	minZoom  = 0.5
	maxZoom  = 8
	zoomStep = 0.5
)

type hoverSprite struct {
	sprite     string
	x, y, w, h int
	valid      bool
}

// AreaView draws an area through three cached textures (terrain below
// entities, terrain above them, and the visibility mask) plus one texture
// slot per entity, and turns mouse input into hover widgets and actions.
type AreaView struct {
	state     *area.AreaState
	mouseOver *canopy.Widget
	actions   ActionProvider
	widget    *canopy.Widget

	zoom         float64
	cacheInvalid bool
	layers       []string

	scrollX, scrollY       float64
	maxScrollX, maxScrollY float64
	scroll                 *canopy.TweenGroup

	hover    *hoverSprite
	entities *area.EntityTextureCache
}

// NewAreaView returns a view of state. mouseOver, which may be nil, is a
// widget owned elsewhere whose text args "0" and "1" are kept set to the
// tile under the cursor.
func NewAreaView(state *area.AreaState, mouseOver *canopy.Widget) *AreaView {
	return &AreaView{
		state:        state,
		mouseOver:    mouseOver,
		actions:      DefaultActions,
		zoom:         1,
		cacheInvalid: true,
	}
}

func (v *AreaView) Name() string { return "area" }

// SetActionProvider replaces the source of click actions.
func (v *AreaView) SetActionProvider(p ActionProvider) { v.actions = p }

// State returns the area being viewed.
func (v *AreaView) State() *area.AreaState { return v.state }

// SetArea switches to another area. Terrain caches are rebuilt on the
// next draw. The entity texture cache is kept; the old area's entities
// give up their slots and are redrawn into fresh ones if it is shown
// again.
func (v *AreaView) SetArea(state *area.AreaState) {
	if v.state != nil && v.state != state {
		for _, e := range v.state.Entities() {
			e.ClearTextureCache()
		}
		if v.widget != nil && v.widget.Scene() != nil {
			v.widget.Scene().ClearMouseOver()
		}
	}
	v.state = state
	v.cacheInvalid = true
	v.hover = nil
	v.collectLayers()
	if v.widget != nil {
		v.widget.InvalidateLayout()
	}
}

// IsCacheInvalid reports whether the terrain textures will be rebuilt on
// the next draw.
func (v *AreaView) IsCacheInvalid() bool { return v.cacheInvalid }

// Layers returns the ids of the area's terrain layers.
func (v *AreaView) Layers() []string { return v.layers }

// Zoom returns the number of UI units per tile.
func (v *AreaView) Zoom() float64 { return v.zoom }

// SetZoom sets the UI units per tile, clamped to [0.5, 8].
func (v *AreaView) SetZoom(z float64) {
	v.zoom = min(max(z, minZoom), maxZoom)
	v.recomputeMaxScroll()
	v.SetScroll(v.scrollX, v.scrollY)
}

// --- Scrolling ---

// Scroll returns the tile at the top-left of the viewport.
func (v *AreaView) Scroll() (x, y float64) { return v.scrollX, v.scrollY }

// MaxScroll returns the largest scroll allowed on each axis.
func (v *AreaView) MaxScroll() (x, y float64) { return v.maxScrollX, v.maxScrollY }

// SetScroll sets the scroll clamped to [0, max].
func (v *AreaView) SetScroll(x, y float64) {
	v.scrollX = min(max(x, 0), v.maxScrollX)
	v.scrollY = min(max(y, 0), v.maxScrollY)
	v.anchorMouseover()
}

// recomputeMaxScroll derives the scroll range from the area extent and
// the viewport measured in tiles.
func (v *AreaView) recomputeMaxScroll() {
	if v.state == nil || v.widget == nil {
		v.maxScrollX, v.maxScrollY = 0, 0
		return
	}
	a := v.state.Area
	v.maxScrollX = max(0, float64(a.Width)-float64(v.widget.State.InnerWidth())/v.zoom)
	v.maxScrollY = max(0, float64(a.Height)-float64(v.widget.State.InnerHeight())/v.zoom)
}

// CenterScrollOn scrolls so that e is in the middle of the viewport.
func (v *AreaView) CenterScrollOn(e *area.EntityState) {
	v.stopScroll()
	v.recomputeMaxScroll()
	x, y := v.centerOn(e)
	v.SetScroll(x, y)
}

func (v *AreaView) centerOn(e *area.EntityState) (float64, float64) {
	half := float64(e.Size().Size) / 2
	x := float64(e.Location.X) + half
	y := float64(e.Location.Y) + half
	if v.widget != nil {
		x -= float64(v.widget.State.InnerWidth()) / v.zoom / 2
		y -= float64(v.widget.State.InnerHeight()) / v.zoom / 2
	}
	return x, y
}

// ScrollTo eases the scroll to (x, y) over millis. The target is clamped
// first; a zero duration jumps.
func (v *AreaView) ScrollTo(x, y float64, millis uint32) {
	v.stopScroll()
	v.recomputeMaxScroll()
	tx := min(max(x, 0), v.maxScrollX)
	ty := min(max(y, 0), v.maxScrollY)
	if millis == 0 {
		v.SetScroll(tx, ty)
		return
	}
	v.scroll = canopy.TweenPair(v.widget, &v.scrollX, &v.scrollY, tx, ty, millis, nil)
}

// ScrollToEntity eases the scroll to center on e.
func (v *AreaView) ScrollToEntity(e *area.EntityState, millis uint32) {
	v.recomputeMaxScroll()
	x, y := v.centerOn(e)
	v.ScrollTo(x, y, millis)
}

// IsScrolling reports whether an eased scroll is in progress.
func (v *AreaView) IsScrolling() bool { return v.scroll != nil }

func (v *AreaView) stopScroll() {
	v.scroll.Stop()
	v.scroll = nil
}

// --- Widget hooks ---

func (v *AreaView) OnAdd(w *canopy.Widget) []*canopy.Widget {
	v.widget = w
	v.hover = nil
	if v.mouseOver != nil {
		v.mouseOver.State.AddTextArg("0", "")
		v.mouseOver.State.AddTextArg("1", "")
	}
	v.collectLayers()
	v.cacheInvalid = true
	return nil
}

func (v *AreaView) collectLayers() {
	v.layers = v.layers[:0]
	if v.state == nil {
		return
	}
	for _, l := range v.state.Area.Layers {
		v.layers = append(v.layers, l.ID)
	}
}

// Layout recomputes the scroll range for the new viewport and re-clamps
// the scroll.
func (v *AreaView) Layout(w *canopy.Widget) {
	w.DoBaseLayout()
	v.widget = w
	v.recomputeMaxScroll()
	v.SetScroll(v.scrollX, v.scrollY)
}

func (v *AreaView) Update(w *canopy.Widget, millis uint32) {
	if v.scroll == nil {
		return
	}
	v.scroll.Update(millis)
	v.SetScroll(v.scrollX, v.scrollY)
	if v.scroll.Done {
		v.scroll = nil
	}
}

// cursorTile converts the scene cursor to area tile coordinates.
func (v *AreaView) cursorTile(w *canopy.Widget) (int, int, bool) {
	s := w.Scene()
	if s == nil {
		return 0, 0, false
	}
	cx, cy, ok := s.Cursor()
	if !ok {
		return 0, 0, false
	}
	p := w.State.InnerPosition()
	x := (cx-float64(p.X))/v.zoom + v.scrollX
	y := (cy-float64(p.Y))/v.zoom + v.scrollY
	return int(math.Floor(x)), int(math.Floor(y)), true
}

// mouseoverPos returns the UI position below the middle of a footprint.
func (v *AreaView) mouseoverPos(w *canopy.Widget, x, y, width, height int) (int, int) {
	p := w.State.InnerPosition()
	fx := float64(x) + float64(width)/2
	fy := float64(y) + float64(height)
	return p.X + int(math.Round((fx-v.scrollX)*v.zoom)),
		p.Y + int(math.Round((fy-v.scrollY)*v.zoom))
}

// anchorMouseover keeps the scene's entity or prop mouse-over attached to
// its target after a scroll or zoom.
func (v *AreaView) anchorMouseover() {
	if v.widget == nil || v.state == nil || v.widget.Scene() == nil {
		return
	}
	m, _ := v.widget.Scene().MouseOver()
	if m == nil {
		return
	}
	switch k := m.Kind().(type) {
	case *EntityMouseover:
		e := k.Entity()
		n := e.Size().Size
		x, y := v.mouseoverPos(v.widget, e.Location.X, e.Location.Y, n, n)
		k.MoveTo(m, x, y)
	case *PropMouseover:
		if k.state != v.state {
			return
		}
		p := v.state.Prop(k.Index())
		if p == nil {
			return
		}
		x, y := v.mouseoverPos(v.widget, p.Location.X, p.Location.Y, p.Prop.Width, p.Prop.Height)
		k.MoveTo(m, x, y)
	}
}

func (v *AreaView) OnMouseMove(w *canopy.Widget, dx, dy float64) bool {
	if v.state == nil {
		return true
	}
	ax, ay, ok := v.cursorTile(w)
	if !ok {
		return true
	}
	if v.mouseOver != nil {
		v.mouseOver.State.ClearTextArgs()
		v.mouseOver.State.AddTextArg("0", strconv.Itoa(ax))
		v.mouseOver.State.AddTextArg("1", strconv.Itoa(ay))
		v.mouseOver.InvalidateLayout()
	}
	v.hover = nil

	if !v.showEntityMouseover(w, ax, ay) {
		if i, ok := v.state.PropIndexAt(ax, ay); ok {
			p := v.state.Prop(i)
			x, y := v.mouseoverPos(w, p.Location.X, p.Location.Y, p.Prop.Width, p.Prop.Height)
			m := w.Scene().SetMouseOver(fmt.Sprintf("prop:%d", i), func() *canopy.Widget {
				return canopy.WithDefaults(NewPropMouseover(v.state, i, x, y))
			})
			if k, ok := canopy.TryKindAs[*PropMouseover](m); ok {
				k.MoveTo(m, x, y)
			}
		} else {
			w.Scene().ClearMouseOver()
		}
	}

	if pc := v.state.PC(); pc != nil {
		size := pc.Size()
		v.hover = &hoverSprite{
			sprite: size.CursorSprite,
			x:      ax - size.Size/2,
			y:      ay - size.Size/2,
			w:      size.Size,
			h:      size.Size,
			valid:  len(v.actionsAt(ax, ay)) > 0,
		}
	}
	return true
}

// showEntityMouseover attaches an EntityMouseover for the entity at
// (ax, ay), reusing and re-anchoring the current one when it shows the
// same entity.
func (v *AreaView) showEntityMouseover(w *canopy.Widget, ax, ay int) bool {
	e := v.state.EntityAt(ax, ay)
	if e == nil {
		return false
	}
	n := e.Size().Size
	x, y := v.mouseoverPos(w, e.Location.X, e.Location.Y, n, n)
	m := w.Scene().SetMouseOver(fmt.Sprintf("entity:%p", e), func() *canopy.Widget {
		return canopy.WithDefaults(NewEntityMouseover(e, x, y))
	})
	if k, ok := canopy.TryKindAs[*EntityMouseover](m); ok {
		k.MoveTo(m, x, y)
	}
	return true
}

func (v *AreaView) actionsAt(x, y int) []Action {
	if v.actions == nil {
		return nil
	}
	return v.actions.ActionsAt(v.state, x, y)
}

func (v *AreaView) OnMousePress(w *canopy.Widget, click canopy.ClickKind) bool {
	return true
}

func (v *AreaView) OnMouseRelease(w *canopy.Widget, click canopy.ClickKind) bool {
	if v.state == nil {
		return true
	}
	ax, ay, ok := v.cursorTile(w)
	if !ok || ax < 0 || ay < 0 {
		return true
	}
	switch click {
	case canopy.ClickLeft:
		menu := NewActionMenu(v.actionsAt(ax, ay), 0, 0)
		menu.FireDefault()
		v.showEntityMouseover(w, ax, ay)
	case canopy.ClickRight:
		cx, cy, _ := w.Scene().Cursor()
		menu := NewActionMenu(v.actionsAt(ax, ay), int(cx), int(cy))
		w.AddChild(canopy.WithDefaults(menu))
	}
	return true
}

func (v *AreaView) OnMouseDrag(w *canopy.Widget, click canopy.ClickKind, dx, dy float64) bool {
	v.recomputeMaxScroll()
	if click == canopy.ClickMiddle {
		v.stopScroll()
		v.SetScroll(v.scrollX-dx/v.zoom, v.scrollY-dy/v.zoom)
	}
	return true
}

func (v *AreaView) OnMouseExit(w *canopy.Widget) bool {
	if v.mouseOver != nil {
		v.mouseOver.State.ClearTextArgs()
	}
	v.hover = nil
	return true
}

func (v *AreaView) OnKeyPress(w *canopy.Widget, action canopy.InputAction) bool {
	switch action {
	case canopy.ActionScrollUp:
		v.SetScroll(v.scrollX, v.scrollY-1)
	case canopy.ActionScrollDown:
		v.SetScroll(v.scrollX, v.scrollY+1)
	case canopy.ActionScrollLeft:
		v.SetScroll(v.scrollX-1, v.scrollY)
	case canopy.ActionScrollRight:
		v.SetScroll(v.scrollX+1, v.scrollY)
	case canopy.ActionZoomIn:
		v.SetZoom(v.zoom + zoomStep)
	case canopy.ActionZoomOut:
		v.SetZoom(v.zoom - zoomStep)
	default:
		return false
	}
	return true
}

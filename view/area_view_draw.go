package view

import (
	"strings"
	"unicode"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/area"
)

var hoverInvalidColor = canopy.Color{R: 1, G: 0, B: 0, A: 1}

// cacheWindow returns the tile extent held by the terrain textures.
func (v *AreaView) cacheWindow() (int, int) {
	a := v.state.Area
	return min(cacheTiles, a.Width), min(cacheTiles, a.Height)
}

// rebuildTerrain clears or creates the three area textures and rasterizes
// every terrain layer into base or aerial. Each layer is one draw call.
func (v *AreaView) rebuildTerrain(r canopy.GraphicsRenderer, atlas *canopy.SpriteAtlas) {
	canopy.Trace("rebuild terrain cache", "area", v.state.Area.ID)
	for _, id := range []string{BaseLayerID, AerialLayerID, VisibilityTextureID} {
		if r.HasTexture(id) {
			r.ClearTexture(id)
			continue
		}
		img := canopy.NewImageBuffer(TileCacheTextureSize, TileCacheTextureSize)
		r.RegisterTexture(id, img, canopy.FilterNearest, canopy.FilterNearest)
	}

	a := v.state.Area
	ww, wh := v.cacheWindow()
	for i, layer := range a.Layers {
		target := BaseLayerID
		if i > a.EntityLayerIndex {
			target = AerialLayerID
		}
		var list *canopy.DrawList
		for y := 0; y < wh; y++ {
			for x := 0; x < ww; x++ {
				t := layer.TileAt(x, y)
				if t == nil {
					continue
				}
				sp := atlas.Sprite(t.Sprite)
				if list == nil {
					list = canopy.NewDrawList(sp.SheetID)
				}
				sp.AppendTo(list, float32(x*TileSize), float32(y*TileSize),
					float32(t.Width*TileSize), float32(t.Height*TileSize))
			}
		}
		if list != nil && list.NumQuads() > 0 {
			r.DrawToTexture(target, list)
		}
	}
	v.cacheInvalid = false
	v.state.InvalidatePCVisCache()
}

// redrawVisibility covers every tile the player cannot see.
func (v *AreaView) redrawVisibility(r canopy.GraphicsRenderer, atlas *canopy.SpriteAtlas) {
	r.ClearTexture(VisibilityTextureID)
	a := v.state.Area
	if a.VisibilitySprite == "" {
		return
	}
	sp := atlas.Sprite(a.VisibilitySprite)
	list := canopy.NewDrawList(sp.SheetID)
	ww, wh := v.cacheWindow()
	for y := 0; y < wh; y++ {
		for x := 0; x < ww; x++ {
			if !v.state.IsPCVisible(x, y) {
				sp.AppendTo(list, float32(x*TileSize), float32(y*TileSize), TileSize, TileSize)
			}
		}
	}
	if list.NumQuads() > 0 {
		r.DrawToTexture(VisibilityTextureID, list)
	}
}

// origin returns the tile-space offset that maps area tiles onto the
// viewport once multiplied by the zoom.
func (v *AreaView) origin(w *canopy.Widget) (float32, float32) {
	p := w.State.InnerPosition()
	return float32(float64(p.X)/v.zoom - v.scrollX), float32(float64(p.Y)/v.zoom - v.scrollY)
}

func (v *AreaView) drawLayer(r canopy.GraphicsRenderer, id string, ox, oy float32) {
	list := canopy.NewDrawList(id)
	list.AddQuad(ox, oy, cacheTiles, cacheTiles, 0, 0, 1, 1)
	z := float32(v.zoom)
	list.SetScale(z, z)
	r.Draw(list)
}

func (v *AreaView) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	if v.state == nil {
		return
	}
	if e := v.state.PopScrollTo(); e != nil {
		v.CenterScrollOn(e)
	}
	var atlas *canopy.SpriteAtlas
	if s := w.Scene(); s != nil {
		atlas = s.Atlas()
	}
	if v.cacheInvalid {
		v.rebuildTerrain(r, atlas)
	}
	if v.state.PCVisCacheInvalid() {
		v.redrawVisibility(r, atlas)
		v.state.ClearPCVisCacheInvalid()
	}
	if v.entities == nil {
		v.entities = area.NewEntityTextureCache(EntityTextureID, atlas)
	}

	ox, oy := v.origin(w)
	z := float32(v.zoom)
	v.drawLayer(r, BaseLayerID, ox, oy)
	v.drawTransitions(r, atlas, ox, oy)
	v.drawProps(r, atlas, ox, oy)

	for _, e := range v.state.Entities() {
		if !v.entityVisible(e) {
			continue
		}
		e.Cache(r, v.entities)
		e.Draw(r, z, z, ox, oy, 1)
	}

	v.drawLayer(r, AerialLayerID, ox, oy)
	v.drawLayer(r, VisibilityTextureID, ox, oy)
	v.drawHover(r, atlas, ox, oy)
	v.drawFeedback(r, ox, oy)
}

// entityVisible reports whether any tile of e is visible to the player.
func (v *AreaView) entityVisible(e *area.EntityState) bool {
	if e.IsPC() {
		return true
	}
	for _, p := range e.LocationPoints() {
		if v.state.IsPCVisible(p.X, p.Y) {
			return true
		}
	}
	return false
}

func (v *AreaView) drawTransitions(r canopy.GraphicsRenderer, atlas *canopy.SpriteAtlas, ox, oy float32) {
	z := float32(v.zoom)
	for _, t := range v.state.Area.Transitions {
		if t.Sprite == "" {
			continue
		}
		n := float32(1)
		if t.Size != nil {
			n = float32(t.Size.Size)
		}
		list := canopy.NewSpriteDrawList(atlas.Sprite(t.Sprite),
			ox+float32(t.From.X), oy+float32(t.From.Y), n, n)
		list.SetScale(z, z)
		r.Draw(list)
	}
}

// drawProps batches props on the same sheet into one draw list.
func (v *AreaView) drawProps(r canopy.GraphicsRenderer, atlas *canopy.SpriteAtlas, ox, oy float32) {
	z := float32(v.zoom)
	var list *canopy.DrawList
	flush := func() {
		if list != nil && list.NumQuads() > 0 {
			list.SetScale(z, z)
			r.Draw(list)
		}
		list = nil
	}
	for _, p := range v.state.Props() {
		if !v.state.IsPCVisible(p.Location.X, p.Location.Y) {
			continue
		}
		sheet := atlas.Sprite(p.Prop.Sprite).SheetID
		if list != nil && list.TextureID != sheet {
			flush()
		}
		if list == nil {
			list = canopy.NewDrawList(sheet)
		}
		p.AppendTo(list, atlas, ox+float32(p.Location.X), oy+float32(p.Location.Y))
	}
	flush()
}

func (v *AreaView) drawHover(r canopy.GraphicsRenderer, atlas *canopy.SpriteAtlas, ox, oy float32) {
	h := v.hover
	if h == nil || h.sprite == "" {
		return
	}
	list := canopy.NewSpriteDrawList(atlas.Sprite(h.sprite),
		ox+float32(h.x), oy+float32(h.y), float32(h.w), float32(h.h))
	z := float32(v.zoom)
	list.SetScale(z, z)
	if !h.valid {
		list.SetColor(hoverInvalidColor)
	}
	r.Draw(list)
}

func (v *AreaView) drawFeedback(r canopy.GraphicsRenderer, ox, oy float32) {
	fr, ok := r.(canopy.FontRenderer)
	if !ok {
		return
	}
	for _, f := range v.state.FeedbackTexts() {
		tw, _ := fr.MeasureText(f.Text)
		x := (float64(ox)+f.X)*v.zoom - tw/2
		y := (float64(oy) + f.Y) * v.zoom
		fr.DrawText(f.Text, x, y, f.Color)
	}
}

// DrawTextMode draws one character per tile: '@' for the player, the
// first letter of other entities, the first letter of props in lower
// case, '>' for transitions, '.' for terrain and blank for unseen tiles.
func (v *AreaView) DrawTextMode(r canopy.TextRenderer, w *canopy.Widget) {
	if v.state == nil {
		return
	}
	if e := v.state.PopScrollTo(); e != nil {
		v.CenterScrollOn(e)
	}
	inner := w.State.InnerBounds()
	dw, dh := r.DisplaySize()
	sx, sy := int(v.scrollX), int(v.scrollY)
	var b strings.Builder
	for row := 0; row < inner.Height; row++ {
		y := inner.Y + row
		if y < 0 || y >= dh {
			continue
		}
		b.Reset()
		for col := 0; col < inner.Width && inner.X+col < dw; col++ {
			b.WriteRune(v.glyph(sx+col, sy+row))
		}
		if b.Len() == 0 {
			continue
		}
		r.SetCursorPos(inner.X, y)
		r.RenderString(b.String())
	}
}

func (v *AreaView) glyph(x, y int) rune {
	a := v.state.Area
	if !a.CoordsValid(x, y) || !v.state.IsPCVisible(x, y) {
		return ' '
	}
	if e := v.state.EntityAt(x, y); e != nil {
		if e.IsPC() {
			return '@'
		}
		return firstRune(e.Actor.Name, 'e', unicode.ToUpper)
	}
	if i, ok := v.state.PropIndexAt(x, y); ok {
		return firstRune(v.state.Prop(i).Prop.Name, 'o', unicode.ToLower)
	}
	for _, t := range a.Transitions {
		n := 1
		if t.Size != nil {
			n = t.Size.Size
		}
		if x >= t.From.X && y >= t.From.Y && x < t.From.X+n && y < t.From.Y+n {
			return '>'
		}
	}
	for _, l := range a.Layers {
		if l.TileAt(x, y) != nil {
			return '.'
		}
	}
	return ' '
}

func firstRune(s string, def rune, conv func(rune) rune) rune {
	for _, r := range s {
		return conv(r)
	}
	return def
}

package area

import (
	"github.com/phanxgames/canopy"
)

const (
	// EntityTextureSize is the default edge of the shared entity texture
	// in pixels.
	EntityTextureSize = 2048
	// EntitySlotSize is the default edge of one entity cell in pixels.
	EntitySlotSize = 128
)

// EntityTextureCache composes each entity's appearance layers into a cell
// of one shared texture, so drawing an entity costs a single quad.
type EntityTextureCache struct {
	textureID string
	atlas     *canopy.SpriteAtlas
	texSize   int
	slotSize  int
	perRow    int
	next      int
	released  []*Slot
}

// NewEntityTextureCache returns a cache of the default size drawing
// appearance sprites from atlas.
func NewEntityTextureCache(textureID string, atlas *canopy.SpriteAtlas) *EntityTextureCache {
	return NewEntityTextureCacheSized(textureID, atlas, EntityTextureSize, EntitySlotSize)
}

// NewEntityTextureCacheSized returns a cache with a texSize texture split
// into slotSize cells.
func NewEntityTextureCacheSized(textureID string, atlas *canopy.SpriteAtlas, texSize, slotSize int) *EntityTextureCache {
	if slotSize <= 0 || texSize < slotSize {
		panic("canopy/area: entity texture cache slot must fit the texture")
	}
	return &EntityTextureCache{
		textureID: textureID,
		atlas:     atlas,
		texSize:   texSize,
		slotSize:  slotSize,
		perRow:    texSize / slotSize,
	}
}

// TextureID returns the id of the shared texture.
func (c *EntityTextureCache) TextureID() string { return c.textureID }

// Capacity returns the number of cells.
func (c *EntityTextureCache) Capacity() int { return c.perRow * c.perRow }

// InUse returns the number of cells holding an entity.
func (c *EntityTextureCache) InUse() int { return c.next - len(c.released) }

// AddEntity reserves a cell for e and draws it. When every cell has been
// handed out the oldest released cell is reused; with none released a
// warning is logged and nil is returned, and the entity draws nothing.
func (c *EntityTextureCache) AddEntity(e *EntityState, r canopy.GraphicsRenderer) *Slot {
	if !r.HasTexture(c.textureID) {
		r.RegisterTexture(c.textureID, canopy.NewImageBuffer(c.texSize, c.texSize),
			canopy.FilterNearest, canopy.FilterNearest)
	}

	var s *Slot
	switch {
	case c.next < c.Capacity():
		s = &Slot{
			cache: c,
			index: c.next,
			x:     (c.next % c.perRow) * c.slotSize,
			y:     (c.next / c.perRow) * c.slotSize,
		}
		c.next++
	case len(c.released) > 0:
		s = c.released[0]
		c.released = c.released[1:]
		s.released = false
	default:
		canopy.WarnOnce("entity-cache-full:"+c.textureID,
			"entity texture cache is full; entity will not be drawn",
			"entity", e.Actor.ID, "capacity", c.Capacity())
		return nil
	}
	canopy.Trace("entity texture slot assigned", "entity", e.Actor.ID, "slot", s.index)
	s.Redraw(e, r)
	return s
}

// Slot is one cell of an EntityTextureCache.
type Slot struct {
	cache    *EntityTextureCache
	index    int
	x, y     int
	released bool
}

// Index returns the cell index.
func (s *Slot) Index() int { return s.index }

// Redraw clears the cell and draws e's appearance layers into it. Layers
// on different sheets are submitted as separate draw lists, bottom first.
func (s *Slot) Redraw(e *EntityState, r canopy.GraphicsRenderer) {
	if s.released {
		return
	}
	c := s.cache
	r.ClearTextureRegion(c.textureID, s.x, s.y, c.slotSize, c.slotSize)

	var list *canopy.DrawList
	for _, id := range e.AppearanceLayers() {
		sp := c.atlas.Sprite(id)
		if list != nil && list.TextureID != sp.SheetID {
			r.DrawToTexture(c.textureID, list)
			list = nil
		}
		if list == nil {
			list = canopy.NewDrawList(sp.SheetID)
		}
		size := float32(c.slotSize)
		sp.AppendTo(list, float32(s.x), float32(s.y), size, size)
	}
	if list != nil {
		r.DrawToTexture(c.textureID, list)
	}
}

// Draw emits one quad of the cell at (x, y) with extent (w, h), in units
// multiplied by the scale.
func (s *Slot) Draw(r canopy.GraphicsRenderer, x, y, w, h, scaleX, scaleY float32, alpha float64) {
	if s.released {
		return
	}
	c := s.cache
	ts := float32(c.texSize)
	u0, v0 := float32(s.x)/ts, float32(s.y)/ts
	u1, v1 := float32(s.x+c.slotSize)/ts, float32(s.y+c.slotSize)/ts

	list := canopy.NewDrawList(c.textureID)
	list.AddQuad(x, y, w, h, u0, v0, u1, v1)
	list.SetScale(scaleX, scaleY)
	list.SetColor(canopy.Color{R: 1, G: 1, B: 1, A: alpha})
	r.Draw(list)
}

// Release returns the cell to the cache for reuse.
func (s *Slot) Release() {
	if s.released {
		return
	}
	s.released = true
	s.cache.released = append(s.cache.released, s)
}

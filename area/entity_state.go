package area

import (
	"math"
	"slices"

	"github.com/phanxgames/canopy"
)

var defaultSize = &ObjectSize{ID: "1by1", Size: 1}

// EntityState is an actor placed in an area.
type EntityState struct {
	Actor    *Actor
	Location canopy.Point
	// SubX and SubY offset drawing within a tile, for movement animation.
	SubX, SubY float64
	// Index is the entity's position in its AreaState.
	Index int

	Listeners ChangeListenerList[*EntityState]

	hp                int
	isPC              bool
	markedForRemoval  bool
	appearanceInvalid bool
	slot              *Slot
	effects           []*Effect
	customFlags       []string
}

func newEntityState(actor *Actor, x, y, index int, isPC bool) *EntityState {
	canopy.Logger().Debug("creating entity state", "actor", actor.ID)
	return &EntityState{
		Actor:             actor,
		Location:          canopy.Point{X: x, Y: y},
		Index:             index,
		isPC:              isPC,
		hp:                1,
		appearanceInvalid: true,
	}
}

// IsPC reports whether the player controls the entity.
func (e *EntityState) IsPC() bool { return e.isPC }

// Size returns the actor's footprint, 1×1 when unset.
func (e *EntityState) Size() *ObjectSize {
	if e.Actor.Size == nil {
		return defaultSize
	}
	return e.Actor.Size
}

// LocationPoints returns the tiles the entity covers.
func (e *EntityState) LocationPoints() []canopy.Point {
	return e.Size().Points(e.Location.X, e.Location.Y)
}

// Covers reports whether the entity covers tile (x, y).
func (e *EntityState) Covers(x, y int) bool {
	n := e.Size().Size
	return x >= e.Location.X && y >= e.Location.Y && x < e.Location.X+n && y < e.Location.Y+n
}

func (e *EntityState) CenterX() int { return e.Location.X + e.Size().Size/2 }
func (e *EntityState) CenterY() int { return e.Location.Y + e.Size().Size/2 }

// DistToPoint returns the edge distance from the entity to p, in tiles.
func (e *EntityState) DistToPoint(p canopy.Point) float64 {
	n := float64(e.Size().Size)
	x1 := float64(e.Location.X) + n/2
	y1 := float64(e.Location.Y) + n/2
	d := math.Hypot(x1-float64(p.X), y1-float64(p.Y))
	return d - e.Size().Diagonal()/2 - math.Sqrt2/2
}

// DistToEntity returns the edge distance between two entities.
func (e *EntityState) DistToEntity(o *EntityState) float64 {
	n1, n2 := float64(e.Size().Size), float64(o.Size().Size)
	x1, y1 := float64(e.Location.X)+n1/2, float64(e.Location.Y)+n1/2
	x2, y2 := float64(o.Location.X)+n2/2, float64(o.Location.Y)+n2/2
	return math.Hypot(x1-x2, y1-y2) - e.Size().Diagonal()/2 - o.Size().Diagonal()/2
}

// CanMoveTo reports whether the whole footprint fits inside the area at
// (x, y), differs from the current location, and no other entity
// occupies it.
func (e *EntityState) CanMoveTo(state *AreaState, x, y int) bool {
	n := e.Size().Size
	if !state.Area.CoordsValid(x, y) || !state.Area.CoordsValid(x+n-1, y+n-1) {
		return false
	}
	if x == e.Location.X && y == e.Location.Y {
		return false
	}
	for _, p := range e.Size().Points(x, y) {
		if o := state.EntityAt(p.X, p.Y); o != nil && o != e {
			return false
		}
	}
	return true
}

// MoveTo moves the entity to (x, y) when CanMoveTo allows it. Listeners
// are notified and, for the player's entities, visibility is recomputed.
func (e *EntityState) MoveTo(state *AreaState, x, y int) bool {
	canopy.Trace("move entity", "actor", e.Actor.ID, "x", x, "y", y)
	if !e.CanMoveTo(state, x, y) {
		return false
	}
	e.Location = canopy.Point{X: x, Y: y}
	e.Listeners.Notify(e)
	if e.isPC {
		state.ComputePCVisibility()
	}
	return true
}

// SetHP sets hit points. Dropping to zero marks the entity for removal.
func (e *EntityState) SetHP(hp int) {
	e.hp = hp
	if hp <= 0 {
		canopy.Logger().Debug("entity has zero hit points; marked to remove", "actor", e.Actor.Name)
		e.markedForRemoval = true
	}
}

func (e *EntityState) HP() int { return e.hp }

// RemoveHP subtracts hp.
func (e *EntityState) RemoveHP(hp int) { e.SetHP(e.hp - hp) }

// MarkForRemoval flags the entity; the area state drops it on Update.
func (e *EntityState) MarkForRemoval() { e.markedForRemoval = true }

func (e *EntityState) IsMarkedForRemoval() bool { return e.markedForRemoval }

// SetCustomFlag records a script flag. Flags are kept sorted and unique.
func (e *EntityState) SetCustomFlag(flag string) {
	i, found := slices.BinarySearch(e.customFlags, flag)
	if !found {
		e.customFlags = slices.Insert(e.customFlags, i, flag)
	}
}

func (e *EntityState) HasCustomFlag(flag string) bool {
	_, found := slices.BinarySearch(e.customFlags, flag)
	return found
}

// CustomFlags returns the flags in sorted order.
func (e *EntityState) CustomFlags() []string { return e.customFlags }

// --- Effects ---

// AddEffect applies ef. Effects with an overlay invalidate the appearance
// when added and again when they expire.
func (e *EntityState) AddEffect(ef *Effect) {
	e.effects = append(e.effects, ef)
	if ef.Overlay != "" {
		e.InvalidateAppearance()
		ef.RemovalListeners.Add("entity", func(*Effect) { e.InvalidateAppearance() })
	}
}

// Effects returns the active effects.
func (e *EntityState) Effects() []*Effect { return e.effects }

// Update advances effects and drops expired ones.
func (e *EntityState) Update(millis uint32) {
	kept := e.effects[:0]
	for _, ef := range e.effects {
		ef.Update(millis)
		if !ef.IsRemoval() {
			kept = append(kept, ef)
		}
	}
	clear(e.effects[len(kept):])
	e.effects = kept
}

// --- Appearance and texture cache ---

// AppearanceLayers returns the sprite ids composed into the entity's
// texture slot: the actor's appearance, then effect overlays.
func (e *EntityState) AppearanceLayers() []string {
	layers := slices.Clone(e.Actor.Appearance)
	for _, ef := range e.effects {
		if ef.Overlay != "" {
			layers = append(layers, ef.Overlay)
		}
	}
	return layers
}

// InvalidateAppearance schedules a slot redraw on the next draw.
func (e *EntityState) InvalidateAppearance() { e.appearanceInvalid = true }

// CheckAppearanceInvalid reports and clears the appearance flag.
func (e *EntityState) CheckAppearanceInvalid() bool {
	invalid := e.appearanceInvalid
	e.appearanceInvalid = false
	return invalid
}

// TextureSlot returns the entity's cache slot, nil before the first draw.
func (e *EntityState) TextureSlot() *Slot { return e.slot }

// Cache makes sure the entity's slot exists and is up to date. The slot
// is allocated on first use; afterwards it is redrawn only when the
// appearance was invalidated.
func (e *EntityState) Cache(r canopy.GraphicsRenderer, cache *EntityTextureCache) {
	if e.slot == nil {
		e.slot = cache.AddEntity(e, r)
		e.CheckAppearanceInvalid()
		return
	}
	if e.CheckAppearanceInvalid() {
		e.slot.Redraw(e, r)
	}
}

// ClearTextureCache releases the entity's slot. The next Cache call
// allocates a new one.
func (e *EntityState) ClearTextureCache() {
	if e.slot != nil {
		e.slot.Release()
		e.slot = nil
	}
}

// Draw emits the entity's slot at its location, offset by (x, y) and the
// sub-tile position. Positions are in tiles.
func (e *EntityState) Draw(r canopy.GraphicsRenderer, scaleX, scaleY, x, y float32, alpha float64) {
	if e.slot == nil {
		return
	}
	n := float32(e.Size().Size)
	px := x + float32(e.Location.X) + float32(e.SubX)
	py := y + float32(e.Location.Y) + float32(e.SubY)
	e.slot.Draw(r, px, py, n, n, scaleX, scaleY, alpha)
}

// Package area holds the area model the area view renders: terrain layers,
// props, transitions and the per-session state of entities placed on them.
package area

import (
	"fmt"
	"math"

	"github.com/phanxgames/canopy"
)

// ObjectSize is the square footprint of an entity, in tiles.
type ObjectSize struct {
	ID   string
	Size int
	// CursorSprite is drawn under the cursor when this size is hovering.
	CursorSprite string
}

// NewObjectSize returns a size of n×n tiles.
func NewObjectSize(id string, n int, cursorSprite string) *ObjectSize {
	return &ObjectSize{ID: id, Size: n, CursorSprite: cursorSprite}
}

// Diagonal returns the footprint's diagonal length in tiles.
func (s *ObjectSize) Diagonal() float64 {
	return math.Sqrt2 * float64(s.Size)
}

// Points returns the tiles covered when the top-left corner is at (x, y).
func (s *ObjectSize) Points(x, y int) []canopy.Point {
	pts := make([]canopy.Point, 0, s.Size*s.Size)
	for dy := 0; dy < s.Size; dy++ {
		for dx := 0; dx < s.Size; dx++ {
			pts = append(pts, canopy.Point{X: x + dx, Y: y + dy})
		}
	}
	return pts
}

// Tile is a terrain tile type. Width and Height are in tiles.
type Tile struct {
	ID     string
	Sprite string
	Width  int
	Height int
}

// Layer is a grid of tile references. A tile spanning several cells is
// stored at its top-left cell only.
type Layer struct {
	ID            string
	Width, Height int
	tiles         []*Tile
}

// NewLayer returns an empty layer.
func NewLayer(id string, width, height int) *Layer {
	return &Layer{ID: id, Width: width, Height: height, tiles: make([]*Tile, width*height)}
}

// SetTile places t with its top-left corner at (x, y). Out of range
// positions are ignored.
func (l *Layer) SetTile(x, y int, t *Tile) {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return
	}
	l.tiles[x+y*l.Width] = t
}

// TileAt returns the tile whose top-left corner is at (x, y), or nil.
func (l *Layer) TileAt(x, y int) *Tile {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return nil
	}
	return l.tiles[x+y*l.Width]
}

// Fill places t at every cell step apart, starting at the origin.
func (l *Layer) Fill(t *Tile) {
	for y := 0; y < l.Height; y += max(t.Height, 1) {
		for x := 0; x < l.Width; x += max(t.Width, 1) {
			l.SetTile(x, y, t)
		}
	}
}

// Transition is an exit to another area.
type Transition struct {
	From   canopy.Point
	Size   *ObjectSize
	Sprite string
	ToArea string
}

// Prop is a static interactive object type.
type Prop struct {
	ID     string
	Name   string
	Sprite string
	Width  int
	Height int
}

// Area is the static description of a map.
type Area struct {
	ID     string
	Name   string
	Width  int
	Height int
	// Layers are drawn in order. Layers up to and including
	// EntityLayerIndex are drawn below entities; the rest above.
	Layers           []*Layer
	EntityLayerIndex int
	Transitions      []Transition
	// VisibilitySprite covers tiles the player cannot see.
	VisibilitySprite string
	// VisDist is the player's sight radius in tiles.
	VisDist int
}

// Validate checks that the layers match the area extent.
func (a *Area) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("area %s: size %dx%d must be positive", a.ID, a.Width, a.Height)
	}
	for _, l := range a.Layers {
		if l.Width != a.Width || l.Height != a.Height {
			return fmt.Errorf("area %s: layer %s is %dx%d, want %dx%d",
				a.ID, l.ID, l.Width, l.Height, a.Width, a.Height)
		}
	}
	if len(a.Layers) > 0 && (a.EntityLayerIndex < 0 || a.EntityLayerIndex >= len(a.Layers)) {
		return fmt.Errorf("area %s: entity layer index %d out of range", a.ID, a.EntityLayerIndex)
	}
	return nil
}

// CoordsValid reports whether (x, y) is inside the area.
func (a *Area) CoordsValid(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.Width && y < a.Height
}

// Actor is the static description of a character or creature.
type Actor struct {
	ID       string
	Name     string
	Faction  string
	Portrait string
	Size     *ObjectSize
	// Appearance lists sprite ids drawn bottom to top into the entity's
	// texture slot.
	Appearance []string
}

package area

import (
	"github.com/phanxgames/canopy"
)

// PropState is a prop placed in an area.
type PropState struct {
	Prop     *Prop
	Location canopy.Point
	Index    int
}

// Covers reports whether the prop covers tile (x, y).
func (p *PropState) Covers(x, y int) bool {
	return x >= p.Location.X && y >= p.Location.Y &&
		x < p.Location.X+p.Prop.Width && y < p.Location.Y+p.Prop.Height
}

// AppendTo adds the prop's sprite at (x, y) in tiles to list.
func (p *PropState) AppendTo(list *canopy.DrawList, atlas *canopy.SpriteAtlas, x, y float32) bool {
	sp := atlas.Sprite(p.Prop.Sprite)
	return sp.AppendTo(list, x, y, float32(p.Prop.Width), float32(p.Prop.Height))
}

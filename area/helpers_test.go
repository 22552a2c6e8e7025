package area

import (
	"image"
	"testing"

	"github.com/phanxgames/canopy"
)

// countingRenderer counts texture work per texture id.
type countingRenderer struct {
	registered   map[string]int
	toTexture    map[string]int
	regionClears []canopy.Rect
	draws        []*canopy.DrawList
}

func newCountingRenderer() *countingRenderer {
	return &countingRenderer{registered: map[string]int{}, toTexture: map[string]int{}}
}

func (r *countingRenderer) RegisterTexture(id string, img *image.RGBA, min, mag canopy.TextureFilter) {
	r.registered[id]++
}
func (r *countingRenderer) HasTexture(id string) bool { return r.registered[id] > 0 }
func (r *countingRenderer) ClearTexture(id string)    {}
func (r *countingRenderer) ClearTextureRegion(id string, x, y, w, h int) {
	r.regionClears = append(r.regionClears, canopy.Rect{X: x, Y: y, Width: w, Height: h})
}
func (r *countingRenderer) DrawToTexture(id string, l *canopy.DrawList) { r.toTexture[id]++ }
func (r *countingRenderer) Draw(l *canopy.DrawList)                     { r.draws = append(r.draws, l) }
func (r *countingRenderer) DisplaySize() (int, int)                     { return 320, 180 }

func testArea(t *testing.T, w, h int) *AreaState {
	t.Helper()
	grass := &Tile{ID: "grass", Sprite: "grass", Width: 1, Height: 1}
	base := NewLayer("base", w, h)
	base.Fill(grass)
	a := &Area{ID: "test", Width: w, Height: h, Layers: []*Layer{base}, VisDist: 3}
	s, err := NewAreaState(a)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testActor(id string, size int) *Actor {
	return &Actor{
		ID:         id,
		Name:       id,
		Size:       NewObjectSize("s", size, "cursor"),
		Appearance: []string{"body", "head"},
	}
}

func testAtlas() *canopy.SpriteAtlas {
	a := canopy.NewSpriteAtlas()
	for i, id := range []string{"grass", "body", "head", "chest"} {
		a.Add(&canopy.Sprite{ID: id, SheetID: "sheet", X: i * 16, Width: 16, Height: 16, SheetW: 64, SheetH: 16})
	}
	a.Add(&canopy.Sprite{ID: "glow", SheetID: "fx", Width: 16, Height: 16, SheetW: 16, SheetH: 16})
	return a
}

package view

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"testing"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/area"
)

// recorder counts texture work per texture id and keeps every list drawn.
type recorder struct {
	registered map[string]int
	cleared    map[string]int
	toTexture  map[string][]*canopy.DrawList
	draws      []*canopy.DrawList
	texts      []string
}

func newRecorder() *recorder {
	return &recorder{
		registered: map[string]int{},
		cleared:    map[string]int{},
		toTexture:  map[string][]*canopy.DrawList{},
	}
}

func (r *recorder) RegisterTexture(id string, img *image.RGBA, min, mag canopy.TextureFilter) {
	r.registered[id]++
}
func (r *recorder) HasTexture(id string) bool { return r.registered[id] > 0 }
func (r *recorder) ClearTexture(id string)    { r.cleared[id]++ }
func (r *recorder) ClearTextureRegion(id string, x, y, w, h int) {
	r.cleared[id]++
}
func (r *recorder) DrawToTexture(id string, l *canopy.DrawList) {
	r.toTexture[id] = append(r.toTexture[id], l)
}
func (r *recorder) Draw(l *canopy.DrawList)             { r.draws = append(r.draws, l) }
func (r *recorder) DisplaySize() (int, int)             { return 320, 180 }
func (r *recorder) MeasureText(s string) (w, h float64) { return float64(len(s)), 1 }
func (r *recorder) DrawText(s string, x, y float64, c canopy.Color) {
	r.texts = append(r.texts, s)
}

// drawsOf returns the lists drawn to the display from texture id.
func (r *recorder) drawsOf(id string) []*canopy.DrawList {
	var out []*canopy.DrawList
	for _, d := range r.draws {
		if d.TextureID == id {
			out = append(out, d)
		}
	}
	return out
}

// textGrid records every string written to a character grid.
type textGrid struct {
	w, h   int
	x, y   int
	writes []string
}

func (g *textGrid) SetCursorPos(x, y int)   { g.x, g.y = x, y }
func (g *textGrid) DisplaySize() (int, int) { return g.w, g.h }
func (g *textGrid) RenderString(s string) {
	g.writes = append(g.writes, fmt.Sprintf("%d,%d:%s", g.x, g.y, s))
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	canopy.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { canopy.SetLogger(nil) })
	return &buf
}

func testAtlas() *canopy.SpriteAtlas {
	a := canopy.NewSpriteAtlas()
	for i, id := range []string{"grass", "tree", "fog", "cursor", "chest", "door"} {
		a.Add(&canopy.Sprite{ID: id, SheetID: "tiles", X: i * 16, Width: 16, Height: 16, SheetW: 128, SheetH: 16})
	}
	for i, id := range []string{"body", "head"} {
		a.Add(&canopy.Sprite{ID: id, SheetID: "actors", X: i * 32, Width: 32, Height: 32, SheetW: 64, SheetH: 32})
	}
	a.Add(&canopy.Sprite{ID: "glow", SheetID: "fx", Width: 16, Height: 16, SheetW: 16, SheetH: 16})
	return a
}

// testArea returns a w×h area with grass everywhere and unlimited sight.
func testArea(t *testing.T, w, h int) *area.AreaState {
	t.Helper()
	base := area.NewLayer("base", w, h)
	base.Fill(&area.Tile{ID: "grass", Sprite: "grass", Width: 1, Height: 1})
	st, err := area.NewAreaState(&area.Area{ID: "test", Width: w, Height: h, Layers: []*area.Layer{base}})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func testActor(id, name string, size int) *area.Actor {
	return &area.Actor{
		ID:         id,
		Name:       name,
		Size:       area.NewObjectSize(fmt.Sprintf("%dby%d", size, size), size, "cursor"),
		Appearance: []string{"body", "head"},
	}
}

func addActor(t *testing.T, st *area.AreaState, a *area.Actor, x, y int, pc bool) *area.EntityState {
	t.Helper()
	e, err := st.AddActor(a, x, y, pc)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// areaScene puts a view of st at the origin of a 320×180 scene with the
// given size. The coords widget receives the cursor tile args.
func areaScene(t *testing.T, st *area.AreaState, w, h int) (*canopy.Scene, *canopy.Widget, *AreaView, *canopy.Widget) {
	t.Helper()
	s := canopy.NewScene(canopy.Empty("root"), 320, 180, nil)
	s.SetAtlas(testAtlas())
	coords := canopy.Empty("coords")
	v := NewAreaView(st, coords)
	aw := canopy.WithDefaults(v)
	aw.State.SetPosition(0, 0)
	aw.State.SetSize(w, h)
	s.Root().AddChildren(aw, coords)
	s.Sweep()
	return s, aw, v, coords
}

func approx(a, b float64) bool {
	d := a - b
	return d < 0.01 && d > -0.01
}

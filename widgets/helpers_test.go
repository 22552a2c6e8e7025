package widgets

import (
	"fmt"
	"image"
	"testing"

	"github.com/phanxgames/canopy"
)

// textGrid records every string written to a character grid.
type textGrid struct {
	w, h   int
	x, y   int
	writes []string
}

func newTextGrid(w, h int) *textGrid { return &textGrid{w: w, h: h} }

func (g *textGrid) SetCursorPos(x, y int)   { g.x, g.y = x, y }
func (g *textGrid) DisplaySize() (int, int) { return g.w, g.h }
func (g *textGrid) RenderString(s string) {
	g.writes = append(g.writes, fmt.Sprintf("%d,%d:%s", g.x, g.y, s))
}

type textCall struct {
	text string
	x, y float64
	c    canopy.Color
}

// fontRenderer records draw lists and text. Each rune measures 1×1.
type fontRenderer struct {
	draws []*canopy.DrawList
	texts []textCall
}

func (r *fontRenderer) RegisterTexture(string, *image.RGBA, canopy.TextureFilter, canopy.TextureFilter) {
}
func (r *fontRenderer) HasTexture(string) bool                       { return true }
func (r *fontRenderer) ClearTexture(string)                          {}
func (r *fontRenderer) ClearTextureRegion(string, int, int, int, int) {}
func (r *fontRenderer) DrawToTexture(string, *canopy.DrawList)       {}
func (r *fontRenderer) Draw(l *canopy.DrawList)                      { r.draws = append(r.draws, l) }
func (r *fontRenderer) DisplaySize() (int, int)                      { return 100, 100 }
func (r *fontRenderer) DrawText(text string, x, y float64, c canopy.Color) {
	r.texts = append(r.texts, textCall{text, x, y, c})
}
func (r *fontRenderer) MeasureText(text string) (float64, float64) {
	return float64(len([]rune(text))), 1
}

func newScene(t *testing.T, theme canopy.Theme) *canopy.Scene {
	t.Helper()
	return canopy.NewScene(canopy.Empty("root"), 100, 100, theme)
}

func place(w *canopy.Widget, x, y, width, height int) *canopy.Widget {
	w.State.SetPosition(x, y)
	w.State.SetSize(width, height)
	return w
}

func assertWrites(t *testing.T, g *textGrid, want ...string) {
	t.Helper()
	if len(g.writes) != len(want) {
		t.Fatalf("writes = %q, want %q", g.writes, want)
	}
	for i := range want {
		if g.writes[i] != want[i] {
			t.Fatalf("writes = %q, want %q", g.writes, want)
		}
	}
}

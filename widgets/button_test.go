package widgets

import (
	"testing"

	"github.com/phanxgames/canopy"
)

func TestButtonFiresCallbacksOnRelease(t *testing.T) {
	s := newScene(t, nil)
	var clicks []canopy.ClickKind
	cb := canopy.NewCallback(func(w *canopy.Widget, c canopy.ClickKind) {
		clicks = append(clicks, c)
	})
	b := place(ButtonWithCallback("ok", cb), 10, 10, 10, 4)
	s.Root().AddChild(b)
	s.Sweep()

	s.InjectClick(12, 12, canopy.ClickLeft)
	s.InjectClick(12, 12, canopy.ClickRight)
	s.Update(0)
	if len(clicks) != 2 || clicks[0] != canopy.ClickLeft || clicks[1] != canopy.ClickRight {
		t.Errorf("clicks = %v", clicks)
	}

	b.State.SetEnabled(false)
	s.InjectClick(12, 12, canopy.ClickLeft)
	s.Update(0)
	if len(clicks) != 2 {
		t.Errorf("disabled button fired: %v", clicks)
	}
}

func TestButtonConsumesPress(t *testing.T) {
	s := newScene(t, nil)
	b := place(ButtonWithCallback("ok", nil), 0, 0, 10, 10)
	s.Root().AddChild(b)
	s.Sweep()
	s.InjectMove(5, 5)
	s.Update(0)
	if !s.Dispatch(canopy.MousePress(canopy.ClickLeft)) {
		t.Error("press over a button should be consumed")
	}
}

func TestButtonHoverSprite(t *testing.T) {
	th := canopy.NewThemeSet()
	th.Add("ok", &canopy.ThemeEntry{Width: 10, Height: 4, Background: "btn"})
	s := newScene(t, th)
	atlas := canopy.NewSpriteAtlas()
	atlas.Add(&canopy.Sprite{ID: "btn", SheetID: "gui", X: 0, Width: 16, Height: 16, SheetW: 32, SheetH: 16})
	atlas.Add(&canopy.Sprite{ID: "btn_hover", SheetID: "gui", X: 16, Width: 16, Height: 16, SheetW: 32, SheetH: 16})
	s.SetAtlas(atlas)

	b := ButtonWithCallback("ok", nil)
	s.Root().AddChild(b)
	s.Sweep()

	r := &fontRenderer{}
	s.Draw(r, 0)
	if len(r.draws) != 1 || r.draws[0].Vertices[0].U != 0 {
		t.Fatalf("normal draw = %+v", r.draws)
	}

	s.InjectMove(2, 2)
	s.Update(0)
	r = &fontRenderer{}
	s.Draw(r, 0)
	if len(r.draws) != 1 || r.draws[0].Vertices[0].U != 0.5 {
		t.Errorf("hover draw should use btn_hover, got %+v", r.draws)
	}
}

func TestButtonTextStyle(t *testing.T) {
	b := place(canopy.WithTheme(NewTextButton("Go"), "go"), 0, 0, 4, 1)
	b.State.SetEnabled(false)
	g := &styledGrid{textGrid: newTextGrid(10, 10)}
	canopy.KindAs[*Button](b).DrawTextMode(g, b)
	if len(g.styles) != 1 || g.styles[0] != canopy.StyleDisabled {
		t.Errorf("styles = %v, want disabled", g.styles)
	}
	assertWrites(t, g.textGrid, "1,0:Go")
}

type styledGrid struct {
	*textGrid
	styles []canopy.TextStyle
}

func (g *styledGrid) RenderStyledString(s string, style canopy.TextStyle) {
	g.styles = append(g.styles, style)
	g.RenderString(s)
}

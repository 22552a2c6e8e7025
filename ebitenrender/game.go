package ebitenrender

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/canopy"
)

// pointerState is the mouse as polled in one frame, in UI units.
type pointerState struct {
	X, Y    float64
	In      bool
	Buttons [3]bool
}

var clickButtons = [3]ebiten.MouseButton{
	canopy.ClickLeft:   ebiten.MouseButtonLeft,
	canopy.ClickRight:  ebiten.MouseButtonRight,
	canopy.ClickMiddle: ebiten.MouseButtonMiddle,
}

// cursorEvents translates the change from prev to cur into scene events.
// Motion comes before button changes so presses land at the new position.
func cursorEvents(prev, cur pointerState) []canopy.Event {
	var evs []canopy.Event
	if !cur.In {
		if prev.In {
			evs = append(evs, canopy.MouseExit())
		}
		return evs
	}

	if !prev.In || cur.X != prev.X || cur.Y != prev.Y {
		held := -1
		for i, down := range cur.Buttons {
			if down && prev.Buttons[i] && prev.In {
				held = i
				break
			}
		}
		if held >= 0 {
			evs = append(evs, canopy.MouseDrag(canopy.ClickKind(held), cur.X, cur.Y))
		} else {
			evs = append(evs, canopy.MouseMove(cur.X, cur.Y))
		}
	}

	for i := range cur.Buttons {
		was := prev.In && prev.Buttons[i]
		switch {
		case cur.Buttons[i] && !was:
			evs = append(evs, canopy.MousePress(canopy.ClickKind(i)))
		case !cur.Buttons[i] && was:
			evs = append(evs, canopy.MouseRelease(canopy.ClickKind(i)))
		}
	}
	return evs
}

// keyBinding pairs a resolved key with its action.
type keyBinding struct {
	key    ebiten.Key
	action canopy.InputAction
}

// resolveKey accepts ebiten key names plus the short arrow names ("Up").
func resolveKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err == nil {
		return k, nil
	}
	if err := k.UnmarshalText([]byte("Arrow" + name)); err == nil {
		return k, nil
	}
	return 0, fmt.Errorf("ebitenrender: unknown key %q", name)
}

// bindKeys resolves the configured bindings in key-name order. Unknown
// names are logged and skipped.
func bindKeys(cfg canopy.Config) []keyBinding {
	names, actions := cfg.Bindings()
	out := make([]keyBinding, 0, len(names))
	for _, name := range names {
		k, err := resolveKey(name)
		if err != nil {
			canopy.Logger().Warn("ignoring key binding", "key", name, "err", err)
			continue
		}
		out = append(out, keyBinding{key: k, action: actions[name]})
	}
	return out
}

// Game adapts a canopy scene to ebiten.Game.
type Game struct {
	scene    *canopy.Scene
	renderer *Renderer
	bindings []keyBinding
	width    int
	height   int
	frame    uint32
	tps      int
	pointer  pointerState
	shots    []string

	// ScreenshotDir receives captures queued with Screenshot.
	ScreenshotDir string
}

// NewGame returns a driver for scene sized and bound by cfg.
func NewGame(scene *canopy.Scene, cfg canopy.Config) (*Game, error) {
	d := cfg.Display
	r, err := NewRenderer(d.Width, d.Height, d.Scale)
	if err != nil {
		return nil, err
	}
	fps := max(d.FrameRate, 1)
	return &Game{
		scene:         scene,
		renderer:      r,
		bindings:      bindKeys(cfg),
		width:         d.Width,
		height:        d.Height,
		frame:         uint32(1000 / fps),
		tps:           fps,
		ScreenshotDir: "screenshots",
	}, nil
}

// Renderer returns the renderer the scene draws with.
func (g *Game) Renderer() *Renderer { return g.renderer }

func (g *Game) pollPointer() pointerState {
	px, py := ebiten.CursorPosition()
	s := g.renderer.Scale()
	p := pointerState{X: float64(px) / s, Y: float64(py) / s}
	p.In = p.X >= 0 && p.Y >= 0 && p.X < float64(g.width) && p.Y < float64(g.height)
	for i, b := range clickButtons {
		p.Buttons[i] = ebiten.IsMouseButtonPressed(b)
	}
	return p
}

func (g *Game) Update() error {
	cur := g.pollPointer()
	for _, ev := range cursorEvents(g.pointer, cur) {
		g.scene.Push(ev)
	}
	g.pointer = cur

	for _, b := range g.bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.scene.Push(canopy.KeyPress(b.action))
		}
	}

	g.scene.Update(g.frame)
	if g.scene.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScreen(screen)
	g.scene.Draw(g.renderer, g.frame)
	g.flushScreenshots(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	s := int(g.renderer.Scale())
	return g.width * s, g.height * s
}

// Run opens a window and drives scene until its root is removed or the
// window is closed.
func Run(scene *canopy.Scene, cfg canopy.Config, title string) error {
	g, err := NewGame(scene, cfg)
	if err != nil {
		return err
	}
	return g.Run(title)
}

// Run opens a window for g. Input script mark steps queue screenshots.
func (g *Game) Run(title string) error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.tps)
	if runner := g.scene.InputRunner(); runner != nil && runner.OnLabel == nil {
		runner.OnLabel = g.Screenshot
	}
	canopy.Logger().Info("starting graphics mode", "width", w, "height", h)
	return ebiten.RunGame(g)
}

package canopy

import (
	"fmt"
	"image"
	"testing"
)

// loggingKind records every hook call into a shared log.
type loggingKind struct {
	name    string
	log     *[]string
	consume bool
	addFn   func(w *Widget) []*Widget
	removed int
	updates uint32
	drawn   int
}

func newLoggingKind(name string, log *[]string) *loggingKind {
	return &loggingKind{name: name, log: log}
}

func (k *loggingKind) Name() string { return k.name }

func (k *loggingKind) record(format string, args ...any) {
	if k.log != nil {
		*k.log = append(*k.log, k.name+":"+fmt.Sprintf(format, args...))
	}
}

func (k *loggingKind) OnAdd(w *Widget) []*Widget {
	k.record("add")
	if k.addFn != nil {
		return k.addFn(w)
	}
	return nil
}

func (k *loggingKind) OnRemove(w *Widget) {
	k.removed++
	k.record("remove")
}

func (k *loggingKind) Update(w *Widget, millis uint32) { k.updates += millis }

func (k *loggingKind) DrawGraphicsMode(r GraphicsRenderer, w *Widget, millis uint32) {
	k.drawn++
}

func (k *loggingKind) OnMouseMove(w *Widget, dx, dy float64) bool {
	k.record("move")
	return k.consume
}

func (k *loggingKind) OnMousePress(w *Widget, click ClickKind) bool {
	k.record("press %s", click)
	return k.consume
}

func (k *loggingKind) OnMouseRelease(w *Widget, click ClickKind) bool {
	k.record("release %s", click)
	FireCallbacks(w, click)
	return k.consume
}

func (k *loggingKind) OnMouseDrag(w *Widget, click ClickKind, dx, dy float64) bool {
	k.record("drag %v,%v", dx, dy)
	return k.consume
}

func (k *loggingKind) OnMouseEnter(w *Widget) bool {
	k.record("enter")
	return false
}

func (k *loggingKind) OnMouseExit(w *Widget) bool {
	k.record("exit")
	return false
}

func (k *loggingKind) OnKeyPress(w *Widget, action InputAction) bool {
	k.record("key %s", action)
	return k.consume
}

// box creates a widget with fixed geometry and no theme entry.
func box(kind WidgetKind, x, y, w, h int) *Widget {
	wd := WithDefaults(kind)
	wd.State.SetPosition(x, y)
	wd.State.SetSize(w, h)
	return wd
}

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	return NewScene(Empty("root"), 100, 100, nil)
}

// recordingRenderer is a GraphicsRenderer that counts calls.
type recordingRenderer struct {
	textures      map[string]bool
	draws         []*DrawList
	toTexture     map[string]int
	clears        map[string]int
	regionClears  int
	width, height int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		textures:  map[string]bool{},
		toTexture: map[string]int{},
		clears:    map[string]int{},
		width:     100,
		height:    100,
	}
}

func (r *recordingRenderer) RegisterTexture(id string, img *image.RGBA, min, mag TextureFilter) {
	r.textures[id] = true
}
func (r *recordingRenderer) HasTexture(id string) bool { return r.textures[id] }
func (r *recordingRenderer) ClearTexture(id string)    { r.clears[id]++ }
func (r *recordingRenderer) ClearTextureRegion(id string, x, y, w, h int) {
	r.regionClears++
}
func (r *recordingRenderer) DrawToTexture(id string, list *DrawList) { r.toTexture[id]++ }
func (r *recordingRenderer) Draw(list *DrawList)                     { r.draws = append(r.draws, list) }
func (r *recordingRenderer) DisplaySize() (int, int)                 { return r.width, r.height }

func assertLog(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("log = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("log = %v, want %v", got, want)
		}
	}
}

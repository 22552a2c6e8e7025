package widgets

import (
	"github.com/phanxgames/canopy"
)

// Button is a clickable label. Releasing any mouse button over an enabled
// button fires the widget's callbacks with the click kind.
type Button struct {
	Label
}

// NewButton returns a button showing its widget's theme text.
func NewButton() *Button {
	return &Button{}
}

// NewTextButton returns a button with fixed text.
func NewTextButton(text string) *Button {
	return &Button{Label: Label{text: text, hasText: true}}
}

// ButtonWithCallback builds a themed button widget that fires cb.
func ButtonWithCallback(themeID string, cb *canopy.Callback) *canopy.Widget {
	w := canopy.WithTheme(NewButton(), themeID)
	w.State.AddCallback(cb)
	return w
}

func (b *Button) Name() string { return "button" }

func (b *Button) OnMousePress(w *canopy.Widget, click canopy.ClickKind) bool {
	return true
}

func (b *Button) OnMouseRelease(w *canopy.Widget, click canopy.ClickKind) bool {
	if !w.State.IsEnabled() {
		return true
	}
	canopy.FireCallbacks(w, click)
	return true
}

func (b *Button) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	t := w.Theme()
	var atlas *canopy.SpriteAtlas
	if s := w.Scene(); s != nil {
		atlas = s.Atlas()
	}
	canopy.DrawSprite(r, atlas, stateSprite(atlas, t.Background, w), w.State.Bounds(), canopy.ColorWhite)
	canopy.DrawSprite(r, atlas, t.Foreground, w.State.InnerBounds(), canopy.ColorWhite)
	drawCenteredFont(r, w, b.Text(w))
}

// stateSprite picks the state variant of a background sprite, such as
// "button_bg_hover", when the atlas has one.
func stateSprite(atlas *canopy.SpriteAtlas, id string, w *canopy.Widget) string {
	if id == "" || atlas == nil {
		return id
	}
	var suffix string
	switch {
	case !w.State.IsEnabled():
		suffix = "_disabled"
	case w.State.IsActive():
		suffix = "_active"
	case w.State.IsPressed():
		suffix = "_pressed"
	case w.State.IsMouseInside():
		suffix = "_hover"
	default:
		return id
	}
	if atlas.Has(id + suffix) {
		return id + suffix
	}
	return id
}

package widgets

import (
	"strings"

	"github.com/phanxgames/canopy"
)

// TextArea draws multi-line text from the top-left of its inner bounds,
// one row per line, clipped to the inner extent.
type TextArea struct {
	text    string
	hasText bool
}

func NewTextArea() *TextArea { return &TextArea{} }

func (t *TextArea) Name() string { return "text_area" }

// SetText overrides the widget's theme text.
func (t *TextArea) SetText(text string) {
	t.text = text
	t.hasText = true
}

// Lines returns the lines drawn for w.
func (t *TextArea) Lines(w *canopy.Widget) []string {
	text := t.text
	if !t.hasText {
		text = w.State.ExpandText()
	}
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func (t *TextArea) DrawTextMode(r canopy.TextRenderer, w *canopy.Widget) {
	inner := w.State.InnerBounds()
	maxX, maxY := r.DisplaySize()
	if inner.X < 0 || inner.X >= maxX {
		return
	}
	for i, line := range t.Lines(w) {
		if i >= inner.Height {
			break
		}
		y := inner.Y + i
		if y < 0 || y >= maxY {
			continue
		}
		runes := []rune(line)
		if len(runes) > inner.Width {
			runes = runes[:inner.Width]
		}
		if len(runes) == 0 {
			continue
		}
		r.SetCursorPos(inner.X, y)
		canopy.RenderText(r, string(runes), canopy.StyleFor(w))
	}
}

func (t *TextArea) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	canopy.DrawBackground(r, w)
	fr, ok := r.(canopy.FontRenderer)
	if !ok {
		return
	}
	inner := w.State.InnerBounds()
	y := float64(inner.Y)
	for _, line := range t.Lines(w) {
		_, h := fr.MeasureText("M")
		if y+h > float64(inner.Y+inner.Height) {
			break
		}
		if line != "" {
			fr.DrawText(line, float64(inner.X), y, textColor(w))
		}
		y += h
	}
}

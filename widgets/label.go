// Package widgets provides the basic widget kinds game views are built
// from: labels, buttons, text areas, containers and confirmation windows.
package widgets

import (
	"github.com/phanxgames/canopy"
)

// Label draws one line of text centered horizontally in its bounds. The
// text is the label's own text when set, otherwise the widget's expanded
// theme text.
type Label struct {
	text    string
	hasText bool
}

// NewLabel returns a label with fixed text.
func NewLabel(text string) *Label {
	return &Label{text: text, hasText: true}
}

// EmptyLabel returns a label that shows its widget's theme text.
func EmptyLabel() *Label {
	return &Label{}
}

func (l *Label) Name() string { return "label" }

// SetText overrides the theme text.
func (l *Label) SetText(text string) {
	l.text = text
	l.hasText = true
}

// ClearText reverts to the theme text.
func (l *Label) ClearText() {
	l.text = ""
	l.hasText = false
}

// Text returns what the label draws for w.
func (l *Label) Text(w *canopy.Widget) string {
	if l.hasText {
		return l.text
	}
	return w.State.ExpandText()
}

func (l *Label) DrawTextMode(r canopy.TextRenderer, w *canopy.Widget) {
	drawCenteredLine(r, w, l.Text(w), w.State.Position.Y)
}

func (l *Label) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	canopy.DrawBackground(r, w)
	drawCenteredFont(r, w, l.Text(w))
}

// drawCenteredLine writes text clipped to w's width and centered in it.
// Lines starting off the display are skipped.
func drawCenteredLine(r canopy.TextRenderer, w *canopy.Widget, text string, y int) {
	if text == "" {
		return
	}
	width := w.State.Size.Width
	runes := []rune(text)
	n := min(len(runes), max(width, 0))
	if n == 0 {
		return
	}
	x := w.State.Position.X + (width-n)/2
	maxX, maxY := r.DisplaySize()
	if x < 0 || y < 0 || x >= maxX || y >= maxY {
		return
	}
	r.SetCursorPos(x, y)
	canopy.RenderText(r, string(runes[:n]), canopy.StyleFor(w))
}

// drawCenteredFont centers text in w's inner bounds when r can draw text.
func drawCenteredFont(r canopy.GraphicsRenderer, w *canopy.Widget, text string) {
	fr, ok := r.(canopy.FontRenderer)
	if !ok || text == "" {
		return
	}
	inner := w.State.InnerBounds()
	tw, th := fr.MeasureText(text)
	x := float64(inner.X) + (float64(inner.Width)-tw)/2
	y := float64(inner.Y) + (float64(inner.Height)-th)/2
	fr.DrawText(text, x, y, textColor(w))
}

func textColor(w *canopy.Widget) canopy.Color {
	c := w.Theme().TextColor
	if !w.State.IsEnabled() {
		c.A *= 0.5
	}
	return c
}

package widgets

import (
	"github.com/phanxgames/canopy"
)

// ConfirmationWindow shows a title with cancel and accept buttons. Cancel
// removes the window; accept fires the shared callback with the accept
// button as the widget. Back and Confirm key actions do the same.
type ConfirmationWindow struct {
	accept    *canopy.Callback
	title     string
	titleArgs [][2]string

	acceptButton *canopy.Widget
}

// NewConfirmationWindow returns a window kind firing accept.
func NewConfirmationWindow(accept *canopy.Callback) *ConfirmationWindow {
	return &ConfirmationWindow{accept: accept}
}

// SetTitle sets fixed title text. Without it the title label shows its
// theme text.
func (c *ConfirmationWindow) SetTitle(title string) {
	c.title = title
}

// AddTitleArg adds a text arg to the title label, for theme text such as
// "Delete #name#?".
func (c *ConfirmationWindow) AddTitleArg(key, value string) {
	c.titleArgs = append(c.titleArgs, [2]string{key, value})
}

func (c *ConfirmationWindow) Name() string { return "confirmation_window" }

func (c *ConfirmationWindow) OnAdd(w *canopy.Widget) []*canopy.Widget {
	label := EmptyLabel()
	if c.title != "" {
		label.SetText(c.title)
	}
	title := canopy.WithTheme(label, "title")
	for _, kv := range c.titleArgs {
		title.State.AddTextArg(kv[0], kv[1])
	}

	cancel := ButtonWithCallback("cancel", canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
		b.Parent().MarkForRemoval()
	}))
	c.acceptButton = ButtonWithCallback("accept", c.accept)

	return []*canopy.Widget{cancel, c.acceptButton, title}
}

func (c *ConfirmationWindow) OnKeyPress(w *canopy.Widget, action canopy.InputAction) bool {
	switch action {
	case canopy.ActionBack:
		w.MarkForRemoval()
		return true
	case canopy.ActionConfirm:
		if c.acceptButton != nil {
			c.accept.Call(c.acceptButton, canopy.ClickLeft)
		}
		return true
	}
	return false
}

func (c *ConfirmationWindow) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	canopy.DrawBackground(r, w)
}

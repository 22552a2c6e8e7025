package canopy

import "strings"

// textArg is one named substitution value. Args are kept in insertion order
// so theme renderers see them in the order widgets declared them.
type textArg struct {
	key, value string
}

// WidgetState holds the geometry, flags and text arguments for one widget.
// Kinds and callbacks mutate it directly; geometry changes must be followed
// by InvalidateLayout on the owning widget to take effect.
type WidgetState struct {
	Position Point
	Size     Size
	Border   Border

	enabled     bool
	active      bool
	modal       bool
	visible     bool
	mouseInside bool
	pressed     bool

	// placed is set by PlaceAt; layout keeps the position instead of
	// deriving it from the theme.
	placed bool

	textArgs  []textArg
	text      string
	callbacks []*Callback
}

func newWidgetState() WidgetState {
	return WidgetState{enabled: true, visible: true}
}

// Bounds returns the outer rectangle.
func (s *WidgetState) Bounds() Rect {
	return Rect{s.Position.X, s.Position.Y, s.Size.Width, s.Size.Height}
}

// InnerBounds returns the outer rectangle shrunk by the border.
func (s *WidgetState) InnerBounds() Rect {
	return s.Bounds().Inset(s.Border)
}

// InnerPosition returns the top-left corner inside the border.
func (s *WidgetState) InnerPosition() Point {
	r := s.InnerBounds()
	return Point{r.X, r.Y}
}

// InnerWidth returns the width inside the border.
func (s *WidgetState) InnerWidth() int {
	return s.InnerBounds().Width
}

// InnerHeight returns the height inside the border.
func (s *WidgetState) InnerHeight() int {
	return s.InnerBounds().Height
}

// SetPosition sets the outer top-left corner.
func (s *WidgetState) SetPosition(x, y int) {
	s.Position = Point{x, y}
}

// SetSize sets the outer extent.
func (s *WidgetState) SetSize(w, h int) {
	s.Size = Size{w, h}
}

// PlaceAt pins the widget's position so layout stops deriving it from the
// theme. Used for transient widgets positioned at a cursor or entity.
func (s *WidgetState) PlaceAt(x, y int) {
	s.Position = Point{x, y}
	s.placed = true
}

// IsPlaced reports whether PlaceAt pinned the position.
func (s *WidgetState) IsPlaced() bool { return s.placed }

// InBounds reports whether (x, y) lies inside the outer rectangle.
func (s *WidgetState) InBounds(x, y float64) bool {
	return s.Bounds().Contains(x, y)
}

func (s *WidgetState) SetEnabled(enabled bool) { s.enabled = enabled }
func (s *WidgetState) IsEnabled() bool         { return s.enabled }

func (s *WidgetState) SetActive(active bool) { s.active = active }
func (s *WidgetState) IsActive() bool        { return s.active }

// SetModal marks the widget as capturing all input while attached.
func (s *WidgetState) SetModal(modal bool) { s.modal = modal }
func (s *WidgetState) IsModal() bool       { return s.modal }

func (s *WidgetState) SetVisible(visible bool) { s.visible = visible }
func (s *WidgetState) IsVisible() bool         { return s.visible }

// IsMouseInside reports whether the cursor was inside the widget at the last
// mouse move.
func (s *WidgetState) IsMouseInside() bool { return s.mouseInside }

// IsPressed reports whether a mouse button went down inside the widget and
// has not yet been released.
func (s *WidgetState) IsPressed() bool { return s.pressed }

// --- Text args ---

// AddTextArg sets a named substitution value. Re-adding an existing key
// replaces its value without changing its position.
func (s *WidgetState) AddTextArg(key, value string) {
	for i := range s.textArgs {
		if s.textArgs[i].key == key {
			s.textArgs[i].value = value
			return
		}
	}
	s.textArgs = append(s.textArgs, textArg{key, value})
}

// TextArg returns the value for key and whether it was set.
func (s *WidgetState) TextArg(key string) (string, bool) {
	for _, a := range s.textArgs {
		if a.key == key {
			return a.value, true
		}
	}
	return "", false
}

// TextArgKeys returns the arg keys in insertion order.
func (s *WidgetState) TextArgKeys() []string {
	keys := make([]string, len(s.textArgs))
	for i, a := range s.textArgs {
		keys[i] = a.key
	}
	return keys
}

// NumTextArgs returns the number of args set.
func (s *WidgetState) NumTextArgs() int { return len(s.textArgs) }

// ClearTextArgs removes every text arg.
func (s *WidgetState) ClearTextArgs() {
	s.textArgs = s.textArgs[:0]
}

// SetText sets the raw text template, normally copied from the theme.
func (s *WidgetState) SetText(text string) { s.text = text }

// Text returns the raw text template.
func (s *WidgetState) Text() string { return s.text }

// ExpandText substitutes #key# references in the text template with their
// text args. A line starting with ?key is dropped unless key is set; the
// marker itself is stripped when kept. Unknown references expand to "".
func (s *WidgetState) ExpandText() string {
	if s.text == "" {
		return ""
	}
	lines := strings.Split(s.text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "?") {
			end := strings.IndexAny(line, " \t")
			if end < 0 {
				end = len(line)
			}
			if _, ok := s.TextArg(line[1:end]); !ok {
				continue
			}
			line = strings.TrimLeft(line[end:], " \t")
		}
		out = append(out, s.substitute(line))
	}
	return strings.Join(out, "\n")
}

func (s *WidgetState) substitute(line string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(line, '#')
		if start < 0 {
			b.WriteString(line)
			break
		}
		end := strings.IndexByte(line[start+1:], '#')
		if end < 0 {
			b.WriteString(line)
			break
		}
		b.WriteString(line[:start])
		key := line[start+1 : start+1+end]
		if v, ok := s.TextArg(key); ok {
			b.WriteString(v)
		}
		line = line[start+end+2:]
	}
	return b.String()
}

// --- Callbacks ---

// AddCallback registers cb to fire when the widget's kind activates it.
// The same *Callback may be registered on several widgets.
func (s *WidgetState) AddCallback(cb *Callback) {
	if cb == nil {
		return
	}
	s.callbacks = append(s.callbacks, cb)
}

// Callbacks returns the registered callbacks. The returned slice MUST NOT be
// mutated by the caller.
func (s *WidgetState) Callbacks() []*Callback {
	return s.callbacks
}

// ClearCallbacks removes all registered callbacks.
func (s *WidgetState) ClearCallbacks() {
	s.callbacks = nil
}

package canopy

import "fmt"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is the default tint (no color modification).
	ColorWhite = Color{1, 1, 1, 1}
	// ColorRed tints the hover cursor when the default action is invalid.
	ColorRed = Color{1, 0, 0, 1}
	// ColorBlack is used for opaque visibility masks.
	ColorBlack = Color{0, 0, 0, 1}
)

// Point is an integer position in UI grid units.
type Point struct {
	X, Y int
}

// Add returns p offset by o.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

// Size is an integer extent in UI grid units.
type Size struct {
	Width, Height int
}

// Border holds the insets between a widget's outer and inner rectangles.
type Border struct {
	Top, Bottom, Left, Right int
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The right and bottom edges are exclusive so adjacent widgets never both
// claim the same cursor position.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.Width) &&
		y >= float64(r.Y) && y < float64(r.Y+r.Height)
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Inset shrinks r by the given border. Negative results clamp to zero size.
func (r Rect) Inset(b Border) Rect {
	out := Rect{
		X:      r.X + b.Left,
		Y:      r.Y + b.Top,
		Width:  r.Width - b.Left - b.Right,
		Height: r.Height - b.Top - b.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// ClickKind identifies the mouse button that produced a press or release.
type ClickKind uint8

const (
	ClickLeft   ClickKind = iota // primary (left) mouse button
	ClickRight                   // secondary (right) mouse button
	ClickMiddle                  // middle mouse button (scroll wheel click)
)

func (k ClickKind) String() string {
	switch k {
	case ClickLeft:
		return "left"
	case ClickRight:
		return "right"
	case ClickMiddle:
		return "middle"
	default:
		return fmt.Sprintf("ClickKind(%d)", uint8(k))
	}
}

// InputAction is a keyboard event already resolved from raw key codes by the
// input backend's key bindings.
type InputAction uint8

const (
	ActionNone InputAction = iota
	ActionShowMenu
	ActionBack
	ActionConfirm
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionZoomIn
	ActionZoomOut
	ActionEndTurn
	ActionToggleInventory
	ActionToggleCharacter
	ActionExit
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionShowMenu:        "show_menu",
	ActionBack:            "back",
	ActionConfirm:         "confirm",
	ActionScrollUp:        "scroll_up",
	ActionScrollDown:      "scroll_down",
	ActionScrollLeft:      "scroll_left",
	ActionScrollRight:     "scroll_right",
	ActionZoomIn:          "zoom_in",
	ActionZoomOut:         "zoom_out",
	ActionEndTurn:         "end_turn",
	ActionToggleInventory: "toggle_inventory",
	ActionToggleCharacter: "toggle_character",
	ActionExit:            "exit",
}

func (a InputAction) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("InputAction(%d)", uint8(a))
}

// ParseInputAction resolves an action name as written in configuration
// files, e.g. "show_menu".
func ParseInputAction(name string) (InputAction, error) {
	for i, n := range actionNames {
		if n == name {
			return InputAction(i), nil
		}
	}
	return ActionNone, fmt.Errorf("canopy: unknown input action %q", name)
}

// TextureFilter selects GPU sampling for a registered texture.
type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota
	FilterLinear
)

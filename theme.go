package canopy

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ThemeFormatVersion is the newest theme file format this package reads.
const ThemeFormatVersion = "v1.1.0"

// PositionPolicy selects how layout derives one axis of a widget's position
// from its parent's inner rectangle.
type PositionPolicy string

const (
	// PositionZero places the widget at the parent's inner origin plus offset.
	PositionZero PositionPolicy = "zero"
	// PositionCenter centers the widget in the parent's inner extent.
	PositionCenter PositionPolicy = "center"
	// PositionMax aligns the widget's far edge with the parent's inner edge,
	// offset inward.
	PositionMax PositionPolicy = "max"
	// PositionCursor places the widget at the current cursor plus offset.
	PositionCursor PositionPolicy = "cursor"
	// PositionCustom leaves the position to the widget kind.
	PositionCustom PositionPolicy = "custom"
)

// SizePolicy selects how layout derives one axis of a widget's size.
type SizePolicy string

const (
	// SizeZero uses the theme's fixed extent.
	SizeZero SizePolicy = "zero"
	// SizeMax fills the parent's inner extent minus the theme offset.
	SizeMax SizePolicy = "max"
	// SizeChildrenMax grows to enclose the widget's children.
	SizeChildrenMax SizePolicy = "children_max"
	// SizeCustom leaves the size to the widget kind.
	SizeCustom SizePolicy = "custom"
)

// FlowLayout arranges children in sequence inside the inner rectangle.
type FlowLayout string

const (
	FlowNone       FlowLayout = "none"
	FlowVertical   FlowLayout = "vertical"
	FlowHorizontal FlowLayout = "horizontal"
	FlowGrid       FlowLayout = "grid"
)

// ThemeEntry is the resolved style and layout description for one widget.
type ThemeEntry struct {
	ID string `yaml:"-"`

	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	XPolicy      PositionPolicy `yaml:"x_policy"`
	YPolicy      PositionPolicy `yaml:"y_policy"`
	WidthPolicy  SizePolicy     `yaml:"width_policy"`
	HeightPolicy SizePolicy     `yaml:"height_policy"`

	Border  Border     `yaml:"border"`
	Layout  FlowLayout `yaml:"layout"`
	Spacing int        `yaml:"spacing"`

	Text       string `yaml:"text"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	TextColor  Color  `yaml:"-"`

	// Custom holds kind-specific keys the layout engine does not interpret.
	Custom map[string]string `yaml:"custom"`

	// fallback marks the built-in entry used when no theme id matches.
	fallback bool
}

// defaultThemeEntry leaves all geometry to code so widgets without a theme
// keep whatever position and size they were given.
var defaultThemeEntry = ThemeEntry{
	XPolicy:      PositionCustom,
	YPolicy:      PositionCustom,
	WidthPolicy:  SizeCustom,
	HeightPolicy: SizeCustom,
	Layout:       FlowNone,
	TextColor:    ColorWhite,
	fallback:     true,
}

// IsFallback reports whether this is the built-in default entry.
func (e *ThemeEntry) IsFallback() bool { return e.fallback }

// CustomInt returns the integer stored under key in Custom, or def when the
// key is absent or malformed.
func (e *ThemeEntry) CustomInt(key string, def int) int {
	v, ok := e.Custom[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		WarnOnce("theme-custom:"+e.ID+":"+key, "theme custom value is not an integer",
			"theme", e.ID, "key", key, "value", v)
		return def
	}
	return n
}

// Theme looks up entries by theme id.
type Theme interface {
	Lookup(id string) (*ThemeEntry, bool)
}

// ThemeSet is a flat map of dotted theme ids to entries.
type ThemeSet struct {
	entries map[string]*ThemeEntry
}

// NewThemeSet returns an empty set for building themes in code.
func NewThemeSet() *ThemeSet {
	return &ThemeSet{entries: make(map[string]*ThemeEntry)}
}

// Add registers e under id, filling unset policies with their zero values.
func (t *ThemeSet) Add(id string, e *ThemeEntry) {
	e.ID = id
	normalizeEntry(e)
	t.entries[id] = e
}

// Lookup implements Theme.
func (t *ThemeSet) Lookup(id string) (*ThemeEntry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// IDs returns every registered id, sorted.
func (t *ThemeSet) IDs() []string {
	ids := make([]string, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of entries.
func (t *ThemeSet) Len() int { return len(t.entries) }

// themeNode is the on-disk form of an entry: an entry plus nested children.
type themeNode struct {
	ThemeEntry `yaml:",inline"`
	TextColor  string                `yaml:"text_color"`
	Children   map[string]*themeNode `yaml:"children"`
}

type themeFile struct {
	Version string                `yaml:"version"`
	Themes  map[string]*themeNode `yaml:"themes"`
}

// LoadTheme parses a YAML theme document. Nested children are flattened into
// dotted ids, so "window: {children: {title: ...}}" yields "window" and
// "window.title".
func LoadTheme(data []byte) (*ThemeSet, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if f.Version != "" {
		if !semver.IsValid(f.Version) {
			return nil, fmt.Errorf("parse theme: invalid version %q", f.Version)
		}
		if semver.Major(f.Version) != semver.Major(ThemeFormatVersion) ||
			semver.Compare(f.Version, ThemeFormatVersion) > 0 {
			return nil, fmt.Errorf("parse theme: version %s not supported (reader is %s)",
				f.Version, ThemeFormatVersion)
		}
	}
	set := NewThemeSet()
	for id, node := range f.Themes {
		if err := set.addNode(id, node); err != nil {
			return nil, fmt.Errorf("parse theme: %w", err)
		}
	}
	return set, nil
}

// LoadThemeFile reads and parses a YAML theme file.
func LoadThemeFile(path string) (*ThemeSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	return LoadTheme(data)
}

func (t *ThemeSet) addNode(id string, n *themeNode) error {
	if n == nil {
		n = &themeNode{}
	}
	e := n.ThemeEntry
	e.TextColor = ColorWhite
	if n.TextColor != "" {
		c, err := ParseColor(n.TextColor)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		e.TextColor = c
	}
	if err := validateEntry(&e); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	t.Add(id, &e)
	for childID, child := range n.Children {
		if err := t.addNode(id+"."+childID, child); err != nil {
			return err
		}
	}
	return nil
}

func normalizeEntry(e *ThemeEntry) {
	if e.XPolicy == "" {
		e.XPolicy = PositionZero
	}
	if e.YPolicy == "" {
		e.YPolicy = PositionZero
	}
	if e.WidthPolicy == "" {
		e.WidthPolicy = SizeZero
	}
	if e.HeightPolicy == "" {
		e.HeightPolicy = SizeZero
	}
	if e.Layout == "" {
		e.Layout = FlowNone
	}
	if e.TextColor == (Color{}) {
		e.TextColor = ColorWhite
	}
}

func validateEntry(e *ThemeEntry) error {
	for _, p := range []PositionPolicy{e.XPolicy, e.YPolicy} {
		switch p {
		case "", PositionZero, PositionCenter, PositionMax, PositionCursor, PositionCustom:
		default:
			return fmt.Errorf("unknown position policy %q", p)
		}
	}
	for _, p := range []SizePolicy{e.WidthPolicy, e.HeightPolicy} {
		switch p {
		case "", SizeZero, SizeMax, SizeChildrenMax, SizeCustom:
		default:
			return fmt.Errorf("unknown size policy %q", p)
		}
	}
	switch e.Layout {
	case "", FlowNone, FlowVertical, FlowHorizontal, FlowGrid:
	default:
		return fmt.Errorf("unknown layout %q", e.Layout)
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" (leading # optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// resolveTheme finds the entry for w: the full dotted id first, then each
// shorter suffix down to the bare id, then the built-in default with a
// one-time warning.
func (s *Scene) resolveTheme(w *Widget) *ThemeEntry {
	if s.theme == nil {
		return &defaultThemeEntry
	}
	full := w.FullThemeID()
	id := full
	for {
		if e, ok := s.theme.Lookup(id); ok {
			return e
		}
		dot := strings.IndexByte(id, '.')
		if dot < 0 {
			break
		}
		id = id[dot+1:]
	}
	WarnOnce("theme:"+full, "no theme entry for widget; using default", "theme_id", full)
	return &defaultThemeEntry
}

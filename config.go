package canopy

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Config is the client configuration, read from a TOML file.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Input   InputConfig   `toml:"input"`
	Debug   DebugConfig   `toml:"debug"`
}

// DisplayConfig controls the display surface and animation timing.
type DisplayConfig struct {
	// Width and Height are the display extent in UI units.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Scale is the number of pixels per UI unit in graphics mode.
	Scale int `toml:"scale"`
	// Mode is "graphics" or "text".
	Mode string `toml:"mode"`
	// AnimationBaseTime is the default animation duration in millis.
	AnimationBaseTime uint32 `toml:"animation_base_time"`
	FrameRate         int    `toml:"frame_rate"`
	// DefaultZoom is the initial area view scale.
	DefaultZoom float64 `toml:"default_zoom"`
}

// InputConfig maps key names to input action names.
type InputConfig struct {
	Keybindings map[string]string `toml:"keybindings"`
	// EdgeScroll scrolls the area view when the cursor nears the edge.
	EdgeScroll bool `toml:"edge_scroll"`
}

// DebugConfig enables debug mode and sets the log level.
type DebugConfig struct {
	Enabled  bool   `toml:"enabled"`
	LogLevel string `toml:"log_level"`
}

const (
	ModeGraphics = "graphics"
	ModeText     = "text"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Width:             320,
			Height:            180,
			Scale:             4,
			Mode:              ModeGraphics,
			AnimationBaseTime: 100,
			FrameRate:         60,
			DefaultZoom:       1,
		},
		Input: InputConfig{
			Keybindings: map[string]string{
				"Escape":    "show_menu",
				"Backspace": "back",
				"Enter":     "confirm",
				"Up":        "scroll_up",
				"Down":      "scroll_down",
				"Left":      "scroll_left",
				"Right":     "scroll_right",
				"Equal":     "zoom_in",
				"Minus":     "zoom_out",
				"Space":     "end_turn",
				"I":         "toggle_inventory",
				"C":         "toggle_character",
				"Q":         "exit",
			},
		},
		Debug: DebugConfig{LogLevel: "info"},
	}
}

// LoadConfig reads the TOML configuration at path. A missing file yields
// DefaultConfig; values absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses TOML configuration data over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and that every key binding names a known action.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("config: display size %dx%d must be positive", c.Display.Width, c.Display.Height)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("config: display scale %d must be positive", c.Display.Scale)
	}
	switch c.Display.Mode {
	case ModeGraphics, ModeText:
	default:
		return fmt.Errorf("config: unknown display mode %q", c.Display.Mode)
	}
	if c.Display.DefaultZoom <= 0 {
		return fmt.Errorf("config: default zoom %v must be positive", c.Display.DefaultZoom)
	}
	for key, name := range c.Input.Keybindings {
		if _, err := ParseInputAction(name); err != nil {
			return fmt.Errorf("config: binding for %q: %w", key, err)
		}
	}
	if _, err := c.Debug.Level(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Bindings resolves the key bindings to actions. Keys are returned sorted
// so backends build their tables deterministically.
func (c *Config) Bindings() ([]string, map[string]InputAction) {
	out := make(map[string]InputAction, len(c.Input.Keybindings))
	keys := make([]string, 0, len(c.Input.Keybindings))
	for key, name := range c.Input.Keybindings {
		a, err := ParseInputAction(name)
		if err != nil {
			continue
		}
		out[key] = a
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, out
}

// Level parses LogLevel.
func (d DebugConfig) Level() (slog.Level, error) {
	switch d.LogLevel {
	case "trace":
		return LevelTrace, nil
	case "", "info":
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(d.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// Save writes c as TOML to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Apply sets the log level and debug mode of s from c.
func (c *Config) Apply(s *Scene) {
	if l, err := c.Debug.Level(); err == nil {
		SetLogLevel(l)
	}
	if s != nil {
		s.SetDebugMode(c.Debug.Enabled)
	}
}

package canopy

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	keys, bindings := cfg.Bindings()
	if len(keys) != len(cfg.Input.Keybindings) {
		t.Errorf("bindings = %d, want %d", len(keys), len(cfg.Input.Keybindings))
	}
	if bindings["Escape"] != ActionShowMenu {
		t.Errorf("Escape = %v, want show_menu", bindings["Escape"])
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatal("binding keys should be sorted")
		}
	}
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[display]
width = 640
mode = "text"

[input.keybindings]
F10 = "exit"

[debug]
enabled = true
log_level = "debug"
`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Display.Width != 640 || cfg.Display.Height != 180 {
		t.Errorf("display = %dx%d, want 640x180", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.Mode != ModeText {
		t.Errorf("mode = %q", cfg.Display.Mode)
	}
	_, bindings := cfg.Bindings()
	if bindings["F10"] != ActionExit {
		t.Errorf("F10 = %v, want exit", bindings["F10"])
	}
	if !cfg.Debug.Enabled {
		t.Error("debug should be enabled")
	}
	if l, _ := cfg.Debug.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v, want debug", l)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"syntax", "[display", "failed to parse config"},
		{"size", "[display]\nwidth = 0\n", "must be positive"},
		{"mode", "[display]\nmode = \"vr\"\n", "unknown display mode"},
		{"zoom", "[display]\ndefault_zoom = -1.0\n", "default zoom"},
		{"binding", "[input.keybindings]\nX = \"teleport\"\n", "unknown input action"},
		{"level", "[debug]\nlog_level = \"loud\"\n", "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "canopy.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Display.Width != DefaultConfig().Display.Width {
		t.Error("missing file should yield defaults")
	}
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canopy.toml")
	cfg := DefaultConfig()
	cfg.Display.Scale = 3
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Display.Scale != 3 {
		t.Errorf("Scale = %d, want 3", got.Display.Scale)
	}
}

func TestConfigApplySetsDebug(t *testing.T) {
	s := newTestScene(t)
	cfg := DefaultConfig()
	cfg.Debug.Enabled = true
	cfg.Apply(s)
	t.Cleanup(func() {
		s.SetDebugMode(false)
		SetLogLevel(slog.LevelInfo)
	})
	if !globalDebug {
		t.Error("Apply should enable debug mode")
	}
}

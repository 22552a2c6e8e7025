package termrender

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/canopy"
)

// keyAliases maps config key names, lower-cased, to bubbletea key strings
// where the two differ.
var keyAliases = map[string]string{
	"escape": "esc",
	"return": "enter",
	"equal":  "=",
	"minus":  "-",
	"space":  " ",
	"tab":    "tab",
	"delete": "delete",
}

// KeyName converts a config key name such as "Escape" or "Q" to the
// string bubbletea reports for that key.
func KeyName(name string) string {
	n := strings.ToLower(name)
	if alias, ok := keyAliases[n]; ok {
		return alias
	}
	return n
}

type frameMsg struct{}

// Model is the bubbletea model driving a canopy scene in text mode.
type Model struct {
	scene    *canopy.Scene
	screen   *Screen
	bindings map[string]canopy.InputAction
	frame    time.Duration
	held     canopy.ClickKind
	holding  bool
}

// NewModel returns a model for scene with bindings and frame rate from cfg.
func NewModel(scene *canopy.Scene, cfg canopy.Config) *Model {
	names, actions := cfg.Bindings()
	bindings := make(map[string]canopy.InputAction, len(names))
	for _, n := range names {
		bindings[KeyName(n)] = actions[n]
	}
	w, h := scene.DisplaySize()
	return &Model{
		scene:    scene,
		screen:   NewScreen(w, h),
		bindings: bindings,
		frame:    time.Second / time.Duration(max(cfg.Display.FrameRate, 1)),
	}
}

// Screen returns the grid the scene is drawn into.
func (m *Model) Screen() *Screen { return m.screen }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.scene.Update(uint32(m.frame / time.Millisecond))
		if m.scene.Done() {
			return m, tea.Quit
		}
		return m, m.tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		name := msg.String()
		if msg.Type == tea.KeySpace {
			name = " "
		}
		if a, ok := m.bindings[name]; ok {
			m.scene.Push(canopy.KeyPress(a))
		}
	case tea.MouseMsg:
		for _, ev := range m.mouseEvents(msg) {
			m.scene.Push(ev)
		}
	case tea.WindowSizeMsg:
		m.scene.Resize(msg.Width, msg.Height)
		m.screen.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// mouseEvents translates a bubbletea mouse message into scene events.
// Terminals may not report which button was released, so the held button
// is remembered from the press.
func (m *Model) mouseEvents(msg tea.MouseMsg) []canopy.Event {
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		click, ok := clickKind(msg.Button)
		if !ok {
			return nil
		}
		m.held, m.holding = click, true
		return []canopy.Event{canopy.MouseMove(x, y), canopy.MousePress(click)}
	case tea.MouseActionRelease:
		if !m.holding {
			return nil
		}
		m.holding = false
		return []canopy.Event{canopy.MouseMove(x, y), canopy.MouseRelease(m.held)}
	case tea.MouseActionMotion:
		if m.holding {
			return []canopy.Event{canopy.MouseDrag(m.held, x, y)}
		}
		return []canopy.Event{canopy.MouseMove(x, y)}
	}
	return nil
}

func clickKind(b tea.MouseButton) (canopy.ClickKind, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return canopy.ClickLeft, true
	case tea.MouseButtonRight:
		return canopy.ClickRight, true
	case tea.MouseButtonMiddle:
		return canopy.ClickMiddle, true
	}
	return 0, false
}

func (m *Model) View() string {
	m.screen.Clear()
	m.scene.DrawText(m.screen)
	return m.screen.String()
}

// Run drives scene in the terminal until its root is removed or the user
// presses ctrl+c. The scene is sized to the terminal when it can be read.
func Run(scene *canopy.Scene, cfg canopy.Config) error {
	if w, h, err := TerminalSize(); err == nil {
		scene.Resize(w, h)
	} else {
		canopy.Logger().Debug("terminal size unavailable", "err", err)
	}
	m := NewModel(scene, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	canopy.Logger().Info("starting text mode")
	_, err := p.Run()
	return err
}

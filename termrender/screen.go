// Package termrender draws canopy scenes as a grid of terminal cells and
// drives them with a bubbletea program.
package termrender

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/phanxgames/canopy"
)

type cell struct {
	r     rune
	style canopy.TextStyle
}

// Styles decorates runs of cells by canopy.TextStyle.
type Styles map[canopy.TextStyle]lipgloss.Style

// DefaultStyles reverses active cells, dims disabled ones and underlines
// the hovered widget.
func DefaultStyles() Styles {
	return Styles{
		canopy.StyleActive:   lipgloss.NewStyle().Reverse(true),
		canopy.StyleDisabled: lipgloss.NewStyle().Faint(true),
		canopy.StyleHover:    lipgloss.NewStyle().Underline(true),
	}
}

// Screen is a fixed-size character grid implementing
// canopy.StyledTextRenderer.
type Screen struct {
	width, height int
	cells         []cell
	cx, cy        int
	Styles        Styles
}

// NewScreen returns a blank width×height grid.
func NewScreen(width, height int) *Screen {
	s := &Screen{Styles: DefaultStyles()}
	s.Resize(width, height)
	return s
}

// TerminalSize reports the size of the terminal on stdout.
func TerminalSize() (w, h int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Resize changes the grid extent and clears it.
func (s *Screen) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.cells = make([]cell, s.width*s.height)
	s.Clear()
}

// Clear blanks every cell and homes the cursor.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{r: ' '}
	}
	s.cx, s.cy = 0, 0
}

func (s *Screen) DisplaySize() (int, int) { return s.width, s.height }

func (s *Screen) SetCursorPos(x, y int) { s.cx, s.cy = x, y }

func (s *Screen) RenderString(str string) { s.RenderStyledString(str, canopy.StyleNormal) }

// RenderStyledString writes str at the cursor, clipped to the grid. The
// cursor advances one cell per rune.
func (s *Screen) RenderStyledString(str string, style canopy.TextStyle) {
	if s.cy < 0 || s.cy >= s.height {
		s.cx += len([]rune(str))
		return
	}
	for _, r := range str {
		if s.cx >= 0 && s.cx < s.width {
			s.cells[s.cy*s.width+s.cx] = cell{r: r, style: style}
		}
		s.cx++
	}
}

// Rune returns the character at x, y, or a space outside the grid.
func (s *Screen) Rune(x, y int) rune {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return ' '
	}
	return s.cells[y*s.width+x].r
}

// StyleAt returns the style of the cell at x, y.
func (s *Screen) StyleAt(x, y int) canopy.TextStyle {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return canopy.StyleNormal
	}
	return s.cells[y*s.width+x].style
}

// Plain returns the grid rows without decoration.
func (s *Screen) Plain() []string {
	rows := make([]string, s.height)
	buf := make([]rune, s.width)
	for y := range rows {
		for x := range buf {
			buf[x] = s.cells[y*s.width+x].r
		}
		rows[y] = string(buf)
	}
	return rows
}

// String renders the grid with each styled run wrapped by its lipgloss
// style, rows joined by newlines.
func (s *Screen) String() string {
	var b strings.Builder
	run := make([]rune, 0, s.width)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := s.cells[y*s.width : (y+1)*s.width]
		for x := 0; x < len(row); {
			st := row[x].style
			run = run[:0]
			for ; x < len(row) && row[x].style == st; x++ {
				run = append(run, row[x].r)
			}
			b.WriteString(s.decorate(string(run), st))
		}
	}
	return b.String()
}

func (s *Screen) decorate(run string, style canopy.TextStyle) string {
	if style == canopy.StyleNormal {
		return run
	}
	if ls, ok := s.Styles[style]; ok {
		return ls.Render(run)
	}
	return run
}

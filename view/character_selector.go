package view

import (
	"strconv"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/widgets"
)

// Character is a saved player character offered by the selector.
type Character struct {
	ID       string
	Name     string
	Portrait string
	Class    string
	Level    int
}

// CharacterStore lists and deletes saved characters.
type CharacterStore interface {
	Characters() []Character
	DeleteCharacter(id string) error
}

// CharacterSelector is the main menu: a list of saved characters with
// new, delete and play buttons and a details panel for the selection.
// It must be the root widget of its scene; its buttons reach it through
// the root.
type CharacterSelector struct {
	store    CharacterStore
	selected *Character
	toSelect string
	exit     bool

	// NewCharacter is called with the selector widget when the new
	// character button is clicked. The button is disabled when nil.
	NewCharacter func(w *canopy.Widget)
}

func NewCharacterSelector(store CharacterStore) *CharacterSelector {
	return &CharacterSelector{store: store}
}

func (c *CharacterSelector) Name() string { return "character_selector" }

// IsExit reports whether the player chose to play or to quit.
func (c *CharacterSelector) IsExit() bool { return c.exit }

// Selected returns the selected character, or nil.
func (c *CharacterSelector) Selected() *Character { return c.selected }

// SetToSelect selects the character with id the next time the list is
// built.
func (c *CharacterSelector) SetToSelect(id string) { c.toSelect = id }

func (c *CharacterSelector) OnKeyPress(w *canopy.Widget, action canopy.InputAction) bool {
	if action != canopy.ActionShowMenu {
		return false
	}
	accept := canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
		root := b.Root()
		sel := canopy.KindAs[*CharacterSelector](root)
		sel.selected = nil
		sel.exit = true
		root.MarkForRemoval()
	})
	exitWindow := canopy.WithTheme(widgets.NewConfirmationWindow(accept), "exit_confirmation_window")
	exitWindow.State.SetModal(true)
	w.AddChild(exitWindow)
	return true
}

func (c *CharacterSelector) OnAdd(w *canopy.Widget) []*canopy.Widget {
	canopy.Trace("build character selector")
	title := canopy.WithTheme(widgets.EmptyLabel(), "title")
	charsTitle := canopy.WithTheme(widgets.EmptyLabel(), "characters_title")

	pane := canopy.Empty("characters_pane")
	var characters []Character
	if c.store != nil {
		characters = c.store.Characters()
	}
	for i := range characters {
		ch := characters[i]
		if c.toSelect != "" && ch.ID == c.toSelect {
			c.selected = &ch
			c.toSelect = ""
		}
		b := canopy.WithTheme(widgets.NewButton(), "character_button")
		b.State.AddTextArg("name", ch.Name)
		if ch.Portrait != "" {
			b.State.AddTextArg("portrait", ch.Portrait)
		}
		if c.selected != nil && c.selected.ID == ch.ID {
			b.State.SetActive(true)
		}
		b.State.AddCallback(selectCallback(ch))
		pane.AddChild(b)
	}

	newButton := canopy.WithTheme(widgets.NewButton(), "new_character_button")
	newButton.State.SetEnabled(c.NewCharacter != nil)
	newButton.State.AddCallback(canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
		root := b.Root()
		if sel := canopy.KindAs[*CharacterSelector](root); sel.NewCharacter != nil {
			sel.NewCharacter(root)
		}
	}))

	deleteButton := canopy.WithTheme(widgets.NewButton(), "delete_character_button")
	deleteButton.State.SetEnabled(c.selected != nil)
	if c.selected != nil {
		deleteButton.State.AddCallback(deleteCallback(*c.selected))
	}

	play := canopy.WithTheme(widgets.NewButton(), "play_button")
	play.State.SetEnabled(c.selected != nil)
	play.State.AddCallback(canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
		root := b.Root()
		canopy.KindAs[*CharacterSelector](root).exit = true
		root.MarkForRemoval()
	}))

	details := canopy.WithTheme(widgets.NewTextArea(), "details")
	if ch := c.selected; ch != nil {
		details.State.AddTextArg("name", ch.Name)
		details.State.AddTextArg("class", ch.Class)
		details.State.AddTextArg("level", strconv.Itoa(ch.Level))
	}

	return []*canopy.Widget{title, charsTitle, pane, newButton, deleteButton, play, details}
}

// selectCallback selects ch and rebuilds the selector. The button sits
// two levels below the selector.
func selectCallback(ch Character) *canopy.Callback {
	return canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
		parent := b.GoUpTree(2)
		sel := canopy.KindAs[*CharacterSelector](parent)
		sel.selected = &ch
		parent.InvalidateChildren()
	})
}

// deleteCallback opens a modal confirmation that deletes ch.
func deleteCallback(ch Character) *canopy.Callback {
	return canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
		root := b.Root()
		accept := canopy.NewCallback(func(b *canopy.Widget, _ canopy.ClickKind) {
			root := b.Root()
			sel := canopy.KindAs[*CharacterSelector](root)
			if sel.store != nil {
				if err := sel.store.DeleteCharacter(ch.ID); err != nil {
					canopy.Logger().Error("delete character", "id", ch.ID, "err", err)
				}
			}
			sel.selected = nil
			root.InvalidateChildren()
		})
		window := widgets.NewConfirmationWindow(accept)
		window.AddTitleArg("name", ch.Name)
		ww := canopy.WithTheme(window, "delete_character_confirmation_window")
		ww.State.SetModal(true)
		root.AddChild(ww)
	})
}

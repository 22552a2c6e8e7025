package view

import (
	"errors"
	"testing"

	"github.com/phanxgames/canopy"
)

type memStore struct {
	chars   []Character
	deleted []string
	err     error
}

func (m *memStore) Characters() []Character { return m.chars }

func (m *memStore) DeleteCharacter(id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	kept := m.chars[:0]
	for _, c := range m.chars {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.chars = kept
	return nil
}

func newStore() *memStore {
	return &memStore{chars: []Character{
		{ID: "aria", Name: "Aria", Class: "rogue", Level: 3},
		{ID: "bram", Name: "Bram", Class: "fighter", Level: 5},
	}}
}

func selectorScene(t *testing.T, sel *CharacterSelector) *canopy.Scene {
	t.Helper()
	return canopy.NewScene(canopy.WithDefaults(sel), 100, 100, nil)
}

func themeIDs(ws []*canopy.Widget) []string {
	ids := make([]string, len(ws))
	for i, w := range ws {
		ids[i] = w.ThemeID()
	}
	return ids
}

func TestCharacterSelectorChildren(t *testing.T) {
	sel := NewCharacterSelector(newStore())
	s := selectorScene(t, sel)
	root := s.Root()

	want := []string{"title", "characters_title", "characters_pane", "new_character_button",
		"delete_character_button", "play_button", "details"}
	got := themeIDs(root.Children())
	if len(got) != len(want) {
		t.Fatalf("children = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %q, want %q", i, got[i], want[i])
		}
	}
	pane := root.FindChild("characters_pane")
	if len(pane.Children()) != 2 {
		t.Fatalf("character buttons = %d", len(pane.Children()))
	}
	if name, _ := pane.ChildAt(1).State.TextArg("name"); name != "Bram" {
		t.Errorf("second button name = %q", name)
	}
	for _, id := range []string{"new_character_button", "delete_character_button", "play_button"} {
		if root.FindChild(id).State.IsEnabled() {
			t.Errorf("%s should be disabled with no selection", id)
		}
	}
}

func TestCharacterSelectorSelectRebuilds(t *testing.T) {
	sel := NewCharacterSelector(newStore())
	s := selectorScene(t, sel)
	oldPane := s.Root().FindChild("characters_pane")

	canopy.FireCallbacks(oldPane.ChildAt(1), canopy.ClickLeft)
	if sel.Selected() == nil || sel.Selected().ID != "bram" {
		t.Fatalf("selected = %v", sel.Selected())
	}
	s.Sweep()

	pane := s.Root().FindChild("characters_pane")
	if pane == oldPane || !oldPane.IsRemoved() {
		t.Fatal("selection should rebuild the children")
	}
	if !pane.ChildAt(1).State.IsActive() || pane.ChildAt(0).State.IsActive() {
		t.Error("only the selected button should be active")
	}
	if !s.Root().FindChild("play_button").State.IsEnabled() {
		t.Error("play should be enabled")
	}
	details := s.Root().FindChild("details")
	if lvl, _ := details.State.TextArg("level"); lvl != "5" {
		t.Errorf("details level = %q", lvl)
	}
}

func TestCharacterSelectorToSelect(t *testing.T) {
	sel := NewCharacterSelector(newStore())
	sel.SetToSelect("aria")
	s := selectorScene(t, sel)
	if sel.Selected() == nil || sel.Selected().ID != "aria" {
		t.Fatalf("selected = %v", sel.Selected())
	}
	if !s.Root().FindChild("characters_pane").ChildAt(0).State.IsActive() {
		t.Error("aria's button should be active")
	}
}

func TestCharacterSelectorDelete(t *testing.T) {
	store := newStore()
	sel := NewCharacterSelector(store)
	sel.SetToSelect("bram")
	s := selectorScene(t, sel)
	root := s.Root()

	canopy.FireCallbacks(root.FindChild("delete_character_button"), canopy.ClickLeft)
	window := root.FindChild("delete_character_confirmation_window")
	if window == nil {
		t.Fatal("delete should open a confirmation window")
	}
	if !window.State.IsModal() {
		t.Error("confirmation should be modal")
	}
	if name, _ := window.FindChild("title").State.TextArg("name"); name != "Bram" {
		t.Errorf("title name = %q", name)
	}

	canopy.FireCallbacks(window.FindChild("accept"), canopy.ClickLeft)
	s.Sweep()
	if len(store.deleted) != 1 || store.deleted[0] != "bram" {
		t.Fatalf("deleted = %v", store.deleted)
	}
	if sel.Selected() != nil {
		t.Error("selection should be cleared")
	}
	if root.FindChild("delete_character_confirmation_window") != nil {
		t.Error("window should be gone after the rebuild")
	}
	if n := len(root.FindChild("characters_pane").Children()); n != 1 {
		t.Errorf("character buttons = %d, want 1", n)
	}
}

func TestCharacterSelectorDeleteErrorLogged(t *testing.T) {
	logs := captureLogs(t)
	store := newStore()
	store.err = errors.New("disk full")
	sel := NewCharacterSelector(store)
	sel.SetToSelect("aria")
	s := selectorScene(t, sel)

	canopy.FireCallbacks(s.Root().FindChild("delete_character_button"), canopy.ClickLeft)
	window := s.Root().FindChild("delete_character_confirmation_window")
	canopy.FireCallbacks(window.FindChild("accept"), canopy.ClickLeft)
	if !contains(logs.String(), "disk full") {
		t.Errorf("error not logged:\n%s", logs)
	}
}

func TestShowMenuIsModal(t *testing.T) {
	sel := NewCharacterSelector(newStore())
	sel.SetToSelect("aria")
	s := selectorScene(t, sel)
	play := s.Root().FindChild("play_button")
	play.State.SetPosition(0, 50)
	play.State.SetSize(20, 5)

	s.Dispatch(canopy.KeyPress(canopy.ActionShowMenu))
	exitWindow := s.Root().FindChild("exit_confirmation_window")
	if exitWindow == nil || !exitWindow.State.IsModal() {
		t.Fatal("show menu should open a modal exit window")
	}

	s.Dispatch(canopy.MouseMove(5, 52))
	s.Dispatch(canopy.MousePress(canopy.ClickLeft))
	s.Dispatch(canopy.MouseRelease(canopy.ClickLeft))
	if sel.IsExit() {
		t.Fatal("modal window should block the play button")
	}

	s.Dispatch(canopy.KeyPress(canopy.ActionBack))
	s.Sweep()
	if s.Root().FindChild("exit_confirmation_window") != nil {
		t.Fatal("back should close the window")
	}

	s.Dispatch(canopy.MousePress(canopy.ClickLeft))
	s.Dispatch(canopy.MouseRelease(canopy.ClickLeft))
	if !sel.IsExit() || !s.Done() {
		t.Error("play should exit")
	}
	if sel.Selected() == nil {
		t.Error("play keeps the selection")
	}
}

func TestExitConfirmation(t *testing.T) {
	sel := NewCharacterSelector(newStore())
	sel.SetToSelect("aria")
	s := selectorScene(t, sel)

	s.Dispatch(canopy.KeyPress(canopy.ActionShowMenu))
	s.Dispatch(canopy.KeyPress(canopy.ActionConfirm))
	if !sel.IsExit() || !s.Done() {
		t.Fatal("confirm should exit")
	}
	if sel.Selected() != nil {
		t.Error("exit clears the selection")
	}
}

func TestNewCharacterHook(t *testing.T) {
	sel := NewCharacterSelector(newStore())
	var got *canopy.Widget
	sel.NewCharacter = func(w *canopy.Widget) { got = w }
	s := selectorScene(t, sel)

	b := s.Root().FindChild("new_character_button")
	if !b.State.IsEnabled() {
		t.Fatal("button should be enabled with a hook")
	}
	canopy.FireCallbacks(b, canopy.ClickLeft)
	if got != s.Root() {
		t.Error("hook should receive the selector widget")
	}
}

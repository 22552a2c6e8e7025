package canopy

import "testing"

func TestNewSceneRootGeometry(t *testing.T) {
	s := NewScene(Empty("root"), 320, 180, nil)
	if s.Root().State.Bounds() != (Rect{0, 0, 320, 180}) {
		t.Errorf("root bounds = %v", s.Root().State.Bounds())
	}
	if w, h := s.DisplaySize(); w != 320 || h != 180 {
		t.Errorf("DisplaySize = %dx%d", w, h)
	}
	if s.Root().Scene() != s {
		t.Error("root should point at its scene")
	}
}

func TestNewSceneOwnedRootPanics(t *testing.T) {
	p := Empty("p")
	c := Empty("c")
	p.AddChild(c)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewScene(c, 10, 10, nil)
}

func TestSceneRootCannotBeAdopted(t *testing.T) {
	captureLogs(t)
	s := newTestScene(t)
	other := Empty("other")
	other.AddChild(s.Root())
	if other.NumChildren() != 0 {
		t.Error("scene root should not be adopted")
	}
}

func TestUpdatePassesMillis(t *testing.T) {
	s := newTestScene(t)
	k := newLoggingKind("anim", nil)
	s.Root().AddChild(WithDefaults(k))
	s.Update(16)
	s.Update(17)
	if k.updates != 33 {
		t.Errorf("updates = %d, want 33", k.updates)
	}
}

func TestUpdateSkipsRemovedWidgets(t *testing.T) {
	s := newTestScene(t)
	k := newLoggingKind("anim", nil)
	w := WithDefaults(k)
	s.Root().AddChild(w)
	w.MarkForRemoval()
	s.Update(16)
	if k.updates != 0 {
		t.Errorf("removed widget updated (%d)", k.updates)
	}
	if k.removed != 1 {
		t.Errorf("OnRemove calls = %d, want 1", k.removed)
	}
}

func TestDoneWhenRootMarked(t *testing.T) {
	s := newTestScene(t)
	if s.Done() {
		t.Fatal("new scene should not be done")
	}
	s.Root().MarkForRemoval()
	s.Update(16)
	if !s.Done() {
		t.Error("scene should be done once the root is marked")
	}
}

func TestDrawParentsBeforeChildren(t *testing.T) {
	var order []string
	s := NewScene(WithDefaults(&orderKind{"root", &order}), 10, 10, nil)
	a := WithDefaults(&orderKind{"a", &order})
	s.Root().AddChild(a)
	a.AddChild(WithDefaults(&orderKind{"a1", &order}))
	s.Root().AddChild(WithDefaults(&orderKind{"b", &order}))
	hidden := WithDefaults(&orderKind{"hidden", &order})
	hidden.State.SetVisible(false)
	s.Root().AddChild(hidden)

	s.Draw(newRecordingRenderer(), 0)
	assertLog(t, order, "root", "a", "a1", "b")

	order = order[:0]
	s.DrawText(&nullText{})
	assertLog(t, order, "root", "a", "a1", "b")
}

type orderKind struct {
	name  string
	order *[]string
}

func (k *orderKind) Name() string { return k.name }

func (k *orderKind) DrawGraphicsMode(r GraphicsRenderer, w *Widget, millis uint32) {
	*k.order = append(*k.order, k.name)
}

func (k *orderKind) DrawTextMode(r TextRenderer, w *Widget) {
	*k.order = append(*k.order, k.name)
}

type nullText struct{}

func (nullText) SetCursorPos(x, y int)   {}
func (nullText) RenderString(s string)   {}
func (nullText) DisplaySize() (int, int) { return 80, 24 }

// --- Hover widget ---

func TestSetMouseOverReplacesOnlyOnNewKey(t *testing.T) {
	s := newTestScene(t)
	builds := 0
	build := func() *Widget {
		builds++
		return Empty("hover")
	}

	first := s.SetMouseOver("entity:1", build)
	again := s.SetMouseOver("entity:1", build)
	if first != again || builds != 1 {
		t.Fatalf("same key rebuilt the hover widget (builds=%d)", builds)
	}

	second := s.SetMouseOver("entity:2", build)
	if second == first || builds != 2 {
		t.Fatal("new key should build a new hover widget")
	}
	if !first.IsMarkedForRemoval() {
		t.Error("old hover widget should be marked for removal")
	}

	s.Update(16)
	if n := countThemeID(s.Root(), "hover"); n != 1 {
		t.Errorf("hover widgets attached = %d, want 1", n)
	}
	if w, key := s.MouseOver(); w != second || key != "entity:2" {
		t.Errorf("MouseOver = %v %q", w, key)
	}
}

func TestSetMouseOverManyTimesInOneFrame(t *testing.T) {
	s := newTestScene(t)
	for i := 0; i < 10; i++ {
		key := "k" + string(rune('a'+i))
		s.SetMouseOver(key, func() *Widget { return Empty("hover") })
	}
	s.Update(16)
	if n := countThemeID(s.Root(), "hover"); n != 1 {
		t.Errorf("hover widgets attached = %d, want 1", n)
	}
}

func TestClearMouseOver(t *testing.T) {
	s := newTestScene(t)
	s.SetMouseOver("a", func() *Widget { return Empty("hover") })
	s.ClearMouseOver()
	s.Update(16)
	if n := countThemeID(s.Root(), "hover"); n != 0 {
		t.Errorf("hover widgets attached = %d, want 0", n)
	}
	if w, key := s.MouseOver(); w != nil || key != "" {
		t.Error("MouseOver should be empty")
	}
	// Same key after clearing builds again.
	built := false
	s.SetMouseOver("a", func() *Widget { built = true; return Empty("hover") })
	if !built {
		t.Error("clearing should forget the key")
	}
}

func TestHoverWidgetRemovedExternally(t *testing.T) {
	s := newTestScene(t)
	w := s.SetMouseOver("a", func() *Widget { return Empty("hover") })
	w.MarkForRemoval()
	s.Update(16)
	if got, _ := s.MouseOver(); got != nil {
		t.Error("swept hover widget should be forgotten")
	}
}

func TestHoverWidgetDroppedByRebuild(t *testing.T) {
	s := newTestScene(t)
	builds := 0
	build := func() *Widget {
		builds++
		return Empty("hover")
	}
	first := s.SetMouseOver("entity:1", build)
	s.Update(16)

	s.Root().InvalidateChildren()
	s.Update(16)
	if w, key := s.MouseOver(); w != nil || key != "" {
		t.Fatalf("rebuild left hover %v %q", w, key)
	}

	again := s.SetMouseOver("entity:1", build)
	if again == first || builds != 2 {
		t.Fatalf("same key after rebuild should build again (builds=%d)", builds)
	}
	s.Update(16)
	if n := countThemeID(s.Root(), "hover"); n != 1 {
		t.Errorf("hover widgets attached = %d, want 1", n)
	}
}

func TestHoverKeptUntilRebuildSweeps(t *testing.T) {
	s := newTestScene(t)
	first := s.SetMouseOver("a", func() *Widget { return Empty("hover") })
	s.Update(16)

	s.Root().InvalidateChildren()
	if got := s.SetMouseOver("a", func() *Widget { return Empty("hover") }); got != first {
		t.Fatal("rebuild is deferred; the hover should still be reused")
	}
	s.Update(16)
	if got, _ := s.MouseOver(); got != nil {
		t.Error("hover dropped by the rebuild should be forgotten in the same sweep")
	}
}

func countThemeID(root *Widget, id string) int {
	n := 0
	root.Walk(func(w *Widget) bool {
		if w.ThemeID() == id {
			n++
		}
		return true
	})
	return n
}

// --- Theme swap ---

func TestSetThemeReresolves(t *testing.T) {
	s := newTestScene(t)
	w := Empty("panel")
	s.Root().AddChild(w)
	s.Sweep()
	if !w.Theme().IsFallback() {
		t.Fatal("no theme should mean the default entry")
	}
	th := NewThemeSet()
	th.Add("panel", &ThemeEntry{Width: 10, Height: 12})
	s.SetTheme(th)
	s.Sweep()
	if w.Theme().IsFallback() || w.State.Size != (Size{10, 12}) {
		t.Errorf("theme not applied: size %v", w.State.Size)
	}
}

// --- Debug ---

func TestSceneSetDebugMode(t *testing.T) {
	s := newTestScene(t)
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })
	if !s.debug || !globalDebug {
		t.Error("debug should be enabled")
	}
	s.Root().AddChild(Empty("a"))
	s.Update(16)
	if s.stats.widgetCount != 2 {
		t.Errorf("widgetCount = %d, want 2", s.stats.widgetCount)
	}
}

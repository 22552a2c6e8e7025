package canopy

import "testing"

type benchKind struct{ moves int }

func (k *benchKind) Name() string { return "cell" }

func (k *benchKind) OnMouseMove(w *Widget, dx, dy float64) bool {
	k.moves++
	return false
}

func (k *benchKind) DrawGraphicsMode(r GraphicsRenderer, w *Widget, millis uint32) {}

// setupBenchScene creates a scene with n fixed-size widgets in rows of 100,
// each 4×4 units.
func setupBenchScene(n int) *Scene {
	s := NewScene(Empty("root"), 400, 400, nil)
	for i := 0; i < n; i++ {
		s.Root().AddChild(box(&benchKind{}, (i%100)*4, (i/100)*4, 4, 4))
	}
	s.Sweep()
	return s
}

func BenchmarkDispatch_1000Widgets_Move(b *testing.B) {
	s := setupBenchScene(1000)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Dispatch(MouseMove(float64(i%400), float64((i/400)%40)))
	}
}

func BenchmarkSweep_1000Widgets_Relayout(b *testing.B) {
	s := setupBenchScene(1000)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Root().InvalidateLayout()
		s.Sweep()
	}
}

func BenchmarkSweep_100Widgets_Rebuild(b *testing.B) {
	s := NewScene(Empty("root"), 400, 400, nil)
	parent := box(&loggingKind{name: "parent", addFn: func(w *Widget) []*Widget {
		kids := make([]*Widget, 100)
		for i := range kids {
			kids[i] = box(&benchKind{}, i, 0, 1, 1)
		}
		return kids
	}}, 0, 0, 100, 1)
	s.Root().AddChild(parent)
	s.Sweep()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		parent.InvalidateChildren()
		s.Sweep()
	}
}

func BenchmarkDraw_1000Widgets(b *testing.B) {
	s := setupBenchScene(1000)
	r := newRecordingRenderer()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Draw(r, 16)
	}
}

func BenchmarkExpandText(b *testing.B) {
	st := newWidgetState()
	st.SetText("#name#\n?active Active: #ap# AP\n?passive Passive\n#description#")
	st.AddTextArg("name", "Fireball")
	st.AddTextArg("active", "")
	st.AddTextArg("ap", "4")
	st.AddTextArg("description", "Hurls a ball of fire.")
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = st.ExpandText()
	}
}

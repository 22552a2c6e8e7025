package canopy

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestTweenPairReachesTarget(t *testing.T) {
	x, y := 0.0, 0.0
	g := TweenPair(nil, &x, &y, 10, 20, 100, nil)
	g.Update(50)
	if g.Done {
		t.Fatal("should not be done halfway")
	}
	if x <= 0 || x >= 10 {
		t.Errorf("x halfway = %v", x)
	}
	g.Update(60)
	if !g.Done {
		t.Error("should be done")
	}
	if !approx(x, 10) || !approx(y, 20) {
		t.Errorf("end = %v,%v, want 10,20", x, y)
	}
}

func TestTweenValueLinear(t *testing.T) {
	v := 0.0
	g := TweenValue(nil, &v, 100, 1000, nil)
	g.Update(250)
	if !approx(v, 25) {
		t.Errorf("v = %v, want 25", v)
	}
}

func TestTweenColorAllComponents(t *testing.T) {
	c := Color{0, 0, 0, 0}
	g := TweenColor(nil, &c, Color{1, 0.5, 0.25, 1}, 100, ease.Linear)
	g.Update(100)
	if !approx(c.R, 1) || !approx(c.G, 0.5) || !approx(c.B, 0.25) || !approx(c.A, 1) {
		t.Errorf("color = %v", c)
	}
}

func TestTweenGroupStopsOnRemovedTarget(t *testing.T) {
	s := newTestScene(t)
	w := box(newLoggingKind("w", nil), 0, 0, 10, 10)
	s.Root().AddChild(w)

	x, y := 0.0, 0.0
	g := TweenPair(w, &x, &y, 10, 10, 100, nil)
	g.Update(10)
	moved := x

	w.MarkForRemoval()
	s.Update(0)
	g.Update(50)
	if !g.Done {
		t.Error("group should stop when its target is removed")
	}
	if x != moved {
		t.Errorf("x changed after removal: %v -> %v", moved, x)
	}
}

func TestTweenGroupStop(t *testing.T) {
	v := 0.0
	g := TweenValue(nil, &v, 1, 100, nil)
	g.Stop()
	g.Update(50)
	if v != 0 {
		t.Errorf("stopped group wrote %v", v)
	}
	var nilGroup *TweenGroup
	nilGroup.Update(10)
	nilGroup.Stop()
}

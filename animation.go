package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Kinds own
// their groups and call Update with the frame's elapsed millis from their
// own Update hook. If the target widget is removed, the group stops
// immediately.
//
// There is no global animation manager.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Widget
	Done   bool
}

// Update advances all tweens by millis and writes values to the target
// fields. If the target has been removed, Done is set and no writes occur.
func (g *TweenGroup) Update(millis uint32) {
	if g == nil || g.Done {
		return
	}
	if g.target != nil && g.target.IsRemoved() {
		g.Done = true
		return
	}

	dt := float32(millis) / 1000
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Stop ends the group where it is.
func (g *TweenGroup) Stop() {
	if g != nil {
		g.Done = true
	}
}

// TweenPair animates *x and *y to (toX, toY) over durationMillis.
func TweenPair(target *Widget, x, y *float64, toX, toY float64, durationMillis uint32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.OutQuad
	}
	d := float32(durationMillis) / 1000
	g := &TweenGroup{count: 2, target: target}
	g.tweens[0] = gween.New(float32(*x), float32(toX), d, fn)
	g.tweens[1] = gween.New(float32(*y), float32(toY), d, fn)
	g.fields[0] = x
	g.fields[1] = y
	return g
}

// TweenValue animates *v to to over durationMillis.
func TweenValue(target *Widget, v *float64, to float64, durationMillis uint32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: 1, target: target}
	g.tweens[0] = gween.New(float32(*v), float32(to), float32(durationMillis)/1000, fn)
	g.fields[0] = v
	return g
}

// TweenColor animates all four components of *c to to over durationMillis.
func TweenColor(target *Widget, c *Color, to Color, durationMillis uint32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	d := float32(durationMillis) / 1000
	g := &TweenGroup{count: 4, target: target}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), d, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), d, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), d, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), d, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

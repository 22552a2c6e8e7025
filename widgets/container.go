package widgets

import (
	"github.com/phanxgames/canopy"
)

// Container is a kind with a theme background whose children come from a
// build function. The function runs on attach and again after each
// InvalidateChildren, so a container rebuilt from current data only needs
// its widget invalidated.
type Container struct {
	name  string
	build func(w *canopy.Widget) []*canopy.Widget
}

// NewContainer returns a container named name. build may be nil.
func NewContainer(name string, build func(w *canopy.Widget) []*canopy.Widget) *Container {
	return &Container{name: name, build: build}
}

func (c *Container) Name() string { return c.name }

func (c *Container) OnAdd(w *canopy.Widget) []*canopy.Widget {
	if c.build == nil {
		return nil
	}
	return c.build(w)
}

func (c *Container) DrawGraphicsMode(r canopy.GraphicsRenderer, w *canopy.Widget, millis uint32) {
	canopy.DrawBackground(r, w)
}

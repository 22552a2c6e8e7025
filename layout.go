package canopy

// layoutSweep runs pending layouts top-down. A widget whose layout ran has
// had its children laid out by it; any child a custom Layouter skipped is
// still picked up by the recursion.
func (w *Widget) layoutSweep() int {
	n := 0
	if w.layoutInvalid {
		w.runLayout()
		n++
	}
	children := w.children
	for _, c := range children {
		n += c.layoutSweep()
	}
	return n
}

// runLayout lays out w now, through its kind's Layouter if it has one.
func (w *Widget) runLayout() {
	w.layoutInvalid = false
	if l, ok := w.kind.(Layouter); ok {
		l.Layout(w)
		return
	}
	w.DoBaseLayout()
}

// DoBaseLayout is the default layout: position and size from the theme,
// then every child.
func (w *Widget) DoBaseLayout() {
	w.DoSelfLayout()
	w.DoChildrenLayout()
}

// parentArea is the rectangle w is positioned within: the parent's inner
// rectangle, or the display for the root.
func (w *Widget) parentArea() Rect {
	if w.parent != nil {
		return w.parent.State.InnerBounds()
	}
	if w.scene != nil {
		return Rect{0, 0, w.scene.width, w.scene.height}
	}
	return w.State.Bounds()
}

// DoSelfLayout applies the theme entry to this widget's border, size and
// position. Pinned positions (PlaceAt) are kept.
func (w *Widget) DoSelfLayout() {
	t := w.Theme()
	st := &w.State
	if !t.fallback {
		st.Border = t.Border
	}
	area := w.parentArea()

	switch t.WidthPolicy {
	case SizeZero:
		st.Size.Width = t.Width
	case SizeMax:
		st.Size.Width = max(0, area.Width-t.X+t.Width)
	}
	switch t.HeightPolicy {
	case SizeZero:
		st.Size.Height = t.Height
	case SizeMax:
		st.Size.Height = max(0, area.Height-t.Y+t.Height)
	}

	if st.placed {
		return
	}
	var cursor Point
	if s := w.Scene(); s != nil {
		cursor = Point{int(s.cursorX), int(s.cursorY)}
	}
	st.Position.X = alignAxis(t.XPolicy, st.Position.X, area.X, area.Width, st.Size.Width, t.X, cursor.X)
	st.Position.Y = alignAxis(t.YPolicy, st.Position.Y, area.Y, area.Height, st.Size.Height, t.Y, cursor.Y)
}

func alignAxis(p PositionPolicy, cur, start, extent, size, offset, cursor int) int {
	switch p {
	case PositionZero:
		return start + offset
	case PositionCenter:
		return start + (extent-size)/2 + offset
	case PositionMax:
		return start + extent - size - offset
	case PositionCursor:
		return cursor + offset
	default:
		return cur
	}
}

// DoChildrenLayout lays out every child, then arranges them according to
// the theme's flow layout and grows this widget for children_max sizing.
func (w *Widget) DoChildrenLayout() {
	children := w.children
	for _, c := range children {
		c.runLayout()
	}
	t := w.Theme()
	switch t.Layout {
	case FlowVertical, FlowHorizontal, FlowGrid:
		w.flowChildren(t.Layout, t.Spacing)
	}
	if t.WidthPolicy == SizeChildrenMax || t.HeightPolicy == SizeChildrenMax {
		w.fitChildren(t)
	}
}

func (w *Widget) flowChildren(flow FlowLayout, spacing int) {
	inner := w.State.InnerBounds()
	x, y, rowHeight := inner.X, inner.Y, 0
	for _, c := range w.children {
		if c.State.placed || !c.State.visible {
			continue
		}
		size := c.State.Size
		switch flow {
		case FlowVertical:
			c.translate(inner.X-c.State.Position.X+c.Theme().X, y-c.State.Position.Y)
			y += size.Height + spacing
		case FlowHorizontal:
			c.translate(x-c.State.Position.X, inner.Y-c.State.Position.Y+c.Theme().Y)
			x += size.Width + spacing
		case FlowGrid:
			if x > inner.X && x+size.Width > inner.X+inner.Width {
				x = inner.X
				y += rowHeight + spacing
				rowHeight = 0
			}
			c.translate(x-c.State.Position.X, y-c.State.Position.Y)
			x += size.Width + spacing
			rowHeight = max(rowHeight, size.Height)
		}
	}
}

// fitChildren grows the widget to enclose its children plus border.
func (w *Widget) fitChildren(t *ThemeEntry) {
	inner := w.State.InnerPosition()
	right, bottom := 0, 0
	for _, c := range w.children {
		b := c.State.Bounds()
		right = max(right, b.X+b.Width-inner.X)
		bottom = max(bottom, b.Y+b.Height-inner.Y)
	}
	border := w.State.Border
	if t.WidthPolicy == SizeChildrenMax {
		w.State.Size.Width = right + border.Left + border.Right
	}
	if t.HeightPolicy == SizeChildrenMax {
		w.State.Size.Height = bottom + border.Top + border.Bottom
	}
}

// translate shifts w and its whole subtree.
func (w *Widget) translate(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	w.State.Position.X += dx
	w.State.Position.Y += dy
	for _, c := range w.children {
		c.translate(dx, dy)
	}
}

// LayoutNow runs this widget's layout immediately instead of waiting for the
// next sweep. Used by kinds that need their geometry inside OnAdd.
func (w *Widget) LayoutNow() {
	w.runLayout()
}

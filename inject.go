package canopy

// InjectMove queues a cursor move to (x, y).
func (s *Scene) InjectMove(x, y float64) {
	s.Push(MouseMove(x, y))
}

// InjectClick queues a move to (x, y) followed by a press and release of
// click. All three events dispatch on the next Update.
func (s *Scene) InjectClick(x, y float64, click ClickKind) {
	s.Push(MouseMove(x, y))
	s.Push(MousePress(click))
	s.Push(MouseRelease(click))
}

// InjectDrag queues a full drag sequence: move and press at (fromX, fromY),
// linearly interpolated drag moves over steps intermediate points, a final
// drag to (toX, toY), and a release. Minimum steps is 0.
func (s *Scene) InjectDrag(click ClickKind, fromX, fromY, toX, toY float64, steps int) {
	if steps < 0 {
		steps = 0
	}
	s.Push(MouseMove(fromX, fromY))
	s.Push(MousePress(click))
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.Push(MouseDrag(click, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t))
	}
	s.Push(MouseDrag(click, toX, toY))
	s.Push(MouseRelease(click))
}

// InjectKey queues a key press for action.
func (s *Scene) InjectKey(action InputAction) {
	s.Push(KeyPress(action))
}

package canopy

import (
	"encoding/json"
	"fmt"
)

// inputStep represents a single action in an input script.
type inputStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Button string  `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Steps  int     `json:"steps,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []inputStep `json:"steps"`
}

// InputRunner replays a scripted input sequence, one step per frame. Attach
// to a Scene via SetInputRunner.
type InputRunner struct {
	steps     []inputStep
	cursor    int
	waitCount int
	done      bool

	// OnLabel is called for "mark" steps, e.g. to queue a screenshot.
	OnLabel func(label string)
}

// LoadInputScript parses a JSON input script. Every step is validated up
// front so a bad script fails before any input is replayed.
func LoadInputScript(jsonData []byte) (*InputRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "move", "drag", "wait", "mark":
		case "click", "press", "release":
			if _, err := parseClick(st.Button); err != nil {
				return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
			}
		case "key":
			if _, err := ParseInputAction(st.Key); err != nil {
				return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &InputRunner{steps: script.Steps}, nil
}

func parseClick(name string) (ClickKind, error) {
	switch name {
	case "", "left":
		return ClickLeft, nil
	case "right":
		return ClickRight, nil
	case "middle":
		return ClickMiddle, nil
	}
	return ClickLeft, fmt.Errorf("unknown button %q", name)
}

// SetInputRunner attaches runner to the scene. Its step method is called
// from Scene.Update before queued events are dispatched.
func (s *Scene) SetInputRunner(runner *InputRunner) {
	s.runner = runner
}

// InputRunner returns the attached runner, or nil.
func (s *Scene) InputRunner() *InputRunner { return s.runner }

// Done reports whether all steps in the script have been executed.
func (r *InputRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *InputRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	click, _ := parseClick(st.Button)
	switch st.Action {
	case "move":
		s.InjectMove(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y, click)
	case "press":
		s.Push(MousePress(click))
	case "release":
		s.Push(MouseRelease(click))
	case "drag":
		s.InjectDrag(click, st.FromX, st.FromY, st.ToX, st.ToY, st.Steps)
	case "key":
		action, _ := ParseInputAction(st.Key)
		s.InjectKey(action)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mark":
		if r.OnLabel != nil {
			r.OnLabel(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

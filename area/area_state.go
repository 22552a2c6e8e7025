package area

import (
	"fmt"
	"math"

	"github.com/phanxgames/canopy"
)

// AreaState is the mutable state of an area during play: entities, props,
// player visibility and the queue of scroll requests for the view.
type AreaState struct {
	Area *Area

	entities []*EntityState
	props    []*PropState
	feedback []*FeedbackText

	pcVisibility      []bool
	pcVisCacheInvalid bool

	scrollTo []*EntityState

	// Listeners fire when entities are added or removed.
	Listeners ChangeListenerList[*AreaState]
}

// NewAreaState validates a and returns an empty state for it. Nothing is
// visible until a player entity is added.
func NewAreaState(a *Area) (*AreaState, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &AreaState{
		Area:              a,
		pcVisibility:      make([]bool, a.Width*a.Height),
		pcVisCacheInvalid: true,
	}, nil
}

// AddActor places actor with its top-left corner at (x, y).
func (s *AreaState) AddActor(actor *Actor, x, y int, isPC bool) (*EntityState, error) {
	e := newEntityState(actor, x, y, len(s.entities), isPC)
	n := e.Size().Size
	if !s.Area.CoordsValid(x, y) || !s.Area.CoordsValid(x+n-1, y+n-1) {
		return nil, fmt.Errorf("add %s at %d,%d: outside area %s", actor.ID, x, y, s.Area.ID)
	}
	for _, p := range e.LocationPoints() {
		if o := s.EntityAt(p.X, p.Y); o != nil {
			return nil, fmt.Errorf("add %s at %d,%d: occupied by %s", actor.ID, x, y, o.Actor.ID)
		}
	}
	s.entities = append(s.entities, e)
	if isPC {
		s.ComputePCVisibility()
	}
	s.Listeners.Notify(s)
	return e, nil
}

// AddProp places prop with its top-left corner at (x, y).
func (s *AreaState) AddProp(prop *Prop, x, y int) (*PropState, error) {
	if !s.Area.CoordsValid(x, y) || !s.Area.CoordsValid(x+prop.Width-1, y+prop.Height-1) {
		return nil, fmt.Errorf("add prop %s at %d,%d: outside area %s", prop.ID, x, y, s.Area.ID)
	}
	p := &PropState{Prop: prop, Location: canopy.Point{X: x, Y: y}, Index: len(s.props)}
	s.props = append(s.props, p)
	return p, nil
}

// Entities returns the entities in draw order.
func (s *AreaState) Entities() []*EntityState { return s.entities }

// Props returns the props in draw order.
func (s *AreaState) Props() []*PropState { return s.props }

// Prop returns the prop at index, or nil.
func (s *AreaState) Prop(index int) *PropState {
	if index < 0 || index >= len(s.props) {
		return nil
	}
	return s.props[index]
}

// PC returns the first player entity, or nil.
func (s *AreaState) PC() *EntityState {
	for _, e := range s.entities {
		if e.isPC {
			return e
		}
	}
	return nil
}

// EntityAt returns the entity covering tile (x, y), or nil.
func (s *AreaState) EntityAt(x, y int) *EntityState {
	for _, e := range s.entities {
		if !e.markedForRemoval && e.Covers(x, y) {
			return e
		}
	}
	return nil
}

// PropIndexAt returns the index of the prop covering tile (x, y).
func (s *AreaState) PropIndexAt(x, y int) (int, bool) {
	for i, p := range s.props {
		if p.Covers(x, y) {
			return i, true
		}
	}
	return 0, false
}

// --- Visibility ---

// IsPCVisible reports whether the player can see tile (x, y).
func (s *AreaState) IsPCVisible(x, y int) bool {
	if !s.Area.CoordsValid(x, y) {
		return false
	}
	return s.pcVisibility[x+y*s.Area.Width]
}

// SetPCVisible overrides the visibility of one tile.
func (s *AreaState) SetPCVisible(x, y int, visible bool) {
	if !s.Area.CoordsValid(x, y) {
		return
	}
	i := x + y*s.Area.Width
	if s.pcVisibility[i] != visible {
		s.pcVisibility[i] = visible
		s.pcVisCacheInvalid = true
	}
}

// ComputePCVisibility marks every tile within VisDist of a player entity's
// center as visible and the rest as hidden. VisDist <= 0 means unlimited.
func (s *AreaState) ComputePCVisibility() {
	clear(s.pcVisibility)
	w, h := s.Area.Width, s.Area.Height
	for _, e := range s.entities {
		if !e.isPC || e.markedForRemoval {
			continue
		}
		n := float64(e.Size().Size)
		cx := float64(e.Location.X) + n/2
		cy := float64(e.Location.Y) + n/2
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if s.Area.VisDist <= 0 ||
					math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= float64(s.Area.VisDist) {
					s.pcVisibility[x+y*w] = true
				}
			}
		}
	}
	s.pcVisCacheInvalid = true
}

// PCVisCacheInvalid reports whether visibility changed since the view
// last redrew its visibility texture.
func (s *AreaState) PCVisCacheInvalid() bool { return s.pcVisCacheInvalid }

// InvalidatePCVisCache forces a visibility redraw.
func (s *AreaState) InvalidatePCVisCache() { s.pcVisCacheInvalid = true }

// ClearPCVisCacheInvalid is called by the view after redrawing.
func (s *AreaState) ClearPCVisCacheInvalid() { s.pcVisCacheInvalid = false }

// --- Scroll requests ---

// PushScrollTo asks the view to center on e at its next draw.
func (s *AreaState) PushScrollTo(e *EntityState) {
	s.scrollTo = append(s.scrollTo, e)
}

// PopScrollTo returns the oldest pending scroll request, or nil.
func (s *AreaState) PopScrollTo() *EntityState {
	if len(s.scrollTo) == 0 {
		return nil
	}
	e := s.scrollTo[0]
	s.scrollTo = s.scrollTo[1:]
	return e
}

// --- Feedback text ---

// AddFeedbackText shows floating text at tile position (x, y) for
// durationMillis.
func (s *AreaState) AddFeedbackText(text string, x, y float64, c canopy.Color, durationMillis uint32) {
	s.feedback = append(s.feedback, &FeedbackText{
		Text: text, X: x, Y: y, Color: c, duration: durationMillis,
	})
}

// FeedbackTexts returns the live feedback texts.
func (s *AreaState) FeedbackTexts() []*FeedbackText { return s.feedback }

// --- Frame update ---

// Update advances entities and feedback text and drops entities marked
// for removal, releasing their texture slots.
func (s *AreaState) Update(millis uint32) {
	for _, e := range s.entities {
		e.Update(millis)
	}

	removed := false
	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.markedForRemoval {
			e.ClearTextureCache()
			removed = true
			continue
		}
		e.Index = len(kept)
		kept = append(kept, e)
	}
	clear(s.entities[len(kept):])
	s.entities = kept

	live := s.feedback[:0]
	for _, f := range s.feedback {
		if f.update(millis) {
			live = append(live, f)
		}
	}
	clear(s.feedback[len(live):])
	s.feedback = live

	if removed {
		s.ComputePCVisibility()
		s.Listeners.Notify(s)
	}
}

// FeedbackText is floating text over the area, such as damage numbers.
// It rises half a tile per second and fades over its last quarter.
type FeedbackText struct {
	Text  string
	X, Y  float64
	Color canopy.Color

	age      uint32
	duration uint32
}

func (f *FeedbackText) update(millis uint32) bool {
	f.age += millis
	f.Y -= float64(millis) / 2000
	if f.age >= f.duration {
		return false
	}
	if fade := f.duration / 4; fade > 0 && f.duration-f.age < fade {
		f.Color.A = float64(f.duration-f.age) / float64(fade)
	}
	return true
}

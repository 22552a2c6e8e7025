package area

import (
	"math"

	"github.com/phanxgames/canopy"
)

// RoundTimeMillis is the length of one combat round.
const RoundTimeMillis = 5000

// Effect is a timed modifier on an entity. Listeners fire each time the
// effect crosses a round boundary; removal listeners fire once when the
// effect expires.
type Effect struct {
	name          string
	curDuration   uint32
	totalDuration uint32
	removed       bool

	// Overlay is an optional sprite drawn over the entity's appearance
	// while the effect lasts.
	Overlay string

	Listeners        ChangeListenerList[*Effect]
	RemovalListeners ChangeListenerList[*Effect]
}

// NewEffect returns an effect lasting durationMillis.
func NewEffect(name string, durationMillis uint32) *Effect {
	return &Effect{name: name, totalDuration: durationMillis}
}

func (e *Effect) Name() string { return e.name }

// DurationMillis returns the total duration.
func (e *Effect) DurationMillis() uint32 { return e.totalDuration }

// Update advances the effect.
func (e *Effect) Update(millis uint32) {
	before := e.curDuration / RoundTimeMillis
	e.curDuration += millis
	if before != e.curDuration/RoundTimeMillis {
		e.Listeners.Notify(e)
	}
}

// IsRemoval reports whether the effect has expired. The first call that
// returns true notifies the removal listeners.
func (e *Effect) IsRemoval() bool {
	if e.curDuration < e.totalDuration {
		return false
	}
	if !e.removed {
		e.removed = true
		canopy.Logger().Debug("removing effect", "effect", e.name)
		e.RemovalListeners.Notify(e)
	}
	return true
}

// TotalDurationRounds returns the duration in rounds, rounded up.
func (e *Effect) TotalDurationRounds() uint32 {
	return uint32(math.Ceil(float64(e.totalDuration) / RoundTimeMillis))
}

// RemainingDurationRounds returns the rounds left, rounded up.
func (e *Effect) RemainingDurationRounds() uint32 {
	if e.curDuration > e.totalDuration {
		return 0
	}
	return uint32(math.Ceil(float64(e.totalDuration-e.curDuration) / RoundTimeMillis))
}

package canopy

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and tree metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	dispatchTime time.Duration
	sweepTime    time.Duration
	updateTime   time.Duration
	dispatched   int
	removed      int
	laidOut      int
	widgetCount  int
}

// debugLog prints timing and tree stats to stderr.
func (s *Scene) debugLog() {
	if !s.debug {
		return
	}
	st := s.stats
	total := st.dispatchTime + st.sweepTime + st.updateTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[canopy] dispatch: %v | sweep: %v | update: %v | total: %v\n",
		st.dispatchTime, st.sweepTime, st.updateTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[canopy] events: %d | removed: %d | laid out: %d | widgets: %d\n",
		st.dispatched, st.removed, st.laidOut, st.widgetCount)
}

// debugCheckRemoved panics with a descriptive message when a widget dropped
// by the removal sweep is used in a tree operation. Only called in debug
// mode.
func debugCheckRemoved(w *Widget, op string) {
	if w.removed {
		panic(fmt.Sprintf("canopy debug: %s on removed widget %q (ID %d)", op, w.themeID, w.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[canopy] warning: tree depth %d exceeds %d (widget %q)\n",
			depth, debugMaxTreeDepth, w.themeID)
	}
}

// debugCheckChildCount warns on stderr if a widget has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if len(w.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[canopy] warning: widget %q has %d children (threshold %d)\n",
			w.themeID, len(w.children), debugMaxChildCount)
	}
}

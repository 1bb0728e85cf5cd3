package wheel

import "fmt"

// ArrowPhase tracks the arrowhead across spin start and stop.
//
//	StartSpin            front-growing
//	─────────► AtStart ────────────────► Hidden
//
//	StopSpin                   front-growing           back-growing
//	─────────► Transitioning ────────────────► AtEnd ────────────────► Hidden (spin ends)
//
//	StopSpin while AtStart            front-growing
//	─────────► StartStopPending ────────────────► AtEnd
//
// The arrow is drawn while AtStart or StartStopPending and the arc grows from
// its back, while AtEnd and the arc grows from its front, and once more on
// the frame that ends spinning.
type ArrowPhase int

const (
	// ArrowHidden shows no arrow.
	ArrowHidden ArrowPhase = iota
	// ArrowAtStart shows the arrow as spinning begins.
	ArrowAtStart
	// ArrowTransitioning waits for the next front-growing half-cycle after a stop request.
	ArrowTransitioning
	// ArrowAtEnd shows the arrow catching up before spinning halts.
	ArrowAtEnd
	// ArrowStartStopPending keeps the start arrow while a stop request waits.
	ArrowStartStopPending
)

func (p ArrowPhase) String() string {
	switch p {
	case ArrowHidden:
		return "hidden"
	case ArrowAtStart:
		return "at-start"
	case ArrowTransitioning:
		return "transitioning"
	case ArrowAtEnd:
		return "at-end"
	case ArrowStartStopPending:
		return "at-start-stop-pending"
	default:
		return fmt.Sprintf("ArrowPhase(%d)", int(p))
	}
}

// stopPending reports whether a stop request is in flight.
func (p ArrowPhase) stopPending() bool {
	return p == ArrowTransitioning || p == ArrowAtEnd || p == ArrowStartStopPending
}

// arrowStep is the result of advancing the phase by one frame.
type arrowStep struct {
	next     ArrowPhase
	show     bool
	haltSpin bool
}

// advanceArrow applies one frame of the transition table given which end of
// the arc is growing.
func advanceArrow(p ArrowPhase, growingFromFront bool) arrowStep {
	switch p {
	case ArrowAtStart:
		if growingFromFront {
			return arrowStep{next: ArrowHidden}
		}
		return arrowStep{next: ArrowAtStart, show: true}
	case ArrowStartStopPending:
		if growingFromFront {
			return arrowStep{next: ArrowAtEnd, show: true}
		}
		return arrowStep{next: ArrowStartStopPending, show: true}
	case ArrowTransitioning:
		if growingFromFront {
			return arrowStep{next: ArrowAtEnd, show: true}
		}
		return arrowStep{next: ArrowTransitioning}
	case ArrowAtEnd:
		if growingFromFront {
			return arrowStep{next: ArrowAtEnd, show: true}
		}
		return arrowStep{next: ArrowHidden, show: true, haltSpin: true}
	default:
		return arrowStep{next: ArrowHidden}
	}
}

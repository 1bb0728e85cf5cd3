package wheel

import "testing"

func TestAdvanceArrow(t *testing.T) {
	tests := []struct {
		phase ArrowPhase
		front bool
		want  arrowStep
	}{
		{ArrowHidden, false, arrowStep{next: ArrowHidden}},
		{ArrowHidden, true, arrowStep{next: ArrowHidden}},
		{ArrowAtStart, false, arrowStep{next: ArrowAtStart, show: true}},
		{ArrowAtStart, true, arrowStep{next: ArrowHidden}},
		{ArrowStartStopPending, false, arrowStep{next: ArrowStartStopPending, show: true}},
		{ArrowStartStopPending, true, arrowStep{next: ArrowAtEnd, show: true}},
		{ArrowTransitioning, false, arrowStep{next: ArrowTransitioning}},
		{ArrowTransitioning, true, arrowStep{next: ArrowAtEnd, show: true}},
		{ArrowAtEnd, true, arrowStep{next: ArrowAtEnd, show: true}},
		{ArrowAtEnd, false, arrowStep{next: ArrowHidden, show: true, haltSpin: true}},
	}
	for _, tt := range tests {
		if got := advanceArrow(tt.phase, tt.front); got != tt.want {
			t.Errorf("advanceArrow(%v, front=%v) = %+v, want %+v", tt.phase, tt.front, got, tt.want)
		}
	}
}

func TestArrowPhaseString(t *testing.T) {
	if got := ArrowTransitioning.String(); got != "transitioning" {
		t.Errorf("String() = %q", got)
	}
	if got := ArrowStartStopPending.String(); got != "at-start-stop-pending" {
		t.Errorf("String() = %q", got)
	}
	if got := ArrowPhase(9).String(); got != "ArrowPhase(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestStopPending(t *testing.T) {
	for p, want := range map[ArrowPhase]bool{
		ArrowHidden:           false,
		ArrowAtStart:          false,
		ArrowTransitioning:    true,
		ArrowAtEnd:            true,
		ArrowStartStopPending: true,
	} {
		if got := p.stopPending(); got != want {
			t.Errorf("%v.stopPending() = %v, want %v", p, got, want)
		}
	}
}

package lander

import (
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
)

// InputLatch turns discrete terminal key presses into held controls.
// Terminals report presses and auto-repeats but never releases, so each press
// keeps its control active for a number of frames.
type InputLatch struct {
	hold   int
	left   int
	right  int
	thrust int
}

// NewInputLatch creates a latch holding each press for hold frames.
func NewInputLatch(hold int) *InputLatch {
	return &InputLatch{hold: max(hold, 1)}
}

// Update consumes one frame of input and returns the controls held during it.
func (l *InputLatch) Update(in core.InputFrame) sim.Controls {
	l.left = max(l.left-1, 0)
	l.right = max(l.right-1, 0)
	l.thrust = max(l.thrust-1, 0)

	// Opposing rotation cancels the other direction immediately
	if in.Has(core.ActionRotateLeft) {
		l.left, l.right = l.hold, 0
	}
	if in.Has(core.ActionRotateRight) {
		l.right, l.left = l.hold, 0
	}
	if in.Has(core.ActionThrust) {
		l.thrust = l.hold
	}

	return sim.Controls{
		RotateLeft:  l.left > 0,
		RotateRight: l.right > 0,
		Thrust:      l.thrust > 0,
	}
}

// Reset releases every control.
func (l *InputLatch) Reset() {
	l.left, l.right, l.thrust = 0, 0, 0
}

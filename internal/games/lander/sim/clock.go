package sim

// DefaultMaxStepsPerFrame bounds catch-up work after a stalled frame.
const DefaultMaxStepsPerFrame = 8

// Clock converts variable frame durations into a whole number of fixed steps.
// Leftover time is carried to the next frame.
type Clock struct {
	Dt       float64
	MaxSteps int

	acc float64
}

// NewClock creates a clock stepping dt seconds at most maxSteps times a frame.
func NewClock(dt float64, maxSteps int) *Clock {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxStepsPerFrame
	}
	return &Clock{Dt: dt, MaxSteps: maxSteps}
}

// Advance adds frame seconds and calls step once per whole dt. step returns
// false to stop early, in which case pending time is discarded. Time beyond
// MaxSteps is also discarded. Returns the number of steps run.
func (c *Clock) Advance(frame float64, step func() bool) int {
	if c.Dt <= 0 || frame <= 0 {
		return 0
	}

	c.acc += frame
	steps := 0
	for c.acc >= c.Dt {
		if steps >= c.MaxSteps {
			c.acc = 0
			break
		}
		c.acc -= c.Dt
		steps++
		if !step() {
			c.acc = 0
			break
		}
	}
	return steps
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}

// Pending returns the accumulated time not yet consumed.
func (c *Clock) Pending() float64 {
	return c.acc
}

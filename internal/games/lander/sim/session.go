package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// ErrInvalidTransition is returned when a session operation is not allowed in
// the current state.
var ErrInvalidTransition = errors.New("sim: invalid state transition")

// ErrInvalidSession is returned by NewSession for unusable configuration.
var ErrInvalidSession = errors.New("sim: invalid session config")

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateCountdown
	StateActive
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// TelemetrySink receives a snapshot after every tick that runs physics.
type TelemetrySink interface {
	Telemetry(Telemetry)
}

// OutcomeSink receives the terminal outcome once per round.
type OutcomeSink interface {
	Outcome(Outcome)
}

// SessionConfig aggregates every tunable of a session.
type SessionConfig struct {
	Surface          SurfaceParams
	Physics          PhysicsParams
	Craft            CraftParams
	Limits           LandingLimits
	Motion           BodyMotion
	Origin           core.Vec2 // Initial body center
	CountdownTicks   int
	Dt               float64 // Fixed step, seconds
	MaxStepsPerFrame int
	Seed             int64
}

// Validate checks the configuration for values the simulation cannot run with.
func (c SessionConfig) Validate() error {
	if err := c.Surface.Validate(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidSession, c.Dt)
	}
	if c.CountdownTicks < 0 {
		return fmt.Errorf("%w: countdown ticks must not be negative", ErrInvalidSession)
	}
	if c.Craft.HalfW <= 0 || c.Craft.HalfH <= 0 {
		return fmt.Errorf("%w: craft size must be positive", ErrInvalidSession)
	}
	if c.Craft.FuelCapacity < 0 {
		return fmt.Errorf("%w: fuel capacity must not be negative", ErrInvalidSession)
	}
	if c.Limits.MaxSpeed < 0 || c.Limits.MaxAngle < 0 {
		return fmt.Errorf("%w: landing limits must not be negative", ErrInvalidSession)
	}
	return nil
}

// Option configures a Session.
type Option func(*Session)

// WithTelemetrySink attaches a telemetry consumer.
func WithTelemetrySink(sink TelemetrySink) Option {
	return func(s *Session) {
		s.telemetrySink = sink
	}
}

// WithOutcomeSink attaches an outcome consumer.
func WithOutcomeSink(sink OutcomeSink) Option {
	return func(s *Session) {
		s.outcomeSink = sink
	}
}

// WithRand makes every round generate its surface from r instead of a
// per-round seed.
func WithRand(r Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// Session owns all mutable state of one lander game.
type Session struct {
	cfg   SessionConfig
	clock *Clock

	state     State
	paused    bool
	countdown int
	elapsed   float64

	body       *Body
	craft      Craft
	outcome    Outcome
	hasOutcome bool

	seeds     *rand.Rand
	roundSeed int64
	rounds    int
	rng       Rand

	telemetrySink TelemetrySink
	outcomeSink   OutcomeSink
}

// NewSession creates an Idle session.
func NewSession(cfg SessionConfig, opts ...Option) (*Session, error) {
	if cfg.Physics.FuelCapacity <= 0 {
		cfg.Physics.FuelCapacity = cfg.Craft.FuelCapacity
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		clock: NewClock(cfg.Dt, cfg.MaxStepsPerFrame),
		state: StateIdle,
		seeds: rand.New(rand.NewSource(cfg.Seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start leaves Idle and begins the first countdown.
func (s *Session) Start() error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	return s.beginRound()
}

// Restart discards the current round and begins a new one with fresh terrain.
// From Idle it behaves like Start.
func (s *Session) Restart() error {
	return s.beginRound()
}

// beginRound builds the next body and craft before touching session state so
// a failed generation leaves the previous round intact.
func (s *Session) beginRound() error {
	seed := s.cfg.Seed
	if s.rounds > 0 {
		seed = s.seeds.Int63()
	}

	rng := s.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	surface, zone, err := GenerateSurface(s.cfg.Surface, rng)
	if err != nil {
		return fmt.Errorf("sim: generate surface: %w", err)
	}
	body := NewBody(s.cfg.Origin, surface, zone, s.cfg.Motion)
	craft := SpawnCraft(s.cfg.Craft, body)

	s.body = body
	s.craft = craft
	s.roundSeed = seed
	s.rounds++
	s.outcome = Outcome{}
	s.hasOutcome = false
	s.elapsed = 0
	s.paused = false
	s.countdown = s.cfg.CountdownTicks
	s.clock.Reset()
	s.state = StateCountdown
	if s.countdown == 0 {
		s.state = StateActive
	}
	return nil
}

// Tick runs one fixed step.
func (s *Session) Tick(in Controls) {
	if s.paused {
		return
	}

	switch s.state {
	case StateCountdown:
		s.countdown--
		if s.countdown <= 0 {
			s.countdown = 0
			s.state = StateActive
		}
	case StateActive:
		s.step(in)
	}
}

// step is the Active pipeline: body, integrate, detect, classify, transition.
func (s *Session) step(in Controls) {
	dt := s.cfg.Dt

	s.body.Advance(dt)
	Integrate(&s.craft, s.body, in, s.cfg.Physics, dt)
	s.elapsed += dt

	seg, hit := DetectBodyCollision(s.craft, s.body)
	if hit {
		s.outcome = Classify(seg, s.craft, s.body, s.cfg.Limits)
		s.hasOutcome = true
		s.state = StateEnded
	}

	if s.telemetrySink != nil {
		s.telemetrySink.Telemetry(s.Telemetry())
	}
	if hit && s.outcomeSink != nil {
		s.outcomeSink.Outcome(s.outcome)
	}
}

// Frame advances the session by one presentation frame of frameDuration
// seconds, running as many fixed steps as fit. Returns the steps run.
func (s *Session) Frame(in Controls, frameDuration float64) int {
	if s.paused || (s.state != StateCountdown && s.state != StateActive) {
		return 0
	}
	return s.clock.Advance(frameDuration, func() bool {
		s.Tick(in)
		return s.state != StateEnded
	})
}

// TogglePause flips the pause flag while Active and reports the new value.
func (s *Session) TogglePause() bool {
	if s.state != StateActive {
		return s.paused
	}
	s.paused = !s.paused
	if s.paused {
		s.clock.Reset()
	}
	return s.paused
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Paused reports whether an active round is paused.
func (s *Session) Paused() bool { return s.paused }

// Craft returns a copy of the craft.
func (s *Session) Craft() Craft { return s.craft }

// Body returns the current body, nil while Idle. Callers must not modify it.
func (s *Session) Body() *Body { return s.body }

// Outcome returns the round's outcome once it has Ended.
func (s *Session) Outcome() (Outcome, bool) { return s.outcome, s.hasOutcome }

// Elapsed returns seconds of active flight in the current round.
func (s *Session) Elapsed() float64 { return s.elapsed }

// CountdownRemaining returns the countdown ticks left.
func (s *Session) CountdownRemaining() int { return s.countdown }

// Seed returns the seed the current round's terrain was generated from.
func (s *Session) Seed() int64 { return s.roundSeed }

// Config returns the session configuration.
func (s *Session) Config() SessionConfig { return s.cfg }

// Telemetry returns a snapshot of the current round.
func (s *Session) Telemetry() Telemetry {
	if s.body == nil {
		return Telemetry{State: s.state}
	}
	return snapshot(s.state, s.craft, s.body, s.elapsed)
}

// Score returns the round score: the telemetry score on a landing, 0 otherwise.
func (s *Session) Score() int {
	if !s.hasOutcome || !s.outcome.Landed() {
		return 0
	}
	return s.Telemetry().Score()
}

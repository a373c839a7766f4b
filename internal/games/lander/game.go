// Package lander implements the lunar lander game on top of the sim package.
// The player rotates and fires the main engine of a small craft, steering it
// onto a flat pad on a rotating (and optionally drifting) celestial body.
package lander

import (
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

// Game modes.
const (
	ModeStatic = "lander"       // Body spins in place
	ModeDrift  = "lander_drift" // Body spins and drifts
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game adapts a sim.Session to the platform's Game interface.
type Game struct {
	drift bool

	runtime core.RuntimeConfig
	cfg     config.LanderConfig
	session *sim.Session
	latch   *InputLatch

	// Sinks attached to every session this game creates
	telemetrySink sim.TelemetrySink
	outcomeSink   sim.OutcomeSink

	controls  sim.Controls // Controls held during the last frame
	configErr error        // Config load failure; defaults are in use
	err       error        // Session could not be built
}

// New creates a lander on a spinning body.
func New() *Game {
	return &Game{}
}

// NewDrift creates a lander on a spinning, drifting body.
func NewDrift() *Game {
	return &Game{drift: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.drift {
		return ModeDrift
	}
	return ModeStatic
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.drift {
		return "Lunar Lander (Drift)"
	}
	return "Lunar Lander"
}

// SetSinks attaches telemetry and outcome consumers. Either may be nil.
// Takes effect on the next Reset.
func (g *Game) SetSinks(t sim.TelemetrySink, o sim.OutcomeSink) {
	g.telemetrySink = t
	g.outcomeSink = o
}

// Reset loads configuration and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.configErr = nil
	g.err = nil

	cfg, err := config.LoadLander(configPath)
	if err != nil {
		g.configErr = err
		cfg = config.DefaultLanderConfig()
	}
	if difficultyPreset != "" {
		config.ApplyLanderPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	var opts []sim.Option
	if g.telemetrySink != nil {
		opts = append(opts, sim.WithTelemetrySink(g.telemetrySink))
	}
	if g.outcomeSink != nil {
		opts = append(opts, sim.WithOutcomeSink(g.outcomeSink))
	}

	g.latch = NewInputLatch(cfg.Controls.HoldTicks)
	g.controls = sim.Controls{}

	session, err := sim.NewSession(cfg.SessionConfig(runtime.Seed, g.drift), opts...)
	if err == nil {
		err = session.Start()
	}
	if err != nil {
		g.session = nil
		g.err = err
		return
	}
	g.session = session
}

// Step advances the game by one presentation frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		if err := g.session.Restart(); err != nil {
			g.err = err
		}
		g.latch.Reset()
		g.controls = sim.Controls{}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}

	g.controls = g.latch.Update(in)
	g.session.Frame(g.controls, g.frameDuration())

	return core.StepResult{State: g.State()}
}

// frameDuration returns the seconds of simulated time per presentation frame.
func (g *Game) frameDuration() float64 {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return 1 / float64(rate)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.State() == sim.StateEnded,
		Paused:   g.session.Paused(),
	}
	if o, ok := g.session.Outcome(); ok {
		st.Result = o.Label()
	}
	return st
}

// Report implements core.Reporter.
func (g *Game) Report() (core.RoundReport, bool) {
	if g.session == nil {
		return core.RoundReport{}, false
	}
	o, ok := g.session.Outcome()
	if !ok {
		return core.RoundReport{}, false
	}
	return core.RoundReport{
		Outcome: o.Kind.String(),
		Reason:  o.Reason.String(),
		Score:   g.session.Score(),
		Fuel:    g.session.Craft().Fuel,
		Elapsed: g.session.Elapsed(),
		Speed:   o.Speed,
		Angle:   o.RelAngle,
		Seed:    g.session.Seed(),
	}, true
}

// Session exposes the underlying simulation, nil if it could not be built.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Err returns the error that prevented the session from starting, if any.
func (g *Game) Err() error {
	return g.err
}

// ConfigErr returns the configuration load error, if defaults are in use.
func (g *Game) ConfigErr() error {
	return g.configErr
}

func init() {
	registry.Register(ModeStatic, func() registry.Game { return New() })
	registry.Register(ModeDrift, func() registry.Game { return NewDrift() })
}

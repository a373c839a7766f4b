package lander

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander/sim"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

const quickConfig = `
body:
  angular_rate: 0
timing:
  countdown_ticks: 0
controls:
  hold_ticks: 1
`

// useConfig points the package at a temporary config file for one test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lander.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
}

func newStarted(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	if g.Err() != nil {
		t.Fatalf("session failed: %v", g.Err())
	}
	if g.ConfigErr() != nil {
		t.Fatalf("config failed: %v", g.ConfigErr())
	}
	return g
}

// fly steps with empty input until the round ends or frames run out.
func fly(g *Game, frames int) int {
	for i := 0; i < frames; i++ {
		if g.Step(core.NewInputFrame()).State.GameOver {
			return i + 1
		}
	}
	return frames
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameIdentity(t *testing.T) {
	if New().ID() != ModeStatic || NewDrift().ID() != ModeDrift {
		t.Error("unexpected game ids")
	}
	if New().Title() == NewDrift().Title() {
		t.Error("modes should have distinct titles")
	}
	for _, id := range []string{ModeStatic, ModeDrift} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
	}
}

func TestResetStartsCountdown(t *testing.T) {
	useConfig(t, "timing:\n  countdown_ticks: 120\n")
	g := newStarted(t, New(), 42)

	if g.Session().State() != sim.StateCountdown {
		t.Fatalf("expected countdown, got %s", g.Session().State())
	}
	st := g.State()
	if st.GameOver || st.Paused || st.Score != 0 || st.Result != "" {
		t.Errorf("unexpected initial state %+v", st)
	}
	if _, ok := g.Report(); ok {
		t.Error("no report expected before the round ends")
	}
}

func TestFreefallCrashes(t *testing.T) {
	useConfig(t, quickConfig)
	g := newStarted(t, New(), 7)

	fly(g, 60*60)

	st := g.State()
	if !st.GameOver {
		t.Fatal("expected the craft to hit the surface")
	}
	if !strings.HasPrefix(st.Result, "crashed") {
		t.Errorf("expected a crash, got %q", st.Result)
	}
	if st.Score != 0 {
		t.Errorf("crash should score 0, got %d", st.Score)
	}

	r, ok := g.Report()
	if !ok {
		t.Fatal("expected a report after the crash")
	}
	if r.Outcome != "crashed" || r.Seed != 7 || r.Elapsed <= 0 {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestDeterminism(t *testing.T) {
	useConfig(t, quickConfig)
	a := newStarted(t, NewDrift(), 12345)
	b := newStarted(t, NewDrift(), 12345)

	for i := 0; i < 400; i++ {
		in := core.NewInputFrame()
		if i%5 == 0 {
			in.Set(core.ActionThrust)
		}
		if i%17 == 0 {
			in.Set(core.ActionRotateLeft)
		}
		a.Step(in)
		b.Step(in)
	}

	if a.Session().Craft() != b.Session().Craft() {
		t.Errorf("craft diverged:\n%+v\n%+v", a.Session().Craft(), b.Session().Craft())
	}
	if a.State() != b.State() {
		t.Errorf("state diverged: %+v vs %+v", a.State(), b.State())
	}
}

func TestPauseFreezesFlight(t *testing.T) {
	useConfig(t, quickConfig)
	g := newStarted(t, New(), 3)
	fly(g, 10)

	if !g.Step(press(core.ActionPause)).State.Paused {
		t.Fatal("expected pause")
	}
	before := g.Session().Craft()
	fly(g, 30)
	if g.Session().Craft() != before {
		t.Error("craft moved while paused")
	}

	if g.Step(press(core.ActionPause)).State.Paused {
		t.Fatal("expected resume")
	}
	fly(g, 5)
	if g.Session().Craft() == before {
		t.Error("craft should move after resuming")
	}
}

func TestRestartBeginsNewRound(t *testing.T) {
	useConfig(t, quickConfig)
	g := newStarted(t, New(), 99)
	fly(g, 60*60)
	if !g.State().GameOver {
		t.Fatal("expected the first round to end")
	}

	st := g.Step(press(core.ActionRestart)).State
	if st.GameOver || st.Result != "" {
		t.Errorf("restart should clear the outcome, got %+v", st)
	}
	if g.Session().Seed() == 99 {
		t.Error("restart should draw a new terrain seed")
	}
	if _, ok := g.Report(); ok {
		t.Error("report should reset with the round")
	}
}

type sinkRecorder struct {
	telemetry int
	outcomes  []sim.Outcome
}

func (r *sinkRecorder) Telemetry(sim.Telemetry) { r.telemetry++ }
func (r *sinkRecorder) Outcome(o sim.Outcome)   { r.outcomes = append(r.outcomes, o) }

func TestSinksReceiveRound(t *testing.T) {
	useConfig(t, quickConfig)
	rec := &sinkRecorder{}
	g := New()
	g.SetSinks(rec, rec)
	newStarted(t, g, 5)

	fly(g, 60*60)
	fly(g, 10)

	if rec.telemetry == 0 {
		t.Error("expected telemetry")
	}
	if len(rec.outcomes) != 1 {
		t.Errorf("expected exactly one outcome, got %d", len(rec.outcomes))
	}
}

func TestDifficultyPresetApplies(t *testing.T) {
	useConfig(t, quickConfig)
	base := newStarted(t, New(), 1)
	normalSpeed := base.cfg.Landing.MaxSpeed

	SetDifficultyPreset("easy")
	easy := newStarted(t, New(), 1)
	if easy.cfg.Landing.MaxSpeed <= normalSpeed {
		t.Errorf("easy should loosen the speed limit: %v <= %v", easy.cfg.Landing.MaxSpeed, normalSpeed)
	}

	SetDifficultyPreset("bogus")
	if difficultyPreset != "" {
		t.Error("unknown preset should clear the setting")
	}
}

func TestBadConfigFallsBackToDefaults(t *testing.T) {
	useConfig(t, "body:\n  segments: 2\n")
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

	if g.ConfigErr() == nil {
		t.Error("expected a config error")
	}
	if g.Err() != nil || g.Session() == nil {
		t.Errorf("defaults should still start a session: %v", g.Err())
	}
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// fakeGame ends its round after a fixed number of frames.
type fakeGame struct {
	framesLeft int
	frames     int
	last       core.InputFrame
	resets     int
	score      int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.frames = 0
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.last = core.NewInputFrame()
	for a := range in.Actions {
		g.last.Set(a)
	}
	if in.Has(core.ActionRestart) {
		g.frames = 0
	}
	g.frames++
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState {
	if g.frames < g.framesLeft {
		return core.GameState{}
	}
	return core.GameState{GameOver: true, Score: g.score, Result: "landed"}
}

func (g *fakeGame) Report() (core.RoundReport, bool) {
	if !g.State().GameOver {
		return core.RoundReport{}, false
	}
	return core.RoundReport{Outcome: "landed", Score: g.score, Fuel: 12, Elapsed: 30, Speed: 1.2, Seed: 9}, true
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(m GameModel) GameModel {
	next, _ := m.Update(TickMsg{})
	return next.(GameModel)
}

func keyPress(m GameModel, msg tea.KeyMsg) (GameModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(GameModel), cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRoundRecordedOnce(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{framesLeft: 3, score: 640}
	m := NewGameModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})

	for i := 0; i < 10; i++ {
		m = tick(m)
	}
	if !m.GameState().GameOver {
		t.Fatal("expected game over")
	}

	landings, err := store.RecentLandings("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(landings) != 1 {
		t.Fatalf("expected one landing, got %d", len(landings))
	}
	if landings[0].Score != 640 || landings[0].Seed != 9 || landings[0].Outcome != "landed" {
		t.Errorf("unexpected landing %+v", landings[0])
	}

	best, err := store.HighScore("fake")
	if err != nil || best != 640 {
		t.Errorf("high score %d, %v", best, err)
	}
}

func TestRestartRecordsNextRound(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{framesLeft: 2, score: 100}
	m := NewGameModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})

	for i := 0; i < 3; i++ {
		m = tick(m)
	}
	m, _ = keyPress(m, runeKey('r'))
	for i := 0; i < 3; i++ {
		m = tick(m)
	}

	landings, _ := store.RecentLandings("fake", 10)
	if len(landings) != 2 {
		t.Errorf("expected two recorded rounds, got %d", len(landings))
	}
}

func TestRestartIgnoredMidFlight(t *testing.T) {
	game := &fakeGame{framesLeft: 100}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})

	m = tick(m)
	m, _ = keyPress(m, runeKey('r'))
	m = tick(m)
	if game.last.Has(core.ActionRestart) {
		t.Error("restart must only reach the game after the round ends")
	}
}

func TestKeysReachGame(t *testing.T) {
	game := &fakeGame{framesLeft: 100}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})

	m, _ = keyPress(m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = keyPress(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(m)
	if !game.last.Has(core.ActionThrust) || !game.last.Has(core.ActionRotateLeft) {
		t.Errorf("expected thrust and rotate, got %v", game.last.Actions)
	}

	m = tick(m)
	if len(game.last.Actions) != 0 {
		t.Errorf("input should clear after each frame, got %v", game.last.Actions)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewGameModel(&fakeGame{framesLeft: 100}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m, cmd := keyPress(m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestBackOnlyAfterRound(t *testing.T) {
	game := &fakeGame{framesLeft: 2}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}, WithBackToMenu())

	m, _ = keyPress(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back should be ignored mid-flight")
	}

	m = tick(m)
	m = tick(m)
	m, cmd := keyPress(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work after the round")
	}
	if cmd != nil {
		t.Error("embedded model must not quit the program on back")
	}
}

func TestViewIncludesHelp(t *testing.T) {
	m := NewGameModel(&fakeGame{framesLeft: 100}, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 10, TickRate: 60, Seed: 1})
	out := m.View()
	if !strings.Contains(out, "fake") || !strings.Contains(out, "thrust") {
		t.Errorf("unexpected view %q", out)
	}
}

func TestKeyMapping(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionRotateLeft},
		{runeKey('a'), core.ActionRotateLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRotateRight},
		{runeKey('d'), core.ActionRotateRight},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionThrust},
		{runeKey('w'), core.ActionThrust},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionThrust},
		{runeKey('p'), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('x'), core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "ALT", core.ColorHUD)
	s.DrawText(0, 1, "pad")

	out := RenderScreen(s)
	if !strings.Contains(out, "ALT") || !strings.Contains(out, "pad") {
		t.Errorf("unexpected render %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

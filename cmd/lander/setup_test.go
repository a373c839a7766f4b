package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

func TestLogFileDefaults(t *testing.T) {
	for _, f := range []struct {
		name string
		def  string
	}{
		{"play", playCmd.Flags().Lookup("log-file").DefValue},
		{"menu", menuCmd.Flags().Lookup("log-file").DefValue},
	} {
		if f.def != defaultLogFile {
			t.Errorf("%s --log-file default %q, want %q", f.name, f.def, defaultLogFile)
		}
	}
}

func TestFileLoggerWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lander.log")
	logger, closeLog := fileLogger(path)
	logger.Info("round finished", "score", 640)
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "round finished") {
		t.Errorf("log missing entry: %q", data)
	}
}

func TestScoresClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")
	oldPath, oldClear := flagDBPath, flagClearScores
	t.Cleanup(func() { flagDBPath, flagClearScores = oldPath, oldClear })

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore(lander.ModeStatic, 640); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore(lander.ModeDrift, 300); err != nil {
		t.Fatal(err)
	}
	store.Close()

	flagDBPath = dbPath
	flagClearScores = true
	runScores(scoresCmd, []string{lander.ModeStatic})

	store, err = storage.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if best, _ := store.HighScore(lander.ModeStatic); best != 0 {
		t.Errorf("scores for %s not cleared, best %d", lander.ModeStatic, best)
	}
	if best, _ := store.HighScore(lander.ModeDrift); best != 300 {
		t.Errorf("other mode must keep its scores, best %d", best)
	}
}

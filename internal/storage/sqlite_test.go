package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveScore("lander", 640)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("lander")
	if err != nil || high != 640 {
		t.Errorf("Expected persisted high score 640, got %d (%v)", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("lander", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("lander_drift", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("lander", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	drift, err := store.TopScores("lander_drift", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(drift) != 1 {
		t.Errorf("Expected 1 drift score, got %d", len(drift))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("lander", (i+1)*100)
	}

	scores, err := store.TopScores("lander", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("lander")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("lander", 100)
	store.SaveScore("lander", 300)
	store.SaveScore("lander", 200)

	high, err = store.HighScore("lander")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("lander", 100)
	store.SaveLanding(Landing{GameID: "lander", Outcome: "landed", Score: 100})
	store.SaveScore("lander_drift", 300)

	if err := store.ClearScores("lander"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("lander", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if landings, _ := store.RecentLandings("lander", 10); len(landings) != 0 {
		t.Errorf("Expected 0 landings after clear, got %d", len(landings))
	}
	if scores, _ := store.TopScores("lander_drift", 10); len(scores) != 1 {
		t.Error("Other modes should not be affected by clearing")
	}
}

func TestStoreLandingRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := Landing{
		GameID:  "lander",
		Outcome: "crashed",
		Reason:  "too_fast",
		Score:   0,
		Fuel:    12.5,
		Elapsed: 31.25,
		Speed:   7.75,
		Angle:   -3.5,
		Seed:    987654321,
	}
	id, err := store.SaveLanding(in)
	if err != nil {
		t.Fatalf("SaveLanding() failed: %v", err)
	}

	got, err := store.RecentLandings("lander", 1)
	if err != nil {
		t.Fatalf("RecentLandings() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 landing, got %d", len(got))
	}

	out := got[0]
	if out.ID != id {
		t.Errorf("ID = %d, want %d", out.ID, id)
	}
	out.ID, out.CreatedAt = 0, in.CreatedAt
	if out != in {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestStoreRecentLandingsOrderAndFilter(t *testing.T) {
	store := openTestStore(t)

	store.SaveLanding(Landing{GameID: "lander", Outcome: "crashed", Reason: "missed_zone"})
	store.SaveLanding(Landing{GameID: "lander_drift", Outcome: "landed", Score: 700})
	store.SaveLanding(Landing{GameID: "lander", Outcome: "landed", Score: 650})

	all, err := store.RecentLandings("", 10)
	if err != nil {
		t.Fatalf("RecentLandings() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 landings across modes, got %d", len(all))
	}
	if all[0].Score != 650 || all[2].Reason != "missed_zone" {
		t.Errorf("Expected newest first, got %+v", all)
	}

	lander, _ := store.RecentLandings("lander", 10)
	if len(lander) != 2 {
		t.Errorf("Expected 2 lander rounds, got %d", len(lander))
	}

	limited, _ := store.RecentLandings("", 1)
	if len(limited) != 1 {
		t.Errorf("Expected limit of 1, got %d", len(limited))
	}
}

func TestStoreLandingStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LandingStats("lander")
	if err != nil {
		t.Fatalf("LandingStats() failed: %v", err)
	}
	if empty.Attempts != 0 || empty.SuccessRate() != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveLanding(Landing{GameID: "lander", Outcome: "landed", Score: 600, Speed: 1.0})
	store.SaveLanding(Landing{GameID: "lander", Outcome: "landed", Score: 800, Speed: 2.0})
	store.SaveLanding(Landing{GameID: "lander", Outcome: "crashed", Reason: "too_fast", Speed: 9})
	store.SaveLanding(Landing{GameID: "lander", Outcome: "crashed", Reason: "too_fast", Speed: 8})
	store.SaveLanding(Landing{GameID: "lander", Outcome: "crashed", Reason: "not_upright"})
	store.SaveLanding(Landing{GameID: "lander_drift", Outcome: "landed", Score: 999})

	stats, err := store.LandingStats("lander")
	if err != nil {
		t.Fatalf("LandingStats() failed: %v", err)
	}
	if stats.Attempts != 5 || stats.Landed != 2 {
		t.Errorf("Expected 5 attempts and 2 landings, got %d/%d", stats.Attempts, stats.Landed)
	}
	if stats.BestScore != 800 {
		t.Errorf("Expected best score 800, got %d", stats.BestScore)
	}
	if stats.AvgSpeed != 1.5 {
		t.Errorf("Expected average landing speed 1.5, got %v", stats.AvgSpeed)
	}
	if stats.CrashReasons["too_fast"] != 2 || stats.CrashReasons["not_upright"] != 1 {
		t.Errorf("Unexpected crash reasons %v", stats.CrashReasons)
	}
	if stats.SuccessRate() != 0.4 {
		t.Errorf("Expected success rate 0.4, got %v", stats.SuccessRate())
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.lander/nested/test.db")
	if err != nil {
		t.Fatalf("Open() with home path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".lander", "nested", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the expanded home directory")
	}
}

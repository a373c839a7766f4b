package core

// RoundReport summarizes one finished round for persistence.
// Games that produce one implement Reporter.
type RoundReport struct {
	Outcome string // "landed" or "crashed"
	Reason  string // Crash reason, empty on success
	Score   int
	Fuel    float64
	Elapsed float64
	Speed   float64
	Angle   float64
	Seed    int64
}

// Reporter is implemented by games that report per-round results.
type Reporter interface {
	// Report returns the latest finished round; ok is false while a round is running.
	Report() (r RoundReport, ok bool)
}

package playerstats

import (
	"fmt"
	"time"
)

// Stats holds the raw per-player numbers delivered by the score feed.
// Scoring always derives from these; nothing accumulates elsewhere.
type Stats struct {
	PlayerID    string
	MatchID     string
	Runs        int
	Fours       int
	Sixes       int
	Wickets     int
	MaidenOvers int
	Catches     int
	Stumpings   int
	RunOuts     int
	UpdatedAt   time.Time
}

func (s Stats) Validate() error {
	if s.PlayerID == "" {
		return fmt.Errorf("stats player id is required")
	}
	if s.MatchID == "" {
		return fmt.Errorf("stats match id is required")
	}
	if s.Runs < 0 || s.Fours < 0 || s.Sixes < 0 || s.Wickets < 0 ||
		s.MaidenOvers < 0 || s.Catches < 0 || s.Stumpings < 0 || s.RunOuts < 0 {
		return fmt.Errorf("stats counters cannot be negative")
	}

	return nil
}

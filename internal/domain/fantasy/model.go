package fantasy

import (
	"fmt"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/player"
)

// TeamPick represents one selected player in a user's fantasy team.
type TeamPick struct {
	PlayerID string
	Role     player.Role
	Credits  int64
}

// Team is an 11-player fantasy roster for one match. It is created once
// at contest-join time and never structurally mutated afterwards; only
// Score is recomputed as the stats feed updates.
type Team struct {
	ID            string
	UserID        string
	MatchID       string
	Name          string
	Picks         []TeamPick
	CaptainID     string
	ViceCaptainID string
	// Score is the aggregate fantasy score in deci-points (1085 = 108.5).
	Score     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Team) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Picks) == 0 {
		return fmt.Errorf("team picks are required")
	}
	if t.CaptainID == "" || t.ViceCaptainID == "" {
		return fmt.Errorf("captain and vice-captain are required")
	}

	return nil
}

// TotalCredits sums the credit cost of all picks in centi-credits.
func (t Team) TotalCredits() int64 {
	var total int64
	for _, pick := range t.Picks {
		total += pick.Credits
	}
	return total
}

package player

import "fmt"

// Role represents cricket role categories used in fantasy rules.
type Role string

const (
	RoleBatsman      Role = "batsman"
	RoleBowler       Role = "bowler"
	RoleAllRounder   Role = "all_rounder"
	RoleWicketKeeper Role = "wicket_keeper"
)

var AllRoles = map[Role]struct{}{
	RoleBatsman:      {},
	RoleBowler:       {},
	RoleAllRounder:   {},
	RoleWicketKeeper: {},
}

// Player is a selectable athlete on a published match roster.
// Credits are centi-credits: 950 means 9.50 credits.
type Player struct {
	ID       string
	MatchID  string
	TeamName string
	Name     string
	Role     Role
	Credits  int64
	ImageURL string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("player match id is required")
	}
	if p.TeamName == "" {
		return fmt.Errorf("player team name is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if p.Credits <= 0 {
		return fmt.Errorf("player credits must be greater than zero")
	}

	return nil
}

package fantasy

import (
	"errors"
	"fmt"

	"github.com/crickarena/fantasy-cricket/internal/domain/player"
)

var (
	ErrInvalidTeamSize       = errors.New("invalid team size")
	ErrDuplicatePlayerInTeam = errors.New("duplicate player in team")
	ErrUnknownPlayerRole     = errors.New("unknown player role")
	ErrExceededCreditCap     = errors.New("credit cap exceeded")
	ErrInsufficientRole      = errors.New("minimum role requirement not met")
	ErrCaptainNotInTeam      = errors.New("captain is not part of the selected team")
	ErrViceCaptainNotInTeam  = errors.New("vice-captain is not part of the selected team")
	ErrCaptainEqualsVice     = errors.New("captain and vice-captain must be different players")
)

// Rules stores fantasy team validation parameters.
type Rules struct {
	TeamSize int
	// CreditCap is in centi-credits: 10000 means 100.00 credits.
	CreditCap int64
	MinByRole map[player.Role]int
}

func DefaultRules() Rules {
	return Rules{
		TeamSize:  11,
		CreditCap: 10000,
		MinByRole: map[player.Role]int{
			player.RoleWicketKeeper: 1,
			player.RoleBatsman:      3,
			player.RoleBowler:       1,
			player.RoleAllRounder:   1,
		},
	}
}

// ValidateTeam checks a candidate team against the roster rules.
// Checks run in a fixed order and the first failure wins, so callers
// always get one specific rejection reason.
func ValidateTeam(picks []TeamPick, captainID, viceCaptainID string, rules Rules) error {
	if len(picks) != rules.TeamSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidTeamSize, rules.TeamSize, len(picks))
	}

	playerSet := make(map[string]struct{}, len(picks))
	roleCounter := make(map[player.Role]int)
	var totalCredits int64

	for _, pick := range picks {
		if pick.PlayerID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInTeam, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if _, ok := player.AllRoles[pick.Role]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayerRole, pick.Role)
		}
		if pick.Credits <= 0 {
			return fmt.Errorf("player credits must be greater than zero: %s", pick.PlayerID)
		}

		roleCounter[pick.Role]++
		totalCredits += pick.Credits
	}

	if _, ok := playerSet[captainID]; !ok {
		return fmt.Errorf("%w: %s", ErrCaptainNotInTeam, captainID)
	}
	if _, ok := playerSet[viceCaptainID]; !ok {
		return fmt.Errorf("%w: %s", ErrViceCaptainNotInTeam, viceCaptainID)
	}
	if captainID == viceCaptainID {
		return fmt.Errorf("%w: %s", ErrCaptainEqualsVice, captainID)
	}

	if totalCredits > rules.CreditCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrExceededCreditCap, rules.CreditCap, totalCredits)
	}

	for role, minRequired := range rules.MinByRole {
		if roleCounter[role] < minRequired {
			return fmt.Errorf("%w: role=%s min=%d current=%d", ErrInsufficientRole, role, minRequired, roleCounter[role])
		}
	}

	return nil
}

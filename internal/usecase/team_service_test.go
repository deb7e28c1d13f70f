package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/memory"
)

// balancedElevenIDs totals 98.00 credits and satisfies every role
// minimum against the seeded squads.
func balancedElevenIDs() []string {
	return []string{
		"ind-pant",
		"ind-rohit",
		"ind-gill",
		"aus-warner",
		"ind-jadeja",
		"aus-marsh",
		"ind-siraj",
		"ind-kuldeep",
		"ind-arshdeep",
		"aus-hazlewood",
		"aus-zampa",
	}
}

func newTeamService() (*TeamService, *memory.TeamRepository, *memory.MatchRepository) {
	teamRepo := memory.NewTeamRepository()
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	return NewTeamService(teamRepo, matchRepo, playerRepo, &seqIDGenerator{prefix: "team"}), teamRepo, matchRepo
}

func TestTeamService_Create(t *testing.T) {
	service, _, _ := newTeamService()

	team, err := service.Create(t.Context(), CreateTeamInput{
		UserID:        "user-1",
		MatchID:       memory.MatchIDIndAus,
		Name:          "Dream XI",
		PlayerIDs:     balancedElevenIDs(),
		CaptainID:     "ind-rohit",
		ViceCaptainID: "ind-jadeja",
	})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if len(team.Picks) != 11 {
		t.Fatalf("expected 11 picks, got %d", len(team.Picks))
	}
	if got := team.TotalCredits(); got != 9800 {
		t.Fatalf("expected 9800 centi-credits used, got %d", got)
	}
	if team.CaptainID != "ind-rohit" || team.ViceCaptainID != "ind-jadeja" {
		t.Fatalf("captain assignment lost: %s / %s", team.CaptainID, team.ViceCaptainID)
	}
}

func TestTeamService_Create_ExactBudgetAccepted(t *testing.T) {
	service, _, _ := newTeamService()

	// Swapping Zampa (8.50) for Kohli (10.50) lands on exactly 100.00.
	ids := balancedElevenIDs()
	ids[10] = "ind-kohli"

	team, err := service.Create(t.Context(), CreateTeamInput{
		UserID:        "user-1",
		MatchID:       memory.MatchIDIndAus,
		Name:          "Max Budget XI",
		PlayerIDs:     ids,
		CaptainID:     "ind-kohli",
		ViceCaptainID: "ind-rohit",
	})
	if err != nil {
		t.Fatalf("create team at exact budget failed: %v", err)
	}
	if got := team.TotalCredits(); got != 10000 {
		t.Fatalf("expected exactly 10000 centi-credits, got %d", got)
	}
}

func TestTeamService_Create_OverBudgetRejected(t *testing.T) {
	service, _, _ := newTeamService()

	// Starc (9.50) in place of Arshdeep (8.00) pushes the total to 101.50.
	ids := balancedElevenIDs()
	ids[10] = "ind-kohli"
	ids[8] = "aus-starc"

	_, err := service.Create(t.Context(), CreateTeamInput{
		UserID:        "user-1",
		MatchID:       memory.MatchIDIndAus,
		Name:          "Too Expensive XI",
		PlayerIDs:     ids,
		CaptainID:     "ind-kohli",
		ViceCaptainID: "ind-rohit",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if !strings.Contains(err.Error(), "credit cap") {
		t.Fatalf("expected credit cap rejection reason, got %v", err)
	}
}

func TestTeamService_Create_PlayerOutsideMatchRejected(t *testing.T) {
	service, _, _ := newTeamService()

	ids := balancedElevenIDs()
	ids[0] = "unknown-player"

	_, err := service.Create(t.Context(), CreateTeamInput{
		UserID:        "user-1",
		MatchID:       memory.MatchIDIndAus,
		Name:          "Ghost XI",
		PlayerIDs:     ids,
		CaptainID:     "ind-rohit",
		ViceCaptainID: "ind-jadeja",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown player, got %v", err)
	}
}

func TestTeamService_Create_LockedMatchRejected(t *testing.T) {
	service, _, matchRepo := newTeamService()

	if err := matchRepo.UpdateStatus(t.Context(), memory.MatchIDIndAus, match.StatusLive); err != nil {
		t.Fatalf("set match live: %v", err)
	}

	_, err := service.Create(t.Context(), CreateTeamInput{
		UserID:        "user-1",
		MatchID:       memory.MatchIDIndAus,
		Name:          "Late XI",
		PlayerIDs:     balancedElevenIDs(),
		CaptainID:     "ind-rohit",
		ViceCaptainID: "ind-jadeja",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for locked match, got %v", err)
	}
}

func TestTeamService_GetByID_OwnershipEnforced(t *testing.T) {
	service, _, _ := newTeamService()

	team, err := service.Create(t.Context(), CreateTeamInput{
		UserID:        "user-1",
		MatchID:       memory.MatchIDIndAus,
		Name:          "Dream XI",
		PlayerIDs:     balancedElevenIDs(),
		CaptainID:     "ind-rohit",
		ViceCaptainID: "ind-jadeja",
	})
	if err != nil {
		t.Fatalf("create team failed: %v", err)
	}

	if _, err := service.GetByID(t.Context(), "user-2", team.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for foreign team, got %v", err)
	}
}

package usecase

import (
	"testing"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/player"
	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/memory"
)

func TestScoringService_RecomputeMatch(t *testing.T) {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	teamRepo := memory.NewTeamRepository()
	statsRepo := memory.NewPlayerStatsRepository()
	service := NewScoringService(matchRepo, teamRepo, statsRepo, 2)
	ctx := t.Context()

	// Rohit: 45 runs, 3 fours, 1 six = 45+3+2 = 50 points.
	// Bumrah: 2 wickets = 50 points. Jadeja: 1 catch = 8 points.
	for _, row := range []playerstats.Stats{
		{PlayerID: "ind-rohit", MatchID: memory.MatchIDIndAus, Runs: 45, Fours: 3, Sixes: 1, UpdatedAt: time.Now()},
		{PlayerID: "ind-bumrah", MatchID: memory.MatchIDIndAus, Wickets: 2, UpdatedAt: time.Now()},
		{PlayerID: "ind-jadeja", MatchID: memory.MatchIDIndAus, Catches: 1, UpdatedAt: time.Now()},
	} {
		if err := statsRepo.Upsert(ctx, row); err != nil {
			t.Fatalf("seed stats: %v", err)
		}
	}

	team := fantasy.Team{
		ID:      "team-1",
		UserID:  "user-1",
		MatchID: memory.MatchIDIndAus,
		Name:    "Dream XI",
		Picks: []fantasy.TeamPick{
			{PlayerID: "ind-rohit", Role: player.RoleBatsman, Credits: 1000},
			{PlayerID: "ind-bumrah", Role: player.RoleBowler, Credits: 1000},
			{PlayerID: "ind-jadeja", Role: player.RoleAllRounder, Credits: 900},
			{PlayerID: "ind-pant", Role: player.RoleWicketKeeper, Credits: 925},
		},
		CaptainID:     "ind-rohit",
		ViceCaptainID: "ind-bumrah",
	}
	if err := teamRepo.Create(ctx, team); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	result, err := service.RecomputeMatch(ctx, memory.MatchIDIndAus)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if result.TeamsScored != 1 {
		t.Fatalf("expected 1 team scored, got %d", result.TeamsScored)
	}

	// Captain Rohit 50*2.0=100, vice Bumrah 50*1.5=75, Jadeja 8,
	// Pant no stats. Total 183.0 points = 1830 deci-points.
	stored, _, err := teamRepo.GetByID(ctx, "team-1")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if stored.Score != 1830 {
		t.Fatalf("expected score 1830, got %d", stored.Score)
	}

	// Same stats snapshot, same score.
	if _, err := service.RecomputeMatch(ctx, memory.MatchIDIndAus); err != nil {
		t.Fatalf("second recompute failed: %v", err)
	}
	stored, _, err = teamRepo.GetByID(ctx, "team-1")
	if err != nil {
		t.Fatalf("get team after replay: %v", err)
	}
	if stored.Score != 1830 {
		t.Fatalf("expected replayed score 1830, got %d", stored.Score)
	}
}

func TestScoringService_RecomputeMatch_UnknownMatch(t *testing.T) {
	matchRepo := memory.NewMatchRepository(nil)
	service := NewScoringService(matchRepo, memory.NewTeamRepository(), memory.NewPlayerStatsRepository(), 2)

	if _, err := service.RecomputeMatch(t.Context(), "missing"); err == nil {
		t.Fatal("expected error for unknown match")
	}
}

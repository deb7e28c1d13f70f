package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
)

type fakeScorecardFeed struct {
	rows map[string][]playerstats.Stats
	err  error
}

func (f *fakeScorecardFeed) FetchScorecard(_ context.Context, matchID string) ([]playerstats.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[matchID], nil
}

type countingRecomputer struct {
	calls atomic.Int32
}

func (r *countingRecomputer) RecomputeMatch(_ context.Context, matchID string) (RecomputeResult, error) {
	r.calls.Add(1)
	return RecomputeResult{MatchID: matchID}, nil
}

func TestIngestionService_SyncMatch(t *testing.T) {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	statsRepo := memory.NewPlayerStatsRepository()
	feed := &fakeScorecardFeed{rows: map[string][]playerstats.Stats{
		memory.MatchIDIndAus: {
			{PlayerID: "ind-rohit", Runs: 72, Fours: 6, Sixes: 3},
			{PlayerID: "aus-starc", Wickets: 3, MaidenOvers: 1},
		},
	}}
	recomputer := &countingRecomputer{}
	service := NewIngestionService(matchRepo, statsRepo, feed, recomputer, 2, logging.NewNop())

	result, err := service.SyncMatch(t.Context(), memory.MatchIDIndAus)
	if err != nil {
		t.Fatalf("sync match failed: %v", err)
	}
	if result.StatsUpserted != 2 {
		t.Fatalf("expected 2 stats rows, got %d", result.StatsUpserted)
	}
	if got := recomputer.calls.Load(); got != 1 {
		t.Fatalf("expected one recompute, got %d", got)
	}

	rows, err := statsRepo.ListByMatch(t.Context(), memory.MatchIDIndAus)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.MatchID != memory.MatchIDIndAus {
			t.Fatalf("stored row missing match id: %+v", row)
		}
		if row.UpdatedAt.IsZero() {
			t.Fatal("stored row missing updated timestamp")
		}
	}
}

func TestIngestionService_SyncLiveMatches(t *testing.T) {
	matches := memory.SeedMatches()
	for i := range matches {
		matches[i].Status = match.StatusLive
	}
	matchRepo := memory.NewMatchRepository(matches)
	statsRepo := memory.NewPlayerStatsRepository()
	feed := &fakeScorecardFeed{rows: map[string][]playerstats.Stats{
		memory.MatchIDIndAus: {{PlayerID: "ind-rohit", Runs: 30}},
		memory.MatchIDEngSa:  {{PlayerID: "eng-root", Runs: 55}},
	}}
	recomputer := &countingRecomputer{}
	service := NewIngestionService(matchRepo, statsRepo, feed, recomputer, 2, logging.NewNop())

	result, err := service.SyncLiveMatches(t.Context())
	if err != nil {
		t.Fatalf("sync live matches failed: %v", err)
	}
	if result.MatchesSynced != 2 {
		t.Fatalf("expected 2 matches synced, got %d", result.MatchesSynced)
	}
	if result.StatsUpserted != 2 {
		t.Fatalf("expected 2 stats rows, got %d", result.StatsUpserted)
	}
	if got := recomputer.calls.Load(); got != 2 {
		t.Fatalf("expected 2 recomputes, got %d", got)
	}
}

func TestIngestionService_SyncMatch_FeedDown(t *testing.T) {
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	statsRepo := memory.NewPlayerStatsRepository()
	feed := &fakeScorecardFeed{err: errors.New("upstream 503")}
	service := NewIngestionService(matchRepo, statsRepo, feed, nil, 2, logging.NewNop())

	_, err := service.SyncMatch(t.Context(), memory.MatchIDIndAus)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
	"github.com/crickarena/fantasy-cricket/internal/domain/scoring"
	"github.com/crickarena/fantasy-cricket/internal/platform/resilience"
)

const defaultScoringWorkers = 8

type RecomputeResult struct {
	MatchID     string
	TeamsScored int
	PlayersSeen int
	DurationMs  int64
}

// ScoringService recomputes fantasy team scores from player stats.
// Recomputation is a pure function of the stats snapshot, so running it
// twice against the same snapshot leaves every score unchanged.
// Concurrent recomputes for the same match collapse into one pass.
type ScoringService struct {
	matchRepo match.Repository
	teamRepo  fantasy.Repository
	statsRepo playerstats.Repository
	workers   int
	flight    resilience.SingleFlight
	now       func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	teamRepo fantasy.Repository,
	statsRepo playerstats.Repository,
	workers int,
) *ScoringService {
	if workers < 1 {
		workers = defaultScoringWorkers
	}
	return &ScoringService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		statsRepo: statsRepo,
		workers:   workers,
		now:       time.Now,
	}
}

func (s *ScoringService) RecomputeMatch(ctx context.Context, matchID string) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.RecomputeMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return RecomputeResult{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	value, err, _ := s.flight.Do("recompute:"+matchID, func() (any, error) {
		return s.recompute(ctx, matchID)
	})
	if err != nil {
		return RecomputeResult{}, err
	}

	result, _ := value.(RecomputeResult)
	return result, nil
}

func (s *ScoringService) recompute(ctx context.Context, matchID string) (RecomputeResult, error) {
	start := s.now()

	if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return RecomputeResult{}, fmt.Errorf("get match by id: %w", err)
	} else if !exists {
		return RecomputeResult{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	rows, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list player stats: %w", err)
	}
	pointsByPlayer := scoring.MatchPoints(rows)

	teams, err := s.teamRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list teams by match: %w", err)
	}

	result := RecomputeResult{
		MatchID:     matchID,
		PlayersSeen: len(pointsByPlayer),
	}
	if len(teams) == 0 {
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	errs := make(chan error, len(teams))
	for _, team := range teams {
		team := team
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			score := scoring.TeamScore(team, pointsByPlayer)
			if score == team.Score {
				return
			}
			if err := s.teamRepo.UpdateScore(ctx, team.ID, score); err != nil {
				errs <- fmt.Errorf("update score for team %s: %w", team.ID, err)
			}
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit scoring task: %w", err)
		}
	}

	workers.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return RecomputeResult{}, err
		}
	}

	result.TeamsScored = len(teams)
	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// PlayerPoints exposes per-player point totals for a match, mainly for
// leaderboard detail views.
func (s *ScoringService) PlayerPoints(ctx context.Context, matchID string) (map[string]int64, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.PlayerPoints")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	rows, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}

	return scoring.MatchPoints(rows), nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
)

const defaultIngestionConcurrency = 4

// ScorecardFeed pulls per-player scorecard lines for a match from the
// upstream stats provider.
type ScorecardFeed interface {
	FetchScorecard(ctx context.Context, matchID string) ([]playerstats.Stats, error)
}

type matchScoreRecomputer interface {
	RecomputeMatch(ctx context.Context, matchID string) (RecomputeResult, error)
}

type SyncResult struct {
	MatchesSynced int
	StatsUpserted int
}

// IngestionService pulls scorecards for live matches and refreshes
// fantasy scores from them. One slow or failing match does not block
// the others; failures are reported together after the fan-out.
type IngestionService struct {
	matchRepo   match.Repository
	statsRepo   playerstats.Repository
	feed        ScorecardFeed
	recomputer  matchScoreRecomputer
	concurrency int
	logger      *logging.Logger
	now         func() time.Time
}

func NewIngestionService(
	matchRepo match.Repository,
	statsRepo playerstats.Repository,
	feed ScorecardFeed,
	recomputer matchScoreRecomputer,
	concurrency int,
	logger *logging.Logger,
) *IngestionService {
	if concurrency < 1 {
		concurrency = defaultIngestionConcurrency
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &IngestionService{
		matchRepo:   matchRepo,
		statsRepo:   statsRepo,
		feed:        feed,
		recomputer:  recomputer,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

// SyncLiveMatches refreshes every live match concurrently.
func (s *IngestionService) SyncLiveMatches(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.SyncLiveMatches")
	defer span.End()

	live, err := s.matchRepo.List(ctx, match.StatusLive)
	if err != nil {
		return SyncResult{}, fmt.Errorf("list live matches: %w", err)
	}
	if len(live) == 0 {
		return SyncResult{}, nil
	}

	results := make([]int, len(live))
	p := pool.New().WithErrors().WithMaxGoroutines(s.concurrency)
	for i, m := range live {
		i, m := i, m
		p.Go(func() error {
			upserted, err := s.syncMatch(ctx, m.ID)
			if err != nil {
				return fmt.Errorf("sync match %s: %w", m.ID, err)
			}
			results[i] = upserted
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return SyncResult{}, err
	}

	total := SyncResult{MatchesSynced: len(live)}
	for _, n := range results {
		total.StatsUpserted += n
	}

	s.logger.InfoContext(ctx, "live matches synced", "matches", total.MatchesSynced, "stats", total.StatsUpserted)
	return total, nil
}

// SyncMatch refreshes one match on demand.
func (s *IngestionService) SyncMatch(ctx context.Context, matchID string) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.SyncMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return SyncResult{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return SyncResult{}, fmt.Errorf("get match by id: %w", err)
	} else if !exists {
		return SyncResult{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	upserted, err := s.syncMatch(ctx, matchID)
	if err != nil {
		return SyncResult{}, err
	}

	return SyncResult{MatchesSynced: 1, StatsUpserted: upserted}, nil
}

func (s *IngestionService) syncMatch(ctx context.Context, matchID string) (int, error) {
	rows, err := s.feed.FetchScorecard(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch scorecard: %s", ErrDependencyUnavailable, err)
	}

	now := s.now().UTC()
	for i := range rows {
		rows[i].MatchID = matchID
		rows[i].UpdatedAt = now
		if err := rows[i].Validate(); err != nil {
			return 0, fmt.Errorf("%w: scorecard row for player %s: %s", ErrInvalidInput, rows[i].PlayerID, err)
		}
	}

	for _, row := range rows {
		if err := s.statsRepo.Upsert(ctx, row); err != nil {
			return 0, fmt.Errorf("upsert stats for player %s: %w", row.PlayerID, err)
		}
	}

	if s.recomputer != nil {
		if _, err := s.recomputer.RecomputeMatch(ctx, matchID); err != nil {
			return 0, fmt.Errorf("recompute scores: %w", err)
		}
	}

	return len(rows), nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/player"
)

// MatchService exposes the match and player catalog that team building
// and contests hang off.
type MatchService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	now        func() time.Time
}

func NewMatchService(matchRepo match.Repository, playerRepo player.Repository) *MatchService {
	return &MatchService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		now:        time.Now,
	}
}

func (s *MatchService) List(ctx context.Context, status match.Status) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.List")
	defer span.End()

	if status != "" {
		if _, ok := match.AllStatuses[status]; !ok {
			return nil, fmt.Errorf("%w: unknown match status %q", ErrInvalidInput, status)
		}
	}

	items, err := s.matchRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.GetByID")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	return item, nil
}

func (s *MatchService) ListPlayers(ctx context.Context, matchID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListPlayers")
	defer span.End()

	if _, err := s.GetByID(ctx, matchID); err != nil {
		return nil, err
	}

	players, err := s.playerRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list players by match: %w", err)
	}

	return players, nil
}

// UpdateStatus moves a match along its lifecycle. Completed and
// cancelled matches are terminal.
func (s *MatchService) UpdateStatus(ctx context.Context, matchID string, status match.Status) error {
	ctx, span := startUsecaseSpan(ctx, "MatchService.UpdateStatus")
	defer span.End()

	if _, ok := match.AllStatuses[status]; !ok {
		return fmt.Errorf("%w: unknown match status %q", ErrInvalidInput, status)
	}

	current, err := s.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if current.Status == match.StatusCompleted || current.Status == match.StatusCancelled {
		return fmt.Errorf("%w: match %s is already %s", ErrInvalidInput, matchID, current.Status)
	}

	if err := s.matchRepo.UpdateStatus(ctx, matchID, status); err != nil {
		return fmt.Errorf("update match status: %w", err)
	}

	return nil
}

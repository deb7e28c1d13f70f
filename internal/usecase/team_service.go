package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/player"
	"github.com/crickarena/fantasy-cricket/internal/platform/id"
)

type CreateTeamInput struct {
	UserID        string
	MatchID       string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

// TeamService builds and validates fantasy teams. Roles and credits are
// always resolved from the player catalog, never trusted from input.
type TeamService struct {
	teamRepo   fantasy.Repository
	matchRepo  match.Repository
	playerRepo player.Repository
	rules      fantasy.Rules
	idGen      id.Generator
	now        func() time.Time
}

func NewTeamService(
	teamRepo fantasy.Repository,
	matchRepo match.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		rules:      fantasy.DefaultRules(),
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	if input.UserID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasy.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	playerIDs, err := normalizeIDs(input.PlayerIDs)
	if err != nil {
		return fantasy.Team{}, err
	}

	item, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: match %s", ErrNotFound, input.MatchID)
	}
	if item.Status != match.StatusUpcoming {
		return fantasy.Team{}, fmt.Errorf("%w: teams are locked once match %s is %s", ErrInvalidInput, item.ID, item.Status)
	}

	picks, err := s.resolvePicks(ctx, input.MatchID, playerIDs)
	if err != nil {
		return fantasy.Team{}, err
	}

	if err := fantasy.ValidateTeam(picks, input.CaptainID, input.ViceCaptainID, s.rules); err != nil {
		return fantasy.Team{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	team := fantasy.Team{
		ID:            teamID,
		UserID:        input.UserID,
		MatchID:       input.MatchID,
		Name:          input.Name,
		Picks:         picks,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return fantasy.Team{}, fmt.Errorf("create team: %w", err)
	}

	return team, nil
}

// resolvePicks maps the requested player IDs onto catalog entries for
// the match. Any ID missing from the match squad list fails the whole
// request.
func (s *TeamService) resolvePicks(ctx context.Context, matchID string, playerIDs []string) ([]fantasy.TeamPick, error) {
	players, err := s.playerRepo.GetByIDs(ctx, matchID, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	picks := make([]fantasy.TeamPick, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		p, ok := byID[playerID]
		if !ok {
			return nil, fmt.Errorf("%w: player %s is not part of match %s", ErrInvalidInput, playerID, matchID)
		}
		picks = append(picks, fantasy.TeamPick{
			PlayerID: p.ID,
			Role:     p.Role,
			Credits:  p.Credits,
		})
	}

	return picks, nil
}

func (s *TeamService) GetByID(ctx context.Context, userID, teamID string) (fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetByID")
	defer span.End()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" || teamID == "" {
		return fantasy.Team{}, fmt.Errorf("%w: user_id and team_id are required", ErrInvalidInput)
	}

	team, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	if team.UserID != userID {
		return fantasy.Team{}, fmt.Errorf("%w: team %s does not belong to caller", ErrUnauthorized, teamID)
	}

	return team, nil
}

func (s *TeamService) ListByUser(ctx context.Context, userID string) ([]fantasy.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.ListByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list teams by user: %w", err)
	}

	return teams, nil
}

func normalizeIDs(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: blank id in list", ErrInvalidInput)
		}
		out = append(out, trimmed)
	}
	return out, nil
}

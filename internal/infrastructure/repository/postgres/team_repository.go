package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/player"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

type teamRow struct {
	PublicID      string    `db:"public_id"`
	UserID        string    `db:"user_id"`
	MatchID       string    `db:"match_public_id"`
	Name          string    `db:"name"`
	CaptainID     string    `db:"captain_public_id"`
	ViceCaptainID string    `db:"vice_captain_public_id"`
	Score         int64     `db:"score"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type teamPickRow struct {
	TeamID   string `db:"team_public_id"`
	PlayerID string `db:"player_public_id"`
	Role     string `db:"role"`
	Credits  int64  `db:"credits"`
}

func (r *TeamRepository) Create(ctx context.Context, team fantasy.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const teamQuery = `
INSERT INTO fantasy_teams (
	public_id, user_id, match_public_id, name,
	captain_public_id, vice_captain_public_id, score, created_at, updated_at
) VALUES (
	:public_id, :user_id, :match_public_id, :name,
	:captain_public_id, :vice_captain_public_id, :score, :created_at, :updated_at
)`
	if _, err := tx.NamedExecContext(ctx, teamQuery, teamRow{
		PublicID:      team.ID,
		UserID:        team.UserID,
		MatchID:       team.MatchID,
		Name:          team.Name,
		CaptainID:     team.CaptainID,
		ViceCaptainID: team.ViceCaptainID,
		Score:         team.Score,
		CreatedAt:     team.CreatedAt,
		UpdatedAt:     team.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	const pickQuery = `
INSERT INTO fantasy_team_picks (team_public_id, player_public_id, role, credits)
VALUES (:team_public_id, :player_public_id, :role, :credits)`
	for _, pick := range team.Picks {
		if _, err := tx.NamedExecContext(ctx, pickQuery, teamPickRow{
			TeamID:   team.ID,
			PlayerID: pick.PlayerID,
			Role:     string(pick.Role),
			Credits:  pick.Credits,
		}); err != nil {
			return fmt.Errorf("insert team pick: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (fantasy.Team, bool, error) {
	const query = `
SELECT public_id, user_id, match_public_id, name,
       captain_public_id, vice_captain_public_id, score, created_at, updated_at
FROM fantasy_teams
WHERE public_id = $1`

	var row teamRow
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	team, err := r.hydratePicks(ctx, row)
	if err != nil {
		return fantasy.Team{}, false, err
	}
	return team, true, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]fantasy.Team, error) {
	if len(teamIDs) == 0 {
		return []fantasy.Team{}, nil
	}

	query, args, err := sqlx.In(`
SELECT public_id, user_id, match_public_id, name,
       captain_public_id, vice_captain_public_id, score, created_at, updated_at
FROM fantasy_teams
WHERE public_id IN (?)`, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("build teams by ids query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by ids: %w", err)
	}

	return r.hydrateAll(ctx, rows)
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]fantasy.Team, error) {
	const query = `
SELECT public_id, user_id, match_public_id, name,
       captain_public_id, vice_captain_public_id, score, created_at, updated_at
FROM fantasy_teams
WHERE user_id = $1
ORDER BY public_id`

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("select teams by user: %w", err)
	}

	return r.hydrateAll(ctx, rows)
}

func (r *TeamRepository) ListByMatch(ctx context.Context, matchID string) ([]fantasy.Team, error) {
	const query = `
SELECT public_id, user_id, match_public_id, name,
       captain_public_id, vice_captain_public_id, score, created_at, updated_at
FROM fantasy_teams
WHERE match_public_id = $1
ORDER BY public_id`

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select teams by match: %w", err)
	}

	return r.hydrateAll(ctx, rows)
}

func (r *TeamRepository) UpdateScore(ctx context.Context, teamID string, score int64) error {
	const query = `
UPDATE fantasy_teams
SET score = $2, updated_at = NOW()
WHERE public_id = $1`

	if _, err := r.db.ExecContext(ctx, query, teamID, score); err != nil {
		return fmt.Errorf("update team score: %w", err)
	}
	return nil
}

func (r *TeamRepository) hydrateAll(ctx context.Context, rows []teamRow) ([]fantasy.Team, error) {
	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		team, err := r.hydratePicks(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, team)
	}
	return out, nil
}

func (r *TeamRepository) hydratePicks(ctx context.Context, row teamRow) (fantasy.Team, error) {
	const query = `
SELECT team_public_id, player_public_id, role, credits
FROM fantasy_team_picks
WHERE team_public_id = $1
ORDER BY id`

	var pickRows []teamPickRow
	if err := r.db.SelectContext(ctx, &pickRows, query, row.PublicID); err != nil {
		return fantasy.Team{}, fmt.Errorf("select team picks: %w", err)
	}

	picks := make([]fantasy.TeamPick, 0, len(pickRows))
	for _, p := range pickRows {
		picks = append(picks, fantasy.TeamPick{
			PlayerID: p.PlayerID,
			Role:     player.Role(p.Role),
			Credits:  p.Credits,
		})
	}

	return fantasy.Team{
		ID:            row.PublicID,
		UserID:        row.UserID,
		MatchID:       row.MatchID,
		Name:          row.Name,
		Picks:         picks,
		CaptainID:     row.CaptainID,
		ViceCaptainID: row.ViceCaptainID,
		Score:         row.Score,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crickarena/fantasy-cricket/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

type playerRow struct {
	PublicID string         `db:"public_id"`
	MatchID  string         `db:"match_public_id"`
	TeamName string         `db:"team_name"`
	Name     string         `db:"name"`
	Role     string         `db:"role"`
	Credits  int64          `db:"credits"`
	ImageURL sql.NullString `db:"image_url"`
}

func (row playerRow) toDomain() player.Player {
	return player.Player{
		ID:       row.PublicID,
		MatchID:  row.MatchID,
		TeamName: row.TeamName,
		Name:     row.Name,
		Role:     player.Role(row.Role),
		Credits:  row.Credits,
		ImageURL: row.ImageURL.String,
	}
}

func (r *PlayerRepository) ListByMatch(ctx context.Context, matchID string) ([]player.Player, error) {
	const query = `
SELECT public_id, match_public_id, team_name, name, role, credits, image_url
FROM players
WHERE match_public_id = $1
ORDER BY public_id`

	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select players by match: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, matchID string, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := sqlx.In(`
SELECT public_id, match_public_id, team_name, name, role, credits, image_url
FROM players
WHERE match_public_id = ? AND public_id IN (?)`, matchID, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("build players by ids query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

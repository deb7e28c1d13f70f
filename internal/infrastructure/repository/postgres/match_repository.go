package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickarena/fantasy-cricket/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

type matchRow struct {
	PublicID  string    `db:"public_id"`
	Title     string    `db:"title"`
	TeamA     string    `db:"team_a"`
	TeamB     string    `db:"team_b"`
	Venue     string    `db:"venue"`
	Format    string    `db:"format"`
	StartsAt  time.Time `db:"starts_at"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (row matchRow) toDomain() match.Match {
	return match.Match{
		ID:        row.PublicID,
		Title:     row.Title,
		TeamA:     row.TeamA,
		TeamB:     row.TeamB,
		Venue:     row.Venue,
		Format:    row.Format,
		StartsAt:  row.StartsAt,
		Status:    match.Status(row.Status),
		CreatedAt: row.CreatedAt,
	}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	const query = `
SELECT public_id, title, team_a, team_b, venue, format, starts_at, status, created_at
FROM matches
WHERE public_id = $1`

	var row matchRow
	if err := r.db.GetContext(ctx, &row, query, matchID); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) List(ctx context.Context, status match.Status) ([]match.Match, error) {
	query := `
SELECT public_id, title, team_a, team_b, venue, format, starts_at, status, created_at
FROM matches`
	args := []any{}
	if status != "" {
		query += `
WHERE status = $1`
		args = append(args, string(status))
	}
	query += `
ORDER BY starts_at, public_id`

	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, matchID string, status match.Status) error {
	const query = `
UPDATE matches
SET status = $2, updated_at = NOW()
WHERE public_id = $1`

	if _, err := r.db.ExecContext(ctx, query, matchID, string(status)); err != nil {
		return fmt.Errorf("update match status: %w", err)
	}
	return nil
}

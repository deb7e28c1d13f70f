package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

type playerStatsRow struct {
	PlayerID    string    `db:"player_public_id"`
	MatchID     string    `db:"match_public_id"`
	Runs        int       `db:"runs"`
	Fours       int       `db:"fours"`
	Sixes       int       `db:"sixes"`
	Wickets     int       `db:"wickets"`
	MaidenOvers int       `db:"maiden_overs"`
	Catches     int       `db:"catches"`
	Stumpings   int       `db:"stumpings"`
	RunOuts     int       `db:"run_outs"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *PlayerStatsRepository) ListByMatch(ctx context.Context, matchID string) ([]playerstats.Stats, error) {
	const query = `
SELECT player_public_id, match_public_id, runs, fours, sixes, wickets,
       maiden_overs, catches, stumpings, run_outs, updated_at
FROM player_stats
WHERE match_public_id = $1
ORDER BY player_public_id`

	var rows []playerStatsRow
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select player stats: %w", err)
	}

	out := make([]playerstats.Stats, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.Stats{
			PlayerID:    row.PlayerID,
			MatchID:     row.MatchID,
			Runs:        row.Runs,
			Fours:       row.Fours,
			Sixes:       row.Sixes,
			Wickets:     row.Wickets,
			MaidenOvers: row.MaidenOvers,
			Catches:     row.Catches,
			Stumpings:   row.Stumpings,
			RunOuts:     row.RunOuts,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, row playerstats.Stats) error {
	const query = `
INSERT INTO player_stats (
	player_public_id, match_public_id, runs, fours, sixes, wickets,
	maiden_overs, catches, stumpings, run_outs, updated_at
) VALUES (
	:player_public_id, :match_public_id, :runs, :fours, :sixes, :wickets,
	:maiden_overs, :catches, :stumpings, :run_outs, :updated_at
)
ON CONFLICT (match_public_id, player_public_id) DO UPDATE SET
	runs = EXCLUDED.runs,
	fours = EXCLUDED.fours,
	sixes = EXCLUDED.sixes,
	wickets = EXCLUDED.wickets,
	maiden_overs = EXCLUDED.maiden_overs,
	catches = EXCLUDED.catches,
	stumpings = EXCLUDED.stumpings,
	run_outs = EXCLUDED.run_outs,
	updated_at = EXCLUDED.updated_at`

	model := playerStatsRow{
		PlayerID:    row.PlayerID,
		MatchID:     row.MatchID,
		Runs:        row.Runs,
		Fours:       row.Fours,
		Sixes:       row.Sixes,
		Wickets:     row.Wickets,
		MaidenOvers: row.MaidenOvers,
		Catches:     row.Catches,
		Stumpings:   row.Stumpings,
		RunOuts:     row.RunOuts,
		UpdatedAt:   row.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
)

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

type contestRow struct {
	PublicID     string       `db:"public_id"`
	MatchID      string       `db:"match_public_id"`
	Name         string       `db:"name"`
	EntryFee     int64        `db:"entry_fee"`
	PrizePool    int64        `db:"prize_pool"`
	MaxEntries   int          `db:"max_entries"`
	JoinedCount  int          `db:"joined_count"`
	Status       string       `db:"status"`
	PrizesPaidAt sql.NullTime `db:"prizes_paid_at"`
	CreatedAt    time.Time    `db:"created_at"`
}

type payoutRow struct {
	ContestID string `db:"contest_public_id"`
	Rank      int    `db:"rank"`
	Amount    int64  `db:"amount"`
}

type entryRow struct {
	PublicID  string    `db:"public_id"`
	ContestID string    `db:"contest_public_id"`
	UserID    string    `db:"user_id"`
	TeamID    string    `db:"team_public_id"`
	Rank      int       `db:"rank"`
	Winnings  int64     `db:"winnings"`
	JoinedAt  time.Time `db:"joined_at"`
}

func (row entryRow) toDomain() contest.Entry {
	return contest.Entry{
		ID:        row.PublicID,
		ContestID: row.ContestID,
		UserID:    row.UserID,
		TeamID:    row.TeamID,
		Rank:      row.Rank,
		Winnings:  row.Winnings,
		JoinedAt:  row.JoinedAt,
	}
}

func (r *ContestRepository) Create(ctx context.Context, c contest.Contest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create contest tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const contestQuery = `
INSERT INTO contests (
	public_id, match_public_id, name, entry_fee, prize_pool,
	max_entries, joined_count, status, created_at
) VALUES (
	:public_id, :match_public_id, :name, :entry_fee, :prize_pool,
	:max_entries, :joined_count, :status, :created_at
)`
	if _, err := tx.NamedExecContext(ctx, contestQuery, contestRow{
		PublicID:    c.ID,
		MatchID:     c.MatchID,
		Name:        c.Name,
		EntryFee:    c.EntryFee,
		PrizePool:   c.PrizePool,
		MaxEntries:  c.MaxEntries,
		JoinedCount: c.JoinedCount,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}); err != nil {
		return fmt.Errorf("insert contest: %w", err)
	}

	const payoutQuery = `
INSERT INTO contest_payouts (contest_public_id, rank, amount)
VALUES (:contest_public_id, :rank, :amount)`
	for _, slot := range c.Payouts {
		if _, err := tx.NamedExecContext(ctx, payoutQuery, payoutRow{
			ContestID: c.ID,
			Rank:      slot.Rank,
			Amount:    slot.Amount,
		}); err != nil {
			return fmt.Errorf("insert contest payout: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create contest tx: %w", err)
	}
	return nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	const query = `
SELECT public_id, match_public_id, name, entry_fee, prize_pool,
       max_entries, joined_count, status, prizes_paid_at, created_at
FROM contests
WHERE public_id = $1`

	var row contestRow
	if err := r.db.GetContext(ctx, &row, query, contestID); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("get contest: %w", err)
	}

	c, err := r.hydratePayouts(ctx, row)
	if err != nil {
		return contest.Contest{}, false, err
	}
	return c, true, nil
}

func (r *ContestRepository) List(ctx context.Context, matchID string, status contest.Status) ([]contest.Contest, error) {
	query := `
SELECT public_id, match_public_id, name, entry_fee, prize_pool,
       max_entries, joined_count, status, prizes_paid_at, created_at
FROM contests
WHERE 1=1`
	args := []any{}
	if matchID != "" {
		args = append(args, matchID)
		query += fmt.Sprintf(" AND match_public_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, string(status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY public_id"

	var rows []contestRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contests: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		c, err := r.hydratePayouts(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *ContestRepository) UpdateStatus(ctx context.Context, contestID string, status contest.Status) error {
	const query = `
UPDATE contests
SET status = $2
WHERE public_id = $1`

	if _, err := r.db.ExecContext(ctx, query, contestID, string(status)); err != nil {
		return fmt.Errorf("update contest status: %w", err)
	}
	return nil
}

// ReserveSlot increments joined_count in a single conditional UPDATE.
// The WHERE clause re-checks status and capacity, so under concurrency
// the database serializes reservations and at most max_entries succeed.
func (r *ContestRepository) ReserveSlot(ctx context.Context, contestID string) error {
	const query = `
UPDATE contests
SET joined_count = joined_count + 1,
    status = CASE WHEN joined_count + 1 >= max_entries THEN 'full' ELSE status END
WHERE public_id = $1
  AND status = 'open'
  AND joined_count < max_entries`

	res, err := r.db.ExecContext(ctx, query, contestID)
	if err != nil {
		return fmt.Errorf("reserve contest slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve contest slot rows affected: %w", err)
	}
	if affected == 1 {
		return nil
	}

	// Distinguish "full" from "not open" for the caller.
	var status string
	if err := r.db.GetContext(ctx, &status, `SELECT status FROM contests WHERE public_id = $1`, contestID); err != nil {
		if isNotFound(err) {
			return contest.ErrContestNotOpen
		}
		return fmt.Errorf("inspect contest status: %w", err)
	}
	if status == string(contest.StatusFull) {
		return contest.ErrContestFull
	}
	return contest.ErrContestNotOpen
}

func (r *ContestRepository) ReleaseSlot(ctx context.Context, contestID string) error {
	const query = `
UPDATE contests
SET joined_count = joined_count - 1,
    status = CASE WHEN status = 'full' THEN 'open' ELSE status END
WHERE public_id = $1
  AND joined_count > 0`

	if _, err := r.db.ExecContext(ctx, query, contestID); err != nil {
		return fmt.Errorf("release contest slot: %w", err)
	}
	return nil
}

func (r *ContestRepository) CreateEntry(ctx context.Context, entry contest.Entry) error {
	const query = `
INSERT INTO contest_entries (public_id, contest_public_id, user_id, team_public_id, rank, winnings, joined_at)
VALUES (:public_id, :contest_public_id, :user_id, :team_public_id, :rank, :winnings, :joined_at)`

	if _, err := r.db.NamedExecContext(ctx, query, entryRow{
		PublicID:  entry.ID,
		ContestID: entry.ContestID,
		UserID:    entry.UserID,
		TeamID:    entry.TeamID,
		Rank:      entry.Rank,
		Winnings:  entry.Winnings,
		JoinedAt:  entry.JoinedAt,
	}); err != nil {
		if isUniqueViolation(err) {
			return contest.ErrDuplicateEntry
		}
		return fmt.Errorf("insert contest entry: %w", err)
	}
	return nil
}

func (r *ContestRepository) GetEntry(ctx context.Context, contestID, userID string) (contest.Entry, bool, error) {
	const query = `
SELECT public_id, contest_public_id, user_id, team_public_id, rank, winnings, joined_at
FROM contest_entries
WHERE contest_public_id = $1 AND user_id = $2`

	var row entryRow
	if err := r.db.GetContext(ctx, &row, query, contestID, userID); err != nil {
		if isNotFound(err) {
			return contest.Entry{}, false, nil
		}
		return contest.Entry{}, false, fmt.Errorf("get contest entry: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ContestRepository) ListEntriesByContest(ctx context.Context, contestID string) ([]contest.Entry, error) {
	const query = `
SELECT public_id, contest_public_id, user_id, team_public_id, rank, winnings, joined_at
FROM contest_entries
WHERE contest_public_id = $1
ORDER BY public_id`

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query, contestID); err != nil {
		return nil, fmt.Errorf("select entries by contest: %w", err)
	}

	out := make([]contest.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ContestRepository) ListEntriesByUser(ctx context.Context, userID string) ([]contest.Entry, error) {
	const query = `
SELECT public_id, contest_public_id, user_id, team_public_id, rank, winnings, joined_at
FROM contest_entries
WHERE user_id = $1
ORDER BY joined_at, public_id`

	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("select entries by user: %w", err)
	}

	out := make([]contest.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ContestRepository) UpdateEntryResults(ctx context.Context, contestID string, entries []contest.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin entry results tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
UPDATE contest_entries
SET rank = $3, winnings = $4
WHERE contest_public_id = $1 AND public_id = $2`
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, query, contestID, entry.ID, entry.Rank, entry.Winnings); err != nil {
			return fmt.Errorf("update entry result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entry results tx: %w", err)
	}
	return nil
}

// CompleteOnce relies on a conditional UPDATE: only the caller whose
// statement transitions the row out of a non-completed status wins.
func (r *ContestRepository) CompleteOnce(ctx context.Context, contestID string) (bool, error) {
	const query = `
UPDATE contests
SET status = 'completed', prizes_paid_at = NOW()
WHERE public_id = $1
  AND status <> 'completed'`

	res, err := r.db.ExecContext(ctx, query, contestID)
	if err != nil {
		return false, fmt.Errorf("complete contest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete contest rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *ContestRepository) hydratePayouts(ctx context.Context, row contestRow) (contest.Contest, error) {
	const query = `
SELECT contest_public_id, rank, amount
FROM contest_payouts
WHERE contest_public_id = $1
ORDER BY rank`

	var payoutRows []payoutRow
	if err := r.db.SelectContext(ctx, &payoutRows, query, row.PublicID); err != nil {
		return contest.Contest{}, fmt.Errorf("select contest payouts: %w", err)
	}

	payouts := make([]contest.PayoutSlot, 0, len(payoutRows))
	for _, p := range payoutRows {
		payouts = append(payouts, contest.PayoutSlot{Rank: p.Rank, Amount: p.Amount})
	}

	c := contest.Contest{
		ID:          row.PublicID,
		MatchID:     row.MatchID,
		Name:        row.Name,
		EntryFee:    row.EntryFee,
		PrizePool:   row.PrizePool,
		MaxEntries:  row.MaxEntries,
		JoinedCount: row.JoinedCount,
		Status:      contest.Status(row.Status),
		Payouts:     payouts,
		CreatedAt:   row.CreatedAt,
	}
	if row.PrizesPaidAt.Valid {
		paidAt := row.PrizesPaidAt.Time
		c.PrizesPaidAt = &paidAt
	}
	return c, nil
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
	"github.com/crickarena/fantasy-cricket/internal/platform/id"
	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
)

type LeaderboardRow struct {
	Rank     int
	EntryID  string
	UserID   string
	TeamID   string
	TeamName string
	Score    int64
	Winnings int64
}

// LeaderboardService ranks contest entries and pays out prizes.
//
// Ranking orders by team score descending; ties break on earlier join
// time, then entry ID, so the order is total and reproducible. Prize
// distribution marks the contest completed before crediting wallets:
// a crash mid-payout can leave winners to be credited from the ledger,
// but re-running distribution can never pay twice.
type LeaderboardService struct {
	contestRepo contest.Repository
	teamRepo    fantasy.Repository
	walletRepo  wallet.Repository
	idGen       id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewLeaderboardService(
	contestRepo contest.Repository,
	teamRepo fantasy.Repository,
	walletRepo wallet.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LeaderboardService{
		contestRepo: contestRepo,
		teamRepo:    teamRepo,
		walletRepo:  walletRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *LeaderboardService) Rank(ctx context.Context, contestID string) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Rank")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, fmt.Errorf("%w: contest_id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("get contest by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}

	entries, err := s.contestRepo.ListEntriesByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("list contest entries: %w", err)
	}
	if len(entries) == 0 {
		return []LeaderboardRow{}, nil
	}

	rows, err := s.rank(ctx, c, entries)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *LeaderboardService) rank(ctx context.Context, c contest.Contest, entries []contest.Entry) ([]LeaderboardRow, error) {
	teamIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		teamIDs = append(teamIDs, entry.TeamID)
	}

	teams, err := s.teamRepo.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("get teams by ids: %w", err)
	}
	teamByID := make(map[string]fantasy.Team, len(teams))
	for _, team := range teams {
		teamByID[team.ID] = team
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	joinedAt := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		team, ok := teamByID[entry.TeamID]
		if !ok {
			return nil, fmt.Errorf("entry %s references missing team %s", entry.ID, entry.TeamID)
		}
		joinedAt[entry.ID] = entry.JoinedAt
		rows = append(rows, LeaderboardRow{
			EntryID:  entry.ID,
			UserID:   entry.UserID,
			TeamID:   team.ID,
			TeamName: team.Name,
			Score:    team.Score,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		ji, jj := joinedAt[rows[i].EntryID], joinedAt[rows[j].EntryID]
		if !ji.Equal(jj) {
			return ji.Before(jj)
		}
		return rows[i].EntryID < rows[j].EntryID
	})

	payoutByRank := make(map[int]int64, len(c.Payouts))
	for _, slot := range c.Payouts {
		payoutByRank[slot.Rank] = slot.Amount
	}

	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Winnings = payoutByRank[rows[i].Rank]
	}

	return rows, nil
}

// DistributePrizes settles a contest: ranks entries, marks the contest
// completed, persists ranks and winnings, and credits winner wallets.
// Calling it again for a settled contest is a no-op.
func (s *LeaderboardService) DistributePrizes(ctx context.Context, contestID string) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.DistributePrizes")
	defer span.End()

	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, fmt.Errorf("%w: contest_id is required", ErrInvalidInput)
	}

	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("get contest by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: contest %s", ErrNotFound, contestID)
	}
	if c.Status == contest.StatusCompleted {
		return nil, contest.ErrAlreadyCompleted
	}

	entries, err := s.contestRepo.ListEntriesByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("list contest entries: %w", err)
	}

	rows, err := s.rank(ctx, c, entries)
	if err != nil {
		return nil, err
	}

	settled, err := s.contestRepo.CompleteOnce(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("complete contest: %w", err)
	}
	if !settled {
		// A concurrent distribution won the completion race.
		return nil, contest.ErrAlreadyCompleted
	}

	results := make([]contest.Entry, 0, len(rows))
	entryByID := make(map[string]contest.Entry, len(entries))
	for _, entry := range entries {
		entryByID[entry.ID] = entry
	}
	for _, row := range rows {
		entry := entryByID[row.EntryID]
		entry.Rank = row.Rank
		entry.Winnings = row.Winnings
		results = append(results, entry)
	}
	if err := s.contestRepo.UpdateEntryResults(ctx, contestID, results); err != nil {
		return nil, fmt.Errorf("update entry results: %w", err)
	}

	for _, row := range rows {
		if row.Winnings <= 0 {
			continue
		}
		if err := s.creditWinnings(ctx, contestID, row); err != nil {
			// The contest is already marked completed, so failures here
			// are surfaced for manual replay rather than retried blindly.
			s.logger.ErrorContext(ctx, "credit winnings", "error", err, "contest_id", contestID, "user_id", row.UserID, "amount", row.Winnings)
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "contest settled", "contest_id", contestID, "entries", len(rows))
	return rows, nil
}

func (s *LeaderboardService) creditWinnings(ctx context.Context, contestID string, row LeaderboardRow) error {
	txnID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate winnings transaction id: %w", err)
	}

	txn := wallet.Transaction{
		ID:          txnID,
		UserID:      row.UserID,
		Type:        wallet.TypeWinning,
		Amount:      row.Winnings,
		Status:      wallet.StatusCompleted,
		ReferenceID: contestID,
		Description: fmt.Sprintf("contest winnings, rank %d", row.Rank),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.walletRepo.Credit(ctx, txn); err != nil {
		return fmt.Errorf("credit winnings: %w", err)
	}

	return nil
}

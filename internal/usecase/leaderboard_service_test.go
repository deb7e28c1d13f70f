package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
)

type leaderboardFixture struct {
	contests *memory.ContestRepository
	teams    *memory.TeamRepository
	wallets  *memory.WalletRepository
	service  *LeaderboardService
}

func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()

	contestRepo := memory.NewContestRepository([]contest.Contest{{
		ID:          "c1",
		MatchID:     memory.MatchIDIndAus,
		Name:        "Settled Contest",
		EntryFee:    10000,
		PrizePool:   30000,
		MaxEntries:  3,
		JoinedCount: 3,
		Status:      contest.StatusLive,
		Payouts: []contest.PayoutSlot{
			{Rank: 1, Amount: 20000},
			{Rank: 2, Amount: 8000},
		},
	}})
	teamRepo := memory.NewTeamRepository()
	walletRepo := memory.NewWalletRepository()

	return &leaderboardFixture{
		contests: contestRepo,
		teams:    teamRepo,
		wallets:  walletRepo,
		service:  NewLeaderboardService(contestRepo, teamRepo, walletRepo, &seqIDGenerator{prefix: "lb"}, logging.NewNop()),
	}
}

func (f *leaderboardFixture) addEntry(t *testing.T, userID string, score int64, joinedAt time.Time) {
	t.Helper()
	ctx := context.Background()

	teamID := "team-" + userID
	require.NoError(t, f.teams.Create(ctx, fantasy.Team{
		ID:      teamID,
		UserID:  userID,
		MatchID: memory.MatchIDIndAus,
		Name:    userID + " XI",
		Score:   score,
	}))
	require.NoError(t, f.contests.CreateEntry(ctx, contest.Entry{
		ID:        "entry-" + userID,
		ContestID: "c1",
		UserID:    userID,
		TeamID:    teamID,
		JoinedAt:  joinedAt,
	}))
}

func TestLeaderboardService_Rank_OrdersByScoreDescending(t *testing.T) {
	f := newLeaderboardFixture(t)
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	f.addEntry(t, "alice", 1080, base)
	f.addEntry(t, "bob", 1395, base.Add(time.Minute))
	f.addEntry(t, "carol", 490, base.Add(2*time.Minute))

	rows, err := f.service.Rank(t.Context(), "c1")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "bob", rows[0].UserID)
	require.Equal(t, "alice", rows[1].UserID)
	require.Equal(t, "carol", rows[2].UserID)
	for i, row := range rows {
		require.Equal(t, i+1, row.Rank)
	}
	require.Equal(t, int64(20000), rows[0].Winnings)
	require.Equal(t, int64(8000), rows[1].Winnings)
	require.Equal(t, int64(0), rows[2].Winnings)
}

func TestLeaderboardService_Rank_TieBreaksOnEarlierJoin(t *testing.T) {
	f := newLeaderboardFixture(t)
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	f.addEntry(t, "late", 900, base.Add(time.Hour))
	f.addEntry(t, "early", 900, base)

	rows, err := f.service.Rank(t.Context(), "c1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "early", rows[0].UserID)
	require.Equal(t, 1, rows[0].Rank)
	require.Equal(t, "late", rows[1].UserID)
	require.Equal(t, 2, rows[1].Rank)
}

func TestLeaderboardService_DistributePrizes_PaysOnce(t *testing.T) {
	f := newLeaderboardFixture(t)
	ctx := t.Context()
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	f.addEntry(t, "alice", 1200, base)
	f.addEntry(t, "bob", 800, base.Add(time.Minute))
	f.addEntry(t, "carol", 500, base.Add(2*time.Minute))

	rows, err := f.service.DistributePrizes(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	aliceBalance, err := f.wallets.Balance(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(20000), aliceBalance)

	bobBalance, err := f.wallets.Balance(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, int64(8000), bobBalance)

	carolBalance, err := f.wallets.Balance(ctx, "carol")
	require.NoError(t, err)
	require.Zero(t, carolBalance)

	// Replaying distribution must not credit anybody twice.
	_, err = f.service.DistributePrizes(ctx, "c1")
	require.ErrorIs(t, err, contest.ErrAlreadyCompleted)

	aliceBalance, err = f.wallets.Balance(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(20000), aliceBalance)

	c, _, err := f.contests.GetByID(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, contest.StatusCompleted, c.Status)
	require.NotNil(t, c.PrizesPaidAt)

	entries, err := f.contests.ListEntriesByContest(ctx, "c1")
	require.NoError(t, err)
	for _, entry := range entries {
		require.NotZero(t, entry.Rank, "entry %s should carry its final rank", entry.ID)
	}
}

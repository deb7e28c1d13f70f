package memory

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
)

func TestContestRepository_ReserveSlot_OneWinnerForLastSlot(t *testing.T) {
	repo := NewContestRepository([]contest.Contest{{
		ID:          "c1",
		MatchID:     "m1",
		Name:        "Head to Head",
		EntryFee:    10000,
		PrizePool:   20000,
		MaxEntries:  2,
		JoinedCount: 1,
		Status:      contest.StatusOpen,
	}})

	const racers = 16
	var wins, fulls atomic.Int32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(racers)

	for i := 0; i < racers; i++ {
		go func() {
			defer wg.Done()
			<-start
			err := repo.ReserveSlot(t.Context(), "c1")
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, contest.ErrContestFull):
				fulls.Add(1)
			default:
				t.Errorf("unexpected reserve error: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Fatalf("expected exactly one winning reservation, got %d", got)
	}
	if got := fulls.Load(); got != racers-1 {
		t.Fatalf("expected %d full rejections, got %d", racers-1, got)
	}

	c, _, err := repo.GetByID(t.Context(), "c1")
	if err != nil {
		t.Fatalf("get contest: %v", err)
	}
	if c.JoinedCount != 2 {
		t.Fatalf("expected joined count 2, got %d", c.JoinedCount)
	}
	if c.Status != contest.StatusFull {
		t.Fatalf("expected contest to flip to full, got %s", c.Status)
	}
}

func TestContestRepository_ReleaseSlotReopensFullContest(t *testing.T) {
	repo := NewContestRepository([]contest.Contest{{
		ID:          "c1",
		MatchID:     "m1",
		Name:        "Small",
		MaxEntries:  2,
		JoinedCount: 2,
		Status:      contest.StatusFull,
	}})

	if err := repo.ReleaseSlot(t.Context(), "c1"); err != nil {
		t.Fatalf("release slot: %v", err)
	}

	c, _, err := repo.GetByID(t.Context(), "c1")
	if err != nil {
		t.Fatalf("get contest: %v", err)
	}
	if c.JoinedCount != 1 {
		t.Fatalf("expected joined count 1, got %d", c.JoinedCount)
	}
	if c.Status != contest.StatusOpen {
		t.Fatalf("expected contest to reopen, got %s", c.Status)
	}
}

func TestContestRepository_CreateEntryRejectsDuplicates(t *testing.T) {
	repo := NewContestRepository(SeedContests())

	entry := contest.Entry{ID: "e1", ContestID: ContestIDIndAusMega, UserID: "user-1", TeamID: "t1"}
	if err := repo.CreateEntry(t.Context(), entry); err != nil {
		t.Fatalf("first entry: %v", err)
	}

	dup := contest.Entry{ID: "e2", ContestID: ContestIDIndAusMega, UserID: "user-1", TeamID: "t2"}
	if err := repo.CreateEntry(t.Context(), dup); !errors.Is(err, contest.ErrDuplicateEntry) {
		t.Fatalf("expected duplicate entry error, got %v", err)
	}
}

func TestContestRepository_CompleteOnce(t *testing.T) {
	repo := NewContestRepository(SeedContests())

	settled, err := repo.CompleteOnce(t.Context(), ContestIDIndAusMega)
	if err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if !settled {
		t.Fatal("expected first completion to win")
	}

	settled, err = repo.CompleteOnce(t.Context(), ContestIDIndAusMega)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if settled {
		t.Fatal("expected second completion to be a no-op")
	}

	c, _, err := repo.GetByID(t.Context(), ContestIDIndAusMega)
	if err != nil {
		t.Fatalf("get contest: %v", err)
	}
	if c.Status != contest.StatusCompleted {
		t.Fatalf("expected completed status, got %s", c.Status)
	}
	if c.PrizesPaidAt == nil {
		t.Fatal("expected prizes paid timestamp to be set")
	}
}

func TestContestRepository_ReserveSlotStatusErrors(t *testing.T) {
	cases := []struct {
		status  contest.Status
		joined  int
		wantErr error
	}{
		{status: contest.StatusFull, joined: 2, wantErr: contest.ErrContestFull},
		{status: contest.StatusLive, joined: 1, wantErr: contest.ErrContestNotOpen},
		{status: contest.StatusCompleted, joined: 2, wantErr: contest.ErrContestNotOpen},
		{status: contest.StatusCancelled, joined: 0, wantErr: contest.ErrContestNotOpen},
	}

	for i, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			repo := NewContestRepository([]contest.Contest{{
				ID:          "c1",
				MatchID:     "m1",
				Name:        "Contest",
				MaxEntries:  2,
				JoinedCount: tc.joined,
				Status:      tc.status,
			}})

			if err := repo.ReserveSlot(t.Context(), "c1"); !errors.Is(err, tc.wantErr) {
				t.Fatalf("case %d: expected %v, got %v", i, tc.wantErr, err)
			}
		})
	}
}

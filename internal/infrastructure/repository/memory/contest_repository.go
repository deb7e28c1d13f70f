package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
)

type ContestRepository struct {
	mu      sync.Mutex
	items   map[string]contest.Contest
	entries map[string]contest.Entry
	now     func() time.Time
}

func NewContestRepository(seed []contest.Contest) *ContestRepository {
	items := make(map[string]contest.Contest, len(seed))
	for _, c := range seed {
		items[c.ID] = c
	}
	return &ContestRepository{
		items:   items,
		entries: make(map[string]contest.Entry),
		now:     time.Now,
	}
}

func (r *ContestRepository) Create(_ context.Context, c contest.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[c.ID] = cloneContest(c)
	return nil
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[contestID]
	if !ok {
		return contest.Contest{}, false, nil
	}
	return cloneContest(c), true, nil
}

func (r *ContestRepository) List(_ context.Context, matchID string, status contest.Status) ([]contest.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]contest.Contest, 0, len(r.items))
	for _, c := range r.items {
		if matchID != "" && c.MatchID != matchID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, cloneContest(c))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ContestRepository) UpdateStatus(_ context.Context, contestID string, status contest.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[contestID]
	if !ok {
		return nil
	}
	c.Status = status
	r.items[contestID] = c
	return nil
}

// ReserveSlot re-checks capacity and status under the repository lock,
// so two callers racing for one remaining slot see exactly one success.
func (r *ContestRepository) ReserveSlot(_ context.Context, contestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[contestID]
	if !ok {
		return contest.ErrContestNotOpen
	}
	if c.Status == contest.StatusFull {
		return contest.ErrContestFull
	}
	if c.Status != contest.StatusOpen {
		return contest.ErrContestNotOpen
	}
	if c.JoinedCount >= c.MaxEntries {
		return contest.ErrContestFull
	}

	c.JoinedCount++
	if c.JoinedCount == c.MaxEntries {
		c.Status = contest.StatusFull
	}
	r.items[contestID] = c
	return nil
}

func (r *ContestRepository) ReleaseSlot(_ context.Context, contestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[contestID]
	if !ok || c.JoinedCount == 0 {
		return nil
	}

	c.JoinedCount--
	if c.Status == contest.StatusFull && c.JoinedCount < c.MaxEntries {
		c.Status = contest.StatusOpen
	}
	r.items[contestID] = c
	return nil
}

func (r *ContestRepository) CreateEntry(_ context.Context, entry contest.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(entry.ContestID, entry.UserID)
	if _, exists := r.entries[key]; exists {
		return contest.ErrDuplicateEntry
	}
	r.entries[key] = entry
	return nil
}

func (r *ContestRepository) GetEntry(_ context.Context, contestID, userID string) (contest.Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[entryKey(contestID, userID)]
	return entry, ok, nil
}

func (r *ContestRepository) ListEntriesByContest(_ context.Context, contestID string) ([]contest.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]contest.Entry, 0)
	for _, entry := range r.entries {
		if entry.ContestID == contestID {
			out = append(out, entry)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ContestRepository) ListEntriesByUser(_ context.Context, userID string) ([]contest.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]contest.Entry, 0)
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ContestRepository) UpdateEntryResults(_ context.Context, contestID string, entries []contest.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		key := entryKey(contestID, entry.UserID)
		stored, ok := r.entries[key]
		if !ok {
			continue
		}
		stored.Rank = entry.Rank
		stored.Winnings = entry.Winnings
		r.entries[key] = stored
	}
	return nil
}

func (r *ContestRepository) CompleteOnce(_ context.Context, contestID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[contestID]
	if !ok {
		return false, nil
	}
	if c.Status == contest.StatusCompleted {
		return false, nil
	}

	paidAt := r.now().UTC()
	c.Status = contest.StatusCompleted
	c.PrizesPaidAt = &paidAt
	r.items[contestID] = c
	return true, nil
}

func entryKey(contestID, userID string) string {
	return contestID + "::" + userID
}

func cloneContest(c contest.Contest) contest.Contest {
	copied := c
	copied.Payouts = append([]contest.PayoutSlot(nil), c.Payouts...)
	if c.PrizesPaidAt != nil {
		paidAt := *c.PrizesPaidAt
		copied.PrizesPaidAt = &paidAt
	}
	return copied
}

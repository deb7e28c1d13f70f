package contest

import "context"

// Repository describes contest persistence needs from use cases.
//
// ReserveSlot and ReleaseSlot exist so the join orchestrator can treat
// the joined-count as a contended resource: ReserveSlot must atomically
// re-check "status open && joined < max" and increment, flipping the
// contest to full when the last slot fills. Two concurrent reservations
// for one remaining slot must never both succeed.
type Repository interface {
	Create(ctx context.Context, c Contest) error
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
	List(ctx context.Context, matchID string, status Status) ([]Contest, error)
	UpdateStatus(ctx context.Context, contestID string, status Status) error

	ReserveSlot(ctx context.Context, contestID string) error
	ReleaseSlot(ctx context.Context, contestID string) error

	CreateEntry(ctx context.Context, entry Entry) error
	GetEntry(ctx context.Context, contestID, userID string) (Entry, bool, error)
	ListEntriesByContest(ctx context.Context, contestID string) ([]Entry, error)
	ListEntriesByUser(ctx context.Context, userID string) ([]Entry, error)
	UpdateEntryResults(ctx context.Context, contestID string, entries []Entry) error

	// CompleteOnce transitions the contest to completed and stamps
	// PrizesPaidAt. It reports false without error when the contest has
	// already completed, which makes prize distribution idempotent.
	CompleteOnce(ctx context.Context, contestID string) (bool, error)
}

package contest

import (
	"errors"
	"fmt"
	"time"
)

// Status tracks the lifecycle of a paid contest.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFull      Status = "full"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusOpen:      {},
	StatusFull:      {},
	StatusLive:      {},
	StatusCompleted: {},
	StatusCancelled: {},
}

var (
	ErrContestNotOpen      = errors.New("contest is not open for joining")
	ErrContestFull         = errors.New("contest is full")
	ErrDuplicateEntry      = errors.New("user already joined this contest")
	ErrAlreadyCompleted    = errors.New("contest is already completed")
	ErrPayoutTableMismatch = errors.New("payout table does not cover the prize pool")
)

// PayoutSlot assigns a fixed prize amount (in cents) to one final rank.
type PayoutSlot struct {
	Rank   int
	Amount int64
}

// Contest is a capped, paid competition tied to a single match.
// EntryFee, PrizePool and payout amounts are in cents.
type Contest struct {
	ID          string
	MatchID     string
	Name        string
	EntryFee    int64
	PrizePool   int64
	MaxEntries  int
	JoinedCount int
	Status      Status
	Payouts     []PayoutSlot
	// PrizesPaidAt is set exactly once, when the contest completes and
	// winnings are credited. It is the idempotency marker for payouts.
	PrizesPaidAt *time.Time
	CreatedAt    time.Time
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("contest id is required")
	}
	if c.MatchID == "" {
		return fmt.Errorf("contest match id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("contest name is required")
	}
	if c.EntryFee < 0 {
		return fmt.Errorf("entry fee cannot be negative")
	}
	if c.MaxEntries <= 0 {
		return fmt.Errorf("max entries must be greater than zero")
	}
	if c.JoinedCount < 0 || c.JoinedCount > c.MaxEntries {
		return fmt.Errorf("joined count out of range: %d", c.JoinedCount)
	}
	if _, ok := AllStatuses[c.Status]; !ok {
		return fmt.Errorf("invalid contest status: %s", c.Status)
	}

	var payoutTotal int64
	for _, slot := range c.Payouts {
		if slot.Rank <= 0 {
			return fmt.Errorf("payout rank must be greater than zero")
		}
		if slot.Amount <= 0 {
			return fmt.Errorf("payout amount must be greater than zero")
		}
		payoutTotal += slot.Amount
	}
	if payoutTotal > c.PrizePool {
		return fmt.Errorf("%w: payouts=%d pool=%d", ErrPayoutTableMismatch, payoutTotal, c.PrizePool)
	}

	return nil
}

// Entry binds one user's team to one contest. At most one entry exists
// per (user, contest) pair.
type Entry struct {
	ID        string
	ContestID string
	UserID    string
	TeamID    string
	Rank      int
	Winnings  int64
	JoinedAt  time.Time
}

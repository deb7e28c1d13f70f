package wallet

import (
	"errors"
	"fmt"
	"time"
)

// TransactionType classifies ledger movements. Deposits, refunds and
// winnings credit the balance; contest entries and withdrawals debit it.
type TransactionType string

const (
	TypeDeposit            TransactionType = "deposit"
	TypeContestEntry       TransactionType = "contest_entry"
	TypeContestRefund      TransactionType = "contest_refund"
	TypeWinning            TransactionType = "winning"
	TypeWithdrawal         TransactionType = "withdrawal"
	TypeWithdrawalReversal TransactionType = "withdrawal_reversal"
)

var creditTypes = map[TransactionType]struct{}{
	TypeDeposit:            {},
	TypeContestRefund:      {},
	TypeWinning:            {},
	TypeWithdrawalReversal: {},
}

var debitTypes = map[TransactionType]struct{}{
	TypeContestEntry: {},
	TypeWithdrawal:   {},
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	// ErrLedgerMismatch signals that a cached balance disagrees with the
	// signed sum of the ledger. It is an integrity failure: callers must
	// abort and log, never patch the balance.
	ErrLedgerMismatch = errors.New("wallet balance does not match ledger sum")
)

// Transaction is one append-only ledger record. Amount is in cents and
// always positive; the type decides the sign applied to the balance.
type Transaction struct {
	ID          string
	UserID      string
	Type        TransactionType
	Amount      int64
	Status      TransactionStatus
	ReferenceID string
	Description string
	CreatedAt   time.Time
}

func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("transaction user id is required")
	}
	if t.Amount <= 0 {
		return fmt.Errorf("transaction amount must be greater than zero")
	}
	if !t.Type.IsCredit() && !t.Type.IsDebit() {
		return fmt.Errorf("invalid transaction type: %s", t.Type)
	}

	return nil
}

func (tt TransactionType) IsCredit() bool {
	_, ok := creditTypes[tt]
	return ok
}

func (tt TransactionType) IsDebit() bool {
	_, ok := debitTypes[tt]
	return ok
}

// SignedAmount is the contribution of a completed transaction to the
// balance invariant: balance == sum of signed amounts.
func (t Transaction) SignedAmount() int64 {
	if t.Status != StatusCompleted {
		return 0
	}
	if t.Type.IsDebit() {
		return -t.Amount
	}
	return t.Amount
}

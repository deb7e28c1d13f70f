package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
)

// WalletRepository keeps an append-only ledger per user. The balance is
// always derived from the ledger, never stored, so it cannot drift.
type WalletRepository struct {
	mu     sync.Mutex
	ledger map[string][]wallet.Transaction
}

func NewWalletRepository() *WalletRepository {
	return &WalletRepository{ledger: make(map[string][]wallet.Transaction)}
}

func (r *WalletRepository) Balance(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.balanceLocked(userID), nil
}

// Debit re-checks the balance and appends in one critical section, so
// concurrent debits cannot both spend the same funds.
func (r *WalletRepository) Debit(_ context.Context, txn wallet.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	if !txn.Type.IsDebit() {
		return fmt.Errorf("transaction type %s is not a debit", txn.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balanceLocked(txn.UserID) < txn.Amount {
		return wallet.ErrInsufficientBalance
	}

	r.ledger[txn.UserID] = append(r.ledger[txn.UserID], txn)
	return nil
}

func (r *WalletRepository) Credit(_ context.Context, txn wallet.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	if !txn.Type.IsCredit() {
		return fmt.Errorf("transaction type %s is not a credit", txn.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ledger[txn.UserID] = append(r.ledger[txn.UserID], txn)
	return nil
}

func (r *WalletRepository) ListTransactionsByUser(_ context.Context, userID string) ([]wallet.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]wallet.Transaction(nil), r.ledger[userID]...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *WalletRepository) balanceLocked(userID string) int64 {
	var balance int64
	for _, txn := range r.ledger[userID] {
		balance += txn.SignedAmount()
	}
	return balance
}

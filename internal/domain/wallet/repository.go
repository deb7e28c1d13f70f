package wallet

import "context"

// Repository describes wallet persistence needs from use cases.
//
// Debit must atomically re-check the balance against the amount and
// append the ledger record; concurrent debits for one user must be
// serialized so the balance invariant never goes negative. Credit
// appends unconditionally. Both reject transactions whose type does
// not match the operation.
type Repository interface {
	Balance(ctx context.Context, userID string) (int64, error)
	Debit(ctx context.Context, txn Transaction) error
	Credit(ctx context.Context, txn Transaction) error
	ListTransactionsByUser(ctx context.Context, userID string) ([]Transaction, error)
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
)

type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

type walletTxnRow struct {
	PublicID    string         `db:"public_id"`
	UserID      string         `db:"user_id"`
	Type        string         `db:"type"`
	Amount      int64          `db:"amount"`
	Status      string         `db:"status"`
	ReferenceID sql.NullString `db:"reference_id"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (row walletTxnRow) toDomain() wallet.Transaction {
	return wallet.Transaction{
		ID:          row.PublicID,
		UserID:      row.UserID,
		Type:        wallet.TransactionType(row.Type),
		Amount:      row.Amount,
		Status:      wallet.TransactionStatus(row.Status),
		ReferenceID: row.ReferenceID.String,
		Description: row.Description.String,
		CreatedAt:   row.CreatedAt,
	}
}

const balanceQuery = `
SELECT COALESCE(SUM(
	CASE
		WHEN type IN ('deposit', 'contest_refund', 'winning', 'withdrawal_reversal') THEN amount
		ELSE -amount
	END
), 0)
FROM wallet_transactions
WHERE user_id = $1 AND status = 'completed'`

func (r *WalletRepository) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	if err := r.db.GetContext(ctx, &balance, balanceQuery, userID); err != nil {
		return 0, fmt.Errorf("sum wallet ledger: %w", err)
	}
	return balance, nil
}

// Debit serializes per user with a transaction-scoped advisory lock,
// re-derives the balance from the ledger, and appends only when funds
// cover the amount. The lock releases on commit or rollback.
func (r *WalletRepository) Debit(ctx context.Context, txn wallet.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	if !txn.Type.IsDebit() {
		return fmt.Errorf("transaction type %s is not a debit", txn.Type)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin debit tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, txn.UserID); err != nil {
		return fmt.Errorf("acquire wallet lock: %w", err)
	}

	var balance int64
	if err := tx.GetContext(ctx, &balance, balanceQuery, txn.UserID); err != nil {
		return fmt.Errorf("sum wallet ledger: %w", err)
	}
	if balance < txn.Amount {
		return wallet.ErrInsufficientBalance
	}

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit debit tx: %w", err)
	}
	return nil
}

func (r *WalletRepository) Credit(ctx context.Context, txn wallet.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	if !txn.Type.IsCredit() {
		return fmt.Errorf("transaction type %s is not a credit", txn.Type)
	}

	if err := insertTransaction(ctx, r.db, txn); err != nil {
		return err
	}
	return nil
}

func (r *WalletRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]wallet.Transaction, error) {
	const query = `
SELECT public_id, user_id, type, amount, status, reference_id, description, created_at
FROM wallet_transactions
WHERE user_id = $1
ORDER BY created_at DESC, public_id DESC`

	var rows []walletTxnRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("select wallet transactions: %w", err)
	}

	out := make([]wallet.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func insertTransaction(ctx context.Context, execer sqlx.ExtContext, txn wallet.Transaction) error {
	const query = `
INSERT INTO wallet_transactions (public_id, user_id, type, amount, status, reference_id, description, created_at)
VALUES (:public_id, :user_id, :type, :amount, :status, :reference_id, :description, :created_at)`

	row := walletTxnRow{
		PublicID:  txn.ID,
		UserID:    txn.UserID,
		Type:      string(txn.Type),
		Amount:    txn.Amount,
		Status:    string(txn.Status),
		CreatedAt: txn.CreatedAt,
	}
	if txn.ReferenceID != "" {
		row.ReferenceID = sql.NullString{String: txn.ReferenceID, Valid: true}
	}
	if txn.Description != "" {
		row.Description = sql.NullString{String: txn.Description, Valid: true}
	}

	if _, err := sqlx.NamedExecContext(ctx, execer, query, row); err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
	"github.com/crickarena/fantasy-cricket/internal/platform/id"
)

const (
	minDepositCents    = 100
	maxDepositCents    = 10_000_000
	minWithdrawalCents = 100
)

// PaymentGateway collects deposits and pays out withdrawals through the
// payment provider. Both return the provider's reference for the ledger.
type PaymentGateway interface {
	CollectDeposit(ctx context.Context, userID string, amountCents int64) (string, error)
	PayOut(ctx context.Context, userID string, amountCents int64) (string, error)
}

// WalletService manages user balances on top of the append-only ledger.
// Money only enters through the payment gateway and only leaves through
// contest entries or withdrawals.
type WalletService struct {
	walletRepo wallet.Repository
	gateway    PaymentGateway
	idGen      id.Generator
	now        func() time.Time
}

func NewWalletService(walletRepo wallet.Repository, gateway PaymentGateway, idGen id.Generator) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		gateway:    gateway,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *WalletService) Balance(ctx context.Context, userID string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "WalletService.Balance")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	balance, err := s.walletRepo.Balance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get wallet balance: %w", err)
	}

	return balance, nil
}

func (s *WalletService) Deposit(ctx context.Context, userID string, amountCents int64) (wallet.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "WalletService.Deposit")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return wallet.Transaction{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if amountCents < minDepositCents || amountCents > maxDepositCents {
		return wallet.Transaction{}, fmt.Errorf("%w: deposit must be between %d and %d cents", ErrInvalidInput, minDepositCents, maxDepositCents)
	}

	providerRef, err := s.gateway.CollectDeposit(ctx, userID, amountCents)
	if err != nil {
		return wallet.Transaction{}, fmt.Errorf("%w: collect deposit: %s", ErrDependencyUnavailable, err)
	}

	txnID, err := s.idGen.NewID()
	if err != nil {
		return wallet.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}

	txn := wallet.Transaction{
		ID:          txnID,
		UserID:      userID,
		Type:        wallet.TypeDeposit,
		Amount:      amountCents,
		Status:      wallet.StatusCompleted,
		ReferenceID: providerRef,
		Description: "wallet deposit",
		CreatedAt:   s.now().UTC(),
	}
	if err := s.walletRepo.Credit(ctx, txn); err != nil {
		return wallet.Transaction{}, fmt.Errorf("credit deposit: %w", err)
	}

	return txn, nil
}

// Withdraw debits first so the balance can never go negative, then pays
// out. A failed payout refunds the debit.
func (s *WalletService) Withdraw(ctx context.Context, userID string, amountCents int64) (wallet.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "WalletService.Withdraw")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return wallet.Transaction{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if amountCents < minWithdrawalCents {
		return wallet.Transaction{}, fmt.Errorf("%w: withdrawal must be at least %d cents", ErrInvalidInput, minWithdrawalCents)
	}

	txnID, err := s.idGen.NewID()
	if err != nil {
		return wallet.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}

	txn := wallet.Transaction{
		ID:          txnID,
		UserID:      userID,
		Type:        wallet.TypeWithdrawal,
		Amount:      amountCents,
		Status:      wallet.StatusCompleted,
		Description: "wallet withdrawal",
		CreatedAt:   s.now().UTC(),
	}
	if err := s.walletRepo.Debit(ctx, txn); err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			return wallet.Transaction{}, err
		}
		return wallet.Transaction{}, fmt.Errorf("debit withdrawal: %w", err)
	}

	providerRef, err := s.gateway.PayOut(ctx, userID, amountCents)
	if err != nil {
		refundID, idErr := s.idGen.NewID()
		if idErr == nil {
			refund := wallet.Transaction{
				ID:          refundID,
				UserID:      userID,
				Type:        wallet.TypeWithdrawalReversal,
				Amount:      amountCents,
				Status:      wallet.StatusCompleted,
				ReferenceID: txnID,
				Description: "withdrawal payout failed",
				CreatedAt:   s.now().UTC(),
			}
			if creditErr := s.walletRepo.Credit(ctx, refund); creditErr != nil {
				return wallet.Transaction{}, fmt.Errorf("refund failed withdrawal: %w", creditErr)
			}
		}
		return wallet.Transaction{}, fmt.Errorf("%w: pay out withdrawal: %s", ErrDependencyUnavailable, err)
	}

	txn.ReferenceID = providerRef
	return txn, nil
}

func (s *WalletService) Transactions(ctx context.Context, userID string) ([]wallet.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "WalletService.Transactions")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	txns, err := s.walletRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}

	return txns, nil
}

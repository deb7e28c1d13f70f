package memory

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
)

func TestWalletRepository_BalanceFollowsLedger(t *testing.T) {
	repo := NewWalletRepository()
	ctx := t.Context()

	deposit := wallet.Transaction{
		ID:        "t1",
		UserID:    "user-1",
		Type:      wallet.TypeDeposit,
		Amount:    10000,
		Status:    wallet.StatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := repo.Credit(ctx, deposit); err != nil {
		t.Fatalf("credit deposit: %v", err)
	}

	entry := wallet.Transaction{
		ID:        "t2",
		UserID:    "user-1",
		Type:      wallet.TypeContestEntry,
		Amount:    4900,
		Status:    wallet.StatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := repo.Debit(ctx, entry); err != nil {
		t.Fatalf("debit entry: %v", err)
	}

	balance, err := repo.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 5100 {
		t.Fatalf("expected balance 5100, got %d", balance)
	}
}

func TestWalletRepository_DebitRejectsOverdraw(t *testing.T) {
	repo := NewWalletRepository()
	ctx := t.Context()

	entry := wallet.Transaction{
		ID:        "t1",
		UserID:    "user-1",
		Type:      wallet.TypeContestEntry,
		Amount:    100,
		Status:    wallet.StatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := repo.Debit(ctx, entry); !errors.Is(err, wallet.ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
}

func TestWalletRepository_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	repo := NewWalletRepository()
	ctx := t.Context()

	if err := repo.Credit(ctx, wallet.Transaction{
		ID:        "seed",
		UserID:    "user-1",
		Type:      wallet.TypeDeposit,
		Amount:    500,
		Status:    wallet.StatusCompleted,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed deposit: %v", err)
	}

	const racers = 20
	var succeeded atomic.Int32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(racers)

	for i := 0; i < racers; i++ {
		i := i
		go func() {
			defer wg.Done()
			<-start
			err := repo.Debit(ctx, wallet.Transaction{
				ID:        fmt.Sprintf("debit-%d", i),
				UserID:    "user-1",
				Type:      wallet.TypeContestEntry,
				Amount:    100,
				Status:    wallet.StatusCompleted,
				CreatedAt: time.Now(),
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, wallet.ErrInsufficientBalance):
			default:
				t.Errorf("unexpected debit error: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := succeeded.Load(); got != 5 {
		t.Fatalf("expected exactly 5 debits to succeed, got %d", got)
	}

	balance, err := repo.Balance(ctx, "user-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}
}

func TestWalletRepository_RejectsMismatchedTypes(t *testing.T) {
	repo := NewWalletRepository()
	ctx := t.Context()

	credit := wallet.Transaction{
		ID:        "t1",
		UserID:    "user-1",
		Type:      wallet.TypeDeposit,
		Amount:    100,
		Status:    wallet.StatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := repo.Debit(ctx, credit); err == nil {
		t.Fatal("expected debit with credit type to fail")
	}

	debit := wallet.Transaction{
		ID:        "t2",
		UserID:    "user-1",
		Type:      wallet.TypeWithdrawal,
		Amount:    100,
		Status:    wallet.StatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := repo.Credit(ctx, debit); err == nil {
		t.Fatal("expected credit with debit type to fail")
	}
}

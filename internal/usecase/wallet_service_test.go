package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/memory"
)

func TestWalletService_Deposit(t *testing.T) {
	repo := memory.NewWalletRepository()
	gateway := &fakePaymentGateway{}
	service := NewWalletService(repo, gateway, &seqIDGenerator{prefix: "txn"})

	txn, err := service.Deposit(t.Context(), "user-1", 5000)
	require.NoError(t, err)
	require.Equal(t, wallet.TypeDeposit, txn.Type)
	require.NotEmpty(t, txn.ReferenceID)

	balance, err := service.Balance(t.Context(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(5000), balance)
}

func TestWalletService_Deposit_AmountBounds(t *testing.T) {
	service := NewWalletService(memory.NewWalletRepository(), &fakePaymentGateway{}, &seqIDGenerator{prefix: "txn"})

	_, err := service.Deposit(t.Context(), "user-1", 50)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Deposit(t.Context(), "user-1", 20_000_000)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestWalletService_Deposit_GatewayDown(t *testing.T) {
	gateway := &fakePaymentGateway{depositErr: errors.New("provider timeout")}
	repo := memory.NewWalletRepository()
	service := NewWalletService(repo, gateway, &seqIDGenerator{prefix: "txn"})

	_, err := service.Deposit(t.Context(), "user-1", 5000)
	require.ErrorIs(t, err, ErrDependencyUnavailable)

	balance, err := repo.Balance(t.Context(), "user-1")
	require.NoError(t, err)
	require.Zero(t, balance)
}

func TestWalletService_Withdraw(t *testing.T) {
	repo := memory.NewWalletRepository()
	service := NewWalletService(repo, &fakePaymentGateway{}, &seqIDGenerator{prefix: "txn"})

	require.NoError(t, seedBalance(t.Context(), repo, "user-1", 10000))

	txn, err := service.Withdraw(t.Context(), "user-1", 4000)
	require.NoError(t, err)
	require.Equal(t, wallet.TypeWithdrawal, txn.Type)

	balance, err := repo.Balance(t.Context(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(6000), balance)
}

func TestWalletService_Withdraw_InsufficientBalance(t *testing.T) {
	repo := memory.NewWalletRepository()
	service := NewWalletService(repo, &fakePaymentGateway{}, &seqIDGenerator{prefix: "txn"})

	_, err := service.Withdraw(t.Context(), "user-1", 4000)
	require.ErrorIs(t, err, wallet.ErrInsufficientBalance)
}

func TestWalletService_Withdraw_PayoutFailureRefunds(t *testing.T) {
	repo := memory.NewWalletRepository()
	gateway := &fakePaymentGateway{payoutErr: errors.New("provider timeout")}
	service := NewWalletService(repo, gateway, &seqIDGenerator{prefix: "txn"})

	require.NoError(t, seedBalance(t.Context(), repo, "user-1", 10000))

	_, err := service.Withdraw(t.Context(), "user-1", 4000)
	require.ErrorIs(t, err, ErrDependencyUnavailable)

	balance, err := repo.Balance(t.Context(), "user-1")
	require.NoError(t, err)
	require.Equal(t, int64(10000), balance)
}

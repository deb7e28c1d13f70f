package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
)

type seqIDGenerator struct {
	prefix  string
	counter atomic.Int64
}

func (g *seqIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.counter.Add(1)), nil
}

type fakePaymentGateway struct {
	depositErr error
	payoutErr  error
	deposits   atomic.Int32
	payouts    atomic.Int32
}

func (g *fakePaymentGateway) CollectDeposit(_ context.Context, userID string, amountCents int64) (string, error) {
	if g.depositErr != nil {
		return "", g.depositErr
	}
	g.deposits.Add(1)
	return fmt.Sprintf("pay-%s-%d", userID, amountCents), nil
}

func (g *fakePaymentGateway) PayOut(_ context.Context, userID string, amountCents int64) (string, error) {
	if g.payoutErr != nil {
		return "", g.payoutErr
	}
	g.payouts.Add(1)
	return fmt.Sprintf("out-%s-%d", userID, amountCents), nil
}

func seedBalance(ctx context.Context, repo wallet.Repository, userID string, amountCents int64) error {
	return repo.Credit(ctx, wallet.Transaction{
		ID:        fmt.Sprintf("seed-%s", userID),
		UserID:    userID,
		Type:      wallet.TypeDeposit,
		Amount:    amountCents,
		Status:    wallet.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	})
}

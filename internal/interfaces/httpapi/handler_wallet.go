package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
	"github.com/crickarena/fantasy-cricket/internal/usecase"
)

type depositRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

type withdrawRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

type walletBalanceDTO struct {
	UserID       string `json:"user_id"`
	BalanceCents int64  `json:"balance_cents"`
}

type walletTransactionDTO struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	AmountCents  int64  `json:"amount_cents"`
	Status       string `json:"status"`
	ReferenceID  string `json:"reference_id,omitempty"`
	Description  string `json:"description,omitempty"`
	CreatedAtUTC string `json:"created_at_utc"`
}

func (h *Handler) GetWalletBalance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWalletBalance")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	balance, err := h.walletService.Balance(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get wallet balance failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, walletBalanceDTO{
		UserID:       principal.UserID,
		BalanceCents: balance,
	})
}

func (h *Handler) ListWalletTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWalletTransactions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	transactions, err := h.walletService.Transactions(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list wallet transactions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]walletTransactionDTO, 0, len(transactions))
	for _, txn := range transactions {
		items = append(items, walletTransactionToDTO(ctx, txn))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) DepositToWallet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DepositToWallet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req depositRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	txn, err := h.walletService.Deposit(ctx, principal.UserID, req.AmountCents)
	if err != nil {
		h.logger.WarnContext(ctx, "deposit failed", "user_id", principal.UserID, "amount", req.AmountCents, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, walletTransactionToDTO(ctx, txn))
}

func (h *Handler) WithdrawFromWallet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawFromWallet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req withdrawRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	txn, err := h.walletService.Withdraw(ctx, principal.UserID, req.AmountCents)
	if err != nil {
		h.logger.WarnContext(ctx, "withdrawal failed", "user_id", principal.UserID, "amount", req.AmountCents, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, walletTransactionToDTO(ctx, txn))
}

func walletTransactionToDTO(ctx context.Context, v wallet.Transaction) walletTransactionDTO {
	ctx, span := startSpan(ctx, "httpapi.walletTransactionToDTO")
	defer span.End()

	return walletTransactionDTO{
		ID:           v.ID,
		Type:         string(v.Type),
		AmountCents:  v.Amount,
		Status:       string(v.Status),
		ReferenceID:  v.ReferenceID,
		Description:  v.Description,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

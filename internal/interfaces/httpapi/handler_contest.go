package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
	"github.com/crickarena/fantasy-cricket/internal/usecase"
)

type joinContestRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type contestDTO struct {
	ID              string          `json:"id"`
	MatchID         string          `json:"match_id"`
	Name            string          `json:"name"`
	EntryFeeCents   int64           `json:"entry_fee_cents"`
	PrizePoolCents  int64           `json:"prize_pool_cents"`
	MaxEntries      int             `json:"max_entries"`
	JoinedCount     int             `json:"joined_count"`
	Status          string          `json:"status"`
	Payouts         []payoutSlotDTO `json:"payouts"`
	PrizesPaidAtUTC string          `json:"prizes_paid_at_utc,omitempty"`
	CreatedAtUTC    string          `json:"created_at_utc"`
}

type payoutSlotDTO struct {
	Rank        int   `json:"rank"`
	AmountCents int64 `json:"amount_cents"`
}

type entryDTO struct {
	ID            string `json:"id"`
	ContestID     string `json:"contest_id"`
	UserID        string `json:"user_id"`
	TeamID        string `json:"team_id"`
	Rank          int    `json:"rank,omitempty"`
	WinningsCents int64  `json:"winnings_cents"`
	JoinedAtUTC   string `json:"joined_at_utc"`
}

type leaderboardRowDTO struct {
	Rank          int     `json:"rank"`
	EntryID       string  `json:"entry_id"`
	UserID        string  `json:"user_id"`
	TeamID        string  `json:"team_id"`
	TeamName      string  `json:"team_name"`
	Score         float64 `json:"score"`
	WinningsCents int64   `json:"winnings_cents"`
}

func (h *Handler) ListContests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContests")
	defer span.End()

	matchID := strings.TrimSpace(r.URL.Query().Get("match_id"))
	status := contest.Status(strings.TrimSpace(r.URL.Query().Get("status")))

	contests, err := h.contestService.List(ctx, matchID, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list contests failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]contestDTO, 0, len(contests))
	for _, c := range contests {
		items = append(items, contestToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContest")
	defer span.End()

	contestID := r.PathValue("contestID")
	c, err := h.contestService.GetByID(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get contest failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, contestToDTO(ctx, c))
}

func (h *Handler) JoinContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinContest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinContestRequest
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

	contestID := r.PathValue("contestID")
	entry, err := h.contestService.Join(ctx, usecase.JoinContestInput{
		UserID:    principal.UserID,
		ContestID: contestID,
		TeamID:    req.TeamID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join contest failed", "user_id", principal.UserID, "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(ctx, entry))
}

func (h *Handler) ListMyEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyEntries")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entries, err := h.contestService.ListUserEntries(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list entries failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]entryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryToDTO(ctx, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	contestID := r.PathValue("contestID")
	rows, err := h.leaderboardService.Rank(ctx, contestID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func contestToDTO(ctx context.Context, v contest.Contest) contestDTO {
	ctx, span := startSpan(ctx, "httpapi.contestToDTO")
	defer span.End()

	payouts := make([]payoutSlotDTO, 0, len(v.Payouts))
	for _, slot := range v.Payouts {
		payouts = append(payouts, payoutSlotDTO{
			Rank:        slot.Rank,
			AmountCents: slot.Amount,
		})
	}

	return contestDTO{
		ID:              v.ID,
		MatchID:         v.MatchID,
		Name:            v.Name,
		EntryFeeCents:   v.EntryFee,
		PrizePoolCents:  v.PrizePool,
		MaxEntries:      v.MaxEntries,
		JoinedCount:     v.JoinedCount,
		Status:          string(v.Status),
		Payouts:         payouts,
		PrizesPaidAtUTC: formatOptionalTime(v.PrizesPaidAt),
		CreatedAtUTC:    v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func entryToDTO(ctx context.Context, v contest.Entry) entryDTO {
	ctx, span := startSpan(ctx, "httpapi.entryToDTO")
	defer span.End()

	return entryDTO{
		ID:            v.ID,
		ContestID:     v.ContestID,
		UserID:        v.UserID,
		TeamID:        v.TeamID,
		Rank:          v.Rank,
		WinningsCents: v.Winnings,
		JoinedAtUTC:   v.JoinedAt.UTC().Format(time.RFC3339),
	}
}

func leaderboardRowToDTO(ctx context.Context, v usecase.LeaderboardRow) leaderboardRowDTO {
	ctx, span := startSpan(ctx, "httpapi.leaderboardRowToDTO")
	defer span.End()

	return leaderboardRowDTO{
		Rank:          v.Rank,
		EntryID:       v.EntryID,
		UserID:        v.UserID,
		TeamID:        v.TeamID,
		TeamName:      v.TeamName,
		Score:         scoreToDecimal(v.Score),
		WinningsCents: v.Winnings,
	}
}

package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/usecase"
)

type createContestRequest struct {
	MatchID       string                 `json:"match_id" validate:"required"`
	Name          string                 `json:"name" validate:"required,max=120"`
	EntryFeeCents int64                  `json:"entry_fee_cents" validate:"gte=0"`
	MaxEntries    int                    `json:"max_entries" validate:"required,gt=0"`
	Payouts       []payoutSlotRequestDTO `json:"payouts" validate:"required,min=1,dive"`
}

type payoutSlotRequestDTO struct {
	Rank        int   `json:"rank" validate:"required,gt=0"`
	AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
}

type updateMatchStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type syncResultDTO struct {
	MatchesSynced int `json:"matches_synced"`
	StatsUpserted int `json:"stats_upserted"`
}

type recomputeResultDTO struct {
	MatchID     string `json:"match_id"`
	TeamsScored int    `json:"teams_scored"`
	PlayersSeen int    `json:"players_seen"`
	DurationMs  int64  `json:"duration_ms"`
}

func (h *Handler) CreateContest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateContest")
	defer span.End()

	var req createContestRequest
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

	payouts := make([]contest.PayoutSlot, 0, len(req.Payouts))
	for _, slot := range req.Payouts {
		payouts = append(payouts, contest.PayoutSlot{
			Rank:   slot.Rank,
			Amount: slot.AmountCents,
		})
	}

	c, err := h.contestService.Create(ctx, usecase.CreateContestInput{
		MatchID:    req.MatchID,
		Name:       req.Name,
		EntryFee:   req.EntryFeeCents,
		MaxEntries: req.MaxEntries,
		Payouts:    payouts,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create contest failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, contestToDTO(ctx, c))
}

func (h *Handler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchStatus")
	defer span.End()

	var req updateMatchStatusRequest
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

	matchID := r.PathValue("matchID")
	if err := h.matchService.UpdateStatus(ctx, matchID, match.Status(req.Status)); err != nil {
		h.logger.WarnContext(ctx, "update match status failed", "match_id", matchID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"match_id": matchID, "status": req.Status})
}

func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	result, err := h.ingestionService.SyncLiveMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync live matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultDTO{
		MatchesSynced: result.MatchesSynced,
		StatsUpserted: result.StatsUpserted,
	})
}

func (h *Handler) RunSyncMatchJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncMatchJob")
	defer span.End()

	matchID := r.PathValue("matchID")
	result, err := h.ingestionService.SyncMatch(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultDTO{
		MatchesSynced: result.MatchesSynced,
		StatsUpserted: result.StatsUpserted,
	})
}

func (h *Handler) RunRecomputeScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeScoresJob")
	defer span.End()

	matchID := r.PathValue("matchID")
	result, err := h.scoringService.RecomputeMatch(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute scores failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recomputeResultDTO{
		MatchID:     result.MatchID,
		TeamsScored: result.TeamsScored,
		PlayersSeen: result.PlayersSeen,
		DurationMs:  result.DurationMs,
	})
}

func (h *Handler) RunDistributePrizesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDistributePrizesJob")
	defer span.End()

	contestID := r.PathValue("contestID")
	rows, err := h.leaderboardService.DistributePrizes(ctx, contestID)
	if err != nil {
		h.logger.ErrorContext(ctx, "distribute prizes failed", "contest_id", contestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

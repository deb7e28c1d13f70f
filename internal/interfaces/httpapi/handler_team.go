package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/usecase"
)

type createTeamRequest struct {
	MatchID       string   `json:"match_id" validate:"required"`
	Name          string   `json:"name" validate:"required,max=60"`
	PlayerIDs     []string `json:"player_ids" validate:"required,len=11,dive,required"`
	CaptainID     string   `json:"captain_id" validate:"required"`
	ViceCaptainID string   `json:"vice_captain_id" validate:"required"`
}

type teamDTO struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	MatchID       string        `json:"match_id"`
	Name          string        `json:"name"`
	Picks         []teamPickDTO `json:"picks"`
	CaptainID     string        `json:"captain_id"`
	ViceCaptainID string        `json:"vice_captain_id"`
	TotalCredits  float64       `json:"total_credits"`
	Score         float64       `json:"score"`
	CreatedAtUTC  string        `json:"created_at_utc"`
	UpdatedAtUTC  string        `json:"updated_at_utc"`
}

type teamPickDTO struct {
	PlayerID string  `json:"player_id"`
	Role     string  `json:"role"`
	Credits  float64 `json:"credits"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createTeamRequest
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

	team, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		UserID:        principal.UserID,
		MatchID:       req.MatchID,
		Name:          req.Name,
		PlayerIDs:     req.PlayerIDs,
		CaptainID:     req.CaptainID,
		ViceCaptainID: req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, team))
}

func (h *Handler) ListMyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeams")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teams, err := h.teamService.ListByUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := r.PathValue("teamID")
	team, err := h.teamService.GetByID(ctx, principal.UserID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

func teamToDTO(ctx context.Context, v fantasy.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	picks := make([]teamPickDTO, 0, len(v.Picks))
	for _, pick := range v.Picks {
		picks = append(picks, teamPickDTO{
			PlayerID: pick.PlayerID,
			Role:     string(pick.Role),
			Credits:  creditsToDecimal(pick.Credits),
		})
	}

	return teamDTO{
		ID:            v.ID,
		UserID:        v.UserID,
		MatchID:       v.MatchID,
		Name:          v.Name,
		Picks:         picks,
		CaptainID:     v.CaptainID,
		ViceCaptainID: v.ViceCaptainID,
		TotalCredits:  creditsToDecimal(v.TotalCredits()),
		Score:         scoreToDecimal(v.Score),
		CreatedAtUTC:  v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC:  v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

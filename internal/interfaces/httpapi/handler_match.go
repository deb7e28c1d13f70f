package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/player"
)

type matchDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	TeamA    string `json:"teamA"`
	TeamB    string `json:"teamB"`
	Venue    string `json:"venue"`
	Format   string `json:"format"`
	StartsAt string `json:"startsAt"`
	Status   string `json:"status"`
}

type playerDTO struct {
	ID       string  `json:"id"`
	MatchID  string  `json:"matchId"`
	TeamName string  `json:"teamName"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Credits  float64 `json:"credits"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	status := match.Status(strings.TrimSpace(r.URL.Query().Get("status")))
	matches, err := h.matchService.List(ctx, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "status", string(status), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, m))
}

func (h *Handler) ListMatchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPlayers")
	defer span.End()

	matchID := r.PathValue("matchID")
	players, err := h.matchService.ListPlayers(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match players failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		ID:       v.ID,
		Title:    v.Title,
		TeamA:    v.TeamA,
		TeamB:    v.TeamB,
		Venue:    v.Venue,
		Format:   v.Format,
		StartsAt: v.StartsAt.UTC().Format(time.RFC3339),
		Status:   string(v.Status),
	}
}

func playerToDTO(ctx context.Context, v player.Player) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:       v.ID,
		MatchID:  v.MatchID,
		TeamName: v.TeamName,
		Name:     v.Name,
		Role:     string(v.Role),
		Credits:  creditsToDecimal(v.Credits),
		ImageURL: v.ImageURL,
	}
}

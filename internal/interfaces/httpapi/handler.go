package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
	"github.com/crickarena/fantasy-cricket/internal/usecase"
)

type Handler struct {
	matchService       *usecase.MatchService
	teamService        *usecase.TeamService
	contestService     *usecase.ContestService
	leaderboardService *usecase.LeaderboardService
	walletService      *usecase.WalletService
	scoringService     *usecase.ScoringService
	ingestionService   *usecase.IngestionService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	teamService *usecase.TeamService,
	contestService *usecase.ContestService,
	leaderboardService *usecase.LeaderboardService,
	walletService *usecase.WalletService,
	scoringService *usecase.ScoringService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:       matchService,
		teamService:        teamService,
		contestService:     contestService,
		leaderboardService: leaderboardService,
		walletService:      walletService,
		scoringService:     scoringService,
		ingestionService:   ingestionService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// creditsToDecimal converts centi-credits to display credits (950 -> 9.5).
func creditsToDecimal(credits int64) float64 {
	return float64(credits) / 100.0
}

// scoreToDecimal converts deci-points to display points (1085 -> 108.5).
func scoreToDecimal(score int64) float64 {
	return float64(score) / 10.0
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/crickarena/fantasy-cricket/external/cricketfeed"
	"github.com/crickarena/fantasy-cricket/internal/config"
	"github.com/crickarena/fantasy-cricket/internal/domain/contest"
	"github.com/crickarena/fantasy-cricket/internal/domain/fantasy"
	"github.com/crickarena/fantasy-cricket/internal/domain/match"
	"github.com/crickarena/fantasy-cricket/internal/domain/player"
	"github.com/crickarena/fantasy-cricket/internal/domain/playerstats"
	"github.com/crickarena/fantasy-cricket/internal/domain/wallet"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/account"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/payment"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/cache"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/crickarena/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/crickarena/fantasy-cricket/internal/interfaces/httpapi"
	basecache "github.com/crickarena/fantasy-cricket/internal/platform/cache"
	idgen "github.com/crickarena/fantasy-cricket/internal/platform/id"
	"github.com/crickarena/fantasy-cricket/internal/platform/logging"
	"github.com/crickarena/fantasy-cricket/internal/platform/resilience"
	"github.com/crickarena/fantasy-cricket/internal/usecase"
)

type repositories struct {
	matches  match.Repository
	players  player.Repository
	stats    playerstats.Repository
	teams    fantasy.Repository
	contests contest.Repository
	wallets  wallet.Repository
	close    func() error
}

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. An empty DB_URL selects the in-memory
// repositories with seed data; anything else connects to postgres.
func NewHTTPServer(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if appLogger == nil {
		appLogger = logging.Default()
	}

	repos, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	matchRepo := repos.matches
	playerRepo := repos.players
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		matchRepo = cache.NewMatchRepository(matchRepo, store)
		playerRepo = cache.NewPlayerRepository(playerRepo, store)
	}

	idGen := idgen.NewRandomGenerator()

	matchSvc := usecase.NewMatchService(matchRepo, playerRepo)
	teamSvc := usecase.NewTeamService(repos.teams, matchRepo, playerRepo, idGen)
	contestSvc := usecase.NewContestService(repos.contests, matchRepo, repos.teams, repos.wallets, idGen, appLogger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.contests, repos.teams, repos.wallets, idGen, appLogger)
	scoringSvc := usecase.NewScoringService(matchRepo, repos.teams, repos.stats, cfg.ScoringWorkers)
	walletSvc := usecase.NewWalletService(repos.wallets, buildPaymentGateway(cfg, logger), idGen)
	ingestionSvc := usecase.NewIngestionService(
		matchRepo,
		repos.stats,
		buildScorecardFeed(cfg, appLogger),
		scoringSvc,
		cfg.IngestionConcurrency,
		appLogger,
	)

	verifier := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		cfg.AccountBaseURL,
		cfg.AccountIntrospectPath,
		cfg.AccountCacheTTL,
		logger,
	)

	handler := httpapi.NewHandler(matchSvc, teamSvc, contestSvc, leaderboardSvc, walletSvc, scoringSvc, ingestionSvc, appLogger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	if repos.close != nil {
		server.RegisterOnShutdown(func() {
			if err := repos.close(); err != nil {
				logger.Error("close db", "error", err)
			}
		})
	}

	return server, nil
}

func buildRepositories(cfg config.Config) (repositories, error) {
	if cfg.DBURL == "" {
		return repositories{
			matches:  memory.NewMatchRepository(memory.SeedMatches()),
			players:  memory.NewPlayerRepository(memory.SeedPlayers()),
			stats:    memory.NewPlayerStatsRepository(),
			teams:    memory.NewTeamRepository(),
			contests: memory.NewContestRepository(memory.SeedContests()),
			wallets:  memory.NewWalletRepository(),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}

	return repositories{
		matches:  postgres.NewMatchRepository(db),
		players:  postgres.NewPlayerRepository(db),
		stats:    postgres.NewPlayerStatsRepository(db),
		teams:    postgres.NewTeamRepository(db),
		contests: postgres.NewContestRepository(db),
		wallets:  postgres.NewWalletRepository(db),
		close:    db.Close,
	}, nil
}

func buildPaymentGateway(cfg config.Config, logger *slog.Logger) usecase.PaymentGateway {
	if !cfg.PaymentEnabled {
		return disabledPaymentGateway{}
	}

	return payment.NewClient(payment.ClientConfig{
		BaseURL: cfg.PaymentBaseURL,
		Token:   cfg.PaymentToken,
		Timeout: cfg.PaymentTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PaymentCircuitEnabled,
			FailureThreshold: cfg.PaymentCircuitFailureCount,
			OpenTimeout:      cfg.PaymentCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PaymentCircuitHalfOpenMaxReq,
		},
	}, logger)
}

func buildScorecardFeed(cfg config.Config, logger *logging.Logger) usecase.ScorecardFeed {
	if !cfg.FeedEnabled {
		return disabledScorecardFeed{}
	}

	return cricketfeed.NewClient(cricketfeed.ClientConfig{
		BaseURL:    cfg.FeedBaseURL,
		Token:      cfg.FeedToken,
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
}

// disabledPaymentGateway rejects deposits and withdrawals when no
// payment provider is configured. Contest entry fees still move through
// the wallet ledger, so seeded environments keep working.
type disabledPaymentGateway struct{}

func (disabledPaymentGateway) CollectDeposit(context.Context, string, int64) (string, error) {
	return "", fmt.Errorf("%w: payment provider is disabled", usecase.ErrDependencyUnavailable)
}

func (disabledPaymentGateway) PayOut(context.Context, string, int64) (string, error) {
	return "", fmt.Errorf("%w: payment provider is disabled", usecase.ErrDependencyUnavailable)
}

type disabledScorecardFeed struct{}

func (disabledScorecardFeed) FetchScorecard(context.Context, string) ([]playerstats.Stats, error) {
	return nil, fmt.Errorf("%w: cricket feed is disabled", usecase.ErrDependencyUnavailable)
}

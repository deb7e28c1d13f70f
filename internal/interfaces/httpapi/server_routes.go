package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/players", handler.ListMatchPlayers)
	mux.HandleFunc("GET /v1/contests", handler.ListContests)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
	mux.HandleFunc("GET /v1/contests/{contestID}/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("GET /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("POST /v1/contests/{contestID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinContest)))
	mux.Handle("GET /v1/me/entries", RequireAuth(verifier, http.HandlerFunc(handler.ListMyEntries)))
	mux.Handle("GET /v1/wallet/balance", RequireAuth(verifier, http.HandlerFunc(handler.GetWalletBalance)))
	mux.Handle("GET /v1/wallet/transactions", RequireAuth(verifier, http.HandlerFunc(handler.ListWalletTransactions)))
	mux.Handle("POST /v1/wallet/deposits", RequireAuth(verifier, http.HandlerFunc(handler.DepositToWallet)))
	mux.Handle("POST /v1/wallet/withdrawals", RequireAuth(verifier, http.HandlerFunc(handler.WithdrawFromWallet)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/contests", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CreateContest)))
	mux.Handle("PUT /v1/internal/matches/{matchID}/status", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateMatchStatus)))
	mux.Handle("POST /v1/internal/jobs/sync-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncLiveJob)))
	mux.Handle("POST /v1/internal/jobs/sync-match/{matchID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncMatchJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-scores/{matchID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeScoresJob)))
	mux.Handle("POST /v1/internal/jobs/distribute-prizes/{contestID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDistributePrizesJob)))
}

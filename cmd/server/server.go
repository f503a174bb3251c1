// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/codr1/leagueapi/internal/api"
	"github.com/codr1/leagueapi/internal/api/auth"
	"github.com/codr1/leagueapi/internal/api/games"
	"github.com/codr1/leagueapi/internal/api/index"
	"github.com/codr1/leagueapi/internal/api/leagues"
	"github.com/codr1/leagueapi/internal/api/matches"
	"github.com/codr1/leagueapi/internal/api/players"
	"github.com/codr1/leagueapi/internal/api/standings"
	"github.com/codr1/leagueapi/internal/api/teams"
	"github.com/codr1/leagueapi/internal/config"
	appdb "github.com/codr1/leagueapi/internal/db"
	"github.com/codr1/leagueapi/internal/email"
	"github.com/codr1/leagueapi/internal/metrics"
	"github.com/codr1/leagueapi/internal/ratelimit"
	indextempl "github.com/codr1/leagueapi/internal/templates/components/index"
)

func initHandlers(cfg *config.Config, database *appdb.DB, sender email.EmailSender, limiter *ratelimit.Limiter) {
	auth.InitHandlers(database, cfg, sender, limiter)
	leagues.InitHandlers(database)
	teams.InitHandlers(database)
	players.InitHandlers(database)
	games.InitHandlers(database)
	matches.InitHandlers(database)
	standings.InitHandlers(database)
	index.InitHandlers(cfg.App.Name, endpointList(routes(cfg)))
}

func newServer(cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      newHandler(cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func newHandler(cfg *config.Config) http.Handler {
	router := http.NewServeMux()
	registerRoutes(router, routes(cfg))

	// Last listed runs first.
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithContentType,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	return cors.New(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
	}).Handler(handler)
}

type route struct {
	pattern     string
	handler     http.HandlerFunc
	private     bool
	description string
}

// routes is the single table behind both the mux and the index page.
// Routes without a description are served but not listed.
func routes(cfg *config.Config) []route {
	rs := []route{
		{"GET /health", handleHealth, false, "Liveness check"},
		{"GET /{$}", index.HandleIndex, false, ""},
		{"GET /api/v1/index", index.HandleIndex, false, "This list"},

		{"POST /api/v1/auth/signup", auth.HandleSignup, false, "Create an account and receive a token"},
		{"POST /api/v1/auth/login", auth.HandleLogin, false, "Exchange credentials for a token"},
		{"POST /api/v1/auth/logout", auth.HandleLogout, true, "Revoke the caller's token"},
		{"GET /api/v1/auth/test-token", auth.HandleTestToken, true, "Check the caller's token"},

		{"GET /api/v1/leagues", leagues.HandleLeaguesList, false, "List leagues"},
		{"POST /api/v1/leagues", leagues.HandleLeagueCreate, true, "Create a league"},
		{"GET /api/v1/leagues/{id}", leagues.HandleLeagueDetail, false, "League detail"},
		{"PUT /api/v1/leagues/{id}", leagues.HandleLeagueUpdate, true, "Replace a league"},
		{"DELETE /api/v1/leagues/{id}", leagues.HandleLeagueDelete, true, "Delete a league"},

		{"GET /api/v1/teams", teams.HandleTeamsList, false, "List teams"},
		{"POST /api/v1/teams", teams.HandleTeamCreate, true, "Create a team"},
		{"GET /api/v1/teams/{id}", teams.HandleTeamDetail, false, "Team detail"},
		{"PUT /api/v1/teams/{id}", teams.HandleTeamUpdate, true, "Replace a team (coach or staff)"},
		{"DELETE /api/v1/teams/{id}", teams.HandleTeamDelete, true, "Delete a team (coach or staff)"},

		{"GET /api/v1/players", players.HandlePlayersList, false, "List players"},
		{"POST /api/v1/players", players.HandlePlayerCreate, true, "Create a player"},
		{"GET /api/v1/players/{id}", players.HandlePlayerDetail, false, "Player detail"},
		{"PUT /api/v1/players/{id}", players.HandlePlayerUpdate, true, "Replace a player"},
		{"DELETE /api/v1/players/{id}", players.HandlePlayerDelete, true, "Delete a player"},
		{"POST /api/v1/players/search", players.HandlePlayerSearch, false, "Search players by name"},
		{"POST /api/v1/players/search/team", players.HandlePlayerSearchByTeam, false, "Search players by team name"},
		{"POST /api/v1/players/top", players.HandleTopPlayers, false, "Players at or above a score percentile"},

		{"GET /api/v1/games", games.HandleGamesList, false, "List games"},
		{"POST /api/v1/games", games.HandleGameCreate, true, "Create a game"},
		{"GET /api/v1/games/{id}", games.HandleGameDetail, false, "Game detail"},
		{"PUT /api/v1/games/{id}", games.HandleGameUpdate, true, "Replace a game"},
		{"DELETE /api/v1/games/{id}", games.HandleGameDelete, true, "Delete a game"},

		{"GET /api/v1/matches", matches.HandleMatchesList, false, "List matches"},
		{"POST /api/v1/matches", matches.HandleMatchCreate, true, "Create a match"},
		{"GET /api/v1/matches/{id}", matches.HandleMatchDetail, false, "Match detail"},
		{"PUT /api/v1/matches/{id}", matches.HandleMatchUpdate, true, "Replace a match"},
		{"DELETE /api/v1/matches/{id}", matches.HandleMatchDelete, true, "Delete a match"},

		{"GET /api/v1/standings", standings.HandleStandings, false, "Team standings"},
	}
	if cfg.Features.EnableMetrics {
		rs = append(rs, route{"GET /metrics", metrics.Handler().ServeHTTP, false, "Prometheus metrics"})
	}
	return rs
}

func endpointList(rs []route) []indextempl.Endpoint {
	out := make([]indextempl.Endpoint, 0, len(rs))
	for _, rt := range rs {
		if rt.description == "" {
			continue
		}
		method, path, _ := strings.Cut(rt.pattern, " ")
		out = append(out, indextempl.Endpoint{
			Method:      method,
			Path:        path,
			Description: rt.description,
			Auth:        rt.private,
		})
	}
	return out
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func registerRoutes(mux *http.ServeMux, rs []route) {
	for _, rt := range rs {
		var h http.Handler = rt.handler
		if rt.private {
			h = api.RequireAuth(h)
		}
		mux.Handle(rt.pattern, metrics.Instrument(rt.pattern, h))
	}
}

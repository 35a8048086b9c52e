// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/propbowl/cliparse"
	"github.com/danielhkuo/propbowl/handlers"
	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/scoring"
)

func NewRouter(svc *scoring.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	contestHandler := handlers.NewContestHandler(svc)
	propBetHandler := handlers.NewPropBetHandler(svc)
	pickHandler := handlers.NewPickHandler(svc)
	standingsHandler := handlers.NewStandingsHandler(svc)
	profileHandler := handlers.NewProfileHandler(svc, cfg.JWTSecret)
	chatHandler := handlers.NewChatHandler(svc)
	inviteHandler := handlers.NewInviteHandler(svc)

	// Everything except health and root needs a signed-in user
	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireUser(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Contest lifecycle
	mux.HandleFunc("GET /contests/active", user(contestHandler.Active))
	mux.HandleFunc("POST /contests", user(contestHandler.Create))
	mux.HandleFunc("POST /contests/{id}/activate", user(contestHandler.Activate))
	mux.HandleFunc("POST /contests/{id}/deactivate", user(contestHandler.Deactivate))
	mux.HandleFunc("POST /contests/{id}/lock", user(contestHandler.Lock))
	mux.HandleFunc("PUT /contests/{id}/settings", user(contestHandler.UpdateSettings))

	// Prop bets and grading
	mux.HandleFunc("GET /contests/{id}/prop-bets", user(propBetHandler.List))
	mux.HandleFunc("POST /contests/{id}/prop-bets", user(propBetHandler.Create))
	mux.HandleFunc("PUT /prop-bets/{id}", user(propBetHandler.Update))
	mux.HandleFunc("DELETE /prop-bets/{id}", user(propBetHandler.Delete))
	mux.HandleFunc("POST /prop-bets/{id}/move", user(propBetHandler.Move))
	mux.HandleFunc("POST /prop-bets/{id}/result", user(propBetHandler.SetResult))
	mux.HandleFunc("DELETE /prop-bets/{id}/result", user(propBetHandler.ClearResult))

	// Picks
	mux.HandleFunc("POST /prop-bets/{id}/picks", user(pickHandler.Submit))
	mux.HandleFunc("PUT /picks/{id}/grade", user(pickHandler.Grade))
	mux.HandleFunc("GET /contests/{id}/picks/me", user(pickHandler.Mine))

	// Standings (derived, read-only)
	mux.HandleFunc("GET /contests/{id}/leaderboard", user(standingsHandler.Leaderboard))
	mux.HandleFunc("GET /contests/{id}/payouts", user(standingsHandler.Payouts))

	// Profiles and payouts
	mux.HandleFunc("GET /profiles", user(profileHandler.List))
	mux.HandleFunc("POST /profiles", user(profileHandler.Create))
	mux.HandleFunc("GET /profiles/me", user(profileHandler.Me))
	mux.HandleFunc("PUT /profiles/me", user(profileHandler.UpdateMe))
	mux.HandleFunc("DELETE /profiles/{id}", user(profileHandler.Delete))
	mux.HandleFunc("POST /profiles/{id}/paid", user(profileHandler.SetPaid))
	mux.HandleFunc("POST /profiles/{id}/admin", user(profileHandler.SetAdmin))
	mux.HandleFunc("POST /profiles/{id}/payout", user(profileHandler.MarkPayout))
	mux.HandleFunc("DELETE /profiles/{id}/payout", user(profileHandler.ClearPayout))
	mux.HandleFunc("POST /profiles/{id}/simulate", user(profileHandler.Simulate))

	// Chat
	mux.HandleFunc("GET /contests/{id}/chat", user(chatHandler.List))
	mux.HandleFunc("POST /contests/{id}/chat", user(chatHandler.Post))
	mux.HandleFunc("DELETE /chat/{id}", user(chatHandler.Delete))

	// Invites
	mux.HandleFunc("GET /invites", user(inviteHandler.List))
	mux.HandleFunc("POST /invites", user(inviteHandler.Create))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("propbowl API v1"))
	})

	return mux
}

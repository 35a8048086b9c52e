// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/scoring"
)

// StandingsHandler serves the derived views: leaderboard and payouts.
// Nothing here writes.
type StandingsHandler struct {
	svc *scoring.Service
}

func NewStandingsHandler(svc *scoring.Service) *StandingsHandler {
	return &StandingsHandler{svc: svc}
}

// Leaderboard handles GET /contests/{id}/leaderboard
func (h *StandingsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.ComputeLeaderboard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "compute leaderboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, board)
}

// Payouts handles GET /contests/{id}/payouts
func (h *StandingsHandler) Payouts(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.ComputePayouts(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "compute payouts")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, summary)
}

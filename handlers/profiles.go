// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/propbowl/auth"
	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/scoring"
)

// simulationTTL bounds how long an admin can act as another player
const simulationTTL = time.Hour

type ProfileHandler struct {
	svc       *scoring.Service
	jwtSecret string
}

func NewProfileHandler(svc *scoring.Service, jwtSecret string) *ProfileHandler {
	return &ProfileHandler{svc: svc, jwtSecret: jwtSecret}
}

// List handles GET /profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.ListProfiles(r.Context(), caller(r))
	if err != nil {
		writeError(w, err, "list profiles")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, profiles)
}

// Create handles POST /profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.svc.CreateProfile(r.Context(), caller(r), req)
	if err != nil {
		writeError(w, err, "create profile")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, p)
}

// Me handles GET /profiles/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), caller(r))
	if err != nil {
		writeError(w, err, "load profile")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// UpdateMe handles PUT /profiles/me
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.svc.UpdateDisplayName(r.Context(), caller(r), req.DisplayName)
	if err != nil {
		writeError(w, err, "update profile")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// Delete handles DELETE /profiles/{id}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProfile(r.Context(), caller(r), r.PathValue("id")); err != nil {
		writeError(w, err, "delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPaid handles POST /profiles/{id}/paid
func (h *ProfileHandler) SetPaid(w http.ResponseWriter, r *http.Request) {
	var req models.SetFlagRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.svc.SetPaid(r.Context(), caller(r), r.PathValue("id"), req.Value)
	if err != nil {
		writeError(w, err, "update paid flag")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// SetAdmin handles POST /profiles/{id}/admin
func (h *ProfileHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.SetFlagRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.svc.SetAdmin(r.Context(), caller(r), r.PathValue("id"), req.Value)
	if err != nil {
		writeError(w, err, "update admin flag")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// MarkPayout handles POST /profiles/{id}/payout
func (h *ProfileHandler) MarkPayout(w http.ResponseWriter, r *http.Request) {
	var req models.MarkPayoutRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.svc.MarkPayout(r.Context(), caller(r), r.PathValue("id"), req.Place, req.Amount)
	if err != nil {
		writeError(w, err, "record payout")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// ClearPayout handles DELETE /profiles/{id}/payout
func (h *ProfileHandler) ClearPayout(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ClearPayout(r.Context(), caller(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "clear payout")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// Simulate handles POST /profiles/{id}/simulate
func (h *ProfileHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.SimulationTarget(r.Context(), caller(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "simulate user")
		return
	}

	expires := time.Now().Add(simulationTTL).UTC()
	token, err := auth.IssueToken(h.jwtSecret, p.ID, simulationTTL)
	if err != nil {
		slog.Error("simulation token failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SimulateResponse{
		Token:     token,
		ExpiresAt: expires,
		Profile:   p,
	})
}

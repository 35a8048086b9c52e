// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/scoring"
)

type ContestHandler struct {
	svc *scoring.Service
}

func NewContestHandler(svc *scoring.Service) *ContestHandler {
	return &ContestHandler{svc: svc}
}

// Active handles GET /contests/active
func (h *ContestHandler) Active(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.ActiveContest(r.Context())
	if err != nil {
		writeError(w, err, "load active contest")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Create handles POST /contests
func (h *ContestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContestRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.svc.CreateContest(r.Context(), caller(r), req)
	if err != nil {
		writeError(w, err, "create contest")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// Activate handles POST /contests/{id}/activate
func (h *ContestHandler) Activate(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.ActivateContest(r.Context(), caller(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "activate contest")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Deactivate handles POST /contests/{id}/deactivate
func (h *ContestHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.DeactivateContest(r.Context(), caller(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "deactivate contest")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Lock handles POST /contests/{id}/lock
func (h *ContestHandler) Lock(w http.ResponseWriter, r *http.Request) {
	var req models.LockRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.svc.SetLocked(r.Context(), caller(r), r.PathValue("id"), req.Locked, req.Confirm)
	if err != nil {
		writeError(w, err, "update lock")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// UpdateSettings handles PUT /contests/{id}/settings
func (h *ContestHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.svc.UpdateSettings(r.Context(), caller(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err, "update settings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

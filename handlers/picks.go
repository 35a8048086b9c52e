// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/scoring"
)

type PickHandler struct {
	svc *scoring.Service
}

func NewPickHandler(svc *scoring.Service) *PickHandler {
	return &PickHandler{svc: svc}
}

// Submit handles POST /prop-bets/{id}/picks
func (h *PickHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitPickRequest
	if !decode(w, r, &req) {
		return
	}

	pick, err := h.svc.SubmitPick(r.Context(), caller(r), r.PathValue("id"), req.Answer)
	if err != nil {
		writeError(w, err, "submit pick")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pick)
}

// Mine handles GET /contests/{id}/picks/me
func (h *PickHandler) Mine(w http.ResponseWriter, r *http.Request) {
	picks, err := h.svc.ListPicks(r.Context(), caller(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "list picks")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, picks)
}

// Grade handles PUT /picks/{id}/grade
func (h *PickHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req models.GradePickRequest
	if !decode(w, r, &req) {
		return
	}

	pick, err := h.svc.GradePick(r.Context(), caller(r), r.PathValue("id"), req.Correct)
	if err != nil {
		writeError(w, err, "grade pick")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pick)
}

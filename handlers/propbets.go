// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/scoring"
)

type PropBetHandler struct {
	svc *scoring.Service
}

func NewPropBetHandler(svc *scoring.Service) *PropBetHandler {
	return &PropBetHandler{svc: svc}
}

// List handles GET /contests/{id}/prop-bets
func (h *PropBetHandler) List(w http.ResponseWriter, r *http.Request) {
	bets, err := h.svc.ListPropBets(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "list prop bets")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, bets)
}

// Create handles POST /contests/{id}/prop-bets
func (h *PropBetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PropBetRequest
	if !decode(w, r, &req) {
		return
	}

	bet, err := h.svc.CreatePropBet(r.Context(), caller(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err, "create prop bet")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, bet)
}

// Update handles PUT /prop-bets/{id}
func (h *PropBetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.PropBetRequest
	if !decode(w, r, &req) {
		return
	}

	bet, err := h.svc.UpdatePropBet(r.Context(), caller(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err, "update prop bet")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, bet)
}

// Delete handles DELETE /prop-bets/{id}
func (h *PropBetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePropBet(r.Context(), caller(r), r.PathValue("id")); err != nil {
		writeError(w, err, "delete prop bet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Move handles POST /prop-bets/{id}/move
func (h *PropBetHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if !decode(w, r, &req) {
		return
	}

	bets, err := h.svc.MovePropBet(r.Context(), caller(r), r.PathValue("id"), req.Direction)
	if err != nil {
		writeError(w, err, "move prop bet")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, bets)
}

// SetResult handles POST /prop-bets/{id}/result
func (h *PropBetHandler) SetResult(w http.ResponseWriter, r *http.Request) {
	var req models.ResultRequest
	if !decode(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	affected, err := h.svc.GradeResult(r.Context(), caller(r), id, req.Answer)
	if err != nil {
		writeError(w, err, "grade prop bet")
		return
	}

	// GradeResult only accepts A or B in any case
	answer := strings.ToUpper(strings.TrimSpace(req.Answer))
	middleware.JSONResponse(w, http.StatusOK, models.GradeResponse{
		PropBetID:     id,
		CorrectAnswer: &answer,
		AffectedPicks: affected,
	})
}

// ClearResult handles DELETE /prop-bets/{id}/result
func (h *PropBetHandler) ClearResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	affected, err := h.svc.ClearResult(r.Context(), caller(r), id)
	if err != nil {
		writeError(w, err, "clear result")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.GradeResponse{
		PropBetID:     id,
		AffectedPicks: affected,
	})
}

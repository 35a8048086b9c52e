// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/scoring"
)

type InviteHandler struct {
	svc *scoring.Service
}

func NewInviteHandler(svc *scoring.Service) *InviteHandler {
	return &InviteHandler{svc: svc}
}

// List handles GET /invites
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	invites, err := h.svc.ListInvites(r.Context(), caller(r))
	if err != nil {
		writeError(w, err, "list invites")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, invites)
}

// Create handles POST /invites
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInviteRequest
	if !decode(w, r, &req) {
		return
	}

	inv, err := h.svc.CreateInvite(r.Context(), caller(r), req)
	if err != nil {
		writeError(w, err, "create invite")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, inv)
}

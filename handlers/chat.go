// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/scoring"
)

type ChatHandler struct {
	svc *scoring.Service
}

func NewChatHandler(svc *scoring.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// List handles GET /contests/{id}/chat?limit=N
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	messages, err := h.svc.ListMessages(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		writeError(w, err, "list messages")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, messages)
}

// Post handles POST /contests/{id}/chat
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := h.svc.PostMessage(r.Context(), caller(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err, "post message")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, m)
}

// Delete handles DELETE /chat/{id}
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMessage(r.Context(), caller(r), r.PathValue("id")); err != nil {
		writeError(w, err, "delete message")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

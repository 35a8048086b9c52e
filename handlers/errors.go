// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/scoring"
)

// writeError maps a scoring error onto a status code. Business-rule
// rejections carry their message; store failures do not.
func writeError(w http.ResponseWriter, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, scoring.ErrContestLocked),
		errors.Is(err, scoring.ErrAlreadyGraded),
		errors.Is(err, scoring.ErrContestActive),
		errors.Is(err, scoring.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, scoring.ErrInvalidAnswerFormat),
		errors.Is(err, scoring.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, scoring.ErrNotFound),
		errors.Is(err, scoring.ErrNoActiveContest):
		status = http.StatusNotFound
	case errors.Is(err, scoring.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, scoring.ErrStoreUnavailable):
		slog.Error("store unavailable", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Service temporarily unavailable, retry later")
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("request cancelled", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	default:
		slog.Error("unexpected error", "action", action, "error", err)
		middleware.ErrorResponse(w, status, "Failed to "+action)
		return
	}

	middleware.ErrorResponse(w, status, err.Error())
}

// decode parses and validates a JSON body, writing a 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func caller(r *http.Request) string {
	return middleware.UserID(r.Context())
}

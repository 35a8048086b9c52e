// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/propbowl/auth"
)

type contextKey struct{}

// RequireUser rejects requests without a valid bearer token and stores the
// caller's profile ID in the request context.
func RequireUser(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
			return
		}

		userID, err := auth.ParseToken(secret, token)
		if err != nil {
			slog.Info("rejected bearer token", "path", r.URL.Path, "error", err)
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r.WithContext(WithUserID(r.Context(), userID)))
	}
}

// WithUserID returns ctx carrying the caller's profile ID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID returns the caller set by RequireUser, or ""
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

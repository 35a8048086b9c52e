// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# Caller Identity

RequireUser verifies the bearer token and stores the caller's profile ID
in the request context:

	mux.HandleFunc("GET /profiles/me", middleware.RequireUser(secret, h.Me))

	userID := middleware.UserID(r.Context())

Missing, expired, or forged tokens get 401. Whether the caller is an
administrator is decided by the scoring service, not here.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins, mux),
	}

Only origins listed in -cors-origins (or CORS_ORIGINS) are echoed; "*"
allows any. Credentials are never allowed since auth is a bearer token.
Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse and validate JSON request bodies against their validate tags:

	var req models.SubmitPickRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/propbowl/feed"
	"github.com/danielhkuo/propbowl/middleware"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/scoring"
	"github.com/danielhkuo/propbowl/store"
	"github.com/danielhkuo/propbowl/testutil"
)

type testEnv struct {
	svc     *scoring.Service
	st      *store.Store
	rec     *feed.Recorder
	admin   models.Profile
	contest models.Contest
}

// newTestEnv creates a fresh database with one admin and one active contest
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	st := testutil.SetupTestStore(t)
	rec := &feed.Recorder{}
	return testEnv{
		svc:     scoring.NewService(st, rec),
		st:      st,
		rec:     rec,
		admin:   testutil.CreateTestProfile(t, st, "Admin", true, false),
		contest: testutil.CreateTestContest(t, st, 10, [3]int{50, 30, 20}, true),
	}
}

// call invokes h directly as userID, with {id} bound to id
func call(h http.HandlerFunc, method, path, id, userID string, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, nil)
	if id != "" {
		req.SetPathValue("id", id)
	}
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/propbowl/auth"
	"github.com/danielhkuo/propbowl/cliparse"
	"github.com/danielhkuo/propbowl/db"
	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/store"
)

// TestJWTSecret signs every token minted by the helpers below
const TestJWTSecret = "test-jwt-secret"

var phoneSeq atomic.Int64

// SetupTestDB creates a fresh file-backed sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "propbowl.db")
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

	conn, err := db.Open(db.TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps SetupTestDB in a store
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t), db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           cliparse.DefaultPort,
		DatabaseURL:    "file::memory:",
		DatabaseType:   db.TypeSQLite,
		JWTSecret:      TestJWTSecret,
		FeedChannel:    cliparse.DefaultFeedChannel,
		AllowedOrigins: []string{cliparse.DefaultCORSOrigins},
	}
}

// NextPhone returns a unique, valid 10-digit phone number
func NextPhone() string {
	return fmt.Sprintf("555%07d", phoneSeq.Add(1))
}

// CreateTestProfile inserts a profile and returns it
func CreateTestProfile(t *testing.T, st *store.Store, displayName string, isAdmin, hasPaid bool) models.Profile {
	t.Helper()
	ctx := context.Background()

	p, err := st.CreateProfile(ctx, NextPhone(), displayName, isAdmin)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
	if hasPaid {
		if err := st.SetProfileFlag(ctx, p.ID, store.FlagPaid, true); err != nil {
			t.Fatalf("Failed to mark test profile paid: %v", err)
		}
		p.HasPaidEntry = true
	}
	return p
}

// CreateTestContest inserts a contest with the given entry fee and podium
// percentages, optionally active
func CreateTestContest(t *testing.T, st *store.Store, entryFee int64, pcts [3]int, active bool) models.Contest {
	t.Helper()
	ctx := context.Background()

	c, err := st.CreateContest(ctx, "Test Bowl", 2026, decimal.NewFromInt(entryFee))
	if err != nil {
		t.Fatalf("Failed to create test contest: %v", err)
	}

	c.PayoutFirst, c.PayoutSecond, c.PayoutThird = pcts[0], pcts[1], pcts[2]
	if err := st.UpdateContestSettings(ctx, c); err != nil {
		t.Fatalf("Failed to configure test contest: %v", err)
	}

	if active {
		if err := st.SetContestActive(ctx, c.ID, true); err != nil {
			t.Fatalf("Failed to activate test contest: %v", err)
		}
		c.IsActive = true
	}
	return c
}

// LockTestContest sets the picks_locked flag directly
func LockTestContest(t *testing.T, st *store.Store, contestID string) {
	t.Helper()
	now := time.Now().UTC()
	if err := st.SetContestLocked(context.Background(), contestID, true, &now); err != nil {
		t.Fatalf("Failed to lock test contest: %v", err)
	}
}

// CreateTestPropBet adds a binary prop bet, or an open-ended one
func CreateTestPropBet(t *testing.T, st *store.Store, contestID, question string, openEnded bool) models.PropBet {
	t.Helper()

	req := models.PropBetRequest{Question: question, IsOpenEnded: openEnded}
	if !openEnded {
		req.OptionA, req.OptionB = "Yes", "No"
	}
	b, err := st.CreatePropBet(context.Background(), contestID, req)
	if err != nil {
		t.Fatalf("Failed to create test prop bet: %v", err)
	}
	return b
}

// CreateTestPick stores a binary pick without going through validation
func CreateTestPick(t *testing.T, st *store.Store, userID, propBetID, option string) models.Pick {
	t.Helper()

	p, err := st.UpsertPick(context.Background(), userID, propBetID, &option, nil)
	if err != nil {
		t.Fatalf("Failed to create test pick: %v", err)
	}
	return p
}

// GradeTestPropBet records a result and regrades picks directly
func GradeTestPropBet(t *testing.T, st *store.Store, propBetID, answer string) {
	t.Helper()
	ctx := context.Background()

	if err := st.SetCorrectAnswer(ctx, propBetID, &answer); err != nil {
		t.Fatalf("Failed to grade test prop bet: %v", err)
	}
	if _, err := st.RegradePicks(ctx, propBetID, &answer); err != nil {
		t.Fatalf("Failed to regrade test picks: %v", err)
	}
}

// TokenFor mints a bearer token for a profile
func TokenFor(t *testing.T, userID string) string {
	t.Helper()

	token, err := auth.IssueToken(TestJWTSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("Failed to mint test token: %v", err)
	}
	return token
}

// AuthHeader returns the Authorization header for a profile
func AuthHeader(t *testing.T, userID string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TokenFor(t, userID)}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

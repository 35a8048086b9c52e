// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/testutil"
)

func TestSubmitPick(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPickHandler(env.svc)
	player := testutil.CreateTestProfile(t, env.st, "Player", false, true)
	bet := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Coin toss heads?", false)
	open := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Final score?", true)
	graded := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Anthem over 2 min?", false)
	testutil.GradeTestPropBet(t, env.st, graded.ID, models.OptionA)

	tests := []struct {
		name           string
		betID          string
		answer         string
		expectedStatus int
	}{
		{"binary lower case", bet.ID, "b", http.StatusOK},
		{"binary change of mind", bet.ID, "A", http.StatusOK},
		{"binary bad option", bet.ID, "C", http.StatusBadRequest},
		{"open ended", open.ID, " 31-17 ", http.StatusOK},
		{"open ended blank", open.ID, "   ", http.StatusBadRequest},
		{"graded bet", graded.ID, "B", http.StatusConflict},
		{"unknown bet", "missing", "A", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(handler.Submit, "POST", "/prop-bets/"+tt.betID+"/picks", tt.betID, player.ID,
				models.SubmitPickRequest{Answer: tt.answer})
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// One pick per bet survives the resubmission
	w := call(handler.Mine, "GET", "/contests/"+env.contest.ID+"/picks/me", env.contest.ID, player.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var picks []models.Pick
	testutil.AssertJSON(t, w, &picks)
	if len(picks) != 2 {
		t.Fatalf("got %d picks, want 2", len(picks))
	}
	if picks[0].Answer() != models.OptionA {
		t.Errorf("binary pick = %q, want A", picks[0].Answer())
	}
	if picks[1].Answer() != "31-17" {
		t.Errorf("open-ended pick = %q, want trimmed answer", picks[1].Answer())
	}
}

func TestSubmitPick_Locked(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPickHandler(env.svc)
	player := testutil.CreateTestProfile(t, env.st, "Player", false, true)
	bet := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Coin toss heads?", false)
	testutil.LockTestContest(t, env.st, env.contest.ID)

	w := call(handler.Submit, "POST", "/prop-bets/"+bet.ID+"/picks", bet.ID, player.ID,
		models.SubmitPickRequest{Answer: "A"})
	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "contest is locked" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestGradePick(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPickHandler(env.svc)
	player := testutil.CreateTestProfile(t, env.st, "Player", false, true)
	open := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Final score?", true)
	binary := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Coin toss heads?", false)

	pick, err := env.svc.SubmitPick(context.Background(), player.ID, open.ID, "31-17")
	if err != nil {
		t.Fatalf("SubmitPick() error = %v", err)
	}
	binaryPick := testutil.CreateTestPick(t, env.st, player.ID, binary.ID, models.OptionA)

	correct := true
	tests := []struct {
		name           string
		userID         string
		pickID         string
		expectedStatus int
	}{
		{"admin grades open ended", env.admin.ID, pick.ID, http.StatusOK},
		{"player forbidden", player.ID, pick.ID, http.StatusForbidden},
		{"binary pick rejected", env.admin.ID, binaryPick.ID, http.StatusBadRequest},
		{"unknown pick", env.admin.ID, "missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(handler.Grade, "PUT", "/picks/"+tt.pickID+"/grade", tt.pickID, tt.userID,
				models.GradePickRequest{Correct: &correct})
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var got models.Pick
				testutil.AssertJSON(t, w, &got)
				if got.IsCorrect == nil || !*got.IsCorrect {
					t.Errorf("is_correct = %v, want true", got.IsCorrect)
				}
			}
		})
	}
}

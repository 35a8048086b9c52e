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

func TestCreatePropBet(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPropBetHandler(env.svc)
	player := testutil.CreateTestProfile(t, env.st, "Player", false, false)
	path := "/contests/" + env.contest.ID + "/prop-bets"

	tests := []struct {
		name           string
		userID         string
		contestID      string
		body           models.PropBetRequest
		expectedStatus int
	}{
		{
			name:           "binary",
			userID:         env.admin.ID,
			contestID:      env.contest.ID,
			body:           models.PropBetRequest{Question: "Coin toss heads?", OptionA: "Heads", OptionB: "Tails"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "open ended without options",
			userID:         env.admin.ID,
			contestID:      env.contest.ID,
			body:           models.PropBetRequest{Question: "Final score?", IsOpenEnded: true},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "binary missing option",
			userID:         env.admin.ID,
			contestID:      env.contest.ID,
			body:           models.PropBetRequest{Question: "MVP a QB?", OptionA: "Yes"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad image url",
			userID:         env.admin.ID,
			contestID:      env.contest.ID,
			body:           models.PropBetRequest{Question: "Q?", OptionA: "Y", OptionB: "N", ImageURL: "not a url"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "player forbidden",
			userID:         player.ID,
			contestID:      env.contest.ID,
			body:           models.PropBetRequest{Question: "Q?", OptionA: "Y", OptionB: "N"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "unknown contest",
			userID:         env.admin.ID,
			contestID:      "missing",
			body:           models.PropBetRequest{Question: "Q?", OptionA: "Y", OptionB: "N"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(handler.Create, "POST", path, tt.contestID, tt.userID, tt.body)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	w := call(handler.List, "GET", path, env.contest.ID, player.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var bets []models.PropBet
	testutil.AssertJSON(t, w, &bets)
	if len(bets) != 2 {
		t.Fatalf("got %d prop bets, want 2", len(bets))
	}
	for i, b := range bets {
		if b.SortOrder != i {
			t.Errorf("bets[%d].sort_order = %d", i, b.SortOrder)
		}
	}
}

func TestMoveAndDeletePropBet(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPropBetHandler(env.svc)
	first := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "First?", false)
	second := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Second?", false)
	third := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Third?", false)

	w := call(handler.Move, "POST", "/prop-bets/"+third.ID+"/move", third.ID, env.admin.ID,
		models.MoveRequest{Direction: models.MoveUp})
	testutil.AssertStatus(t, w, http.StatusOK)

	var bets []models.PropBet
	testutil.AssertJSON(t, w, &bets)
	want := []string{first.ID, third.ID, second.ID}
	for i, id := range want {
		if bets[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, bets[i].Question, id)
		}
	}

	w = call(handler.Move, "POST", "/prop-bets/"+third.ID+"/move", third.ID, env.admin.ID,
		models.MoveRequest{Direction: "sideways"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = call(handler.Delete, "DELETE", "/prop-bets/"+first.ID, first.ID, env.admin.ID, nil)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	bets, err := env.svc.ListPropBets(context.Background(), env.contest.ID)
	if err != nil {
		t.Fatalf("ListPropBets() error = %v", err)
	}
	if len(bets) != 2 || bets[0].ID != third.ID || bets[0].SortOrder != 0 || bets[1].SortOrder != 1 {
		t.Errorf("ordering after delete = %+v", bets)
	}

	w = call(handler.Delete, "DELETE", "/prop-bets/"+first.ID, first.ID, env.admin.ID, nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSetAndClearResult(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPropBetHandler(env.svc)
	bet := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Coin toss heads?", false)
	open := testutil.CreateTestPropBet(t, env.st, env.contest.ID, "Final score?", true)
	amy := testutil.CreateTestProfile(t, env.st, "Amy", false, true)
	zoe := testutil.CreateTestProfile(t, env.st, "Zoe", false, true)
	testutil.CreateTestPick(t, env.st, amy.ID, bet.ID, models.OptionA)
	testutil.CreateTestPick(t, env.st, zoe.ID, bet.ID, models.OptionB)
	path := "/prop-bets/" + bet.ID + "/result"

	w := call(handler.SetResult, "POST", path, bet.ID, env.admin.ID, models.ResultRequest{Answer: " b "})
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GradeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.AffectedPicks != 2 {
		t.Errorf("affected_picks = %d, want 2", resp.AffectedPicks)
	}
	if resp.CorrectAnswer == nil || *resp.CorrectAnswer != models.OptionB {
		t.Errorf("correct_answer = %v, want B", resp.CorrectAnswer)
	}

	w = call(handler.SetResult, "POST", path, bet.ID, env.admin.ID, models.ResultRequest{Answer: "maybe"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = call(handler.SetResult, "POST", "/prop-bets/"+open.ID+"/result", open.ID, env.admin.ID,
		models.ResultRequest{Answer: "A"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = call(handler.SetResult, "POST", path, bet.ID, amy.ID, models.ResultRequest{Answer: "A"})
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = call(handler.ClearResult, "DELETE", path, bet.ID, env.admin.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	resp = models.GradeResponse{}
	testutil.AssertJSON(t, w, &resp)
	if resp.CorrectAnswer != nil {
		t.Errorf("correct_answer = %v after clear, want null", *resp.CorrectAnswer)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielhkuo/propbowl/models"
	"github.com/danielhkuo/propbowl/testutil"
)

func TestPostMessage(t *testing.T) {
	env := newTestEnv(t)
	handler := NewChatHandler(env.svc)
	player := testutil.CreateTestProfile(t, env.st, "Player", false, false)
	path := "/contests/" + env.contest.ID + "/chat"

	tests := []struct {
		name           string
		contestID      string
		body           models.PostMessageRequest
		expectedStatus int
	}{
		{"text", env.contest.ID, models.PostMessageRequest{Message: "go birds"}, http.StatusCreated},
		{"gif", env.contest.ID, models.PostMessageRequest{Kind: models.MessageGIF, Message: "https://media.example.com/x.gif"}, http.StatusCreated},
		{"gif over http", env.contest.ID, models.PostMessageRequest{Kind: models.MessageGIF, Message: "http://media.example.com/x.gif"}, http.StatusBadRequest},
		{"unknown kind", env.contest.ID, models.PostMessageRequest{Kind: "video", Message: "x"}, http.StatusBadRequest},
		{"blank", env.contest.ID, models.PostMessageRequest{Message: "  "}, http.StatusBadRequest},
		{"unknown contest", "missing", models.PostMessageRequest{Message: "hello"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(handler.Post, "POST", path, tt.contestID, player.ID, tt.body)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	w := call(handler.List, "GET", path, env.contest.ID, player.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var messages []models.ChatMessage
	testutil.AssertJSON(t, w, &messages)
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Message != "go birds" || messages[0].DisplayName != "Player" {
		t.Errorf("first message = %+v", messages[0])
	}
}

func TestListMessages_Limit(t *testing.T) {
	env := newTestEnv(t)
	handler := NewChatHandler(env.svc)
	player := testutil.CreateTestProfile(t, env.st, "Player", false, false)
	path := "/contests/" + env.contest.ID + "/chat"

	for i := 0; i < 5; i++ {
		w := call(handler.Post, "POST", path, env.contest.ID, player.ID,
			models.PostMessageRequest{Message: fmt.Sprintf("message %d", i)})
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{"default", "", http.StatusOK, 5},
		{"limited", "?limit=2", http.StatusOK, 2},
		{"not a number", "?limit=lots", http.StatusBadRequest, 0},
		{"negative", "?limit=-1", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(handler.List, "GET", path+tt.query, env.contest.ID, player.ID, nil)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var messages []models.ChatMessage
				testutil.AssertJSON(t, w, &messages)
				if len(messages) != tt.expectedCount {
					t.Errorf("got %d messages, want %d", len(messages), tt.expectedCount)
				}
			}
		})
	}
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	handler := NewChatHandler(env.svc)
	author := testutil.CreateTestProfile(t, env.st, "Author", false, false)
	other := testutil.CreateTestProfile(t, env.st, "Other", false, false)

	post := func() string {
		w := call(handler.Post, "POST", "/contests/"+env.contest.ID+"/chat", env.contest.ID, author.ID,
			models.PostMessageRequest{Message: "hot take"})
		testutil.AssertStatus(t, w, http.StatusCreated)
		var m models.ChatMessage
		testutil.AssertJSON(t, w, &m)
		return m.ID
	}

	first := post()
	w := call(handler.Delete, "DELETE", "/chat/"+first, first, other.ID, nil)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = call(handler.Delete, "DELETE", "/chat/"+first, first, author.ID, nil)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	second := post()
	w = call(handler.Delete, "DELETE", "/chat/"+second, second, env.admin.ID, nil)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = call(handler.Delete, "DELETE", "/chat/"+second, second, env.admin.ID, nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestInvites(t *testing.T) {
	env := newTestEnv(t)
	handler := NewInviteHandler(env.svc)
	profiles := NewProfileHandler(env.svc, testutil.TestJWTSecret)
	player := testutil.CreateTestProfile(t, env.st, "Player", false, false)

	w := call(handler.Create, "POST", "/invites", "", player.ID,
		models.CreateInviteRequest{Phone: "3125550199", DisplayName: "Pat"})
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = call(handler.Create, "POST", "/invites", "", env.admin.ID,
		models.CreateInviteRequest{Phone: "+1 312 555 0199", DisplayName: "Pat"})
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = call(handler.Create, "POST", "/invites", "", env.admin.ID,
		models.CreateInviteRequest{Phone: "555", DisplayName: "Pat"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Signing Pat up claims the invite
	w = call(profiles.Create, "POST", "/profiles", "", env.admin.ID,
		models.CreateProfileRequest{Phone: "3125550199", DisplayName: "Pat"})
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = call(handler.List, "GET", "/invites", "", env.admin.ID, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var invites []models.Invite
	testutil.AssertJSON(t, w, &invites)
	if len(invites) != 1 {
		t.Fatalf("got %d invites, want 1", len(invites))
	}
	if invites[0].Phone != "3125550199" || !invites[0].IsClaimed {
		t.Errorf("invite = %+v, want claimed with normalized phone", invites[0])
	}
	if invites[0].InvitedBy == nil || *invites[0].InvitedBy != env.admin.ID {
		t.Errorf("invited_by = %v, want admin", invites[0].InvitedBy)
	}
}

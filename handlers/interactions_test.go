// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihamedr/meni-server/models"
	"github.com/ihamedr/meni-server/testutil"
)

func postInteraction(h http.HandlerFunc, memeID, voterID string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/memes/"+memeID+"/like", models.InteractionRequest{VoterID: voterID}, nil)
	req.SetPathValue("id", memeID)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func deleteInteraction(h http.HandlerFunc, memeID, voterID string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("DELETE", "/memes/"+memeID+"/like", models.InteractionRequest{VoterID: voterID}, nil)
	req.SetPathValue("id", memeID)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// TestVoteScenario walks the canonical dedup scenario: u1 votes, u1 is
// rejected on the second attempt with the count unchanged, u2 votes.
func TestVoteScenario(t *testing.T) {
	st, _, interactionHandler := setupHandlers(t)
	testutil.CreateTestMeme(t, st, "A", "owner-1", nil, nil)

	// u1 votes
	w := postInteraction(interactionHandler.Vote, "A", "u1")
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.InteractionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Votes == nil || *resp.Votes != 1 {
		t.Fatalf("votes = %v, want 1", resp.Votes)
	}

	// u1 votes again: rejected, count unchanged
	w = postInteraction(interactionHandler.Vote, "A", "u1")
	testutil.AssertStatus(t, w, http.StatusConflict)
	if got := testutil.RawContext(t, st, "A")["votes"]; got != "1" {
		t.Errorf("votes after rejection = %s, want 1", got)
	}

	// u2 votes
	w = postInteraction(interactionHandler.Vote, "A", "u2")
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Votes == nil || *resp.Votes != 2 {
		t.Fatalf("votes = %v, want 2", resp.Votes)
	}
}

func TestLikeAndVoteAreIndependent(t *testing.T) {
	st, _, interactionHandler := setupHandlers(t)
	testutil.CreateTestMeme(t, st, "m1", "owner-1", nil, nil)

	w := postInteraction(interactionHandler.Like, "m1", "u1")
	testutil.AssertStatus(t, w, http.StatusOK)

	// Liking does not consume the voter's vote
	w = postInteraction(interactionHandler.Vote, "m1", "u1")
	testutil.AssertStatus(t, w, http.StatusOK)

	blob := testutil.RawContext(t, st, "m1")
	if blob["likes"] != "1" || blob["votes"] != "1" {
		t.Errorf("likes=%s votes=%s, want 1/1", blob["likes"], blob["votes"])
	}
}

func TestInteractionErrors(t *testing.T) {
	st, _, interactionHandler := setupHandlers(t)
	testutil.CreateTestMeme(t, st, "m1", "owner-1", nil, nil)

	tests := []struct {
		name           string
		memeID         string
		body           interface{}
		expectedStatus int
	}{
		{"unknown meme", "nope", models.InteractionRequest{VoterID: "u1"}, http.StatusNotFound},
		{"missing voter id", "m1", models.InteractionRequest{}, http.StatusBadRequest},
		{"invalid JSON", "m1", "not json", http.StatusBadRequest},
		{"voter id with separator", "m1", models.InteractionRequest{VoterID: "u1,u2"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/memes/"+tt.memeID+"/like", tt.body, nil)
			req.SetPathValue("id", tt.memeID)
			w := httptest.NewRecorder()

			interactionHandler.Like(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestUnlike(t *testing.T) {
	st, _, interactionHandler := setupHandlers(t)
	testutil.CreateTestMeme(t, st, "m1", "owner-1", []string{"u1", "u2"}, nil)

	// Undo an existing like
	w := deleteInteraction(interactionHandler.Unlike, "m1", "u1")
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.InteractionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Likes == nil || *resp.Likes != 1 {
		t.Fatalf("likes = %v, want 1", resp.Likes)
	}

	// Undoing again is rejected
	w = deleteInteraction(interactionHandler.Unlike, "m1", "u1")
	testutil.AssertStatus(t, w, http.StatusConflict)

	blob := testutil.RawContext(t, st, "m1")
	if blob["likes"] != "1" || blob["likedBy"] != "u2" {
		t.Errorf("likes=%s likedBy=%s, want 1/u2", blob["likes"], blob["likedBy"])
	}
}

// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ihamedr/meni-server/models"
	"github.com/ihamedr/meni-server/testutil"
)

func TestRouterEndpoints(t *testing.T) {
	st := testutil.NewStore(t)
	testutil.CreateTestMeme(t, st, "m1", "o1", nil, nil)
	r := NewRouter(st, testutil.GetTestConfig())

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "health check",
			method:         "GET",
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "root endpoint",
			method:         "GET",
			path:           "/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list memes",
			method:         "GET",
			path:           "/memes",
			expectedStatus: http.StatusOK,
		},
		{
			name:   "submit meme",
			method: "POST",
			path:   "/memes",
			body: models.CreateMemeRequest{
				MemeURL:   "https://img.example/new.png",
				OwnerID:   "o2",
				OwnerName: "New Owner",
				Title:     "New Meme",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "owner exists",
			method:         "GET",
			path:           "/memes/owners/o1/exists",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "voter status",
			method:         "GET",
			path:           "/memes/m1/voters/u1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "like meme",
			method:         "POST",
			path:           "/memes/m1/like",
			body:           models.InteractionRequest{VoterID: "u1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "vote for meme",
			method:         "POST",
			path:           "/memes/m1/vote",
			body:           models.InteractionRequest{VoterID: "u1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "undo like",
			method:         "DELETE",
			path:           "/memes/m1/like",
			body:           models.InteractionRequest{VoterID: "u1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "like unknown meme",
			method:         "POST",
			path:           "/memes/missing/like",
			body:           models.InteractionRequest{VoterID: "u1"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrong method on listing",
			method:         "DELETE",
			path:           "/memes",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, tt.body, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestRouterCORSHeaders(t *testing.T) {
	st := testutil.NewStore(t)
	r := NewRouter(st, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/memes", nil, map[string]string{
		"Origin": "https://meni.example",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://meni.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want request origin echoed", got)
	}
}

func TestRouterPreflight(t *testing.T) {
	st := testutil.NewStore(t)
	r := NewRouter(st, testutil.GetTestConfig())

	req := testutil.MakeRequest("OPTIONS", "/memes/m1/like", nil, map[string]string{
		"Origin":                        "https://meni.example",
		"Access-Control-Request-Method": "POST",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Expected Access-Control-Allow-Methods on preflight response")
	}
}

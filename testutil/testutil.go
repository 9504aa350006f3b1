// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ihamedr/meni-server/cliparse"
	"github.com/ihamedr/meni-server/store"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		StoreBackend:  cliparse.BackendMemory,
		AllowedOrigin: "*",
		ListLimit:     50,
		StoreTimeout:  5 * time.Second,
	}
}

// NewStore returns a fresh in-memory store for a test
func NewStore(t *testing.T) *store.Memory {
	t.Helper()
	return store.NewMemory()
}

// CreateTestMeme inserts a meme with the given counters and voter sets
// directly into the store, bypassing the registration service, and
// returns its id. likedBy/votedBy may be nil.
func CreateTestMeme(t *testing.T, st store.Store, id, ownerID string, likedBy, votedBy []string) string {
	t.Helper()

	snap := store.Snapshot{
		ID:        id,
		URL:       "https://img.example/" + id + ".png",
		CreatedAt: time.Now(),
		Context: map[string]string{
			"title":     "Test Meme " + id,
			"ownerId":   ownerID,
			"ownerName": "Tester",
			"likes":     strconv.Itoa(len(likedBy)),
			"votes":     strconv.Itoa(len(votedBy)),
			"likedBy":   strings.Join(likedBy, ","),
			"votedBy":   strings.Join(votedBy, ","),
		},
	}
	if err := st.Create(context.Background(), snap); err != nil {
		t.Fatalf("Failed to create test meme: %v", err)
	}
	return id
}

// RawContext fetches the stored context blob for assertions on the wire
// encoding.
func RawContext(t *testing.T, st store.Store, id string) map[string]string {
	t.Helper()

	snap, err := st.Fetch(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to fetch meme %s: %v", id, err)
	}
	return snap.Context
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

// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ihamedr/meni-server/meme"
	"github.com/ihamedr/meni-server/testutil"
)

// TestConcurrentSameVoter verifies that two simultaneous votes from the
// same voter produce exactly one increment: one request succeeds and the
// other is rejected as a duplicate, possibly after the handler's internal
// conflict retry re-runs the operation.
func TestConcurrentSameVoter(t *testing.T) {
	st, _, interactionHandler := setupHandlers(t)
	testutil.CreateTestMeme(t, st, "m1", "owner-1", nil, nil)

	var success, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := postInteraction(interactionHandler.Vote, "m1", "u3")
			switch w.Code {
			case http.StatusOK:
				success.Add(1)
			case http.StatusConflict:
				rejected.Add(1)
			default:
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	if success.Load() != 1 || rejected.Load() != 1 {
		t.Errorf("success=%d rejected=%d, want 1/1", success.Load(), rejected.Load())
	}

	blob := testutil.RawContext(t, st, "m1")
	if blob["votes"] != "1" || blob["votedBy"] != "u3" {
		t.Errorf("final state votes=%s votedBy=%s, want 1/u3", blob["votes"], blob["votedBy"])
	}
}

// TestConcurrentDistinctVoters verifies that simultaneous votes from
// distinct voters all converge, each incrementing exactly once. A request
// whose retries are exhausted reports 502 and is re-submitted, mirroring
// a client honoring the retryable-conflict contract.
func TestConcurrentDistinctVoters(t *testing.T) {
	st, _, interactionHandler := setupHandlers(t)
	testutil.CreateTestMeme(t, st, "m1", "owner-1", nil, nil)

	const numVoters = 10

	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			voter := fmt.Sprintf("voter-%d", i)
			for attempt := 0; attempt < numVoters*2; attempt++ {
				w := postInteraction(interactionHandler.Vote, "m1", voter)
				switch w.Code {
				case http.StatusOK, http.StatusConflict:
					return
				case http.StatusBadGateway:
					// lost race, try again
				default:
					t.Errorf("voter %s: unexpected status %d", voter, w.Code)
					return
				}
			}
			t.Errorf("voter %s: retries exhausted", voter)
		}(i)
	}
	wg.Wait()

	snap, err := st.Fetch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	m, warnings := meme.Decode(snap)
	if len(warnings) != 0 {
		t.Errorf("final blob has decode warnings: %v", warnings)
	}
	if m.Votes != numVoters || len(m.VotedBy) != numVoters {
		t.Errorf("votes=%d |votedBy|=%d, want %d/%d", m.Votes, len(m.VotedBy), numVoters, numVoters)
	}
}

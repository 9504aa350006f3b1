// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package meme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ihamedr/meni-server/models"
	"github.com/ihamedr/meni-server/store"
)

// AnonymousOwner is shown when a record carries no owner name.
const AnonymousOwner = "Anonymous"

// Lister reconstructs aggregates for the read path.
type Lister struct {
	store   store.Store
	limit   int
	timeout time.Duration
}

// NewLister builds a Lister. limit caps how many assets one List call
// pulls from the store.
func NewLister(st store.Store, limit int, timeout time.Duration) *Lister {
	return &Lister{store: st, limit: limit, timeout: timeout}
}

// List fetches up to the configured number of memes, newest first, and
// projects them for public consumption. Voter sets never leave this
// function. Damaged context blobs are logged and listed with whatever
// decoded, never dropped or fatal.
func (l *Lister) List(ctx context.Context) ([]models.MemeSummary, error) {
	cctx, cancel := l.callCtx(ctx)
	defer cancel()

	snaps, err := l.store.List(cctx, l.limit)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}

	out := make([]models.MemeSummary, 0, len(snaps))
	for _, snap := range snaps {
		m, warnings := Decode(snap)
		for _, w := range warnings {
			slog.Warn("context decode", "meme_id", snap.ID, "warning", w)
		}
		out = append(out, summarize(m))
	}

	// the adapters already order by recency; re-sort so the contract
	// holds even if one of them stops doing so
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// HasVoted reports whether voterID is in the like and vote sets of one
// meme. This is the only read-path exposure of set membership, for
// eligibility checks; the general listing never carries it.
func (l *Lister) HasVoted(ctx context.Context, memeID, voterID string) (liked, voted bool, err error) {
	if memeID == "" || voterID == "" {
		return false, false, fmt.Errorf("%w: meme id and voter id are required", ErrValidation)
	}

	cctx, cancel := l.callCtx(ctx)
	defer cancel()

	snap, err := l.store.Fetch(cctx, memeID)
	if errors.Is(err, store.ErrNotFound) {
		return false, false, ErrNotFound
	}
	if err != nil {
		return false, false, fmt.Errorf("fetch failed: %w", err)
	}

	m, warnings := Decode(snap)
	for _, w := range warnings {
		slog.Warn("context decode", "meme_id", memeID, "warning", w)
	}
	return m.Liked(voterID), m.Voted(voterID), nil
}

func (l *Lister) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, l.timeout)
}

func summarize(m Meme) models.MemeSummary {
	name := m.OwnerName
	if name == "" {
		name = AnonymousOwner
	}
	return models.MemeSummary{
		ID:        m.ID,
		MemeURL:   m.URL,
		Title:     m.Title,
		OwnerID:   m.OwnerID,
		OwnerName: name,
		Likes:     m.Likes,
		Votes:     m.Votes,
		CreatedAt: m.CreatedAt,
	}
}

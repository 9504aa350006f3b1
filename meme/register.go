// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package meme

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ihamedr/meni-server/store"
)

// Registrar records newly submitted memes in the store.
type Registrar struct {
	store   store.Store
	timeout time.Duration
}

// NewRegistrar builds a Registrar.
func NewRegistrar(st store.Store, timeout time.Duration) *Registrar {
	return &Registrar{store: st, timeout: timeout}
}

// Register records a submitted meme and returns its assigned id. The
// context starts with zeroed counters and empty voter sets; after this
// call only the counter engine touches those fields.
//
// One meme per owner is enforced with a search before the create. The
// two steps are not atomic, so two simultaneous submissions from the
// same owner can both pass the check; the rule is best-effort.
func (r *Registrar) Register(ctx context.Context, memeURL, ownerID, ownerName, title string) (string, error) {
	switch {
	case memeURL == "":
		return "", fmt.Errorf("%w: memeUrl is required", ErrValidation)
	case ownerID == "":
		return "", fmt.Errorf("%w: ownerId is required", ErrValidation)
	case title == "":
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	case strings.Contains(ownerID, voterSep):
		return "", fmt.Errorf("%w: ownerId must not contain %q", ErrValidation, voterSep)
	}

	exists, err := r.OwnerExists(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateOwner
	}

	m := Meme{
		URL:       memeURL,
		Title:     title,
		OwnerID:   ownerID,
		OwnerName: ownerName,
	}
	snap := store.Snapshot{
		ID:        uuid.NewString(),
		URL:       memeURL,
		CreatedAt: time.Now(),
		Context:   Encode(m),
	}

	cctx, cancel := r.callCtx(ctx)
	defer cancel()

	if err := r.store.Create(cctx, snap); err != nil {
		return "", fmt.Errorf("create failed: %w", err)
	}
	return snap.ID, nil
}

// OwnerExists reports whether ownerID already has a meme on record.
func (r *Registrar) OwnerExists(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("%w: ownerId is required", ErrValidation)
	}

	cctx, cancel := r.callCtx(ctx)
	defer cancel()

	matches, err := r.store.SearchByField(cctx, ctxOwnerID, ownerID)
	if err != nil {
		return false, fmt.Errorf("owner search failed: %w", err)
	}
	return len(matches) > 0, nil
}

func (r *Registrar) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package meme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ihamedr/meni-server/store"
)

var (
	// ErrNotFound reports that the meme does not exist.
	ErrNotFound = errors.New("meme not found")

	// ErrAlreadyRegistered is the dedup short-circuit: the voter already
	// counted for this kind. A business rejection, not a system fault;
	// the count is unchanged.
	ErrAlreadyRegistered = errors.New("voter already registered")

	// ErrNotRegistered reports an undo for a voter who never counted.
	ErrNotRegistered = errors.New("voter not registered")

	// ErrValidation reports missing or malformed caller input.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateOwner reports that the owner already submitted a meme.
	ErrDuplicateOwner = errors.New("owner already submitted a meme")
)

// Kind selects which counter an interaction touches. Likes and votes are
// fully independent: separate counts, separate voter sets.
type Kind string

const (
	KindLike Kind = "like"
	KindVote Kind = "vote"
)

func (k Kind) valid() bool { return k == KindLike || k == KindVote }

// Engine performs guarded counter updates against the store.
//
// The store gives us no atomic increment and no compare-and-swap, so each
// update is an explicit read-modify-write: fetch the context, check the
// voter set, append and re-count, commit the merged context. The write
// can lose a race with a concurrent writer; conflict-detecting adapters
// surface that as store.ErrConflict and the Engine passes it straight to
// the caller rather than retrying internally. Retrying the whole
// operation is always safe: a re-run either finds the voter already in
// the set (dedup short-circuits) or re-applies the increment on top of
// the latest snapshot, so repeated retries converge to each distinct
// voter counting exactly once. Over a non-detecting adapter the same
// protocol is best-effort only; that limitation is documented on the
// adapter, not hidden here.
type Engine struct {
	store   store.Store
	timeout time.Duration
}

// NewEngine builds an Engine. timeout bounds each individual store call;
// zero means no bound beyond the caller's context.
func NewEngine(st store.Store, timeout time.Duration) *Engine {
	return &Engine{store: st, timeout: timeout}
}

// Register counts voterID once for kind on memeID and returns the new
// count. Returns ErrAlreadyRegistered (with the current count) when the
// voter is already in the set, ErrNotFound for an unknown meme, and
// store.ErrConflict when a conflict-detecting adapter rejected the
// commit; the caller may safely re-run the whole operation.
func (e *Engine) Register(ctx context.Context, memeID, voterID string, kind Kind) (int, error) {
	if err := validateInteraction(memeID, voterID, kind); err != nil {
		return 0, err
	}

	snap, m, err := e.load(ctx, memeID)
	if err != nil {
		return 0, err
	}

	set := m.LikedBy
	if kind == KindVote {
		set = m.VotedBy
	}

	if containsVoter(set, voterID) {
		return len(set), ErrAlreadyRegistered
	}

	set = append(set, voterID)
	return e.commitSet(ctx, snap, kind, set)
}

// Unregister is the undo mirror of Register: remove voterID from the set
// and decrement. Returns ErrNotRegistered (with the current count) when
// the voter never counted. Same conflict semantics as Register.
func (e *Engine) Unregister(ctx context.Context, memeID, voterID string, kind Kind) (int, error) {
	if err := validateInteraction(memeID, voterID, kind); err != nil {
		return 0, err
	}

	snap, m, err := e.load(ctx, memeID)
	if err != nil {
		return 0, err
	}

	set := m.LikedBy
	if kind == KindVote {
		set = m.VotedBy
	}

	if !containsVoter(set, voterID) {
		return len(set), ErrNotRegistered
	}

	kept := make([]string, 0, len(set)-1)
	for _, id := range set {
		if id != voterID {
			kept = append(kept, id)
		}
	}
	return e.commitSet(ctx, snap, kind, kept)
}

// load fetches and decodes one asset, logging any decode warnings.
func (e *Engine) load(ctx context.Context, memeID string) (store.Snapshot, Meme, error) {
	cctx, cancel := e.callCtx(ctx)
	defer cancel()

	snap, err := e.store.Fetch(cctx, memeID)
	if errors.Is(err, store.ErrNotFound) {
		return store.Snapshot{}, Meme{}, ErrNotFound
	}
	if err != nil {
		return store.Snapshot{}, Meme{}, fmt.Errorf("fetch failed: %w", err)
	}

	m, warnings := Decode(snap)
	for _, w := range warnings {
		slog.Warn("context decode", "meme_id", memeID, "warning", w)
	}
	return snap, m, nil
}

// commitSet writes the kind's count and voter set back, merged over the
// snapshot's context so every field it does not own survives untouched.
// The count is re-derived from the set size, which is what restores the
// count/set invariant after decoding a damaged blob.
func (e *Engine) commitSet(ctx context.Context, snap store.Snapshot, kind Kind, set []string) (int, error) {
	countKey, setKey := ctxLikes, ctxLikedBy
	if kind == KindVote {
		countKey, setKey = ctxVotes, ctxVotedBy
	}

	merged := make(map[string]string, len(snap.Context)+2)
	for k, v := range snap.Context {
		merged[k] = v
	}
	merged[countKey] = strconv.Itoa(len(set))
	merged[setKey] = strings.Join(set, voterSep)

	cctx, cancel := e.callCtx(ctx)
	defer cancel()

	err := e.store.Commit(cctx, snap.ID, snap.Context, merged)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		// Includes store.ErrConflict. The operation is indeterminate for
		// plain I/O failures; either way the caller may re-run it.
		return 0, fmt.Errorf("commit failed: %w", err)
	}
	return len(set), nil
}

func (e *Engine) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.timeout)
}

func validateInteraction(memeID, voterID string, kind Kind) error {
	if memeID == "" {
		return fmt.Errorf("%w: meme id is required", ErrValidation)
	}
	if voterID == "" {
		return fmt.Errorf("%w: voter id is required", ErrValidation)
	}
	if strings.Contains(voterID, voterSep) {
		return fmt.Errorf("%w: voter id must not contain %q", ErrValidation, voterSep)
	}
	if !kind.valid() {
		return fmt.Errorf("%w: unknown interaction kind %q", ErrValidation, string(kind))
	}
	return nil
}

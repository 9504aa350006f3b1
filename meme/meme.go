// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package meme

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ihamedr/meni-server/store"
)

// Context keys. These are the only keys this package reads or writes;
// anything else in a context blob belongs to other writers and is
// carried through untouched.
const (
	ctxTitle     = "title"
	ctxOwnerID   = "ownerId"
	ctxOwnerName = "ownerName"
	ctxLikes     = "likes"
	ctxVotes     = "votes"
	ctxLikedBy   = "likedBy"
	ctxVotedBy   = "votedBy"
)

// voterSep joins voter sets in the context blob. Voter ids containing it
// are rejected at validation time, never silently mangled.
const voterSep = ","

// Meme is the decoded aggregate for one asset: identity, authorship, and
// the two independent counters with their voter sets.
type Meme struct {
	ID        string
	URL       string
	Title     string
	OwnerID   string
	OwnerName string
	CreatedAt time.Time
	Likes     int
	Votes     int
	LikedBy   []string
	VotedBy   []string
}

// Liked reports whether voterID is in the like set.
func (m Meme) Liked(voterID string) bool {
	return containsVoter(m.LikedBy, voterID)
}

// Voted reports whether voterID is in the vote set.
func (m Meme) Voted(voterID string) bool {
	return containsVoter(m.VotedBy, voterID)
}

// Decode reconstructs a Meme from a store snapshot. This is the single
// place the context encoding is interpreted; the read and write paths
// share it so there is exactly one behavior.
//
// Decode never fails. Malformed fields degrade to their zero value and
// are reported in the returned warnings so callers can log that a reset
// happened instead of swallowing it:
//
//   - missing or malformed count: 0
//   - malformed, empty, or duplicate voter-set entries: dropped
//   - count disagreeing with its voter set: both kept as decoded; the
//     engine re-derives the count from the set on its next write
func Decode(snap store.Snapshot) (Meme, []string) {
	var warnings []string

	m := Meme{
		ID:        snap.ID,
		URL:       snap.URL,
		CreatedAt: snap.CreatedAt,
		Title:     snap.Context[ctxTitle],
		OwnerID:   snap.Context[ctxOwnerID],
		OwnerName: snap.Context[ctxOwnerName],
	}

	m.Likes, warnings = decodeCount(snap.Context, ctxLikes, warnings)
	m.Votes, warnings = decodeCount(snap.Context, ctxVotes, warnings)
	m.LikedBy, warnings = decodeVoterSet(snap.Context, ctxLikedBy, warnings)
	m.VotedBy, warnings = decodeVoterSet(snap.Context, ctxVotedBy, warnings)

	if m.Likes != len(m.LikedBy) {
		warnings = append(warnings, fmt.Sprintf("%s=%d disagrees with %s size %d", ctxLikes, m.Likes, ctxLikedBy, len(m.LikedBy)))
	}
	if m.Votes != len(m.VotedBy) {
		warnings = append(warnings, fmt.Sprintf("%s=%d disagrees with %s size %d", ctxVotes, m.Votes, ctxVotedBy, len(m.VotedBy)))
	}

	return m, warnings
}

// Encode renders the aggregate's mutable fields as a fresh context blob.
// Exact inverse of Decode for well-formed aggregates. Used at creation;
// the engine's incremental writes merge into the existing blob instead so
// foreign keys survive.
func Encode(m Meme) map[string]string {
	return map[string]string{
		ctxTitle:     m.Title,
		ctxOwnerID:   m.OwnerID,
		ctxOwnerName: m.OwnerName,
		ctxLikes:     strconv.Itoa(m.Likes),
		ctxVotes:     strconv.Itoa(m.Votes),
		ctxLikedBy:   strings.Join(m.LikedBy, voterSep),
		ctxVotedBy:   strings.Join(m.VotedBy, voterSep),
	}
}

func decodeCount(blob map[string]string, key string, warnings []string) (int, []string) {
	raw, ok := blob[key]
	if !ok || raw == "" {
		return 0, warnings
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, append(warnings, fmt.Sprintf("%s: invalid count %q, using 0", key, raw))
	}
	return n, warnings
}

func decodeVoterSet(blob map[string]string, key string, warnings []string) ([]string, []string) {
	raw, ok := blob[key]
	if !ok || raw == "" {
		return nil, warnings
	}

	// Some historical records carried JSON-encoded arrays here. Those are
	// not splittable into voter ids; reset to empty rather than inventing
	// members out of the brackets.
	if strings.HasPrefix(raw, "[") {
		return nil, append(warnings, fmt.Sprintf("%s: unrecognized encoding %q, resetting to empty", key, raw))
	}

	var set []string
	for _, id := range strings.Split(raw, voterSep) {
		id = strings.TrimSpace(id)
		if id == "" {
			warnings = append(warnings, fmt.Sprintf("%s: dropped empty entry", key))
			continue
		}
		if containsVoter(set, id) {
			warnings = append(warnings, fmt.Sprintf("%s: dropped duplicate entry %q", key, id))
			continue
		}
		set = append(set, id)
	}
	return set, warnings
}

func containsVoter(set []string, voterID string) bool {
	for _, id := range set {
		if id == voterID {
			return true
		}
	}
	return false
}

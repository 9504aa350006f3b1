// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package meme holds the domain core: the decoded aggregate, the context
codec, and the three services built on the store adapter.

# Aggregate and Codec

A Meme is the typed view of one asset's context blob: title and owner,
plus two independent counters (likes, votes) each paired with the set of
voter identities that produced it. The central invariant is that a
committed write always leaves each count equal to its voter-set size.

Decode and Encode are the only functions that interpret the on-wire
encoding (counts as decimal strings, voter sets comma-joined, flat keys).
Decode tolerates damaged blobs - every degradation is reported as a
warning, never a failure.

# Counter Engine

Engine.Register(ctx, memeID, voterID, kind) is the guarded increment:

	fetch snapshot -> decode -> voter already in set? ErrAlreadyRegistered
	-> append voter, count = set size -> commit merged context

There is no atomic primitive underneath, so the commit can lose a race.
The Engine makes a single attempt and surfaces the conflict; retry policy
belongs to the caller (the HTTP handlers retry a bounded number of
times). Re-running the operation is convergent: the dedup check makes a
duplicate retry a no-op, and a lost race re-applies the increment on the
latest snapshot. Each distinct voter therefore counts exactly once under
retried execution. Over the non-detecting cloud adapter the guarantee
weakens to eventually-correct-on-retry; see the store package.

Engine.Unregister is the structural mirror (set removal and decrement)
with the same conflict semantics.

# Read Path

Lister.List reconstructs aggregates in bulk and projects them for public
consumption, newest first, without voter-set membership. Lister.HasVoted
is the one membership query, for eligibility checks.

# Registration

Registrar.Register validates the submission, enforces one-meme-per-owner
via an indexed owner search (best-effort: the check and the create are
not atomic), and creates the record with zeroed counters.
*/
package meme

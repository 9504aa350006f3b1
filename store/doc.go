// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store adapts the asset-metadata backends behind one interface.

Each asset is a Snapshot: an immutable id, content URL and creation time,
plus a mutable flat string-to-string context blob that carries everything
else (title, owner, counters, voter sets). The backends offer no
transactions that span a read and a write, so the interface makes the
read-modify-write window explicit: Commit takes both the context the
caller read (base) and the replacement (merged).

# Implementations

  - Memory: mutex-guarded map. Reference implementation; detects stale
    commits by comparing base to the stored context, which lets tests
    drive the full conflict-and-retry protocol deterministically.
  - SQL: sqlite (modernc.org/sqlite) or postgres (lib/pq). Context rows
    are normalized so owner lookups are indexed. Conflict-detecting: the
    base comparison runs inside a transaction holding the asset row.
  - Cloud: the hosted store's admin API over HTTPS. NOT conflict-
    detecting: the remote API has no compare-and-swap and no version
    token, so Commit is a blind merge write. Correctness of the counters
    over this adapter rests entirely on the engine's retry convergence.

# Errors

ErrNotFound, ErrExists, and ErrConflict are sentinels; everything else is
a wrapped I/O failure. Callers must treat a failed Commit as indeterminate
(it may or may not have been applied) and retry the whole read-modify-write.
*/
package store

// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports that no asset with the requested id exists.
	ErrNotFound = errors.New("asset not found")

	// ErrExists reports that Create was called with an id already in use.
	ErrExists = errors.New("asset already exists")

	// ErrConflict reports that a Commit was rejected because the stored
	// context no longer matches the base the caller read. Only adapters
	// that can observe staleness return it; the caller may re-read and
	// retry the whole operation.
	ErrConflict = errors.New("asset modified since read")
)

// Snapshot is one asset's record as the store holds it: immutable identity
// plus the mutable string-to-string context blob.
type Snapshot struct {
	ID        string
	URL       string
	CreatedAt time.Time
	Context   map[string]string
}

// Clone returns a deep copy. Adapters hand out clones so callers can
// mutate the context freely.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Context = make(map[string]string, len(s.Context))
	for k, v := range s.Context {
		c.Context[k] = v
	}
	return c
}

// Store is the metadata store every service is constructed with. The
// underlying stores offer no compare-and-swap and no transactions across
// calls; a Fetch followed by a Commit can race with another writer. Commit
// takes the context the caller read (base) so that adapters which can
// detect staleness reject the write with ErrConflict instead of clobbering
// a concurrent update. The remote adapter cannot detect staleness and
// writes blindly; see the package documentation for what that costs.
type Store interface {
	// Fetch returns the snapshot for id, or ErrNotFound.
	Fetch(ctx context.Context, id string) (Snapshot, error)

	// List returns up to limit snapshots ordered by CreatedAt descending.
	// Each call re-queries the store.
	List(ctx context.Context, limit int) ([]Snapshot, error)

	// SearchByField returns the snapshots whose context maps key to value.
	SearchByField(ctx context.Context, key, value string) ([]Snapshot, error)

	// Commit replaces the full context of id with merged. base is the
	// context the caller read before computing merged. Returns ErrNotFound
	// if the asset is gone, ErrConflict if the adapter can tell the stored
	// context diverged from base.
	Commit(ctx context.Context, id string, base, merged map[string]string) error

	// Create inserts a new asset record. Returns ErrExists on id collision.
	Create(ctx context.Context, snap Snapshot) error
}

// contextEqual compares two context blobs key by key.
func contextEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is the reference Store implementation: a mutex-guarded map.
// It detects stale commits by comparing the stored context against the
// base the caller read, so tests can exercise the full conflict-and-retry
// protocol without a real backend.
type Memory struct {
	mu     sync.Mutex
	assets map[string]Snapshot
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{assets: make(map[string]Snapshot)}
}

func (m *Memory) Fetch(ctx context.Context, id string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.assets[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap.Clone(), nil
}

func (m *Memory) List(ctx context.Context, limit int) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Snapshot, 0, len(m.assets))
	for _, snap := range m.assets {
		out = append(out, snap.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) SearchByField(ctx context.Context, key, value string) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Snapshot
	for _, snap := range m.assets {
		if snap.Context[key] == value {
			out = append(out, snap.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) Commit(ctx context.Context, id string, base, merged map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.assets[id]
	if !ok {
		return ErrNotFound
	}
	if !contextEqual(snap.Context, base) {
		return ErrConflict
	}

	snap.Context = make(map[string]string, len(merged))
	for k, v := range merged {
		snap.Context[k] = v
	}
	m.assets[id] = snap
	return nil
}

func (m *Memory) Create(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.assets[snap.ID]; ok {
		return ErrExists
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}
	m.assets[snap.ID] = snap.Clone()
	return nil
}

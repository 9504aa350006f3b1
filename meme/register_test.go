// Copyright (c) 2026 Hamed R.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package meme

import (
	"context"
	"errors"
	"testing"

	"github.com/ihamedr/meni-server/store"
)

func TestRegisterMeme(t *testing.T) {
	st := store.NewMemory()
	registrar := NewRegistrar(st, 0)
	ctx := context.Background()

	id, err := registrar.Register(ctx, "https://img.example/a.png", "owner-1", "Alice", "My Meme")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	snap, err := st.Fetch(ctx, id)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	m, warnings := Decode(snap)
	if len(warnings) != 0 {
		t.Errorf("fresh record produced decode warnings: %v", warnings)
	}
	if m.Title != "My Meme" || m.OwnerID != "owner-1" || m.OwnerName != "Alice" {
		t.Errorf("metadata = %+v", m)
	}
	if m.Likes != 0 || m.Votes != 0 || len(m.LikedBy) != 0 || len(m.VotedBy) != 0 {
		t.Errorf("counters not zeroed: %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRegisterMemeValidation(t *testing.T) {
	registrar := NewRegistrar(store.NewMemory(), 0)
	ctx := context.Background()

	tests := []struct {
		name      string
		url       string
		ownerID   string
		ownerName string
		title     string
	}{
		{"missing url", "", "o1", "Alice", "T"},
		{"missing owner id", "https://img.example/a.png", "", "Alice", "T"},
		{"missing title", "https://img.example/a.png", "o1", "Alice", ""},
		{"owner id containing separator", "https://img.example/a.png", "o1,o2", "Alice", "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registrar.Register(ctx, tt.url, tt.ownerID, tt.ownerName, tt.title)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	// Owner name is optional: listings fall back to Anonymous
	if _, err := registrar.Register(ctx, "https://img.example/a.png", "o1", "", "T"); err != nil {
		t.Errorf("register without owner name failed: %v", err)
	}
}

func TestRegisterMemeDuplicateOwner(t *testing.T) {
	st := store.NewMemory()
	registrar := NewRegistrar(st, 0)
	ctx := context.Background()

	if _, err := registrar.Register(ctx, "https://img.example/a.png", "owner-1", "Alice", "First"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := registrar.Register(ctx, "https://img.example/b.png", "owner-1", "Alice", "Second")
	if !errors.Is(err, ErrDuplicateOwner) {
		t.Errorf("expected ErrDuplicateOwner, got %v", err)
	}

	// A different owner is unaffected
	if _, err := registrar.Register(ctx, "https://img.example/c.png", "owner-2", "Bob", "Third"); err != nil {
		t.Errorf("different owner failed: %v", err)
	}
}

func TestOwnerExists(t *testing.T) {
	st := store.NewMemory()
	registrar := NewRegistrar(st, 0)
	ctx := context.Background()

	exists, err := registrar.OwnerExists(ctx, "owner-1")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if exists {
		t.Error("owner should not exist yet")
	}

	if _, err := registrar.Register(ctx, "https://img.example/a.png", "owner-1", "Alice", "T"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	exists, err = registrar.OwnerExists(ctx, "owner-1")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !exists {
		t.Error("owner should exist after registration")
	}

	if _, err := registrar.OwnerExists(ctx, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty owner id, got %v", err)
	}
}

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"inscricaoflow/internal/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "inscricaoflow.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	payload := []byte(`{"buyerCpf":"529.982.247-25","quantity":2}`)
	if err := store.Set(ctx, domain.DraftKey("ev-1"), payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, domain.DraftKey("ev-1"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected %s, got %s", payload, got)
	}

	// A fresh store over the same file must see persisted data.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err = reopened.Get(ctx, domain.DraftKey("ev-1"))
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected %s after reopen, got %s", payload, got)
	}
}

func TestFileStore_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Set(ctx, "k", []byte(`true`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("second Remove should be a no-op, got %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestFileStore_RejectsInvalidJSON(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set(ctx, "k", []byte("{broken")); err == nil {
		t.Fatal("expected error for invalid JSON value")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set(ctx, "k", []byte(`1`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || string(got) != "1" {
		t.Fatalf("Get = %s, %v", got, err)
	}
	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

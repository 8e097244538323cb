package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryImageStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryImageStore()

	data := []byte{1, 2, 3}
	if err := store.Put(ctx, "receipts/a.png", data, "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	data[0] = 9

	got, err := store.Get(ctx, "receipts/a.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got[0] != 1 {
		t.Error("expected store to keep its own copy")
	}

	store.Delete("receipts/a.png")
	if _, err := store.Get(ctx, "receipts/a.png"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("expected ErrImageNotFound, got %v", err)
	}
}

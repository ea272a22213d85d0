package kv

import (
	"context"
	"testing"
)

type note struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func TestReadAllMissingKeyReturnsEmpty(t *testing.T) {
	store := NewMemoryStore()

	items, err := ReadAll[note](context.Background(), store, "notes")
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(items))
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := []note{{ID: "n-1", Body: "first"}, {ID: "n-2", Body: "second"}}
	if err := WriteAll(ctx, store, "notes", in); err != nil {
		t.Fatalf("WriteAll returned error: %v", err)
	}

	out, err := ReadAll[note](ctx, store, "notes")
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "n-1" || out[1].Body != "second" {
		t.Fatalf("unexpected round trip result: %+v", out)
	}
}

func TestWriteAllNilWritesEmptyArray(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := WriteAll[note](ctx, store, "notes", nil); err != nil {
		t.Fatalf("WriteAll returned error: %v", err)
	}

	blob, err := store.Get(ctx, "notes")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(blob) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", blob)
	}
}

func TestReadAllCorruptBlobFails(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "notes", []byte("{not json")); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if _, err := ReadAll[note](ctx, store, "notes"); err == nil {
		t.Fatal("expected decode error for corrupt blob")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, "k"); err != ErrKeyNotFound {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

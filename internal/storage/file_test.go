package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestFileKVRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()

	if _, err := kv.Get(ctx, "bhai:missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := kv.Set(ctx, "bhai:user", `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := kv.Get(ctx, "bhai:user")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"id":"u1"}` {
		t.Fatalf("unexpected value: %q", got)
	}

	// overwrite
	if err := kv.Set(ctx, "bhai:user", `{"id":"u2"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = kv.Get(ctx, "bhai:user")
	if got != `{"id":"u2"}` {
		t.Fatalf("overwrite not effective: %q", got)
	}

	if err := kv.Delete(ctx, "bhai:user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "bhai:user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}

	// delete of a missing key is not an error
	if err := kv.Delete(ctx, "bhai:user"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

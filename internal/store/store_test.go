package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "uploads.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		data := []byte("a,b\n1,2\n")
		u, err := s.Put(ctx, "small.csv", data)
		if err != nil {
			t.Fatalf("%s: put: %v", name, err)
		}
		if u.ID != ContentID(data) {
			t.Errorf("%s: id should derive from content", name)
		}
		got, err := s.Get(ctx, u.ID)
		if err != nil {
			t.Fatalf("%s: get: %v", name, err)
		}
		if got.Name != "small.csv" || string(got.Data) != string(data) {
			t.Errorf("%s: unexpected upload %+v", name, got)
		}

		// same bytes under a new name reuse the entry
		again, err := s.Put(ctx, "renamed.csv", data)
		if err != nil || again.ID != u.ID {
			t.Errorf("%s: expected same id on re-upload, got %v %v", name, again, err)
		}
		got, _ = s.Get(ctx, u.ID)
		if got.Name != "renamed.csv" {
			t.Errorf("%s: expected name refresh, got %q", name, got.Name)
		}
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		if _, err := s.Get(context.Background(), "deadbeef"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestStore_Purge(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		u, err := s.Put(ctx, "old.csv", []byte("x\n1\n"))
		if err != nil {
			t.Fatal(err)
		}
		n, err := s.Purge(ctx, time.Now().Add(-time.Hour))
		if err != nil || n != 0 {
			t.Errorf("%s: nothing should expire yet, purged %d (%v)", name, n, err)
		}
		n, err = s.Purge(ctx, time.Now().Add(time.Hour))
		if err != nil || n != 1 {
			t.Errorf("%s: expected 1 purged, got %d (%v)", name, n, err)
		}
		if _, err := s.Get(ctx, u.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected purged upload to be gone, got %v", name, err)
		}
	}
}

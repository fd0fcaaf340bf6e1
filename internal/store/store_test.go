package store

import (
	"context"
	"path/filepath"
	"testing"

	"resumecanvas/internal/errors"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(ctx, CollectionTemplates, "t1", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := s.Get(ctx, CollectionTemplates, "t1")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `{"a":1}` {
				t.Errorf("Get = %s, want {\"a\":1}", got)
			}

			// overwrite via same key
			if err := s.Put(ctx, CollectionTemplates, "t1", []byte(`{"a":2}`)); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			got, _ = s.Get(ctx, CollectionTemplates, "t1")
			if string(got) != `{"a":2}` {
				t.Errorf("after overwrite = %s, want {\"a\":2}", got)
			}

			if err := s.Delete(ctx, CollectionTemplates, "t1"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, CollectionTemplates, "t1"); !errors.IsNotFound(err) {
				t.Errorf("Get after delete: err = %v, want not-found", err)
			}
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, CollectionResumes, "missing"); !errors.IsNotFound(err) {
				t.Errorf("Get: err = %v, want not-found", err)
			}
			if err := s.Delete(ctx, CollectionResumes, "missing"); !errors.IsNotFound(err) {
				t.Errorf("Delete: err = %v, want not-found", err)
			}
		})
	}
}

func TestStoreListOrderedAndIsolated(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"b", "a", "c"} {
				if err := s.Put(ctx, CollectionResumes, id, []byte(`{}`)); err != nil {
					t.Fatalf("Put %s: %v", id, err)
				}
			}
			if err := s.Put(ctx, CollectionTemplates, "other", []byte(`{}`)); err != nil {
				t.Fatalf("Put template: %v", err)
			}

			entries, err := s.List(ctx, CollectionResumes)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("List returned %d entries, want 3", len(entries))
			}
			for i, want := range []string{"a", "b", "c"} {
				if entries[i].ID != want {
					t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, want)
				}
			}
		})
	}
}

package kvstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lyricsync/internal/config"
	"lyricsync/internal/kvstore"
)

func exerciseStore(t *testing.T, store kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss for absent key, got ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "lyricsync:offsets", `{"a":{"offset":150}}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := store.Get(ctx, "lyricsync:offsets")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if value != `{"a":{"offset":150}}` {
		t.Fatalf("unexpected value %q", value)
	}
	if err := store.Set(ctx, "lyricsync:offsets", "replaced"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if value, _, _ := store.Get(ctx, "lyricsync:offsets"); value != "replaced" {
		t.Fatalf("expected overwrite, got %q", value)
	}
	if err := store.Delete(ctx, "lyricsync:offsets"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "lyricsync:offsets"); ok {
		t.Fatal("expected key removed")
	}
	if err := store.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("Delete of absent key should succeed: %v", err)
	}
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		open func(t *testing.T) kvstore.Store
	}{
		{"memory", func(t *testing.T) kvstore.Store { return kvstore.NewMemory() }},
		{"file", func(t *testing.T) kvstore.Store {
			store, err := kvstore.NewFile(filepath.Join(t.TempDir(), "nested", "state.json"))
			if err != nil {
				t.Fatalf("NewFile: %v", err)
			}
			return store
		}},
		{"sqlite", func(t *testing.T) kvstore.Store {
			store, err := kvstore.OpenSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"))
			if err != nil {
				t.Fatalf("OpenSQLite: %v", err)
			}
			return store
		}},
		{"sqlite memory", func(t *testing.T) kvstore.Store {
			store, err := kvstore.OpenSQLite(ctx, ":memory:")
			if err != nil {
				t.Fatalf("OpenSQLite: %v", err)
			}
			return store
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := tt.open(t)
			t.Cleanup(func() { store.Close() })
			exerciseStore(t, store)
		})
	}
}

func TestRedisBackend(t *testing.T) {
	url := os.Getenv("LYRICSYNC_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LYRICSYNC_TEST_REDIS_URL not set")
	}
	store, err := kvstore.OpenRedis(context.Background(), kvstore.RedisOptions{URL: url, Prefix: "lyricsync-test/"})
	if err != nil {
		t.Fatalf("OpenRedis: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	exerciseStore(t, store)
}

func TestFileSharedBetweenHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	first, err := kvstore.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	second, err := kvstore.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	if err := first.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	if err := second.Set(ctx, "b", "2"); err != nil {
		t.Fatalf("Set b: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if _, ok, err := first.Get(ctx, key); err != nil || !ok {
			t.Fatalf("expected %s visible to first handle: ok=%v err=%v", key, ok, err)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file cleaned up, stat err=%v", err)
	}
}

func TestFileCorruptReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := kvstore.NewFile(path)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, _, err := store.Get(context.Background(), "a"); err == nil {
		t.Fatal("expected parse error for corrupt file")
	}
}

func TestClosedStoresReject(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	mem.Close()
	if err := mem.Set(ctx, "a", "1"); !errors.Is(err, kvstore.ErrClosed) {
		t.Fatalf("expected ErrClosed from memory, got %v", err)
	}

	file, err := kvstore.NewFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	file.Close()
	if _, _, err := file.Get(ctx, "a"); !errors.Is(err, kvstore.ErrClosed) {
		t.Fatalf("expected ErrClosed from file, got %v", err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tests := []struct {
		backend string
		check   func(kvstore.Store) bool
	}{
		{config.BackendMemory, func(s kvstore.Store) bool { _, ok := s.(*kvstore.Memory); return ok }},
		{config.BackendFile, func(s kvstore.Store) bool { _, ok := s.(*kvstore.File); return ok }},
		{config.BackendSQLite, func(s kvstore.Store) bool {
			sqlStore, ok := s.(*kvstore.SQL)
			return ok && sqlStore.Driver() == "sqlite"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.Storage{
				Backend:    tt.backend,
				FilePath:   filepath.Join(dir, "state.json"),
				SQLitePath: filepath.Join(dir, "kv.db"),
			}
			store, err := kvstore.Open(ctx, cfg, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer store.Close()
			if !tt.check(store) {
				t.Fatalf("unexpected store type %T", store)
			}
		})
	}

	_, err := kvstore.Open(ctx, config.Storage{Backend: "etcd"}, nil)
	if !errors.Is(err, kvstore.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

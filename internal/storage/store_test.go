package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Paths []string `json:"paths"`
	Count int      `json:"count"`
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	var got sample
	found, err := s.Get(KeyFavorites, &got)
	if err != nil || found {
		t.Fatalf("Get(missing) = %v, %v; want false, nil", found, err)
	}

	if err := s.Set(KeyFavorites, sample{Paths: []string{"/a", "/b"}, Count: 2}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(KeyFavorites, sample{Paths: []string{"/c"}, Count: 1}); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	found, err = s.Get(KeyFavorites, &got)
	if err != nil || !found {
		t.Fatalf("Get() = %v, %v; want true, nil", found, err)
	}
	if got.Count != 1 || len(got.Paths) != 1 || got.Paths[0] != "/c" {
		t.Fatalf("Get() = %+v, want overwritten value", got)
	}

	var folder string
	if err := s.Set(KeyMusicFolder, "/music"); err != nil {
		t.Fatalf("Set(string) error = %v", err)
	}
	if found, err := s.Get(KeyMusicFolder, &folder); err != nil || !found || folder != "/music" {
		t.Fatalf("Get(string) = %q, %v, %v", folder, found, err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	exerciseStore(t, s)

	info, err := os.Stat(filepath.Join(dir, KeyFavorites+".json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("file mode = %o, want 0600", perm)
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	if err := s.Set("../escape", 1); err == nil {
		t.Fatal("expected error for key with path separators")
	}
}

func TestFileStoreCorruptFileIsError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stats.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(dir)
	var v map[string]any
	if _, err := s.Get(KeyStats, &v); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSQLiteStoreInMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStoreOnDiskPersists(t *testing.T) {
	path := SQLitePath(t.TempDir())
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := s.Set(KeyMusicFolder, "/music"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	var folder string
	if found, err := s.Get(KeyMusicFolder, &folder); err != nil || !found || folder != "/music" {
		t.Fatalf("Get() after reopen = %q, %v, %v", folder, found, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, _, err := Open(Options{Backend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenMySQLRequiresDSN(t *testing.T) {
	if _, err := OpenMySQL(""); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

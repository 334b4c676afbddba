package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemory_GetSetRemove(t *testing.T) {
	m := NewMemory()
	if _, ok := m.Get("missing"); ok {
		t.Fatal("empty store should not report a value")
	}
	if err := m.Set("a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := m.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v; want 1, true", v, ok)
	}
	_ = m.Set("b", "2")
	if keys := m.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v; want [a b]", keys)
	}
	_ = m.Remove("a")
	if _, ok := m.Get("a"); ok {
		t.Error("a should be removed")
	}
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "store.json")

	f, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if f.Path() != path {
		t.Errorf("Path() = %q; want %q", f.Path(), path)
	}
	if err := f.Set("particlePreferences", `{"mode":"deepspace"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Set("other", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Remove("other"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	reopened, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok := reopened.Get("particlePreferences")
	if !ok || v != `{"mode":"deepspace"}` {
		t.Errorf("Get after reopen = %q, %v", v, ok)
	}
	if _, ok := reopened.Get("other"); ok {
		t.Error("removed key survived reopen")
	}
}

func TestFile_MalformedFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("OpenFile should fail open, got %v", err)
	}
	if _, ok := f.Get("anything"); ok {
		t.Error("malformed file should load as empty")
	}
}

func TestOpenFile_EmptyPath(t *testing.T) {
	if _, err := OpenFile("", nil); err == nil {
		t.Error("expected error for empty path")
	}
}

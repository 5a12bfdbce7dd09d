package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemStoreLifecycle(t *testing.T) {
	s := NewMemStore()
	if _, ok := s.Get(); ok {
		t.Fatalf("expected empty store")
	}
	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	tok, ok := s.Get()
	if !ok || tok != "tok-1" {
		t.Fatalf("got %q, %v", tok, ok)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatalf("expected cleared store")
	}
	// Clearing again is a no-op.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatalf("expected empty store for missing file")
	}
	if err := s.Set("tok-abc"); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A second instance simulates a process restart.
	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	tok, ok := s2.Get()
	if !ok || tok != "tok-abc" {
		t.Fatalf("restored %q, %v", tok, ok)
	}

	if err := s2.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected token file removed, stat err=%v", err)
	}

	s3, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen after clear: %v", err)
	}
	if _, ok := s3.Get(); ok {
		t.Fatalf("expected empty store after clear")
	}
}

func TestFileStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("tok-xyz\n"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tok, _ := s.Get()
	if tok != "tok-xyz" {
		t.Fatalf("got %q", tok)
	}
}

package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRequiresDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "storage")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := s.Load(ctx, "pydat5-prefs"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, "pydat5-prefs", []byte(`{"whois":{"fang":true}}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, "pydat5-prefs", []byte(`{"whois":{"fang":false}}`)); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, ok, err := s.Load(ctx, "pydat5-prefs")
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"whois":{"fang":false}}` {
		t.Errorf("unexpected contents: %s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the value file to remain, got %d entries", len(entries))
	}
}

func TestRejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, key := range []string{"", "../escape", "a/b", ".."} {
		if err := s.Save(context.Background(), key, []byte("x")); err == nil {
			t.Errorf("expected key %q to be rejected", key)
		}
	}
}

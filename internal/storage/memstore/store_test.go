package memstore

import (
	"context"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	s := New()
	_, ok, err := s.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("expected missing key to report ok=false")
	}
}

func TestSaveCopiesInput(t *testing.T) {
	s := New()
	ctx := context.Background()
	buf := []byte(`{"a":1}`)
	if err := s.Save(ctx, "k", buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	buf[0] = 'X'

	got, ok, err := s.Load(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("expected stored bytes to be unaffected, got %s", got)
	}
}

package kvstore

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := Instrument(NewMemoryStore(), "memory")

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("missing key: found=%v err=%v", found, err)
	}

	blob := []byte(`[1,2,3]`)
	if err := s.Set(ctx, "k", blob); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Mutating the caller's slice must not reach the stored copy.
	blob[1] = '9'

	got, found, err := s.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(got) != `[1,2,3]` {
		t.Fatalf("got %s", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("key still present after delete")
	}
}

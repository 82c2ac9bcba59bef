package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func startedHasher(t *testing.T) *Hasher {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHasher(2, bcrypt.MinCost, zerolog.Nop())
	h.Start(ctx)
	return h
}

func TestHasher_HashAndCompare(t *testing.T) {
	h := startedHasher(t)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "secret1" || digest == "" {
		t.Fatalf("unexpected digest: %q", digest)
	}

	if err := h.Compare(ctx, digest, "secret1"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := h.Compare(ctx, digest, "wrongpw"); !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestHasher_SaltsDigests(t *testing.T) {
	h := startedHasher(t)
	ctx := context.Background()

	first, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("identical passwords produced identical digests")
	}
}

func TestHasher_CancelledContext(t *testing.T) {
	h := startedHasher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "secret1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

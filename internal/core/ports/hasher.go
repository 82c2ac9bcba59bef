package ports

import "context"

// PasswordHasher produces and verifies salted one-way password digests.
// Implementations are expected to bound their own parallelism: bcrypt at a
// realistic cost takes tens of milliseconds and must not be allowed to
// saturate every core under a signup burst.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hashed, password string) error
}

package ports

import "context"

// LoginLimiter throttles repeated login attempts per role+username.
// Allow errors are advisory: callers fail open when the limiter backend is
// unreachable rather than locking every user out.
type LoginLimiter interface {
	Allow(ctx context.Context, role, username string) (bool, error)
	Reset(ctx context.Context, role, username string) error
}

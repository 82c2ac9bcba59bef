package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts with a fixed-window counter per
// role+username. Key format: login_attempts:<role>:<username>.
//
// The limiter is an abuse brake, not a security boundary: a Redis outage
// fails open so authentication keeps working without it.
type LoginLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing limit attempts per window.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow records an attempt and reports whether it is within the window's
// budget. The window starts at the first attempt and is not sliding.
func (l *LoginLimiter) Allow(ctx context.Context, role, username string) (bool, error) {
	key := l.key(role, username)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return true, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	return n <= l.limit, nil
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, role, username string) error {
	return l.client.Del(ctx, l.key(role, username)).Err()
}

func (l *LoginLimiter) key(role, username string) string {
	return fmt.Sprintf("login_attempts:%s:%s", role, username)
}

// Package worker bounds the service's bcrypt work with a fixed pool of
// goroutines. Hashing at a realistic cost factor takes tens of milliseconds
// of pure CPU; without a bound, a burst of signups could occupy every core
// and starve the accept loop and cheap requests like token verification.
package worker

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthq/succession-portal/internal/api/metrics"
)

const queueBuffer = 64

// Hasher is a bcrypt PasswordHasher backed by a fixed worker pool. Callers
// block until their job completes or their context is cancelled; jobs whose
// caller has gone away are skipped by the workers.
type Hasher struct {
	jobs    chan func()
	workers int
	cost    int
	log     zerolog.Logger
}

// NewHasher creates a Hasher with numWorkers workers hashing at cost.
// numWorkers <= 0 defaults to GOMAXPROCS; an out-of-range cost defaults to
// bcrypt.DefaultCost. Start must be called before use.
func NewHasher(numWorkers, cost int, log zerolog.Logger) *Hasher {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{
		jobs:    make(chan func(), queueBuffer),
		workers: numWorkers,
		cost:    cost,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (h *Hasher) Start(ctx context.Context) {
	h.log.Info().Int("workers", h.workers).Int("cost", h.cost).Msg("starting password hashing pool")
	for i := 0; i < h.workers; i++ {
		go h.runWorker(ctx)
	}
}

// Hash derives a salted bcrypt digest of password on a pool worker.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	var digest string
	err := h.submit(ctx, func() error {
		start := time.Now()
		b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		digest = string(b)
		return nil
	})
	return digest, err
}

// Compare verifies password against a stored digest on a pool worker.
// A mismatch surfaces as bcrypt.ErrMismatchedHashAndPassword.
func (h *Hasher) Compare(ctx context.Context, hashed, password string) error {
	return h.submit(ctx, func() error {
		start := time.Now()
		err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
		metrics.PasswordHashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())
		return err
	})
}

func (h *Hasher) submit(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	job := func() {
		if ctx.Err() != nil {
			done <- ctx.Err()
			return
		}
		done <- fn()
	}

	metrics.HashQueueDepth.Inc()
	select {
	case h.jobs <- job:
	case <-ctx.Done():
		metrics.HashQueueDepth.Dec()
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-h.jobs:
			if !ok {
				return
			}
			metrics.HashQueueDepth.Dec()
			job()
		}
	}
}

package ports

import (
	"context"

	"github.com/talenthq/succession-portal/internal/core/domain"
)

// CredentialRepository persists user records for one role's collection.
// Create must enforce username uniqueness atomically; the service-level
// existence check is only a fast path.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

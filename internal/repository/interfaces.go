package repository

import (
	"context"

	"github.com/brokerz/brokerz-auth/internal/domain"
)

// UserRepository exposes persistence for portal accounts.
type UserRepository interface {
	// Create inserts a new account and returns its assigned id. It returns
	// domain.ErrDuplicateCredential when (email, portal) already exists.
	Create(ctx context.Context, user domain.User) (int64, error)
	// GetByEmail looks up an account by normalized email within a portal.
	GetByEmail(ctx context.Context, email string, portal domain.Portal) (domain.User, error)
	// GetByID looks up an account by id across portals.
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

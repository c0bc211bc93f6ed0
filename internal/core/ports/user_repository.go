package ports

import (
	"context"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// UserRepository defines persistence operations for credential records.
type UserRepository interface {
	// Create persists a new user. A duplicate identity fails with
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByIdentity looks a user up by email or username.
	FindByIdentity(ctx context.Context, identity string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	// Delete removes the record permanently; there is no soft delete.
	Delete(ctx context.Context, id uint) error
}

package ports

import (
	"context"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// PublicProfile is the client-facing view of an authenticated identity.
// ID is signed: 0 is the master sentinel and negative values identify
// tenant-name logins, so neither can collide with stored user ids.
type PublicProfile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
	ClientID *uint  `json:"client_id,omitempty"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token string
	User  *PublicProfile
}

// AuthService defines the authentication use cases.
type AuthService interface {
	// Login resolves credentials in a fixed precedence order: configured
	// master identity, then user by email/username, then client by name.
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	// ChangePassword verifies currentPassword when supplied, then stores a
	// new hash for newPassword.
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) (*domain.User, error)
	Profile(ctx context.Context, userID uint) (*domain.User, error)
	// Navigation derives the menu entries available to the actor from its
	// tenant's plan features. Master sees the full menu.
	Navigation(ctx context.Context, role string, subjectID int64, clientID *uint) ([]string, error)
}

package ports

import (
	"context"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// UpdatePlanInput carries a partial plan update. Features, when present,
// are validated against the closed feature enum.
type UpdatePlanInput struct {
	Name        *string
	Features    map[string]bool
	DefaultPlan *bool
}

// CreateUserInput carries the data for an admin-created user.
type CreateUserInput struct {
	Email       string
	Username    string
	Password    string
	Role        string
	ClientID    *uint
	Permissions map[string]bool
}

// UpdateUserInput carries a partial user update by an admin.
type UpdateUserInput struct {
	Email       *string
	Username    *string
	Role        *string
	Permissions map[string]bool
}

// AdminService defines the master/admin management use cases.
type AdminService interface {
	ListPlans(ctx context.Context) ([]*domain.Plan, error)
	// CreatePlan validates features against the closed enum; an unknown key
	// fails with domain.ErrUnknownFeature.
	CreatePlan(ctx context.Context, name string, features map[string]bool, defaultPlan bool) (*domain.Plan, error)
	UpdatePlan(ctx context.Context, id uint, in UpdatePlanInput) (*domain.Plan, error)
	// ChangeClientPlan resolves the plan by name when planName is non-empty,
	// otherwise by planID.
	ChangeClientPlan(ctx context.Context, clientID uint, planName string, planID *uint) (*domain.Client, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*domain.User, error)
	ChangeUserRole(ctx context.Context, id uint, role string) (*domain.User, error)
	SetUserPassword(ctx context.Context, id uint, password string) (*domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

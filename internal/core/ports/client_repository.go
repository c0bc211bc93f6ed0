package ports

import (
	"context"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// ClientRepository defines persistence operations for tenants.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	// FindByID loads a client with its plan preloaded.
	FindByID(ctx context.Context, id uint) (*domain.Client, error)
	// FindByName matches the client name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	UpdatePlan(ctx context.Context, clientID, planID uint) (*domain.Client, error)
	Delete(ctx context.Context, id uint) error
}

// PlanRepository defines persistence operations for plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	FindByID(ctx context.Context, id uint) (*domain.Plan, error)
	FindByName(ctx context.Context, name string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
}

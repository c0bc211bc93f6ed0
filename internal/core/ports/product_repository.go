package ports

import (
	"context"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	// List returns products newest-first; a non-nil clientID scopes the
	// result to a single tenant.
	List(ctx context.Context, clientID *uint) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

// PedidoRepository defines persistence operations for orders.
type PedidoRepository interface {
	Create(ctx context.Context, pedido *domain.Pedido) (*domain.Pedido, error)
	FindByID(ctx context.Context, id uint) (*domain.Pedido, error)
	// List returns orders newest-first with their product preloaded.
	List(ctx context.Context) ([]*domain.Pedido, error)
	Update(ctx context.Context, pedido *domain.Pedido) (*domain.Pedido, error)
	Delete(ctx context.Context, id uint) error
}

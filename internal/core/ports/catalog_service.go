package ports

import (
	"context"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// CreateProductInput carries the data for a new catalog product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	ClientID    *uint
}

// UpdateProductInput carries a partial product update; nil fields are left
// untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	ClientID    *uint
}

// ProductService defines catalog use cases.
type ProductService interface {
	List(ctx context.Context, clientID *uint) ([]*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uint, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

// CreatePedidoInput carries the data for a new order.
type CreatePedidoInput struct {
	ClienteNome string
	ProdutoID   uint
	Quantidade  int
}

// UpdatePedidoInput carries a partial order update; nil fields are left
// untouched. A status change must follow the order state machine.
type UpdatePedidoInput struct {
	ClienteNome *string
	ProdutoID   *uint
	Quantidade  *int
	Status      *domain.PedidoStatus
}

// PedidoService defines order use cases.
type PedidoService interface {
	List(ctx context.Context) ([]*domain.Pedido, error)
	Create(ctx context.Context, in CreatePedidoInput) (*domain.Pedido, error)
	Update(ctx context.Context, id uint, in UpdatePedidoInput) (*domain.Pedido, error)
	Delete(ctx context.Context, id uint) error
}

// CreateClientInput carries the data for a new tenant.
type CreateClientInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	PlanName string
	PlanID   *uint
}

// UpdateClientInput carries a partial tenant update.
type UpdateClientInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	Blocked  *bool
	Paid     *bool
}

// ClientService defines tenant use cases.
type ClientService interface {
	List(ctx context.Context) ([]*domain.Client, error)
	Get(ctx context.Context, id uint) (*domain.Client, error)
	Create(ctx context.Context, in CreateClientInput) (*domain.Client, error)
	Update(ctx context.Context, id uint, in UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id uint) error
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// AccessResolver implements ports.AccessResolver on top of the client and
// product repositories. It is the single read path used by feature checks.
type AccessResolver struct {
	clients  ports.ClientRepository
	products ports.ProductRepository
}

func NewAccessResolver(clients ports.ClientRepository, products ports.ProductRepository) *AccessResolver {
	return &AccessResolver{clients: clients, products: products}
}

// FeaturesForClient loads the client's subscribed plan features. A client
// without a plan gets an empty set, which denies every feature.
func (r *AccessResolver) FeaturesForClient(ctx context.Context, clientID uint) (domain.FeatureSet, error) {
	client, err := r.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Plan == nil {
		return domain.FeatureSet{}, nil
	}
	return client.Plan.Features, nil
}

// OwnerOfProduct returns the owning tenant of a product, or nil for unowned
// products. An unknown product resolves to nil rather than an error so the
// caller falls through to its missing-tenant handling.
func (r *AccessResolver) OwnerOfProduct(ctx context.Context, productID uint) (*uint, error) {
	product, err := r.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve product owner: %w", err)
	}
	return product.ClientID, nil
}

package ports

import (
	"context"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// AccessResolver supplies the tenant/plan lookups required by feature-gated
// authorization checks.
type AccessResolver interface {
	// FeaturesForClient loads the feature set of the client's subscribed
	// plan. A client without a plan resolves to an empty (all-deny) set.
	FeaturesForClient(ctx context.Context, clientID uint) (domain.FeatureSet, error)
	// OwnerOfProduct infers the owning tenant of a product, or nil when the
	// product is unowned.
	OwnerOfProduct(ctx context.Context, productID uint) (*uint, error)
}

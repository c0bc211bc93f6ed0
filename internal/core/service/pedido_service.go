package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jbinformatica/pedidos-api/internal/metrics"
	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// PedidoService implements order use cases. Creating an order enqueues a
// WhatsApp notification for asynchronous delivery.
type PedidoService struct {
	repo     ports.PedidoRepository
	products ports.ProductRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewPedidoService(
	repo ports.PedidoRepository,
	products ports.ProductRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *PedidoService {
	return &PedidoService{repo: repo, products: products, notifier: notifier, log: log}
}

func (s *PedidoService) List(ctx context.Context) ([]*domain.Pedido, error) {
	return s.repo.List(ctx)
}

func (s *PedidoService) Create(ctx context.Context, in ports.CreatePedidoInput) (*domain.Pedido, error) {
	product, err := s.products.FindByID(ctx, in.ProdutoID)
	if err != nil {
		return nil, err
	}

	pedido, err := s.repo.Create(ctx, &domain.Pedido{
		ClienteNome: in.ClienteNome,
		ProdutoID:   in.ProdutoID,
		Quantidade:  in.Quantidade,
		Status:      domain.StatusPendente,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create pedido")
		return nil, err
	}

	s.notifier.Enqueue(ports.OrderNotification{
		PedidoID:    pedido.ID,
		ClientID:    product.ClientID,
		ClienteNome: pedido.ClienteNome,
		ProductName: product.Name,
		Quantidade:  pedido.Quantidade,
	})

	s.log.Info().Uint("pedido_id", pedido.ID).Msg("pedido created")
	metrics.PedidosCreatedTotal.Inc()
	return pedido, nil
}

func (s *PedidoService) Update(ctx context.Context, id uint, in ports.UpdatePedidoInput) (*domain.Pedido, error) {
	pedido, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.ProdutoID != nil {
		if _, err := s.products.FindByID(ctx, *in.ProdutoID); err != nil {
			return nil, err
		}
		pedido.ProdutoID = *in.ProdutoID
	}
	if in.ClienteNome != nil {
		pedido.ClienteNome = *in.ClienteNome
	}
	if in.Quantidade != nil {
		pedido.Quantidade = *in.Quantidade
	}
	if in.Status != nil && *in.Status != pedido.Status {
		if !domain.ValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, *in.Status)
		}
		if !pedido.Status.CanTransitionTo(*in.Status) {
			return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, pedido.Status, *in.Status)
		}
		pedido.Status = *in.Status
	}

	updated, err := s.repo.Update(ctx, pedido)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("pedido_id", id).Msg("pedido updated")
	return updated, nil
}

func (s *PedidoService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("pedido_id", id).Msg("pedido deleted")
	return nil
}

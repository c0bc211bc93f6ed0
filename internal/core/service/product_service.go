package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// ProductService implements catalog CRUD.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) List(ctx context.Context, clientID *uint) ([]*domain.Product, error) {
	return s.repo.List(ctx, clientID)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	product, err := s.repo.Create(ctx, &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		ClientID:    in.ClientID,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		return nil, err
	}
	s.log.Info().Uint("product_id", product.ID).Msg("product created")
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.ClientID != nil {
		product.ClientID = in.ClientID
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("product_id", id).Msg("product deleted")
	return nil
}

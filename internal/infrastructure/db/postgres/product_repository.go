package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// ProductRepository implements ports.ProductRepository on PostgreSQL.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	record := productFromDomain(product)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return record.toDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, clientID *uint) ([]*domain.Product, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]*domain.Product, len(records))
	for i := range records {
		products[i] = records[i].toDomain()
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	record := productFromDomain(product)
	result := r.db.WithContext(ctx).Model(&productRecord{ID: product.ID}).Updates(map[string]any{
		"name":        record.Name,
		"description": record.Description,
		"price":       record.Price,
		"image_url":   record.ImageURL,
		"client_id":   record.ClientID,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrProductNotFound
	}
	return r.FindByID(ctx, product.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// PedidoRepository implements ports.PedidoRepository on PostgreSQL.
type PedidoRepository struct {
	db *gorm.DB
}

func NewPedidoRepository(db *gorm.DB) *PedidoRepository {
	return &PedidoRepository{db: db}
}

func (r *PedidoRepository) Create(ctx context.Context, pedido *domain.Pedido) (*domain.Pedido, error) {
	record := pedidoFromDomain(pedido)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("create pedido: %w", err)
	}
	return record.toDomain(), nil
}

func (r *PedidoRepository) FindByID(ctx context.Context, id uint) (*domain.Pedido, error) {
	var record pedidoRecord
	err := r.db.WithContext(ctx).Preload("Produto").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPedidoNotFound
		}
		return nil, fmt.Errorf("find pedido: %w", err)
	}
	return record.toDomain(), nil
}

func (r *PedidoRepository) List(ctx context.Context) ([]*domain.Pedido, error) {
	var records []pedidoRecord
	err := r.db.WithContext(ctx).
		Preload("Produto").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	pedidos := make([]*domain.Pedido, len(records))
	for i := range records {
		pedidos[i] = records[i].toDomain()
	}
	return pedidos, nil
}

func (r *PedidoRepository) Update(ctx context.Context, pedido *domain.Pedido) (*domain.Pedido, error) {
	record := pedidoFromDomain(pedido)
	result := r.db.WithContext(ctx).Model(&pedidoRecord{ID: pedido.ID}).Updates(map[string]any{
		"cliente_nome": record.ClienteNome,
		"produto_id":   record.ProdutoID,
		"quantidade":   record.Quantidade,
		"status":       record.Status,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("update pedido: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrPedidoNotFound
	}
	return r.FindByID(ctx, pedido.ID)
}

func (r *PedidoRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&pedidoRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete pedido: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPedidoNotFound
	}
	return nil
}

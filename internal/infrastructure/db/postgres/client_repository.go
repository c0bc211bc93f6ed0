package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// ClientRepository implements ports.ClientRepository on PostgreSQL.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	record := clientFromDomain(client)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return record.toDomain(), nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*domain.Client, error) {
	var record clientRecord
	err := r.db.WithContext(ctx).Preload("Plan").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return record.toDomain(), nil
}

// FindByName matches case-insensitively; client names double as login
// identifiers.
func (r *ClientRepository) FindByName(ctx context.Context, name string) (*domain.Client, error) {
	var record clientRecord
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("LOWER(name) = LOWER(?)", name).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client by name: %w", err)
	}
	return record.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	var records []clientRecord
	if err := r.db.WithContext(ctx).Preload("Plan").Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	clients := make([]*domain.Client, len(records))
	for i := range records {
		clients[i] = records[i].toDomain()
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	record := clientFromDomain(client)
	result := r.db.WithContext(ctx).Model(&clientRecord{ID: client.ID}).Updates(map[string]any{
		"name":          record.Name,
		"email":         record.Email,
		"phone":         record.Phone,
		"password_hash": record.PasswordHash,
		"blocked":       record.Blocked,
		"paid":          record.Paid,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrClientNotFound
	}
	return r.FindByID(ctx, client.ID)
}

func (r *ClientRepository) UpdatePlan(ctx context.Context, clientID, planID uint) (*domain.Client, error) {
	result := r.db.WithContext(ctx).
		Model(&clientRecord{ID: clientID}).
		Update("plan_id", planID)
	if result.Error != nil {
		return nil, fmt.Errorf("update client plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrClientNotFound
	}
	return r.FindByID(ctx, clientID)
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&clientRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

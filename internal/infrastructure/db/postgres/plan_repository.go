package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jbinformatica/pedidos-api/internal/core/domain"
)

// PlanRepository implements ports.PlanRepository on PostgreSQL.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	record := planFromDomain(plan)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrPlanExists
		}
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return record.toDomain(), nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id uint) (*domain.Plan, error) {
	var record planRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan: %w", err)
	}
	return record.toDomain(), nil
}

func (r *PlanRepository) FindByName(ctx context.Context, name string) (*domain.Plan, error) {
	var record planRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("find plan by name: %w", err)
	}
	return record.toDomain(), nil
}

func (r *PlanRepository) List(ctx context.Context) ([]*domain.Plan, error) {
	var records []planRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	plans := make([]*domain.Plan, len(records))
	for i := range records {
		plans[i] = records[i].toDomain()
	}
	return plans, nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	record := planFromDomain(plan)
	result := r.db.WithContext(ctx).Model(&planRecord{ID: plan.ID}).Updates(map[string]any{
		"name":         record.Name,
		"features":     record.Features,
		"default_plan": record.DefaultPlan,
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrPlanExists
		}
		return nil, fmt.Errorf("update plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrPlanNotFound
	}
	return r.FindByID(ctx, plan.ID)
}

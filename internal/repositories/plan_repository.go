package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
)

type IPlanRepository interface {
	GetPlanById(ctx context.Context, planID string) (*db_models.Plan, error)
	GetPlanBySlug(ctx context.Context, slug string) (*db_models.Plan, error)
	GetActivePlans(ctx context.Context) ([]db_models.Plan, error)
	GetAllPlans(ctx context.Context) ([]db_models.Plan, error)
	Insert(ctx context.Context, plan *db_models.Plan) error
	Update(ctx context.Context, plan *db_models.Plan) error
	Delete(ctx context.Context, planID string) error
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p *PlanRepository) GetPlanById(ctx context.Context, planID string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p *PlanRepository) GetPlanBySlug(ctx context.Context, slug string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p *PlanRepository) GetActivePlans(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (p *PlanRepository) GetAllPlans(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).Order("created_at ASC").Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (p *PlanRepository) Insert(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Create(plan).Error
}

func (p *PlanRepository) Update(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Save(plan).Error
}

func (p *PlanRepository) Delete(ctx context.Context, planID string) error {
	return p.db.WithContext(ctx).Delete(&db_models.Plan{}, "id = ?", planID).Error
}

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
)

type ICommissionRepository interface {
	ListByAssociate(ctx context.Context, associateID string, page, pageSize int) ([]db_models.Commission, error)
	GetById(ctx context.Context, id string) (*db_models.Commission, error)
	Update(ctx context.Context, c *db_models.Commission) error
}

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) ICommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) ListByAssociate(ctx context.Context, associateID string, page, pageSize int) ([]db_models.Commission, error) {
	var commissions []db_models.Commission
	err := r.db.WithContext(ctx).
		Where("associate_id = ?", associateID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&commissions).Error

	if err != nil {
		return nil, err
	}

	return commissions, nil
}

func (r *CommissionRepository) GetById(ctx context.Context, id string) (*db_models.Commission, error) {
	var c db_models.Commission
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &c, nil
}

func (r *CommissionRepository) Update(ctx context.Context, c *db_models.Commission) error {
	return r.db.WithContext(ctx).Save(c).Error
}

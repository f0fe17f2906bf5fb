package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
)

type ISubscriptionRepository interface {
	GetActiveByUser(ctx context.Context, userID string) (*db_models.Subscription, error)
	GetById(ctx context.Context, id string) (*db_models.Subscription, error)
	Update(ctx context.Context, sub *db_models.Subscription) error
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetActiveByUser returns the single active, unexpired subscription the UI
// assumes, newest first if data ever violates that assumption.
func (s *SubscriptionRepository) GetActiveByUser(ctx context.Context, userID string) (*db_models.Subscription, error) {
	now := time.Now().Unix()

	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND (ends_at IS NULL OR ends_at > ?)",
			userID, db_models.SubStatusActive, now).
		Order("starts_at DESC").
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

func (s *SubscriptionRepository) GetById(ctx context.Context, id string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).First(&sub, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

func (s *SubscriptionRepository) Update(ctx context.Context, sub *db_models.Subscription) error {
	return s.db.WithContext(ctx).Save(sub).Error
}

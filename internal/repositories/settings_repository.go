package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tradewise/internal/models/db_models"
)

type ISettingsRepository interface {
	GetAll(ctx context.Context) ([]db_models.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) ISettingsRepository {
	return &SettingsRepository{db: db}
}

func (s *SettingsRepository) GetAll(ctx context.Context) ([]db_models.Setting, error) {
	var settings []db_models.Setting
	err := s.db.WithContext(ctx).Find(&settings).Error

	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *SettingsRepository) Upsert(ctx context.Context, key, value string) error {
	setting := db_models.Setting{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

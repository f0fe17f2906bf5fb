package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
)

type IDownloadRepository interface {
	ListFiles(ctx context.Context) ([]db_models.DownloadFile, error)
	GetFileById(ctx context.Context, id string) (*db_models.DownloadFile, error)
	CountLogsSince(ctx context.Context, userID string, since int64) (int64, error)
	InsertLog(ctx context.Context, log *db_models.DownloadLog) error
}

type DownloadRepository struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) IDownloadRepository {
	return &DownloadRepository{db: db}
}

func (d *DownloadRepository) ListFiles(ctx context.Context) ([]db_models.DownloadFile, error) {
	var files []db_models.DownloadFile
	err := d.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&files).Error

	if err != nil {
		return nil, err
	}

	return files, nil
}

func (d *DownloadRepository) GetFileById(ctx context.Context, id string) (*db_models.DownloadFile, error) {
	var file db_models.DownloadFile
	err := d.db.WithContext(ctx).First(&file, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &file, nil
}

func (d *DownloadRepository) CountLogsSince(ctx context.Context, userID string, since int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&db_models.DownloadLog{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error

	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *DownloadRepository) InsertLog(ctx context.Context, log *db_models.DownloadLog) error {
	return d.db.WithContext(ctx).Create(log).Error
}

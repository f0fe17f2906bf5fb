package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tradewise/internal/models/db_models"
)

type IContentRepository interface {
	ListAnalyses(ctx context.Context, publishedOnly bool, page, pageSize int) ([]db_models.Analysis, error)
	GetAnalysisBySlug(ctx context.Context, slug string) (*db_models.Analysis, error)
	SaveAnalysis(ctx context.Context, a *db_models.Analysis) error
	DeleteAnalysis(ctx context.Context, id string) error

	ListTutorials(ctx context.Context, publishedOnly bool, page, pageSize int) ([]db_models.Tutorial, error)
	GetTutorialBySlug(ctx context.Context, slug string) (*db_models.Tutorial, error)
	SaveTutorial(ctx context.Context, t *db_models.Tutorial) error
	DeleteTutorial(ctx context.Context, id string) error

	ListFAQs(ctx context.Context) ([]db_models.FAQ, error)
	SaveFAQ(ctx context.Context, f *db_models.FAQ) error
	DeleteFAQ(ctx context.Context, id string) error
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) IContentRepository {
	return &ContentRepository{db: db}
}

func (c *ContentRepository) ListAnalyses(ctx context.Context, publishedOnly bool, page, pageSize int) ([]db_models.Analysis, error) {
	q := c.db.WithContext(ctx).Model(&db_models.Analysis{})
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var analyses []db_models.Analysis
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&analyses).Error

	if err != nil {
		return nil, err
	}

	return analyses, nil
}

func (c *ContentRepository) GetAnalysisBySlug(ctx context.Context, slug string) (*db_models.Analysis, error) {
	var a db_models.Analysis
	err := c.db.WithContext(ctx).First(&a, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &a, nil
}

func (c *ContentRepository) SaveAnalysis(ctx context.Context, a *db_models.Analysis) error {
	return c.db.WithContext(ctx).Save(a).Error
}

func (c *ContentRepository) DeleteAnalysis(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Delete(&db_models.Analysis{}, "id = ?", id).Error
}

func (c *ContentRepository) ListTutorials(ctx context.Context, publishedOnly bool, page, pageSize int) ([]db_models.Tutorial, error) {
	q := c.db.WithContext(ctx).Model(&db_models.Tutorial{})
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var tutorials []db_models.Tutorial
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tutorials).Error

	if err != nil {
		return nil, err
	}

	return tutorials, nil
}

func (c *ContentRepository) GetTutorialBySlug(ctx context.Context, slug string) (*db_models.Tutorial, error) {
	var t db_models.Tutorial
	err := c.db.WithContext(ctx).First(&t, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &t, nil
}

func (c *ContentRepository) SaveTutorial(ctx context.Context, t *db_models.Tutorial) error {
	return c.db.WithContext(ctx).Save(t).Error
}

func (c *ContentRepository) DeleteTutorial(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Delete(&db_models.Tutorial{}, "id = ?", id).Error
}

func (c *ContentRepository) ListFAQs(ctx context.Context) ([]db_models.FAQ, error) {
	var faqs []db_models.FAQ
	err := c.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("position ASC").
		Find(&faqs).Error

	if err != nil {
		return nil, err
	}

	return faqs, nil
}

func (c *ContentRepository) SaveFAQ(ctx context.Context, f *db_models.FAQ) error {
	return c.db.WithContext(ctx).Save(f).Error
}

func (c *ContentRepository) DeleteFAQ(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Delete(&db_models.FAQ{}, "id = ?", id).Error
}

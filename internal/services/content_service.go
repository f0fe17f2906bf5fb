package services

import (
	"context"
	"time"

	"tradewise/internal/models/db_models"
	"tradewise/internal/models/request_models"
	"tradewise/internal/models/response_models"
	"tradewise/internal/repositories"
	"tradewise/pkg/utils"
)

type ContentServiceInterface interface {
	ListAnalyses(ctx context.Context, userID string, page, pageSize int) ([]response_models.AnalysisResponse, error)
	GetAnalysis(ctx context.Context, userID, slug string) (*response_models.AnalysisResponse, error)
	ListTutorials(ctx context.Context, userID string, page, pageSize int) ([]response_models.TutorialResponse, error)
	GetTutorial(ctx context.Context, userID, slug string) (*response_models.TutorialResponse, error)
	ListFAQs(ctx context.Context) ([]response_models.FAQResponse, error)

	SaveAnalysis(ctx context.Context, req request_models.UpsertAnalysisRequest) error
	DeleteAnalysis(ctx context.Context, id string) error
	SaveTutorial(ctx context.Context, req request_models.UpsertTutorialRequest) error
	DeleteTutorial(ctx context.Context, id string) error
	SaveFAQ(ctx context.Context, req request_models.UpsertFAQRequest) error
	DeleteFAQ(ctx context.Context, id string) error
}

type ContentService struct {
	contentRepo repositories.IContentRepository
	subRepo     repositories.ISubscriptionRepository
}

func NewContentService(contentRepo repositories.IContentRepository, subRepo repositories.ISubscriptionRepository) ContentServiceInterface {
	return &ContentService{
		contentRepo: contentRepo,
		subRepo:     subRepo,
	}
}

// hasPremiumAccess reports whether the user holds an active subscription.
// Anonymous users (empty id) never do.
func (c *ContentService) hasPremiumAccess(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	sub, err := c.subRepo.GetActiveByUser(ctx, userID)
	return err == nil && sub != nil
}

func validatePagination(page, pageSize int) error {
	if page < 1 {
		return utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return utils.ErrInvalidPageSize
	}
	return nil
}

func (c *ContentService) ListAnalyses(ctx context.Context, userID string, page, pageSize int) ([]response_models.AnalysisResponse, error) {
	if err := validatePagination(page, pageSize); err != nil {
		return nil, err
	}

	analyses, err := c.contentRepo.ListAnalyses(ctx, true, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	premium := c.hasPremiumAccess(ctx, userID)
	result := make([]response_models.AnalysisResponse, 0, len(analyses))
	for i := range analyses {
		result = append(result, toAnalysisResponse(&analyses[i], premium))
	}

	return result, nil
}

func (c *ContentService) GetAnalysis(ctx context.Context, userID, slug string) (*response_models.AnalysisResponse, error) {
	a, err := c.contentRepo.GetAnalysisBySlug(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if a == nil || !a.IsPublished {
		return nil, utils.ErrContentNotFound
	}

	resp := toAnalysisResponse(a, c.hasPremiumAccess(ctx, userID))
	return &resp, nil
}

func toAnalysisResponse(a *db_models.Analysis, premiumAccess bool) response_models.AnalysisResponse {
	locked := a.IsPremium && !premiumAccess
	resp := response_models.AnalysisResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Summary:     a.Summary,
		IsPremium:   a.IsPremium,
		Locked:      locked,
		PublishedAt: a.PublishedAt,
	}
	if !locked {
		resp.Body = a.Body
	}
	return resp
}

func (c *ContentService) ListTutorials(ctx context.Context, userID string, page, pageSize int) ([]response_models.TutorialResponse, error) {
	if err := validatePagination(page, pageSize); err != nil {
		return nil, err
	}

	tutorials, err := c.contentRepo.ListTutorials(ctx, true, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	premium := c.hasPremiumAccess(ctx, userID)
	result := make([]response_models.TutorialResponse, 0, len(tutorials))
	for i := range tutorials {
		result = append(result, toTutorialResponse(&tutorials[i], premium))
	}

	return result, nil
}

func (c *ContentService) GetTutorial(ctx context.Context, userID, slug string) (*response_models.TutorialResponse, error) {
	t, err := c.contentRepo.GetTutorialBySlug(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if t == nil || !t.IsPublished {
		return nil, utils.ErrContentNotFound
	}

	resp := toTutorialResponse(t, c.hasPremiumAccess(ctx, userID))
	return &resp, nil
}

func toTutorialResponse(t *db_models.Tutorial, premiumAccess bool) response_models.TutorialResponse {
	locked := t.IsPremium && !premiumAccess
	resp := response_models.TutorialResponse{
		ID:        t.ID,
		Title:     t.Title,
		Slug:      t.Slug,
		IsPremium: t.IsPremium,
		Locked:    locked,
	}
	if !locked {
		resp.Body = t.Body
		resp.VideoURL = t.VideoURL
	}
	return resp
}

func (c *ContentService) ListFAQs(ctx context.Context) ([]response_models.FAQResponse, error) {
	faqs, err := c.contentRepo.ListFAQs(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.FAQResponse, 0, len(faqs))
	for _, f := range faqs {
		result = append(result, response_models.FAQResponse{
			ID:       f.ID,
			Question: f.Question,
			Answer:   f.Answer,
			Position: f.Position,
		})
	}

	return result, nil
}

// ------------------- Admin -------------------

func (c *ContentService) SaveAnalysis(ctx context.Context, req request_models.UpsertAnalysisRequest) error {
	// Upsert keyed by slug.
	a, err := c.contentRepo.GetAnalysisBySlug(ctx, req.Slug)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if a == nil {
		a = &db_models.Analysis{}
	}

	wasPublished := a.IsPublished
	a.Title = req.Title
	a.Slug = req.Slug
	a.Summary = req.Summary
	a.Body = req.Body
	a.IsPremium = req.IsPremium
	a.IsPublished = req.IsPublished
	if req.IsPublished && !wasPublished {
		now := time.Now().Unix()
		a.PublishedAt = &now
	}

	if err := c.contentRepo.SaveAnalysis(ctx, a); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ContentService) DeleteAnalysis(ctx context.Context, id string) error {
	if err := c.contentRepo.DeleteAnalysis(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ContentService) SaveTutorial(ctx context.Context, req request_models.UpsertTutorialRequest) error {
	t, err := c.contentRepo.GetTutorialBySlug(ctx, req.Slug)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if t == nil {
		t = &db_models.Tutorial{}
	}

	t.Title = req.Title
	t.Slug = req.Slug
	t.Body = req.Body
	t.VideoURL = req.VideoURL
	t.IsPremium = req.IsPremium
	t.IsPublished = req.IsPublished

	if err := c.contentRepo.SaveTutorial(ctx, t); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ContentService) DeleteTutorial(ctx context.Context, id string) error {
	if err := c.contentRepo.DeleteTutorial(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ContentService) SaveFAQ(ctx context.Context, req request_models.UpsertFAQRequest) error {
	f := &db_models.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
		Position: req.Position,
	}
	if req.IsPublished != nil {
		f.IsPublished = *req.IsPublished
	} else {
		f.IsPublished = true
	}

	if err := c.contentRepo.SaveFAQ(ctx, f); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (c *ContentService) DeleteFAQ(ctx context.Context, id string) error {
	if err := c.contentRepo.DeleteFAQ(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

package services

import (
	"context"
	"time"

	"tradewise/internal/models/db_models"
	"tradewise/internal/models/response_models"
	"tradewise/internal/repositories"
	"tradewise/pkg/utils"
)

type SubscriptionServiceInterface interface {
	GetActive(ctx context.Context, userID string) (*response_models.SubscriptionResponse, error)
	Cancel(ctx context.Context, userID string) error
}

type SubscriptionService struct {
	subRepo repositories.ISubscriptionRepository
}

func NewSubscriptionService(subRepo repositories.ISubscriptionRepository) SubscriptionServiceInterface {
	return &SubscriptionService{
		subRepo: subRepo,
	}
}

func (s *SubscriptionService) GetActive(ctx context.Context, userID string) (*response_models.SubscriptionResponse, error) {
	sub, err := s.subRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}

	return &response_models.SubscriptionResponse{
		ID:        sub.ID,
		PlanID:    sub.PlanID,
		PlanName:  sub.PlanName,
		PlanType:  string(sub.PlanType),
		Status:    string(sub.Status),
		StartsAt:  sub.StartsAt,
		EndsAt:    sub.EndsAt,
		AutoRenew: sub.AutoRenew,
	}, nil
}

// Cancel marks the subscription cancelled and turns off auto-renew; the
// active lookup stops returning it immediately.
func (s *SubscriptionService) Cancel(ctx context.Context, userID string) error {
	sub, err := s.subRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if sub == nil {
		return utils.ErrSubscriptionNotFound
	}

	now := time.Now().Unix()
	sub.Status = db_models.SubStatusCancelled
	sub.CancelledAt = &now
	sub.AutoRenew = false

	if err := s.subRepo.Update(ctx, sub); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

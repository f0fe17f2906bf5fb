package services

import (
	"context"

	"github.com/google/uuid"
	"tradewise/internal/models/db_models"
	"tradewise/internal/models/response_models"
	"tradewise/internal/repositories"
	"tradewise/pkg/utils"
)

type CommissionServiceInterface interface {
	ListByAssociate(ctx context.Context, associateID string, page, pageSize int) ([]response_models.CommissionResponse, error)
	UpdateStatus(ctx context.Context, commissionID string, status string) error
}

type CommissionService struct {
	commissionRepo repositories.ICommissionRepository
}

func NewCommissionService(commissionRepo repositories.ICommissionRepository) CommissionServiceInterface {
	return &CommissionService{commissionRepo: commissionRepo}
}

func (c *CommissionService) ListByAssociate(ctx context.Context, associateID string, page, pageSize int) ([]response_models.CommissionResponse, error) {
	if err := validatePagination(page, pageSize); err != nil {
		return nil, err
	}

	commissions, err := c.commissionRepo.ListByAssociate(ctx, associateID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.CommissionResponse, 0, len(commissions))
	for _, cm := range commissions {
		result = append(result, response_models.CommissionResponse{
			ID:            cm.ID,
			TransactionID: cm.TransactionID,
			Amount:        cm.Amount,
			RatePct:       cm.RatePct,
			Currency:      cm.Currency,
			Status:        string(cm.Status),
			CreatedAt:     cm.CreatedAt,
		})
	}

	return result, nil
}

// UpdateStatus moves a commission along pending -> approved -> paid. Only the
// forward direction is allowed, payouts are never un-paid in the system.
func (c *CommissionService) UpdateStatus(ctx context.Context, commissionID string, status string) error {
	next := db_models.CommissionStatus(status)
	if next != db_models.CommissionStatusApproved && next != db_models.CommissionStatusPaid {
		return utils.ErrInvalidCommissionStatus
	}

	if _, err := uuid.Parse(commissionID); err != nil {
		return utils.ErrCommissionNotFound
	}

	cm, err := c.commissionRepo.GetById(ctx, commissionID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if cm == nil {
		return utils.ErrCommissionNotFound
	}

	switch {
	case cm.Status == db_models.CommissionStatusPending && next == db_models.CommissionStatusApproved:
	case cm.Status == db_models.CommissionStatusApproved && next == db_models.CommissionStatusPaid:
	default:
		return utils.ErrInvalidCommissionStatus
	}

	cm.Status = next
	if err := c.commissionRepo.Update(ctx, cm); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

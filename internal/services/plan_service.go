package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"tradewise/internal/models/db_models"
	"tradewise/internal/models/request_models"
	"tradewise/internal/models/response_models"
	"tradewise/internal/repositories"
	"tradewise/pkg/utils"
)

type PlanServiceInterface interface {
	GetActivePlans(ctx context.Context) ([]response_models.PlanResponse, error)
	GetAllPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	GetPlan(ctx context.Context, idOrSlug string) (*response_models.PlanResponse, error)

	CreatePlan(ctx context.Context, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error)
	UpdatePlan(ctx context.Context, planID string, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error)
	DeletePlan(ctx context.Context, planID string) error
}

type PlanService struct {
	planRepo repositories.IPlanRepository
	settings SettingsServiceInterface
}

func NewPlanService(planRepo repositories.IPlanRepository, settings SettingsServiceInterface) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
		settings: settings,
	}
}

func (p *PlanService) GetActivePlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetActivePlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	taxRate := p.settings.TaxRatePercent()
	result := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toPlanResponse(&plans[i], taxRate))
	}

	return result, nil
}

// GetAllPlans is the admin view: inactive plans included.
func (p *PlanService) GetAllPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetAllPlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	taxRate := p.settings.TaxRatePercent()
	result := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toPlanResponse(&plans[i], taxRate))
	}

	return result, nil
}

func (p *PlanService) GetPlan(ctx context.Context, idOrSlug string) (*response_models.PlanResponse, error) {
	plan, err := p.findPlan(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	resp := toPlanResponse(plan, p.settings.TaxRatePercent())
	return &resp, nil
}

// findPlan accepts either a plan id or a slug. Anything that does not parse
// as a uuid goes down the slug path, postgres chokes on malformed uuid input.
func (p *PlanService) findPlan(ctx context.Context, idOrSlug string) (*db_models.Plan, error) {
	var plan *db_models.Plan
	var err error
	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		plan, err = p.planRepo.GetPlanById(ctx, idOrSlug)
	} else {
		plan, err = p.planRepo.GetPlanBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}
	return plan, nil
}

func (p *PlanService) CreatePlan(ctx context.Context, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error) {
	plan := &db_models.Plan{}
	applyPlanRequest(plan, req)

	if err := p.planRepo.Insert(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(plan, p.settings.TaxRatePercent())
	return &resp, nil
}

func (p *PlanService) UpdatePlan(ctx context.Context, planID string, req request_models.UpsertPlanRequest) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	applyPlanRequest(plan, req)
	if err := p.planRepo.Update(ctx, plan); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toPlanResponse(plan, p.settings.TaxRatePercent())
	return &resp, nil
}

func (p *PlanService) DeletePlan(ctx context.Context, planID string) error {
	plan, err := p.planRepo.GetPlanById(ctx, planID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if plan == nil {
		return utils.ErrPlanNotFound
	}

	if err := p.planRepo.Delete(ctx, planID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func applyPlanRequest(plan *db_models.Plan, req request_models.UpsertPlanRequest) {
	plan.Name = req.Name
	plan.Slug = req.Slug
	plan.PlanType = db_models.PlanType(req.PlanType)
	plan.MonthlyPrice = req.MonthlyPrice
	plan.YearlyPrice = req.YearlyPrice
	plan.LifetimePrice = req.LifetimePrice
	if req.Currency != "" {
		plan.Currency = req.Currency
	}
	if req.Features != nil {
		if raw, err := json.Marshal(req.Features); err == nil {
			plan.Features = datatypes.JSON(raw)
		}
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	plan.IsPopular = req.IsPopular
	plan.IsFeatured = req.IsFeatured
	plan.DownloadQuota = req.DownloadQuota
	plan.BadgeText = req.BadgeText
}

func toPlanResponse(plan *db_models.Plan, taxRate float64) response_models.PlanResponse {
	price, _ := plan.Price()

	var features []string
	if len(plan.Features) > 0 {
		_ = json.Unmarshal(plan.Features, &features)
	}

	return response_models.PlanResponse{
		ID:            plan.ID,
		Name:          plan.Name,
		Slug:          plan.Slug,
		PlanType:      string(plan.PlanType),
		Price:         price,
		Currency:      plan.Currency,
		Features:      features,
		IsActive:      plan.IsActive,
		IsPopular:     plan.IsPopular,
		IsFeatured:    plan.IsFeatured,
		DownloadQuota: plan.DownloadQuota,
		BadgeText:     plan.BadgeText,
		TaxRate:       taxRate,
		TaxAmount:     utils.TaxAmount(price, taxRate),
		Total:         utils.TotalWithTax(price, taxRate),
	}
}

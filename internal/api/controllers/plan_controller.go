package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tradewise/internal/models/request_models"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// ListPlans godoc
// @Summary List active subscription plans
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	plans, err := p.planService.GetActivePlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// ListAllPlans godoc
// @Summary List all plans, inactive included (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [get]
func (p *PlanController) ListAllPlans(c *gin.Context) {
	plans, err := p.planService.GetAllPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlan godoc
// @Summary Get a plan by id or slug
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID or slug"
// @Success 200 {object} utils.APIResponse
// @Router /plans/{id} [get]
func (p *PlanController) GetPlan(c *gin.Context) {
	plan, err := p.planService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

// CreatePlan godoc
// @Summary Create a plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.UpsertPlanRequest true "Plan"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [post]
func (p *PlanController) CreatePlan(c *gin.Context) {
	var request request_models.UpsertPlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan, err := p.planService.CreatePlan(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan created successfully")
}

// UpdatePlan godoc
// @Summary Update a plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.UpsertPlanRequest true "Plan"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans/{id} [put]
func (p *PlanController) UpdatePlan(c *gin.Context) {
	var request request_models.UpsertPlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan, err := p.planService.UpdatePlan(c.Request.Context(), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan updated successfully")
}

// DeletePlan godoc
// @Summary Delete a plan
// @Tags Admin
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans/{id} [delete]
func (p *PlanController) DeletePlan(c *gin.Context) {
	if err := p.planService.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Plan deleted successfully")
}

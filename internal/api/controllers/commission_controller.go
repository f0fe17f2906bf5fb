package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type CommissionController struct {
	commissionService services.CommissionServiceInterface
}

func NewCommissionController(commissionService services.CommissionServiceInterface) *CommissionController {
	return &CommissionController{
		commissionService: commissionService,
	}
}

// ListMine godoc
// @Summary List the calling associate's commissions
// @Tags Commissions
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /commissions [get]
func (cc *CommissionController) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	commissions, err := cc.commissionService.ListByAssociate(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, commissions, "Commissions fetched successfully")
}

// UpdateStatus godoc
// @Summary Approve or mark a commission as paid
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Commission ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/commissions/{id}/status [put]
func (cc *CommissionController) UpdateStatus(c *gin.Context) {
	var request struct {
		Status string `json:"status" binding:"required,oneof=approved paid"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := cc.commissionService.UpdateStatus(c.Request.Context(), c.Param("id"), request.Status); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Commission updated successfully")
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// GetActive godoc
// @Summary Get the caller's active subscription
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/active [get]
func (s *SubscriptionController) GetActive(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := s.subscriptionService.GetActive(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, "Subscription fetched successfully")
}

// Cancel godoc
// @Summary Cancel the caller's active subscription
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/cancel [post]
func (s *SubscriptionController) Cancel(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := s.subscriptionService.Cancel(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscription cancelled")
}

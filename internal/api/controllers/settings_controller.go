package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tradewise/internal/models/request_models"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type SettingsController struct {
	settingsService services.SettingsServiceInterface
}

func NewSettingsController(settingsService services.SettingsServiceInterface) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
	}
}

// GetSettings godoc
// @Summary Get public site settings
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /settings [get]
func (s *SettingsController) GetSettings(c *gin.Context) {
	utils.RespondSuccess(c, s.settingsService.Snapshot(), "Settings fetched successfully")
}

// UpsertSetting godoc
// @Summary Create or update a setting
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.UpsertSettingRequest true "Setting"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/settings [put]
func (s *SettingsController) UpsertSetting(c *gin.Context) {
	var request request_models.UpsertSettingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.settingsService.Upsert(c.Request.Context(), request.Key, request.Value); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Setting saved successfully")
}

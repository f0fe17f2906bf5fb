package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tradewise/internal/models/request_models"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type ContentController struct {
	contentService services.ContentServiceInterface
}

func NewContentController(contentService services.ContentServiceInterface) *ContentController {
	return &ContentController{
		contentService: contentService,
	}
}

// ListAnalyses godoc
// @Summary List published market analyses
// @Description Premium rows are returned locked for callers without an active subscription
// @Tags Content
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /analyses [get]
func (ct *ContentController) ListAnalyses(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	analyses, err := ct.contentService.ListAnalyses(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, analyses, "Analyses fetched successfully")
}

// GetAnalysis godoc
// @Summary Get a single analysis by slug
// @Tags Content
// @Produce json
// @Param slug path string true "Analysis slug"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /analyses/{slug} [get]
func (ct *ContentController) GetAnalysis(c *gin.Context) {
	analysis, err := ct.contentService.GetAnalysis(c.Request.Context(), c.GetString("user_id"), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, analysis, "Analysis fetched successfully")
}

// ListTutorials godoc
// @Summary List published tutorials
// @Tags Content
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tutorials [get]
func (ct *ContentController) ListTutorials(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	tutorials, err := ct.contentService.ListTutorials(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tutorials, "Tutorials fetched successfully")
}

// GetTutorial godoc
// @Summary Get a single tutorial by slug
// @Tags Content
// @Produce json
// @Param slug path string true "Tutorial slug"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tutorials/{slug} [get]
func (ct *ContentController) GetTutorial(c *gin.Context) {
	tutorial, err := ct.contentService.GetTutorial(c.Request.Context(), c.GetString("user_id"), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tutorial, "Tutorial fetched successfully")
}

// ListFAQs godoc
// @Summary List published FAQs
// @Tags Content
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /faqs [get]
func (ct *ContentController) ListFAQs(c *gin.Context) {
	faqs, err := ct.contentService.ListFAQs(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, faqs, "FAQs fetched successfully")
}

// ------------------- Admin -------------------

func (ct *ContentController) SaveAnalysis(c *gin.Context) {
	var request request_models.UpsertAnalysisRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ct.contentService.SaveAnalysis(c.Request.Context(), request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Analysis saved successfully")
}

func (ct *ContentController) DeleteAnalysis(c *gin.Context) {
	if err := ct.contentService.DeleteAnalysis(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Analysis deleted successfully")
}

func (ct *ContentController) SaveTutorial(c *gin.Context) {
	var request request_models.UpsertTutorialRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ct.contentService.SaveTutorial(c.Request.Context(), request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Tutorial saved successfully")
}

func (ct *ContentController) DeleteTutorial(c *gin.Context) {
	if err := ct.contentService.DeleteTutorial(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Tutorial deleted successfully")
}

func (ct *ContentController) SaveFAQ(c *gin.Context) {
	var request request_models.UpsertFAQRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ct.contentService.SaveFAQ(c.Request.Context(), request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "FAQ saved successfully")
}

func (ct *ContentController) DeleteFAQ(c *gin.Context) {
	if err := ct.contentService.DeleteFAQ(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "FAQ deleted successfully")
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type DownloadController struct {
	downloadService services.DownloadServiceInterface
}

func NewDownloadController(downloadService services.DownloadServiceInterface) *DownloadController {
	return &DownloadController{
		downloadService: downloadService,
	}
}

// ListFiles godoc
// @Summary List downloadable files
// @Tags Downloads
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /downloads [get]
func (d *DownloadController) ListFiles(c *gin.Context) {
	files, err := d.downloadService.ListFiles(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, files, "Files fetched successfully")
}

// IssueLink godoc
// @Summary Request a short-lived download link for a file
// @Description Counts against the caller's plan quota for premium files
// @Tags Downloads
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /downloads/{id}/link [post]
func (d *DownloadController) IssueLink(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	link, err := d.downloadService.IssueLink(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, link, "Download link issued")
}

// Fetch redeems a signed link produced by IssueLink. The signature in the
// query string is the only credential checked here.
func (d *DownloadController) Fetch(c *gin.Context) {
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid expiry")
		return
	}

	file, err := d.downloadService.ResolveLink(c.Request.Context(), c.Param("id"), expires, c.Query("sig"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.FileAttachment(file.ObjectPath, file.Name)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tradewise/internal/models/request_models"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Login godoc
// @Summary Log in with email and password
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login Request"
// @Success 200 {object} utils.APIResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var request request_models.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "Logged in successfully")
}

// Register godoc
// @Summary Register a new account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Sign Up Request"
// @Success 200 {object} utils.APIResponse
// @Router /accounts/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var request request_models.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account created successfully")
}

// Me godoc
// @Summary Get the caller's profile
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/me [get]
func (a *AccountController) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := a.accountService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"role":          user.Role,
		"referral_code": user.ReferralCode,
	}, "Profile fetched successfully")
}

// UpdateRole godoc
// @Summary Change a user's role (admin)
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id}/role [put]
func (a *AccountController) UpdateRole(c *gin.Context) {
	var request struct {
		Role string `json:"role" binding:"required,oneof=user admin associate"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := a.accountService.SetRole(c.Request.Context(), c.Param("id"), request.Role)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{
		"id":            user.ID,
		"role":          user.Role,
		"referral_code": user.ReferralCode,
	}, "Role updated successfully")
}

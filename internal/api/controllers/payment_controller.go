package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tradewise/internal/models/request_models"
	"tradewise/internal/services"
	"tradewise/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (int, int, bool) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}

	return page, pageSize, true
}

// CreateOrder godoc
// @Summary Create a payment order for a subscription plan
// @Description Creates a pending transaction and a gateway order for the given plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateOrderRequest true "Create Order Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/create-order [post]
func (p *PaymentController) CreateOrder(c *gin.Context) {
	var request request_models.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := p.paymentService.CreateOrder(c.Request.Context(), userID, request.PlanID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Order created successfully")
}

// VerifyPayment godoc
// @Summary Verify a completed checkout
// @Description Verifies the gateway signature and activates the subscription
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.VerifyPaymentRequest true "Verify Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/verify [post]
func (p *PaymentController) VerifyPayment(c *gin.Context) {
	var request request_models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := p.paymentService.VerifyPayment(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Payment verified successfully")
}

// ListTransactions godoc
// @Summary List the caller's transactions
// @Tags Payments
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/transactions [get]
func (p *PaymentController) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	txns, err := p.paymentService.ListTransactions(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txns, "Transactions fetched successfully")
}

// GetTransaction godoc
// @Summary Get a single transaction
// @Tags Payments
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/transactions/{id} [get]
func (p *PaymentController) GetTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	txn, err := p.paymentService.GetTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txn, "Transaction fetched successfully")
}

// HandleWebhook receives gateway callbacks. Authentication is the webhook
// signature itself, never a user token.
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	p.paymentService.HandleWebhook(c)
}

package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinels to HTTP responses. Verification
// failures deliberately carry a support-facing message: retrying a signature
// mismatch cannot change the outcome.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrPlanInactive):
		RespondError(c, http.StatusBadRequest, "Plan is no longer available")
	case errors.Is(err, ErrPlanNotBillable):
		RespondError(c, http.StatusBadRequest, "Plan cannot be purchased")
	case errors.Is(err, ErrTransactionNotFound):
		RespondError(c, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, ErrTransactionClosed):
		RespondError(c, http.StatusConflict, "Transaction already settled")
	case errors.Is(err, ErrSignatureMismatch):
		RespondError(c, http.StatusBadRequest,
			"Payment verification failed. Please contact support with your transaction id.")
	case errors.Is(err, ErrGatewayUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "Payment gateway unavailable, please try again")
	case errors.Is(err, ErrGatewayRejected):
		RespondError(c, http.StatusBadGateway, "Payment gateway rejected the request")
	case errors.Is(err, ErrSubscriptionNotFound):
		RespondError(c, http.StatusNotFound, "No active subscription")
	case errors.Is(err, ErrSubscriptionRequired):
		RespondError(c, http.StatusForbidden, "An active subscription is required")
	case errors.Is(err, ErrQuotaExceeded):
		RespondError(c, http.StatusForbidden, "Download quota exceeded for this billing period")
	case errors.Is(err, ErrContentNotFound):
		RespondError(c, http.StatusNotFound, "Content not found")
	case errors.Is(err, ErrSettingNotFound):
		RespondError(c, http.StatusNotFound, "Setting not found")
	case errors.Is(err, ErrCommissionNotFound):
		RespondError(c, http.StatusNotFound, "Commission not found")
	case errors.Is(err, ErrInvalidCommissionStatus):
		RespondError(c, http.StatusBadRequest, "Invalid commission status change")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrInvalidRole):
		RespondError(c, http.StatusBadRequest, "Invalid role")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

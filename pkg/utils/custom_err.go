package utils

import "errors"

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrPlanInactive    = errors.New("plan is not active")
	ErrPlanNotBillable = errors.New("plan has no billable price")

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionClosed   = errors.New("transaction already settled")
	ErrSignatureMismatch   = errors.New("payment signature verification failed")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrGatewayRejected     = errors.New("payment gateway rejected the request")

	ErrSubscriptionNotFound = errors.New("no active subscription")
	ErrSubscriptionRequired = errors.New("active subscription required")
	ErrQuotaExceeded        = errors.New("download quota exceeded")

	ErrContentNotFound = errors.New("content not found")
	ErrSettingNotFound = errors.New("setting not found")

	ErrCommissionNotFound      = errors.New("commission not found")
	ErrInvalidCommissionStatus = errors.New("invalid commission status change")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
)

package request_models

type CreateOrderRequest struct {
	PlanID   string `json:"planId" binding:"required"`
	PlanType string `json:"planType"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID        string `json:"razorpayOrderId" binding:"required"`
	RazorpayPaymentID      string `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature      string `json:"razorpaySignature" binding:"required"`
	RazorpaySubscriptionID string `json:"razorpaySubscriptionId"`
	TransactionID          string `json:"transactionId" binding:"required"`
	PlanID                 string `json:"planId" binding:"required"`
	PlanType               string `json:"planType"`
}

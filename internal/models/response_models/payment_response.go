package response_models

import "github.com/google/uuid"

// CreateOrderResponse carries everything the checkout widget needs to open.
type CreateOrderResponse struct {
	TransactionID  uuid.UUID `json:"transactionId"`
	OrderID        string    `json:"orderId"`
	SubscriptionID string    `json:"subscriptionId,omitempty"`
	Amount         int64     `json:"amount"` // minor units (paise)
	Currency       string    `json:"currency"`
	Key            string    `json:"key"` // gateway public key
	PlanName       string    `json:"planName"`
}

type TransactionResponse struct {
	ID                uuid.UUID `json:"id"`
	PlanID            uuid.UUID `json:"plan_id"`
	BaseAmount        float64   `json:"base_amount"`
	TaxAmount         float64   `json:"tax_amount"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	RazorpayOrderID   string    `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	CreatedAt         int64     `json:"created_at"`
	PaidAt            *int64    `json:"paid_at,omitempty"`
	ErrorMessage      string    `json:"error_message,omitempty"`
}

type VerifyPaymentResponse struct {
	TransactionID uuid.UUID `json:"transactionId"`
	PaymentID     string    `json:"paymentId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
}

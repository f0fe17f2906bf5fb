package gateway

import (
	"context"
)

// CreateOrderParams describes one gateway order. Amount is in minor currency
// units (paise).
type CreateOrderParams struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]interface{}
}

// Order is the gateway-side order the checkout widget is opened with.
type Order struct {
	ID          string
	AmountMinor int64
	Currency    string
	Receipt     string
	Status      string
}

// Gateway abstracts the payment provider so the checkout flow can run against
// a fake in tests. Signature checks never leave the process.
type Gateway interface {
	CreateOrder(ctx context.Context, p CreateOrderParams) (*Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
	// KeyID is the public key the client-side checkout script is handed.
	KeyID() string
}

package response_models

import "github.com/google/uuid"

type CommissionResponse struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	RatePct       float64   `json:"rate_pct"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     int64     `json:"created_at"`
}

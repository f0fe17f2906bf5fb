package response_models

import "github.com/google/uuid"

type PlanResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	PlanType      string    `json:"plan_type"`
	Price         float64   `json:"price"`
	Currency      string    `json:"currency"`
	Features      []string  `json:"features,omitempty"`
	IsActive      bool      `json:"is_active"`
	IsPopular     bool      `json:"is_popular"`
	IsFeatured    bool      `json:"is_featured"`
	DownloadQuota int32     `json:"download_quota,omitempty"`
	BadgeText     string    `json:"badge_text,omitempty"`

	// Display breakdown computed from current settings at read time; checkout
	// persists its own copy on the transaction.
	TaxRate   float64 `json:"tax_rate"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

package response_models

import "github.com/google/uuid"

type SubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	PlanID    uuid.UUID `json:"plan_id"`
	PlanName  string    `json:"plan_name"`
	PlanType  string    `json:"plan_type"`
	Status    string    `json:"status"`
	StartsAt  int64     `json:"starts_at"`
	EndsAt    *int64    `json:"ends_at,omitempty"`
	AutoRenew bool      `json:"auto_renew"`
}

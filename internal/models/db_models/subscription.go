package db_models

import (
	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubStatusPending   SubscriptionStatus = "pending"
	SubStatusActive    SubscriptionStatus = "active"
	SubStatusExpired   SubscriptionStatus = "expired"
	SubStatusCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	BaseModel
	UserID uuid.UUID `gorm:"index"`
	PlanID uuid.UUID `gorm:"index"`

	// Denormalized for display so the subscription page survives plan edits.
	PlanName string
	PlanType PlanType

	Status   SubscriptionStatus `gorm:"index"`
	StartsAt int64              `gorm:"not null"`
	// Nil for lifetime plans.
	EndsAt      *int64
	CancelledAt *int64
	AutoRenew   bool `gorm:"default:true"`

	Provider               string
	RazorpaySubscriptionID string `gorm:"index"`

	User User `gorm:"foreignKey:UserID"`
	Plan Plan `gorm:"foreignKey:PlanID"`
}

package db_models

import (
	"github.com/google/uuid"
)

type CommissionStatus string

const (
	CommissionStatusPending  CommissionStatus = "pending"
	CommissionStatusApproved CommissionStatus = "approved"
	CommissionStatusPaid     CommissionStatus = "paid"
)

// Commission is earned by a business associate when a transaction attributed
// to their referral code settles.
type Commission struct {
	BaseModel
	AssociateID   uuid.UUID `gorm:"index"`
	TransactionID uuid.UUID `gorm:"uniqueIndex"`

	Amount   float64 // commission payout in major units
	RatePct  float64 // rate applied at settlement time
	Currency string  `gorm:"size:3"`
	Status   CommissionStatus `gorm:"index;default:pending"`

	Associate   User        `gorm:"foreignKey:AssociateID"`
	Transaction Transaction `gorm:"foreignKey:TransactionID"`
}

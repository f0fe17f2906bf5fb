package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending TransactionStatus = "pending"
	TxnStatusSuccess TransactionStatus = "success"
	TxnStatusFailed  TransactionStatus = "failed"
)

type Transaction struct {
	BaseModel
	UserID uuid.UUID `gorm:"index"`
	PlanID uuid.UUID `gorm:"index"`

	// Base, tax and total are fixed at order time so invoices never recompute
	// either direction from the tax rate in force at render time.
	BaseAmount float64
	TaxAmount  float64
	Amount     float64 // tax-inclusive total
	TaxRate    float64 // percent applied at order time
	Currency   string  `gorm:"size:3"`

	Status TransactionStatus `gorm:"index;default:pending"`

	PlanType PlanType

	// Gateway linkage. OrderID is set at initiation, PaymentID and the
	// signature outcome only after verification.
	Provider               string `gorm:"index"`
	RazorpayOrderID        string `gorm:"index"`
	RazorpayPaymentID      string `gorm:"index"`
	RazorpaySubscriptionID string

	PaidAt       *int64
	ErrorMessage string

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User User `gorm:"foreignKey:UserID"`
	Plan Plan `gorm:"foreignKey:PlanID"`
}

// Closed reports whether the transaction reached a terminal state. Only
// pending rows may be verified or settled.
func (t *Transaction) Closed() bool {
	return t.Status == TxnStatusSuccess || t.Status == TxnStatusFailed
}

package db_models

import (
	"gorm.io/datatypes"
)

type PlanType string

const (
	PlanTypeMonthly  PlanType = "monthly"
	PlanTypeYearly   PlanType = "yearly"
	PlanTypeLifetime PlanType = "lifetime"
	PlanTypeCustom   PlanType = "custom"
)

type Plan struct {
	BaseModel
	Name     string
	Slug     string   `gorm:"uniqueIndex"` // e.g. "pro-monthly"
	PlanType PlanType `gorm:"index"`

	// Exactly the price matching PlanType is expected to be set; the others
	// stay null. Amounts are in major currency units (999 = ₹999).
	MonthlyPrice  *float64
	YearlyPrice   *float64
	LifetimePrice *float64

	Currency string `gorm:"size:3;default:INR"`

	// Ordered feature strings rendered on the pricing page.
	Features datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	IsActive   bool `gorm:"default:true"`
	IsPopular  bool `gorm:"default:false"`
	IsFeatured bool `gorm:"default:false"`

	// Max file downloads per billing period; 0 means unlimited.
	DownloadQuota int32  `gorm:"default:0"`
	BadgeText     string // e.g. "Best value"
}

// Price resolves the price field matching the plan type. Custom plans bill
// like lifetime ones (one charge, no recurring window).
func (p *Plan) Price() (float64, bool) {
	var price *float64
	switch p.PlanType {
	case PlanTypeMonthly:
		price = p.MonthlyPrice
	case PlanTypeYearly:
		price = p.YearlyPrice
	case PlanTypeLifetime, PlanTypeCustom:
		price = p.LifetimePrice
	}
	if price == nil || *price <= 0 {
		return 0, false
	}
	return *price, true
}

package db_models

type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Phone        string
	Role         string `gorm:"default:user"` // "user" | "admin" | "associate"

	// Referral linkage for business associates. ReferralCode is the code this
	// user hands out (associates only); ReferredBy is the code used at signup.
	ReferralCode string `gorm:"index"`
	ReferredBy   string `gorm:"index"`
}

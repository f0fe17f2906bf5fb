package db_models

import (
	"github.com/google/uuid"
)

// DownloadFile is a downloadable asset (report, dataset, template).
type DownloadFile struct {
	BaseModel
	Name        string
	Description string
	ObjectPath  string // storage key, never exposed directly
	SizeBytes   int64
	IsPremium   bool `gorm:"default:true"`
	IsPublished bool `gorm:"default:false;index"`
}

// DownloadLog records one issued download link, counted against the plan's
// per-period quota.
type DownloadLog struct {
	BaseModel
	UserID uuid.UUID `gorm:"index"`
	FileID uuid.UUID `gorm:"index"`

	User User         `gorm:"foreignKey:UserID"`
	File DownloadFile `gorm:"foreignKey:FileID"`
}

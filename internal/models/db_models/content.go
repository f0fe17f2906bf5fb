package db_models

// Analysis is a market-analysis article. Premium rows are only served to
// users holding an active subscription.
type Analysis struct {
	BaseModel
	Title       string
	Slug        string `gorm:"uniqueIndex"`
	Summary     string
	Body        string
	IsPremium   bool `gorm:"default:false"`
	IsPublished bool `gorm:"default:false;index"`
	PublishedAt *int64
}

type Tutorial struct {
	BaseModel
	Title       string
	Slug        string `gorm:"uniqueIndex"`
	Body        string
	VideoURL    string
	IsPremium   bool `gorm:"default:false"`
	IsPublished bool `gorm:"default:false;index"`
}

type FAQ struct {
	BaseModel
	Question    string
	Answer      string
	Position    int32 `gorm:"default:0"`
	IsPublished bool  `gorm:"default:true"`
}

package request_models

type UpsertPlanRequest struct {
	Name          string   `json:"name" binding:"required"`
	Slug          string   `json:"slug" binding:"required"`
	PlanType      string   `json:"plan_type" binding:"required,oneof=monthly yearly lifetime custom"`
	MonthlyPrice  *float64 `json:"monthly_price"`
	YearlyPrice   *float64 `json:"yearly_price"`
	LifetimePrice *float64 `json:"lifetime_price"`
	Currency      string   `json:"currency"`
	Features      []string `json:"features"`
	IsActive      *bool    `json:"is_active"`
	IsPopular     bool     `json:"is_popular"`
	IsFeatured    bool     `json:"is_featured"`
	DownloadQuota int32    `json:"download_quota"`
	BadgeText     string   `json:"badge_text"`
}

type UpsertSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type UpsertAnalysisRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Summary     string `json:"summary"`
	Body        string `json:"body" binding:"required"`
	IsPremium   bool   `json:"is_premium"`
	IsPublished bool   `json:"is_published"`
}

type UpsertTutorialRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Body        string `json:"body"`
	VideoURL    string `json:"video_url"`
	IsPremium   bool   `json:"is_premium"`
	IsPublished bool   `json:"is_published"`
}

type UpsertFAQRequest struct {
	Question    string `json:"question" binding:"required"`
	Answer      string `json:"answer" binding:"required"`
	Position    int32  `json:"position"`
	IsPublished *bool  `json:"is_published"`
}

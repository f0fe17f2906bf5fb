package response_models

import "github.com/google/uuid"

type AnalysisResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Body        string    `json:"body,omitempty"` // omitted for locked premium rows
	IsPremium   bool      `json:"is_premium"`
	Locked      bool      `json:"locked"`
	PublishedAt *int64    `json:"published_at,omitempty"`
}

type TutorialResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	IsPremium bool      `json:"is_premium"`
	Locked    bool      `json:"locked"`
}

type FAQResponse struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Position int32     `json:"position"`
}

type DownloadFileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	IsPremium   bool      `json:"is_premium"`
}

type DownloadLinkResponse struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

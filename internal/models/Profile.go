package models

type Profile struct {
	ID          int64     `json:"id" validate:"required|min:1"`
	Name        string    `json:"name" validate:"required"`
	LinkedInURL string    `json:"linkedin_url" validate:"required"`
	Type        string    `json:"type"`
	CreatedAt   Timestamp `json:"created_at"`
}

type ProfileInput struct {
	Name        string `json:"name" validate:"required"`
	LinkedInURL string `json:"linkedin_url" validate:"required"`
}

type UploadResult struct {
	Message string   `json:"message"`
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

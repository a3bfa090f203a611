package models

type Post struct {
	ID             int64      `json:"id" validate:"required|min:1"`
	ProfileID      int64      `json:"profile_id" validate:"required|min:1"`
	PostText       string     `json:"post_text"`
	Summary        *string    `json:"summary"`
	Category       *string    `json:"category"`
	SuggestedReply *string    `json:"suggested_reply"`
	PostURL        *string    `json:"post_url"`
	PostTimestamp  *Timestamp `json:"post_timestamp"`
	CreatedAt      *Timestamp `json:"created_at"`
}

// DisplayTime is the post timestamp, falling back to the ingestion time.
func (p *Post) DisplayTime() *Timestamp {
	if p.PostTimestamp != nil && !p.PostTimestamp.IsZero() {
		return p.PostTimestamp
	}
	if p.CreatedAt != nil && !p.CreatedAt.IsZero() {
		return p.CreatedAt
	}
	return nil
}

// StringOr dereferences an optional backend string.
func StringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

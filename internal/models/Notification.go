package models

type Notification struct {
	ID        int64      `json:"id" validate:"required|min:1"`
	Title     string     `json:"title" validate:"required"`
	Body      string     `json:"body"`
	Type      string     `json:"type"`
	IsRead    Flag       `json:"is_read"`
	CreatedAt *Timestamp `json:"created_at"`
}

type UnreadCount struct {
	Count int `json:"count" validate:"min:0"`
}

package models

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// EmailSettings mirrors the backend payload. SMTPPassword is only ever sent,
// the value read back is a presence marker and never rendered.
type EmailSettings struct {
	NotifyEmail  string `json:"notify_email"`
	SMTPUser     string `json:"smtp_user"`
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     string `json:"smtp_port"`
	SMTPPassword string `json:"smtp_password"`
}

func (s *EmailSettings) PasswordStored() bool {
	return s.SMTPPassword != ""
}

type LinkedInSettings struct {
	Configured bool   `json:"linkedin_configured"`
	AuthMethod string `json:"auth_method"`
}

type Health struct {
	Status string `json:"status"`
}

type Message struct {
	Message string `json:"message"`
}

package models

// Status kinds shared by toasts and inline status lines. The values double as
// CSS class names.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindLoading = "loading"
)

type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type StatusLine struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type UploadState string

const (
	UploadIdle      UploadState = "idle"
	UploadUploading UploadState = "uploading"
	UploadSuccess   UploadState = "success"
	UploadError     UploadState = "error"
)

// UploadView is the CSV import surface as last published by the workflow.
type UploadView struct {
	State           UploadState `json:"state"`
	Status          StatusLine  `json:"status"`
	ControlDisabled bool        `json:"control_disabled"`
}

// Open reports whether the import surface is shown.
func (u UploadView) Open() bool {
	return u.State != UploadIdle && u.State != ""
}

// ProfileDraft keeps the add-profile form populated after a failed submit.
type ProfileDraft struct {
	Name        string     `json:"name"`
	LinkedInURL string     `json:"linkedin_url"`
	Open        bool       `json:"open"`
	Status      StatusLine `json:"status"`
}

// EmailDraft keeps the email settings form populated after a failed save.
// The password is never stored.
type EmailDraft struct {
	NotifyEmail string     `json:"notify_email"`
	SMTPUser    string     `json:"smtp_user"`
	SMTPHost    string     `json:"smtp_host"`
	SMTPPort    string     `json:"smtp_port"`
	Status      StatusLine `json:"status"`
	Saved       bool       `json:"saved"`
}

// JobView is the manual job trigger surface. Running disables the control.
type JobView struct {
	Status  StatusLine `json:"status"`
	Running bool       `json:"running"`
}

// Section snapshots. Failed marks a load that must render the fixed failure
// placeholder instead of the records.
type ProfilesView struct {
	Profiles []Profile `json:"profiles"`
	Failed   bool      `json:"failed"`
}

// PostsView carries the profiles it was joined against so that a snapshot
// renders the same authors it was loaded with.
type PostsView struct {
	Posts    []Post    `json:"posts"`
	Profiles []Profile `json:"profiles"`
	Failed   bool      `json:"failed"`
}

type NotificationsView struct {
	Notifications []Notification `json:"notifications"`
	Failed        bool           `json:"failed"`
}

type BadgeView struct {
	Visible bool `json:"visible"`
	Count   int  `json:"count"`
}

// SettingsView holds what the settings tab was loaded with. A nil LinkedIn
// means the lookup failed and no status is shown.
type SettingsView struct {
	Email    EmailSettings     `json:"email"`
	LinkedIn *LinkedInSettings `json:"linkedin"`
}

// Dashboard is everything one full page render needs.
type Dashboard struct {
	User          User
	Profiles      ProfilesView
	Posts         PostsView
	Notifications NotificationsView
	Badge         BadgeView
	Settings      SettingsView

	Toast        *Toast
	Upload       UploadView
	ProfileDraft ProfileDraft
	EmailDraft   *EmailDraft
	Job          JobView
	Health       *StatusLine
}

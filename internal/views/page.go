package views

import "activitydash/internal/models"

const (
	TabProfiles      = "profiles"
	TabPosts         = "posts"
	TabNotifications = "notifications"
	TabSettings      = "settings"
)

var tabs = []struct{ id, label string }{
	{TabProfiles, "Profiles"},
	{TabPosts, "Posts"},
	{TabNotifications, "Notifications"},
	{TabSettings, "Settings"},
}

// ValidTab reports whether tab names a dashboard section.
func ValidTab(tab string) bool {
	for _, t := range tabs {
		if t.id == tab {
			return true
		}
	}
	return false
}

type PageData struct {
	Dashboard     *models.Dashboard
	Tab           string
	Modal         string
	SwitchUserURL string
}

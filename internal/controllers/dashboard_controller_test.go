package controllers

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardController_PageRendersSelectedTab(t *testing.T) {
	f := newFixture(t)
	f.backend.User = &models.User{ID: 7, DisplayName: "Ada"}
	f.backend.ProfileList = []models.Profile{{ID: 1, Name: "Grace", LinkedInURL: "https://linkedin.com/in/grace"}}
	f.backend.Unread = 3

	rr := f.page(t, "/?tab=notifications")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, "Hi, Ada")
	assert.Contains(t, body, "Grace")
	assert.Contains(t, body, `<section id="notifications" class="tab-content active">`)
	assert.Contains(t, body, `<section id="profiles" class="tab-content">`)
	assert.Contains(t, body, `style="display: inline-block">3</span>`)
	assert.Contains(t, body, `href="http://backend.test/switch-user"`)
}

func TestDashboardController_PageFallsBackToProfilesTab(t *testing.T) {
	f := newFixture(t)

	rr := f.page(t, "/?tab=admin")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `<section id="profiles" class="tab-content active">`)
}

func TestDashboardController_UnauthorizedRedirectsToLogin(t *testing.T) {
	f := newFixture(t)
	f.backend.MeErr = backend.ErrUnauthorized

	rr := f.page(t, "/")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "http://backend.test/", rr.Header().Get("Location"))
}

func TestDashboardController_ConfiguredLoginURL(t *testing.T) {
	f := newFixture(t)
	f.conf.Backend.LoginURL = "https://sso.test/login"
	f.backend.MeErr = backend.ErrUnauthorized

	rr := f.page(t, "/")

	assert.Equal(t, "https://sso.test/login", rr.Header().Get("Location"))
}

func TestDashboardController_UserFailureRendersSectionsWithoutGreeting(t *testing.T) {
	f := newFixture(t)
	f.backend.MeErr = testutil.LoadFailure("me")
	f.backend.ProfileList = []models.Profile{{ID: 3, Name: "Bob", LinkedInURL: "https://linkedin.com/in/bob"}}
	f.backend.NotificationList = []models.Notification{{ID: 4, Title: "New post"}}

	rr := f.page(t, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<span id="user-greeting"></span>`)
	assert.Contains(t, body, "Bob")
	assert.Contains(t, body, "New post")
	assert.NotContains(t, body, "Failed to load profiles")
}

func TestDashboardController_FailedSectionStillRendersPage(t *testing.T) {
	f := newFixture(t)
	f.backend.ProfilesErr = testutil.LoadFailure("profiles")

	rr := f.page(t, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to load profiles")
}

func TestDashboardController_ModalQueryOpensForm(t *testing.T) {
	f := newFixture(t)

	rr := f.page(t, "/?tab=profiles&modal=profile")

	assert.Contains(t, rr.Body.String(), `id="modal-overlay" class="modal-overlay active"`)
}

func TestDashboardController_Section(t *testing.T) {
	f := newFixture(t)
	f.backend.NotificationList = []models.Notification{{ID: 4, Title: "New post"}}
	f.backend.Unread = 1

	tests := []struct {
		section string
		code    int
		want    string
	}{
		{"profiles", http.StatusOK, `id="profiles-list"`},
		{"notifications", http.StatusOK, "New post"},
		{"badge", http.StatusOK, `id="notif-badge"`},
		{"settings", http.StatusOK, "data-command=\"settings.email.save\""},
		{"users", http.StatusNotFound, "404 page not found"},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			req := withSession(httptest.NewRequest(http.MethodGet, "/views/"+tt.section, nil))
			req.SetPathValue("section", tt.section)
			rr := httptest.NewRecorder()

			f.dashboard.Section(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
		})
	}
}

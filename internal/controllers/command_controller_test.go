package controllers

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) post(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/commands", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	f.commands.Dispatch(rr, withSession(req))
	return rr
}

func (f *fixture) upload(t *testing.T, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("command", "profile.upload"))
	require.NoError(t, mw.WriteField("tab", "profiles"))
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/commands", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	f.commands.Dispatch(rr, withSession(req))
	return rr
}

func TestCommandController_CreateProfile(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{
		"command":      {"profile.create"},
		"name":         {"  Grace  "},
		"linkedin_url": {"https://linkedin.com/in/grace"},
		"tab":          {"profiles"},
	})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?tab=profiles", rr.Header().Get("Location"))
	require.Len(t, f.backend.Created, 1)
	assert.Equal(t, models.ProfileInput{Name: "Grace", LinkedInURL: "https://linkedin.com/in/grace"}, f.backend.Created[0])
	assert.Equal(t, "Profile added successfully", f.toast())
	assert.Equal(t, backend.Session{Token: "tok"}, f.backend.Sessions[0])
}

func TestCommandController_DeleteProfileNeedsValidID(t *testing.T) {
	for _, id := range []string{"", "abc", "0", "-4"} {
		t.Run("id="+id, func(t *testing.T) {
			f := newFixture(t)

			rr := f.post(t, url.Values{"command": {"profile.delete"}, "id": {id}})

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, f.backend.Deleted)
		})
	}
}

func TestCommandController_DeleteProfile(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{"command": {"profile.delete"}, "id": {"12"}})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?tab=profiles", rr.Header().Get("Location"))
	assert.Equal(t, []int64{12}, f.backend.Deleted)
	assert.Equal(t, "Profile deleted", f.toast())
}

func TestCommandController_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{"command": {"profile.drop"}})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, f.backend.Calls)
	assert.Equal(t, 1, f.logger.Count("warn"))
}

func TestCommandController_MarkRead(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{"command": {"notification.read"}, "id": {"5"}, "tab": {"notifications"}})

	assert.Equal(t, "/?tab=notifications", rr.Header().Get("Location"))
	assert.Equal(t, []int64{5}, f.backend.MarkedRead)
}

func TestCommandController_MarkAllRead(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{"command": {"notification.read-all"}})

	assert.Equal(t, "/?tab=notifications", rr.Header().Get("Location"))
	assert.Equal(t, 1, f.backend.MarkedAll)
	assert.Equal(t, "All notifications marked as read", f.toast())
}

func TestCommandController_InvalidTabFallsBackToCommandTab(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{"command": {"job.trigger"}, "tab": {"//evil.test"}})

	assert.Equal(t, "/?tab=posts", rr.Header().Get("Location"))
	assert.Equal(t, 1, f.backend.CallCount("TriggerJob"))
}

func TestCommandController_HealthCheck(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{"command": {"health.check"}})

	assert.Equal(t, "/?tab=settings", rr.Header().Get("Location"))
	assert.Equal(t, 1, f.backend.CallCount("Health"))
}

func TestCommandController_SaveEmailSettings(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{
		"command":       {"settings.email.save"},
		"notify_email":  {"me@example.com"},
		"smtp_host":     {"smtp.example.com"},
		"smtp_port":     {"587"},
		"smtp_user":     {"me"},
		"smtp_password": {"secret"},
	})

	assert.Equal(t, "/?tab=settings", rr.Header().Get("Location"))
	require.Len(t, f.backend.SavedSettings, 1)
	assert.Equal(t, models.EmailSettings{
		NotifyEmail:  "me@example.com",
		SMTPUser:     "me",
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPPassword: "secret",
	}, f.backend.SavedSettings[0])
}

func TestCommandController_UploadCSV(t *testing.T) {
	f := newFixture(t)
	f.backend.Upload = models.UploadResult{Message: "Added 2 profiles", Added: 2}

	rr := f.upload(t, "people.csv", "name,linkedin_url\nA,https://linkedin.com/in/a\n")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?tab=profiles", rr.Header().Get("Location"))
	assert.Equal(t, "people.csv", f.backend.UploadedName)
	assert.Contains(t, f.backend.UploadedBody, "https://linkedin.com/in/a")
	assert.Equal(t, models.UploadSuccess, f.uploads.State(testSID).State)
	assert.Equal(t, "Imported 2 profile(s)", f.toast())
}

func TestCommandController_UploadWithoutFileReopensModal(t *testing.T) {
	f := newFixture(t)

	rr := f.upload(t, "", "")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	location, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "profiles", location.Query().Get("tab"))
	assert.Equal(t, "upload", location.Query().Get("modal"))
	assert.Zero(t, f.backend.CallCount("UploadCSV"))
	assert.Equal(t, "Please select a CSV file", f.toast())
}

func TestCommandController_PostRedirectGetShowsToast(t *testing.T) {
	f := newFixture(t)

	rr := f.post(t, url.Values{"command": {"profile.delete"}, "id": {"3"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	page := f.page(t, rr.Header().Get("Location"))

	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Profile deleted")
}

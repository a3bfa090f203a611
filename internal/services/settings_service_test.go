package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_LoadFailuresAreSilent(t *testing.T) {
	f := newFixture()
	f.backend.EmailErr = testutil.LoadFailure("email-settings")
	f.backend.LinkedInErr = testutil.LoadFailure("linkedin-settings")

	view := f.settings.Load(context.Background(), testReq.Session)

	assert.Equal(t, models.EmailSettings{}, view.Email)
	assert.Nil(t, view.LinkedIn)
	assert.Equal(t, 2, f.logger.Count("warn"))
	_, ok := f.toasts.Current(testReq.SID)
	assert.False(t, ok)
}

func TestSettingsService_Load(t *testing.T) {
	f := newFixture()
	f.backend.Email = models.EmailSettings{NotifyEmail: "a@b.c", SMTPPassword: "***"}
	f.backend.LinkedIn = models.LinkedInSettings{Configured: true}

	view := f.settings.Load(context.Background(), testReq.Session)

	assert.True(t, view.Email.PasswordStored())
	require.NotNil(t, view.LinkedIn)
	assert.True(t, view.LinkedIn.Configured)
}

func TestSettingsService_SaveSuccess(t *testing.T) {
	f := newFixture()
	in := models.EmailSettings{NotifyEmail: "a@b.c", SMTPHost: "smtp.b.c", SMTPPort: "587", SMTPPassword: "secret"}

	ok := f.settings.SaveEmail(context.Background(), testReq, in)

	assert.True(t, ok)
	assert.Equal(t, []models.EmailSettings{in}, f.backend.SavedSettings)
	draft := f.settings.EmailDraft(testReq.SID)
	require.NotNil(t, draft)
	assert.True(t, draft.Saved)
	assert.Equal(t, "Email settings saved!", draft.Status.Message)
	assert.Equal(t, "smtp.b.c", draft.SMTPHost)
	_, msg := f.toast()
	assert.Equal(t, "Email settings saved", msg)
	assert.NotContains(t, string(f.cache.Data[viewStateKey(testReq.SID, SectionEmailDraft)]), "secret")
}

func TestSettingsService_SaveFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"detail", &backend.APIError{Status: 400, Detail: "Invalid port"}, "Invalid port"},
		{"no detail", &backend.APIError{Status: 422}, "Failed to save"},
		{"transport", testutil.TransportFailure("save-email-settings"), "Failed to save settings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.backend.SaveErr = tt.err

			ok := f.settings.SaveEmail(context.Background(), testReq, models.EmailSettings{NotifyEmail: "a@b.c"})

			assert.False(t, ok)
			draft := f.settings.EmailDraft(testReq.SID)
			require.NotNil(t, draft)
			assert.False(t, draft.Saved)
			assert.Equal(t, models.StatusLine{Kind: models.KindError, Message: tt.status}, draft.Status)
			assert.Equal(t, "a@b.c", draft.NotifyEmail)
			_, toastShown := f.toasts.Current(testReq.SID)
			assert.False(t, toastShown)
		})
	}
}

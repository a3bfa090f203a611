package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"context"
	"time"
)

type SettingsServiceInterface interface {
	Load(ctx context.Context, s backend.Session) models.SettingsView
	SaveEmail(ctx context.Context, req Request, settings models.EmailSettings) bool
	EmailDraft(sid string) *models.EmailDraft
}

type SettingsService struct {
	backend backend.ClientInterface
	store   ViewStateServiceInterface
	toasts  ToastNotifierInterface
	logger  providers.Logger
}

func NewSettingsService(
	client backend.ClientInterface,
	store ViewStateServiceInterface,
	toasts ToastNotifierInterface,
	logger providers.Logger,
) SettingsServiceInterface {
	return &SettingsService{backend: client, store: store, toasts: toasts, logger: logger}
}

// Load reads both settings documents. Failures are only logged; the form
// falls back to empty defaults.
func (s *SettingsService) Load(ctx context.Context, session backend.Session) models.SettingsView {
	var view models.SettingsView
	if email, err := s.backend.EmailSettings(ctx, session); err != nil {
		s.logger.Warnf(providers.TypeBackend, "Could not load email settings: %s", err)
	} else {
		view.Email = *email
	}
	if li, err := s.backend.LinkedInSettings(ctx, session); err != nil {
		s.logger.Warnf(providers.TypeBackend, "Could not load LinkedIn settings: %s", err)
	} else {
		view.LinkedIn = li
	}
	return view
}

// SaveEmail stores the settings. The password is sent once and never kept
// in the draft.
func (s *SettingsService) SaveEmail(ctx context.Context, req Request, settings models.EmailSettings) bool {
	draft := models.EmailDraft{
		NotifyEmail: settings.NotifyEmail,
		SMTPUser:    settings.SMTPUser,
		SMTPHost:    settings.SMTPHost,
		SMTPPort:    settings.SMTPPort,
	}

	err := s.backend.SaveEmailSettings(ctx, req.Session, settings)
	switch {
	case err == nil:
		draft.Status = models.StatusLine{Kind: models.KindSuccess, Message: "Email settings saved!"}
		draft.Saved = true
		s.toasts.Show(req.SID, models.KindSuccess, "Email settings saved")
	case backend.IsAPIError(err):
		draft.Status = models.StatusLine{Kind: models.KindError, Message: backend.DetailOr(err, "Failed to save")}
		s.logger.Warnf(providers.TypeBackend, "Email settings rejected: %s", err)
	default:
		draft.Status = models.StatusLine{Kind: models.KindError, Message: "Failed to save settings"}
		s.logger.Errorf(providers.TypeBackend, "Email settings save failed: %s", err)
	}
	s.store.Put(req.SID, SectionEmailDraft, draft, time.Duration(0))
	return err == nil
}

// EmailDraft returns the form as last submitted, once.
func (s *SettingsService) EmailDraft(sid string) *models.EmailDraft {
	var draft models.EmailDraft
	if !s.store.Take(sid, SectionEmailDraft, &draft) {
		return nil
	}
	return &draft
}

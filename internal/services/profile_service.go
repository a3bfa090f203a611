package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"context"
	"time"
)

type ProfileServiceInterface interface {
	Create(ctx context.Context, req Request, input models.ProfileInput) bool
	Delete(ctx context.Context, req Request, id int64) bool
	Draft(sid string) models.ProfileDraft
}

type ProfileService struct {
	backend backend.ClientInterface
	store   ViewStateServiceInterface
	toasts  ToastNotifierInterface
	hooks   *Hooks
	logger  providers.Logger
}

func NewProfileService(
	client backend.ClientInterface,
	store ViewStateServiceInterface,
	toasts ToastNotifierInterface,
	hooks *Hooks,
	logger providers.Logger,
) ProfileServiceInterface {
	return &ProfileService{backend: client, store: store, toasts: toasts, hooks: hooks, logger: logger}
}

// Create adds a profile. On failure the form is kept open with the values
// the user typed.
func (p *ProfileService) Create(ctx context.Context, req Request, input models.ProfileInput) bool {
	if _, err := p.backend.CreateProfile(ctx, req.Session, input); err != nil {
		p.logger.Warnf(providers.TypeBackend, "Create profile %q: %s", input.Name, err)
		p.toasts.Show(req.SID, models.KindError, backend.DetailOr(err, "Failed to add profile"))
		p.store.Put(req.SID, SectionProfileDraft, models.ProfileDraft{
			Name:        input.Name,
			LinkedInURL: input.LinkedInURL,
			Open:        true,
		}, time.Duration(0))
		return false
	}
	p.store.Clear(req.SID, SectionProfileDraft)
	p.toasts.Show(req.SID, models.KindSuccess, "Profile added successfully")
	p.hooks.Run(ctx, req, HookProfiles)
	return true
}

// Delete removes a profile and, on the backend, its posts.
func (p *ProfileService) Delete(ctx context.Context, req Request, id int64) bool {
	if err := p.backend.DeleteProfile(ctx, req.Session, id); err != nil {
		p.logger.Warnf(providers.TypeBackend, "Delete profile %d: %s", id, err)
		p.toasts.Show(req.SID, models.KindError, "Failed to delete profile")
		return false
	}
	p.toasts.Show(req.SID, models.KindSuccess, "Profile deleted")
	p.hooks.Run(ctx, req, HookProfiles, HookPosts)
	return true
}

// Draft returns the kept form once; the next render shows it closed.
func (p *ProfileService) Draft(sid string) models.ProfileDraft {
	var draft models.ProfileDraft
	p.store.Take(sid, SectionProfileDraft, &draft)
	return draft
}

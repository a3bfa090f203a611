package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// Sections a hook has just reloaded are handed to the next render once,
// so the redirect after a mutation does not load them a second time.
const sectionHandoffTTL = 5 * time.Second

type DashboardServiceInterface interface {
	Bootstrap(ctx context.Context, req Request) (*models.Dashboard, error)
	LoadProfiles(ctx context.Context, s backend.Session) models.ProfilesView
	LoadPosts(ctx context.Context, s backend.Session) models.PostsView
	LoadNotifications(ctx context.Context, s backend.Session) models.NotificationsView
	LoadSettings(ctx context.Context, s backend.Session) models.SettingsView
	Badge(ctx context.Context, s backend.Session) models.BadgeView
}

type DashboardService struct {
	backend            backend.ClientInterface
	store              ViewStateServiceInterface
	toasts             ToastNotifierInterface
	uploads            UploadWorkflowInterface
	profiles           ProfileServiceInterface
	jobs               JobServiceInterface
	settings           SettingsServiceInterface
	badge              BadgePollerInterface
	logger             providers.Logger
	postsLimit         int
	notificationsLimit int
}

func NewDashboardService(
	conf *structures.Config,
	client backend.ClientInterface,
	store ViewStateServiceInterface,
	toasts ToastNotifierInterface,
	uploads UploadWorkflowInterface,
	profiles ProfileServiceInterface,
	jobs JobServiceInterface,
	settings SettingsServiceInterface,
	badge BadgePollerInterface,
	hooks *Hooks,
	logger providers.Logger,
) DashboardServiceInterface {
	d := &DashboardService{
		backend:            client,
		store:              store,
		toasts:             toasts,
		uploads:            uploads,
		profiles:           profiles,
		jobs:               jobs,
		settings:           settings,
		badge:              badge,
		logger:             logger,
		postsLimit:         conf.Backend.PostsLimit,
		notificationsLimit: conf.Backend.NotificationsLimit,
	}
	d.registerHooks(hooks)
	return d
}

func (d *DashboardService) registerHooks(hooks *Hooks) {
	hooks.Register(HookProfiles, "profiles", func(ctx context.Context, req Request) {
		d.store.Put(req.SID, SectionProfiles, d.LoadProfiles(ctx, req.Session), sectionHandoffTTL)
	})
	hooks.Register(HookPosts, "posts", func(ctx context.Context, req Request) {
		d.store.Put(req.SID, SectionPosts, d.LoadPosts(ctx, req.Session), sectionHandoffTTL)
	})
	hooks.Register(HookNotifications, "notifications", func(ctx context.Context, req Request) {
		d.store.Put(req.SID, SectionNotifications, d.LoadNotifications(ctx, req.Session), sectionHandoffTTL)
	})
	hooks.Register(HookNotifications, "badge", func(ctx context.Context, req Request) {
		d.store.Put(req.SID, SectionBadge, d.Badge(ctx, req.Session), sectionHandoffTTL)
	})
}

// Bootstrap resolves the signed-in user first. Only backend.ErrUnauthorized
// aborts the page; any other failure leaves the greeting empty. All sections
// then load concurrently and their failures are captured in the section views.
func (d *DashboardService) Bootstrap(ctx context.Context, req Request) (*models.Dashboard, error) {
	dash := &models.Dashboard{}
	user, err := d.backend.Me(ctx, req.Session)
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return nil, err
	case err != nil:
		d.logger.Warnf(providers.TypeGet, "Current user unavailable: %s", err)
	case user != nil:
		dash.User = *user
	}

	var g errgroup.Group
	g.Go(func() error {
		if !d.store.Take(req.SID, SectionProfiles, &dash.Profiles) {
			dash.Profiles = d.LoadProfiles(ctx, req.Session)
		}
		return nil
	})
	g.Go(func() error {
		if !d.store.Take(req.SID, SectionPosts, &dash.Posts) {
			dash.Posts = d.LoadPosts(ctx, req.Session)
		}
		return nil
	})
	g.Go(func() error {
		if !d.store.Take(req.SID, SectionNotifications, &dash.Notifications) {
			dash.Notifications = d.LoadNotifications(ctx, req.Session)
		}
		return nil
	})
	g.Go(func() error {
		if !d.store.Take(req.SID, SectionBadge, &dash.Badge) {
			dash.Badge = d.Badge(ctx, req.Session)
		}
		return nil
	})
	g.Go(func() error {
		dash.Settings = d.settings.Load(ctx, req.Session)
		return nil
	})
	_ = g.Wait()

	if toast, ok := d.toasts.Current(req.SID); ok {
		dash.Toast = &toast
	}
	dash.Upload = d.uploads.Consume(req.SID)
	dash.ProfileDraft = d.profiles.Draft(req.SID)
	dash.EmailDraft = d.settings.EmailDraft(req.SID)
	dash.Job = d.jobs.JobView(req.SID)
	dash.Health = d.jobs.HealthStatus(req.SID)
	return dash, nil
}

func (d *DashboardService) LoadProfiles(ctx context.Context, s backend.Session) models.ProfilesView {
	profiles, err := d.backend.Profiles(ctx, s)
	if err != nil {
		d.logger.Warnf(providers.TypeBackend, "%s", err)
		return models.ProfilesView{Failed: true}
	}
	return models.ProfilesView{Profiles: profiles}
}

// LoadPosts fetches posts and profiles together; the join needs both. A
// failed profiles read leaves every author unresolved.
func (d *DashboardService) LoadPosts(ctx context.Context, s backend.Session) models.PostsView {
	var (
		posts    []models.Post
		profiles []models.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = d.backend.Posts(gctx, s, d.postsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		if profiles, err = d.backend.Profiles(gctx, s); err != nil {
			d.logger.Warnf(providers.TypeBackend, "Posts rendered without authors: %s", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		d.logger.Warnf(providers.TypeBackend, "%s", err)
		return models.PostsView{Failed: true}
	}
	return models.PostsView{Posts: posts, Profiles: profiles}
}

func (d *DashboardService) LoadNotifications(ctx context.Context, s backend.Session) models.NotificationsView {
	items, err := d.backend.Notifications(ctx, s, d.notificationsLimit)
	if err != nil {
		d.logger.Warnf(providers.TypeBackend, "%s", err)
		return models.NotificationsView{Failed: true}
	}
	return models.NotificationsView{Notifications: items}
}

func (d *DashboardService) LoadSettings(ctx context.Context, s backend.Session) models.SettingsView {
	return d.settings.Load(ctx, s)
}

func (d *DashboardService) Badge(ctx context.Context, s backend.Session) models.BadgeView {
	return d.badge.Refresh(ctx, s)
}

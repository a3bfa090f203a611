package controllers

import (
	"activitydash/internal/backend"
	"activitydash/internal/providers"
	"activitydash/internal/services"
	"activitydash/internal/structures"
	"activitydash/internal/views"
	"bytes"
	"errors"
	"net/http"

	"github.com/a-h/templ"
)

type DashboardController struct {
	logger    providers.Logger
	conf      *structures.Config
	dashboard services.DashboardServiceInterface
	renderer  *views.Renderer
}

func NewDashboardController(logger providers.Logger, conf *structures.Config, dashboard services.DashboardServiceInterface, renderer *views.Renderer) *DashboardController {
	return &DashboardController{
		logger:    logger,
		conf:      conf,
		dashboard: dashboard,
		renderer:  renderer,
	}
}

// Page renders the whole dashboard with one tab selected. Without a backend
// session the browser is sent to the login surface.
func (dc *DashboardController) Page(w http.ResponseWriter, r *http.Request) {
	req := serviceRequest(w, r, dc.conf.Backend.SessionCookie)

	dash, err := dc.dashboard.Bootstrap(r.Context(), req)
	if errors.Is(err, backend.ErrUnauthorized) {
		http.Redirect(w, r, dc.conf.Backend.Login(), http.StatusSeeOther)
		return
	}
	if err != nil {
		dc.logger.Errorf(providers.TypeGet, "Dashboard bootstrap: %s", err)
		http.Error(w, "Backend unavailable", http.StatusBadGateway)
		return
	}

	tab := r.URL.Query().Get("tab")
	if !views.ValidTab(tab) {
		tab = views.TabProfiles
	}
	modal := r.URL.Query().Get("modal")

	dc.render(w, r, http.StatusOK, dc.renderer.Page(views.PageData{
		Dashboard:     dash,
		Tab:           tab,
		Modal:         modal,
		SwitchUserURL: dc.conf.Backend.SwitchUser(),
	}))
}

// Section re-runs one section's load and returns only its fragment.
func (dc *DashboardController) Section(w http.ResponseWriter, r *http.Request) {
	s := backend.SessionFromRequest(r, dc.conf.Backend.SessionCookie)
	ctx := r.Context()

	var c templ.Component
	switch r.PathValue("section") {
	case views.TabProfiles:
		c = dc.renderer.ProfilesList(dc.dashboard.LoadProfiles(ctx, s))
	case views.TabPosts:
		c = dc.renderer.PostsFeed(dc.dashboard.LoadPosts(ctx, s))
	case views.TabNotifications:
		c = dc.renderer.NotificationsFeed(dc.dashboard.LoadNotifications(ctx, s))
	case "badge":
		c = views.Badge(dc.dashboard.Badge(ctx, s))
	case views.TabSettings:
		settings := dc.dashboard.LoadSettings(ctx, s)
		c = templ.Join(views.EmailSettingsForm(settings.Email, nil), views.LinkedInStatus(settings.LinkedIn))
	default:
		http.NotFound(w, r)
		return
	}
	dc.render(w, r, http.StatusOK, c)
}

// render buffers the markup so that a failed render never leaves a
// half-written page behind.
func (dc *DashboardController) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		dc.logger.Errorf(providers.TypeGet, "Render %s: %s", r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

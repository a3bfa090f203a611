package controllers

import (
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"activitydash/internal/services"
	"activitydash/internal/structures"
	"activitydash/internal/views"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// multipartMemory is how much of an upload is held in memory before it
// spills to a temp file.
const multipartMemory = 1 << 20

var errBadID = errors.New("invalid id")

// command is one action a form can dispatch. It returns the query of the
// page the browser is sent to afterwards.
type command struct {
	needsID bool
	tab     string
	run     func(ctx context.Context, req services.Request, r *http.Request, id int64) url.Values
}

// CommandController is the single entry point for every state-changing
// action. Forms post a command name and an optional record id; the browser
// is always redirected back to a page render.
type CommandController struct {
	logger   providers.Logger
	conf     *structures.Config
	toasts   services.ToastNotifierInterface
	commands map[string]command
}

func NewCommandController(
	logger providers.Logger,
	conf *structures.Config,
	profiles services.ProfileServiceInterface,
	uploads services.UploadWorkflowInterface,
	reads services.ReadStateSyncInterface,
	jobs services.JobServiceInterface,
	settings services.SettingsServiceInterface,
	toasts services.ToastNotifierInterface,
) *CommandController {
	cc := &CommandController{logger: logger, conf: conf, toasts: toasts}
	cc.commands = map[string]command{
		"profile.create": {tab: views.TabProfiles, run: func(ctx context.Context, req services.Request, r *http.Request, _ int64) url.Values {
			profiles.Create(ctx, req, models.ProfileInput{
				Name:        strings.TrimSpace(r.FormValue("name")),
				LinkedInURL: strings.TrimSpace(r.FormValue("linkedin_url")),
			})
			return nil
		}},
		"profile.delete": {needsID: true, tab: views.TabProfiles, run: func(ctx context.Context, req services.Request, _ *http.Request, id int64) url.Values {
			profiles.Delete(ctx, req, id)
			return nil
		}},
		"profile.upload": {tab: views.TabProfiles, run: func(ctx context.Context, req services.Request, r *http.Request, _ int64) url.Values {
			file, header, err := r.FormFile("file")
			if err != nil {
				if !errors.Is(err, http.ErrMissingFile) {
					logger.Warnf(providers.TypePost, "Reading uploaded file: %s", err)
				}
				uploads.Upload(ctx, req, "", nil)
				return url.Values{"modal": {"upload"}}
			}
			defer func(f multipart.File) { _ = f.Close() }(file)
			if uploads.Upload(ctx, req, header.Filename, file) == models.UploadIdle {
				return url.Values{"modal": {"upload"}}
			}
			return nil
		}},
		"notification.read": {needsID: true, tab: views.TabNotifications, run: func(ctx context.Context, req services.Request, _ *http.Request, id int64) url.Values {
			reads.MarkOne(ctx, req, id)
			return nil
		}},
		"notification.read-all": {tab: views.TabNotifications, run: func(ctx context.Context, req services.Request, _ *http.Request, _ int64) url.Values {
			reads.MarkAll(ctx, req)
			return nil
		}},
		"job.trigger": {tab: views.TabPosts, run: func(ctx context.Context, req services.Request, _ *http.Request, _ int64) url.Values {
			jobs.Trigger(ctx, req)
			return nil
		}},
		"health.check": {tab: views.TabSettings, run: func(ctx context.Context, req services.Request, _ *http.Request, _ int64) url.Values {
			jobs.CheckHealth(ctx, req)
			return nil
		}},
		"settings.email.save": {tab: views.TabSettings, run: func(ctx context.Context, req services.Request, r *http.Request, _ int64) url.Values {
			settings.SaveEmail(ctx, req, models.EmailSettings{
				NotifyEmail:  r.FormValue("notify_email"),
				SMTPUser:     r.FormValue("smtp_user"),
				SMTPHost:     r.FormValue("smtp_host"),
				SMTPPort:     r.FormValue("smtp_port"),
				SMTPPassword: r.FormValue("smtp_password"),
			})
			return nil
		}},
	}
	return cc
}

func (cc *CommandController) Dispatch(w http.ResponseWriter, r *http.Request) {
	req := serviceRequest(w, r, cc.conf.Backend.SessionCookie)
	r.Body = http.MaxBytesReader(w, r.Body, cc.conf.Upload.MaxBytes+multipartMemory)

	if err := parseForm(r); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			cc.logger.Warnf(providers.TypePost, "Command body over %d bytes", tooLarge.Limit)
			cc.toasts.Show(req.SID, models.KindError, "CSV file is too large")
			redirect(w, r, url.Values{"tab": {views.TabProfiles}, "modal": {"upload"}})
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := r.FormValue("command")
	cmd, ok := cc.commands[name]
	if !ok {
		cc.logger.Warnf(providers.TypePost, "Unknown command %q", name)
		http.Error(w, "Unknown command", http.StatusBadRequest)
		return
	}

	var id int64
	if cmd.needsID {
		var err error
		if id, err = parseID(r.FormValue("id")); err != nil {
			http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	cc.logger.Debugf(providers.TypePost, "Command %s id=%d sid=%s", name, id, req.SID)
	query := cmd.run(r.Context(), req, r, id)
	if query == nil {
		query = url.Values{}
	}
	tab := r.FormValue("tab")
	if !views.ValidTab(tab) {
		tab = cmd.tab
	}
	query.Set("tab", tab)
	redirect(w, r, query)
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(multipartMemory)
	}
	return r.ParseForm()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, errBadID
	}
	return id, nil
}

func redirect(w http.ResponseWriter, r *http.Request, query url.Values) {
	http.Redirect(w, r, "/?"+query.Encode(), http.StatusSeeOther)
}

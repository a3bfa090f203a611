package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	uploadProcessing = "Processing CSV file..."
	uploadFailed     = "Upload failed"
	uploadToastError = "CSV upload failed"
	uploadTransport  = "Failed to upload CSV"
	uploadNoFile     = "Please select a CSV file"
)

type UploadWorkflowInterface interface {
	Upload(ctx context.Context, req Request, filename string, file io.Reader) models.UploadState
	State(sid string) models.UploadView
	Consume(sid string) models.UploadView
}

type UploadWorkflow struct {
	backend    backend.ClientInterface
	store      ViewStateServiceInterface
	toasts     ToastNotifierInterface
	hooks      *Hooks
	logger     providers.Logger
	closeDelay time.Duration
	inFlight   time.Duration
}

func NewUploadWorkflow(
	conf *structures.Config,
	client backend.ClientInterface,
	store ViewStateServiceInterface,
	toasts ToastNotifierInterface,
	hooks *Hooks,
	logger providers.Logger,
) UploadWorkflowInterface {
	return &UploadWorkflow{
		backend:    client,
		store:      store,
		toasts:     toasts,
		hooks:      hooks,
		logger:     logger,
		closeDelay: conf.Upload.CloseDelay,
		inFlight:   conf.Backend.Timeout,
	}
}

// Upload sends one CSV file to the backend and returns the final state.
// Without a file nothing is sent and the surface stays idle.
func (u *UploadWorkflow) Upload(ctx context.Context, req Request, filename string, file io.Reader) models.UploadState {
	if file == nil || strings.TrimSpace(filename) == "" {
		u.toasts.Show(req.SID, models.KindError, uploadNoFile)
		return models.UploadIdle
	}

	view := models.UploadView{
		State:           models.UploadUploading,
		Status:          models.StatusLine{Kind: models.KindLoading, Message: uploadProcessing},
		ControlDisabled: true,
	}
	// Visible to other tabs of the same session while the request is in flight.
	u.store.Put(req.SID, SectionUpload, view, u.inFlight)

	defer func() {
		view.ControlDisabled = false
		ttl := time.Duration(0)
		if view.State == models.UploadSuccess {
			ttl = u.closeDelay
		}
		u.store.Put(req.SID, SectionUpload, view, ttl)
	}()

	result, err := u.backend.UploadCSV(ctx, req.Session, filename, file)
	if err != nil {
		view.State = models.UploadError
		if backend.IsAPIError(err) {
			view.Status = models.StatusLine{Kind: models.KindError, Message: backend.DetailOr(err, uploadFailed)}
			u.toasts.Show(req.SID, models.KindError, backend.DetailOr(err, uploadToastError))
		} else {
			view.Status = models.StatusLine{Kind: models.KindError, Message: uploadTransport}
			u.toasts.Show(req.SID, models.KindError, uploadTransport)
		}
		u.logger.Warnf(providers.TypeBackend, "CSV upload %q failed: %s", filename, err)
		return view.State
	}

	status := result.Message
	if len(result.Errors) > 0 {
		status += " Errors: " + strings.Join(result.Errors, "; ")
	}
	view.State = models.UploadSuccess
	view.Status = models.StatusLine{Kind: models.KindSuccess, Message: status}
	u.toasts.Show(req.SID, models.KindSuccess, fmt.Sprintf("Imported %d profile(s)", result.Added))
	u.hooks.Run(ctx, req, HookProfiles)
	return view.State
}

// State returns the current surface without consuming it. A success state
// reads back as idle once its close delay has passed.
func (u *UploadWorkflow) State(sid string) models.UploadView {
	var view models.UploadView
	if !u.store.Get(sid, SectionUpload, &view) {
		return models.UploadView{State: models.UploadIdle}
	}
	return view
}

// Consume is State for a render: an error result is shown once, then the
// surface returns to idle. Success and in-flight states keep their lifetime.
func (u *UploadWorkflow) Consume(sid string) models.UploadView {
	view := u.State(sid)
	if view.State == models.UploadError {
		u.store.Clear(sid, SectionUpload)
	}
	return view
}

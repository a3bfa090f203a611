package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"context"
	"fmt"
	"time"
)

const (
	jobRunning   = "Job is running, this may take a moment..."
	jobFailed    = "Job failed"
	jobTransport = "Failed to trigger job"
)

type JobServiceInterface interface {
	Trigger(ctx context.Context, req Request) models.JobView
	CheckHealth(ctx context.Context, req Request) models.StatusLine
	JobView(sid string) models.JobView
	HealthStatus(sid string) *models.StatusLine
}

// JobService runs the manual ingestion job and the on-demand health check.
type JobService struct {
	backend    backend.ClientInterface
	store      ViewStateServiceInterface
	hooks      *Hooks
	logger     providers.Logger
	jobTimeout time.Duration
}

func NewJobService(
	conf *structures.Config,
	client backend.ClientInterface,
	store ViewStateServiceInterface,
	hooks *Hooks,
	logger providers.Logger,
) JobServiceInterface {
	return &JobService{
		backend:    client,
		store:      store,
		hooks:      hooks,
		logger:     logger,
		jobTimeout: conf.Backend.JobTimeout,
	}
}

func (j *JobService) Trigger(ctx context.Context, req Request) models.JobView {
	view := models.JobView{
		Status:  models.StatusLine{Kind: models.KindLoading, Message: jobRunning},
		Running: true,
	}
	j.store.Put(req.SID, SectionJob, view, j.jobTimeout)

	start := time.Now()
	msg, err := j.backend.TriggerJob(ctx, req.Session)
	view.Running = false
	switch {
	case err == nil:
		view.Status = models.StatusLine{Kind: models.KindSuccess, Message: msg.Message}
		j.logger.Infof(providers.TypeBackend, "Job finished in %s: %s", time.Since(start).Round(time.Millisecond), msg.Message)
	case backend.IsAPIError(err):
		view.Status = models.StatusLine{Kind: models.KindError, Message: backend.DetailOr(err, jobFailed)}
		j.logger.Warnf(providers.TypeBackend, "Job rejected: %s", err)
	default:
		view.Status = models.StatusLine{Kind: models.KindError, Message: jobTransport}
		j.logger.Errorf(providers.TypeBackend, "Job trigger failed: %s", err)
	}
	j.store.Put(req.SID, SectionJob, view, time.Duration(0))

	if err == nil {
		j.hooks.Run(ctx, req, HookPosts, HookNotifications)
	}
	return view
}

func (j *JobService) CheckHealth(ctx context.Context, req Request) models.StatusLine {
	status := models.StatusLine{Kind: models.KindError, Message: "Health check failed"}
	h, err := j.backend.Health(ctx)
	if err != nil {
		j.logger.Warnf(providers.TypeBackend, "Health check: %s", err)
	} else {
		status = models.StatusLine{Kind: models.KindSuccess, Message: fmt.Sprintf("Status: %s", h.Status)}
	}
	j.store.Put(req.SID, SectionHealth, status, time.Duration(0))
	return status
}

// JobView returns the job surface for a render. A finished result is shown
// once; a running job stays visible until it completes.
func (j *JobService) JobView(sid string) models.JobView {
	var view models.JobView
	if !j.store.Get(sid, SectionJob, &view) {
		return models.JobView{}
	}
	if !view.Running {
		j.store.Clear(sid, SectionJob)
	}
	return view
}

func (j *JobService) HealthStatus(sid string) *models.StatusLine {
	var status models.StatusLine
	if !j.store.Take(sid, SectionHealth, &status) {
		return nil
	}
	return &status
}

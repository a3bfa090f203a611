package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"context"
)

type ReadStateSyncInterface interface {
	MarkOne(ctx context.Context, req Request, id int64)
	MarkAll(ctx context.Context, req Request)
}

// ReadStateSync never flips is_read locally. The shown state always comes
// from the reload that follows the call, whatever its outcome.
type ReadStateSync struct {
	backend backend.ClientInterface
	hooks   *Hooks
	toasts  ToastNotifierInterface
	logger  providers.Logger
}

func NewReadStateSync(client backend.ClientInterface, hooks *Hooks, toasts ToastNotifierInterface, logger providers.Logger) ReadStateSyncInterface {
	return &ReadStateSync{backend: client, hooks: hooks, toasts: toasts, logger: logger}
}

func (r *ReadStateSync) MarkOne(ctx context.Context, req Request, id int64) {
	if err := r.backend.MarkRead(ctx, req.Session, id); err != nil {
		r.logger.Warnf(providers.TypeBackend, "Mark notification %d read: %s", id, err)
	}
	r.hooks.Run(ctx, req, HookNotifications)
}

func (r *ReadStateSync) MarkAll(ctx context.Context, req Request) {
	if err := r.backend.MarkAllRead(ctx, req.Session); err != nil {
		r.logger.Warnf(providers.TypeBackend, "Mark all notifications read: %s", err)
	}
	r.hooks.Run(ctx, req, HookNotifications)
	r.toasts.Show(req.SID, models.KindSuccess, "All notifications marked as read")
}

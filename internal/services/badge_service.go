package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"context"
)

type BadgePollerInterface interface {
	Refresh(ctx context.Context, s backend.Session) models.BadgeView
}

type BadgePoller struct {
	backend backend.ClientInterface
	logger  providers.Logger
}

func NewBadgePoller(client backend.ClientInterface, logger providers.Logger) BadgePollerInterface {
	return &BadgePoller{backend: client, logger: logger}
}

// Refresh reads the unread count. The badge is hidden at zero and whenever
// the count cannot be read.
func (b *BadgePoller) Refresh(ctx context.Context, s backend.Session) models.BadgeView {
	count, err := b.backend.UnreadCount(ctx, s)
	if err != nil {
		b.logger.Warnf(providers.TypeBackend, "Unread count unavailable: %s", err)
		return models.BadgeView{}
	}
	if count <= 0 {
		return models.BadgeView{}
	}
	return models.BadgeView{Visible: true, Count: count}
}

package services

import (
	"activitydash/internal/models"
	"activitydash/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadStateSync_MarkOneReloadsNotificationsAndBadge(t *testing.T) {
	f := newFixture()
	f.backend.Unread = 2

	f.reads.MarkOne(context.Background(), testReq, 42)

	assert.Equal(t, []int64{42}, f.backend.MarkedRead)
	assert.Equal(t, 1, f.backend.CallCount("Notifications"))
	assert.Equal(t, 1, f.backend.CallCount("UnreadCount"))
}

func TestReadStateSync_MarkOneIgnoresFailure(t *testing.T) {
	f := newFixture()
	f.backend.MarkErr = testutil.TransportFailure("mark-read")

	f.reads.MarkOne(context.Background(), testReq, 1)

	assert.Equal(t, 1, f.backend.CallCount("Notifications"))
	assert.Equal(t, 1, f.logger.Count("warn"))
	_, ok := f.toasts.Current(testReq.SID)
	assert.False(t, ok)
}

func TestReadStateSync_MarkAllToasts(t *testing.T) {
	f := newFixture()

	f.reads.MarkAll(context.Background(), testReq)

	assert.Equal(t, 1, f.backend.MarkedAll)
	assert.Equal(t, 1, f.backend.CallCount("Notifications"))
	kind, msg := f.toast()
	assert.Equal(t, models.KindSuccess, kind)
	assert.Equal(t, "All notifications marked as read", msg)
}

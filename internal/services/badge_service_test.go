package services

import (
	"activitydash/internal/models"
	"activitydash/internal/testutil"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgePoller_Refresh(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		err    error
		expect models.BadgeView
	}{
		{"unread shown", 4, nil, models.BadgeView{Visible: true, Count: 4}},
		{"zero hidden", 0, nil, models.BadgeView{}},
		{"failure hidden", 0, testutil.LoadFailure("unread-count"), models.BadgeView{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.backend.Unread = tt.count
			f.backend.UnreadErr = tt.err
			assert.Equal(t, tt.expect, f.badge.Refresh(context.Background(), testReq.Session))
		})
	}
}

func TestBadgePoller_FailureIsLogged(t *testing.T) {
	f := newFixture()
	f.backend.UnreadErr = testutil.LoadFailure("unread-count")
	f.badge.Refresh(context.Background(), testReq.Session)
	assert.Equal(t, 1, f.logger.Count("warn"))
}

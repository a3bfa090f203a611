package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"activitydash/internal/testutil"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(f *fixture) {
	f.backend.User = &models.User{ID: 1, DisplayName: "Ann"}
	f.backend.ProfileList = []models.Profile{{ID: 1, Name: "Bob", LinkedInURL: "https://linkedin.com/in/bob"}}
	f.backend.PostList = []models.Post{{ID: 10, ProfileID: 1, PostText: "hi"}}
	f.backend.NotificationList = []models.Notification{{ID: 5, Title: "New post"}}
	f.backend.Unread = 1
}

func TestDashboardService_BootstrapUnauthorized(t *testing.T) {
	f := newFixture()
	f.backend.MeErr = backend.ErrUnauthorized

	dash, err := f.dash.Bootstrap(context.Background(), testReq)

	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	assert.Nil(t, dash)
	assert.Zero(t, f.backend.CallCount("Profiles"))
}

func TestDashboardService_BootstrapWithoutCurrentUser(t *testing.T) {
	f := newFixture()
	seed(f)
	f.backend.MeErr = testutil.LoadFailure("me")

	dash, err := f.dash.Bootstrap(context.Background(), testReq)

	require.NoError(t, err)
	assert.Zero(t, dash.User)
	assert.Len(t, dash.Profiles.Profiles, 1)
	assert.Len(t, dash.Posts.Posts, 1)
	assert.Len(t, dash.Notifications.Notifications, 1)
	assert.Equal(t, 1, f.logger.Count("warn"))
}

func TestDashboardService_BootstrapLoadsEverySection(t *testing.T) {
	f := newFixture()
	seed(f)

	dash, err := f.dash.Bootstrap(context.Background(), testReq)

	require.NoError(t, err)
	assert.Equal(t, "Ann", dash.User.DisplayName)
	assert.Len(t, dash.Profiles.Profiles, 1)
	assert.Len(t, dash.Posts.Posts, 1)
	assert.Len(t, dash.Posts.Profiles, 1)
	assert.Len(t, dash.Notifications.Notifications, 1)
	assert.Equal(t, models.BadgeView{Visible: true, Count: 1}, dash.Badge)
	assert.Nil(t, dash.Toast)
	assert.Equal(t, models.UploadIdle, dash.Upload.State)
	for _, s := range f.backend.Sessions {
		assert.Equal(t, testReq.Session, s)
	}
}

func TestDashboardService_SectionFailuresAreIndependent(t *testing.T) {
	f := newFixture()
	seed(f)
	f.backend.PostsErr = testutil.LoadFailure("posts")

	dash, err := f.dash.Bootstrap(context.Background(), testReq)

	require.NoError(t, err)
	assert.True(t, dash.Posts.Failed)
	assert.False(t, dash.Profiles.Failed)
	assert.False(t, dash.Notifications.Failed)
}

func TestDashboardService_PostsSurviveProfilesFailure(t *testing.T) {
	f := newFixture()
	seed(f)
	f.backend.ProfilesErr = testutil.LoadFailure("profiles")

	view := f.dash.LoadPosts(context.Background(), testReq.Session)

	assert.False(t, view.Failed)
	assert.Len(t, view.Posts, 1)
	assert.Empty(t, view.Profiles)
}

func TestDashboardService_HookSnapshotHandedToNextRender(t *testing.T) {
	f := newFixture()
	seed(f)

	f.reads.MarkAll(context.Background(), testReq)
	require.Equal(t, 1, f.backend.CallCount("Notifications"))

	dash, err := f.dash.Bootstrap(context.Background(), testReq)
	require.NoError(t, err)
	assert.Equal(t, 1, f.backend.CallCount("Notifications"), "hook snapshot reused")
	assert.Len(t, dash.Notifications.Notifications, 1)
	require.NotNil(t, dash.Toast)
	assert.Equal(t, "All notifications marked as read", dash.Toast.Message)

	_, err = f.dash.Bootstrap(context.Background(), testReq)
	require.NoError(t, err)
	assert.Equal(t, 2, f.backend.CallCount("Notifications"), "snapshot is used once")
}

func TestDashboardService_FullPostsViewHandedOffThroughCache(t *testing.T) {
	logger := &testutil.MockLogger{}
	cache := providers.NewCacheProvider(&structures.Config{
		Cache: structures.CacheConfig{Enabled: true, Size: providers.DefaultCacheSizeMB},
	}, logger)
	f := newFixtureOn(cache)
	seed(f)
	reply := strings.Repeat("r", 400)
	f.backend.PostList = nil
	for i := 1; i <= 50; i++ {
		f.backend.PostList = append(f.backend.PostList, models.Post{
			ID:             int64(i),
			ProfileID:      1,
			PostText:       strings.Repeat("p", 600),
			SuggestedReply: &reply,
		})
	}

	require.True(t, f.profiles.Delete(context.Background(), testReq, 2))
	require.Equal(t, 1, f.backend.CallCount("Posts"))

	dash, err := f.dash.Bootstrap(context.Background(), testReq)

	require.NoError(t, err)
	assert.Equal(t, 1, f.backend.CallCount("Posts"), "redirect render reuses the hook's posts")
	assert.Len(t, dash.Posts.Posts, 50)
	assert.Zero(t, logger.Count("warn"))
}

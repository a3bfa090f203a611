package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"activitydash/internal/testutil"
	"time"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Backend: structures.BackendConfig{
			Timeout:            10 * time.Second,
			JobTimeout:         5 * time.Minute,
			PostsLimit:         50,
			NotificationsLimit: 50,
		},
		Toast:  structures.ToastConfig{Duration: 3 * time.Second},
		Upload: structures.UploadConfig{CloseDelay: 2 * time.Second, MaxBytes: 1 << 20},
	}
}

type fixture struct {
	backend  *testutil.MockBackend
	cache    *testutil.MockCache
	logger   *testutil.MockLogger
	store    ViewStateServiceInterface
	toasts   ToastNotifierInterface
	hooks    *Hooks
	badge    BadgePollerInterface
	uploads  UploadWorkflowInterface
	profiles ProfileServiceInterface
	jobs     JobServiceInterface
	settings SettingsServiceInterface
	reads    ReadStateSyncInterface
	dash     DashboardServiceInterface
}

var testReq = Request{SID: "sid-1", Session: backend.Session{Token: "tok"}}

func newFixture() *fixture {
	cache := testutil.NewMockCache()
	f := newFixtureOn(cache)
	f.cache = cache
	return f
}

// newFixtureOn wires the services over the given view state cache.
func newFixtureOn(cache providers.CacheProviderInterface) *fixture {
	conf := testConfig()
	f := &fixture{
		backend: &testutil.MockBackend{},
		logger:  &testutil.MockLogger{},
		hooks:   NewHooks(),
	}
	f.store = NewViewStateService(cache, f.logger)
	f.toasts = NewToastNotifier(conf, f.store)
	f.badge = NewBadgePoller(f.backend, f.logger)
	f.uploads = NewUploadWorkflow(conf, f.backend, f.store, f.toasts, f.hooks, f.logger)
	f.profiles = NewProfileService(f.backend, f.store, f.toasts, f.hooks, f.logger)
	f.jobs = NewJobService(conf, f.backend, f.store, f.hooks, f.logger)
	f.settings = NewSettingsService(f.backend, f.store, f.toasts, f.logger)
	f.reads = NewReadStateSync(f.backend, f.hooks, f.toasts, f.logger)
	f.dash = NewDashboardService(conf, f.backend, f.store, f.toasts, f.uploads, f.profiles, f.jobs, f.settings, f.badge, f.hooks, f.logger)
	return f
}

func (f *fixture) toast() (string, string) {
	t, ok := f.toasts.Current(testReq.SID)
	if !ok {
		return "", ""
	}
	return t.Kind, t.Message
}

package controllers

import (
	"activitydash/internal/services"
	"activitydash/internal/structures"
	"activitydash/internal/testutil"
	"activitydash/internal/views"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSID = "6f1c1d2e-3b4a-4c5d-8e9f-0a1b2c3d4e5f"

func testConfig() *structures.Config {
	return &structures.Config{
		Backend: structures.BackendConfig{
			BaseURL:            "http://backend.test",
			Timeout:            10 * time.Second,
			JobTimeout:         5 * time.Minute,
			SessionCookie:      "session",
			PostsLimit:         50,
			NotificationsLimit: 50,
		},
		Display: structures.DisplayConfig{Timezone: "UTC", TruncateAt: 300},
		Toast:   structures.ToastConfig{Duration: 3 * time.Second},
		Upload:  structures.UploadConfig{CloseDelay: 2 * time.Second, MaxBytes: 1 << 20},
	}
}

type fixture struct {
	conf      *structures.Config
	backend   *testutil.MockBackend
	logger    *testutil.MockLogger
	toasts    services.ToastNotifierInterface
	uploads   services.UploadWorkflowInterface
	dashboard *DashboardController
	commands  *CommandController
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := testConfig()
	f := &fixture{
		conf:    conf,
		backend: &testutil.MockBackend{},
		logger:  &testutil.MockLogger{},
	}
	hooks := services.NewHooks()
	store := services.NewViewStateService(testutil.NewMockCache(), f.logger)
	f.toasts = services.NewToastNotifier(conf, store)
	f.uploads = services.NewUploadWorkflow(conf, f.backend, store, f.toasts, hooks, f.logger)
	profiles := services.NewProfileService(f.backend, store, f.toasts, hooks, f.logger)
	jobs := services.NewJobService(conf, f.backend, store, hooks, f.logger)
	settings := services.NewSettingsService(f.backend, store, f.toasts, f.logger)
	reads := services.NewReadStateSync(f.backend, hooks, f.toasts, f.logger)
	badge := services.NewBadgePoller(f.backend, f.logger)
	dash := services.NewDashboardService(conf, f.backend, store, f.toasts, f.uploads, profiles, jobs, settings, badge, hooks, f.logger)

	renderer, err := views.NewRenderer(conf)
	require.NoError(t, err)

	f.dashboard = NewDashboardController(f.logger, conf, dash, renderer)
	f.commands = NewCommandController(f.logger, conf, profiles, f.uploads, reads, jobs, settings, f.toasts)
	return f
}

// withSession attaches the dashboard and backend cookies of a signed-in browser.
func withSession(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: dashboardCookie, Value: testSID})
	r.AddCookie(&http.Cookie{Name: "session", Value: "tok"})
	return r
}

func (f *fixture) page(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	f.dashboard.Page(rr, withSession(httptest.NewRequest(http.MethodGet, target, nil)))
	return rr
}

func (f *fixture) toast() string {
	t, ok := f.toasts.Current(testSID)
	if !ok {
		return ""
	}
	return t.Message
}

package monitor

import (
	"activitydash/internal/backend"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type MonitorInterface interface {
	Init()
	Stop()
	Check(ctx context.Context) Status
	Last() (Status, bool)
}

// Status is the outcome of the latest backend health check.
type Status struct {
	Up        bool      `json:"up"`
	Status    string    `json:"status,omitempty"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// BackendMonitor checks the backend health endpoint on a fixed interval and
// publishes the result as the backend-up gauge.
type BackendMonitor struct {
	config  *structures.Config
	logger  providers.Logger
	client  backend.ClientInterface
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	cancel  context.CancelFunc
	first   sync.WaitGroup
	checkMu sync.Mutex
	mu      sync.RWMutex
	last    Status
	checked  bool
}

// Init starts checking in the background; the first check does not hold up
// the caller even when the backend is slow to answer.
func (m *BackendMonitor) Init() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.first.Add(1)
	go func() {
		defer m.first.Done()
		m.Check(ctx)
	}()

	interval := m.config.Monitor.Interval
	if interval <= 0 {
		m.logger.Infof(providers.TypeApp, "Backend monitor disabled")
		return
	}

	m.cron = gron.New()
	m.cron.AddFunc(gron.Every(interval), func() {
		m.Check(ctx)
	})
	m.cron.Start()
	m.logger.Infof(providers.TypeApp, "Backend monitor checking every %s", interval)
}

// Stop cancels any check in flight and waits for the first one to return.
func (m *BackendMonitor) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.first.Wait()
}

// Check runs one health check. Overlapping checks are serialised.
func (m *BackendMonitor) Check(ctx context.Context) Status {
	m.checkMu.Lock()
	defer m.checkMu.Unlock()

	status := Status{CheckedAt: time.Now()}
	h, err := m.client.Health(ctx)
	if err != nil {
		status.Error = err.Error()
	} else {
		status.Up = true
		status.Status = h.Status
	}

	m.mu.Lock()
	wasUp, hadCheck := m.last.Up, m.checked
	m.last = status
	m.checked = true
	m.mu.Unlock()

	m.metrics.SetBackendUp(status.Up)
	switch {
	case !status.Up && (wasUp || !hadCheck):
		m.logger.Errorf(providers.TypeBackend, "Backend unreachable: %s", status.Error)
	case status.Up && hadCheck && !wasUp:
		m.logger.Infof(providers.TypeBackend, "Backend reachable again: %s", status.Status)
	}
	return status
}

func (m *BackendMonitor) Last() (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.checked
}

func NewBackendMonitor(config *structures.Config, logger providers.Logger, client backend.ClientInterface, metrics providers.MetricsProviderInterface) MonitorInterface {
	return &BackendMonitor{
		config:  config,
		logger:  logger,
		client:  client,
		metrics: metrics,
	}
}

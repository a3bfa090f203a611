package testutil

import (
	"activitydash/internal/backend"
	"activitydash/internal/models"
	"activitydash/internal/providers"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface. Entries expire
// against Now, which tests may move forward.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Expires map[string]time.Time
	Now     time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data:    make(map[string][]byte),
		Expires: make(map[string]time.Time),
		Now:     time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, ok := m.Expires[key]; ok && !m.Now.Before(exp) {
		delete(m.Data, key)
		delete(m.Expires, key)
		return nil, false
	}
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	if ttl > 0 {
		m.Expires[key] = m.Now.Add(ttl)
	} else {
		delete(m.Expires, key)
	}
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	delete(m.Expires, key)
}

// Advance moves the cache clock forward.
func (m *MockCache) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Now = m.Now.Add(d)
}

// TTL returns the lifetime an entry was stored with, zero when unbounded.
func (m *MockCache) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.Expires[key]
	if !ok {
		return 0
	}
	return exp.Sub(m.Now)
}

// MockBackend implements backend.ClientInterface over in-memory records.
// Any *Err field set makes the matching call fail with it.
type MockBackend struct {
	mu sync.Mutex

	User             *models.User
	ProfileList      []models.Profile
	PostList         []models.Post
	NotificationList []models.Notification
	Unread           int
	Email            models.EmailSettings
	LinkedIn         models.LinkedInSettings
	HealthStatus     string
	Upload           models.UploadResult
	JobMessage       string

	MeErr, ProfilesErr, PostsErr, NotificationsErr, UnreadErr error
	EmailErr, LinkedInErr, HealthErr                          error
	CreateErr, DeleteErr, UploadErr, MarkErr, SaveErr, JobErr error

	Calls         []string
	Created       []models.ProfileInput
	Deleted       []int64
	UploadedName  string
	UploadedBody  string
	MarkedRead    []int64
	MarkedAll     int
	SavedSettings []models.EmailSettings
	Sessions      []backend.Session
}

func (m *MockBackend) called(name string, s backend.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
	m.Sessions = append(m.Sessions, s)
}

// CallCount returns how many times the named method ran.
func (m *MockBackend) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (m *MockBackend) Me(_ context.Context, s backend.Session) (*models.User, error) {
	m.called("Me", s)
	if m.MeErr != nil {
		return nil, m.MeErr
	}
	if m.User == nil {
		return &models.User{ID: 1, Username: "demo", DisplayName: "Demo"}, nil
	}
	u := *m.User
	return &u, nil
}

func (m *MockBackend) Profiles(_ context.Context, s backend.Session) ([]models.Profile, error) {
	m.called("Profiles", s)
	if m.ProfilesErr != nil {
		return nil, m.ProfilesErr
	}
	return append([]models.Profile(nil), m.ProfileList...), nil
}

func (m *MockBackend) Posts(_ context.Context, s backend.Session, limit int) ([]models.Post, error) {
	m.called("Posts", s)
	if m.PostsErr != nil {
		return nil, m.PostsErr
	}
	posts := m.PostList
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return append([]models.Post(nil), posts...), nil
}

func (m *MockBackend) Notifications(_ context.Context, s backend.Session, limit int) ([]models.Notification, error) {
	m.called("Notifications", s)
	if m.NotificationsErr != nil {
		return nil, m.NotificationsErr
	}
	items := m.NotificationList
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]models.Notification(nil), items...), nil
}

func (m *MockBackend) UnreadCount(_ context.Context, s backend.Session) (int, error) {
	m.called("UnreadCount", s)
	if m.UnreadErr != nil {
		return 0, m.UnreadErr
	}
	return m.Unread, nil
}

func (m *MockBackend) EmailSettings(_ context.Context, s backend.Session) (*models.EmailSettings, error) {
	m.called("EmailSettings", s)
	if m.EmailErr != nil {
		return nil, m.EmailErr
	}
	e := m.Email
	return &e, nil
}

func (m *MockBackend) LinkedInSettings(_ context.Context, s backend.Session) (*models.LinkedInSettings, error) {
	m.called("LinkedInSettings", s)
	if m.LinkedInErr != nil {
		return nil, m.LinkedInErr
	}
	l := m.LinkedIn
	return &l, nil
}

func (m *MockBackend) Health(_ context.Context) (*models.Health, error) {
	m.called("Health", backend.Session{})
	if m.HealthErr != nil {
		return nil, m.HealthErr
	}
	status := m.HealthStatus
	if status == "" {
		status = "healthy"
	}
	return &models.Health{Status: status}, nil
}

func (m *MockBackend) CreateProfile(_ context.Context, s backend.Session, input models.ProfileInput) (*models.Profile, error) {
	m.called("CreateProfile", s)
	m.mu.Lock()
	m.Created = append(m.Created, input)
	m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return &models.Profile{ID: int64(len(m.ProfileList) + 1), Name: input.Name, LinkedInURL: input.LinkedInURL}, nil
}

func (m *MockBackend) DeleteProfile(_ context.Context, s backend.Session, id int64) error {
	m.called("DeleteProfile", s)
	m.mu.Lock()
	m.Deleted = append(m.Deleted, id)
	m.mu.Unlock()
	return m.DeleteErr
}

func (m *MockBackend) UploadCSV(_ context.Context, s backend.Session, filename string, file io.Reader) (*models.UploadResult, error) {
	m.called("UploadCSV", s)
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.UploadedName = filename
	m.UploadedBody = string(data)
	m.mu.Unlock()
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	r := m.Upload
	return &r, nil
}

func (m *MockBackend) MarkRead(_ context.Context, s backend.Session, id int64) error {
	m.called("MarkRead", s)
	m.mu.Lock()
	m.MarkedRead = append(m.MarkedRead, id)
	m.mu.Unlock()
	return m.MarkErr
}

func (m *MockBackend) MarkAllRead(_ context.Context, s backend.Session) error {
	m.called("MarkAllRead", s)
	m.mu.Lock()
	m.MarkedAll++
	m.mu.Unlock()
	return m.MarkErr
}

func (m *MockBackend) SaveEmailSettings(_ context.Context, s backend.Session, settings models.EmailSettings) error {
	m.called("SaveEmailSettings", s)
	m.mu.Lock()
	m.SavedSettings = append(m.SavedSettings, settings)
	m.mu.Unlock()
	return m.SaveErr
}

func (m *MockBackend) TriggerJob(_ context.Context, s backend.Session) (*models.Message, error) {
	m.called("TriggerJob", s)
	if m.JobErr != nil {
		return nil, m.JobErr
	}
	return &models.Message{Message: m.JobMessage}, nil
}

// LoadFailure builds the error a real client returns for an unreadable resource.
func LoadFailure(resource string) error {
	return &backend.LoadError{Resource: resource, Err: errors.New("connection refused")}
}

// TransportFailure builds a write failure where the backend never answered.
func TransportFailure(resource string) error {
	return fmt.Errorf("%s: %w", resource, errors.New("connection refused"))
}

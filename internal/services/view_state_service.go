package services

import (
	"activitydash/internal/backend"
	"activitydash/internal/providers"
	"time"

	json "github.com/goccy/go-json"
)

// View state sections kept per dashboard session.
const (
	SectionToast         = "toast"
	SectionUpload        = "upload"
	SectionProfileDraft  = "profile-draft"
	SectionEmailDraft    = "email-draft"
	SectionJob           = "job"
	SectionHealth        = "health"
	SectionProfiles      = "profiles"
	SectionPosts         = "posts"
	SectionNotifications = "notifications"
	SectionBadge         = "badge"
)

// Request identifies who a workflow runs for: the dashboard session that
// owns the view state and the backend session the calls are made with.
type Request struct {
	SID     string
	Session backend.Session
}

type ViewStateServiceInterface interface {
	Put(sid, section string, value any, ttl time.Duration)
	Get(sid, section string, out any) bool
	Take(sid, section string, out any) bool
	Clear(sid, section string)
}

// ViewStateService stores one serialized value per session and section.
// Every Put replaces the previous value wholesale.
type ViewStateService struct {
	cache  providers.CacheProviderInterface
	logger providers.Logger
}

func NewViewStateService(cache providers.CacheProviderInterface, logger providers.Logger) ViewStateServiceInterface {
	return &ViewStateService{cache: cache, logger: logger}
}

func viewStateKey(sid, section string) string {
	return "vs:" + sid + ":" + section
}

func (s *ViewStateService) Put(sid, section string, value any, ttl time.Duration) {
	if sid == "" {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "View state %s: encode: %s", section, err)
		return
	}
	s.cache.Set(viewStateKey(sid, section), data, ttl)
}

func (s *ViewStateService) Get(sid, section string, out any) bool {
	if sid == "" {
		return false
	}
	data, ok := s.cache.Get(viewStateKey(sid, section))
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warnf(providers.TypeApp, "View state %s: decode: %s", section, err)
		s.cache.Del(viewStateKey(sid, section))
		return false
	}
	return true
}

// Take is Get followed by Clear: the value is shown once.
func (s *ViewStateService) Take(sid, section string, out any) bool {
	ok := s.Get(sid, section, out)
	if ok {
		s.Clear(sid, section)
	}
	return ok
}

func (s *ViewStateService) Clear(sid, section string) {
	if sid == "" {
		return
	}
	s.cache.Del(viewStateKey(sid, section))
}

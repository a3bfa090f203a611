package services

import (
	"activitydash/internal/models"
	"activitydash/internal/structures"
	"time"
)

type ToastNotifierInterface interface {
	Show(sid, kind, message string)
	Current(sid string) (models.Toast, bool)
}

// ToastNotifier keeps at most one message per session. A new message
// replaces the active one and restarts its lifetime.
type ToastNotifier struct {
	store    ViewStateServiceInterface
	duration time.Duration
}

func NewToastNotifier(conf *structures.Config, store ViewStateServiceInterface) ToastNotifierInterface {
	return &ToastNotifier{store: store, duration: conf.Toast.Duration}
}

func (t *ToastNotifier) Show(sid, kind, message string) {
	t.store.Put(sid, SectionToast, models.Toast{Kind: kind, Message: message}, t.duration)
}

func (t *ToastNotifier) Current(sid string) (models.Toast, bool) {
	var toast models.Toast
	ok := t.store.Get(sid, SectionToast, &toast)
	return toast, ok
}

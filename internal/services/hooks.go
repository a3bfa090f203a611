package services

import (
	"context"
	"sync"
)

// HookKind names the records a mutation changed.
type HookKind string

const (
	HookProfiles      HookKind = "profiles"
	HookPosts         HookKind = "posts"
	HookNotifications HookKind = "notifications"
)

type HookFunc func(ctx context.Context, req Request)

type hook struct {
	name string
	fn   HookFunc
}

// Hooks is the list of refresh steps run after a state-changing call
// completes. Hooks run in registration order; a hook registered under
// several kinds runs once per Run.
type Hooks struct {
	mu     sync.RWMutex
	byKind map[HookKind][]hook
}

func NewHooks() *Hooks {
	return &Hooks{byKind: make(map[HookKind][]hook)}
}

func (h *Hooks) Register(kind HookKind, name string, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byKind[kind] = append(h.byKind[kind], hook{name: name, fn: fn})
}

// Run executes the hooks of every kind and returns the names that ran.
func (h *Hooks) Run(ctx context.Context, req Request, kinds ...HookKind) []string {
	h.mu.RLock()
	var pending []hook
	seen := make(map[string]bool)
	for _, kind := range kinds {
		for _, hk := range h.byKind[kind] {
			if seen[hk.name] {
				continue
			}
			seen[hk.name] = true
			pending = append(pending, hk)
		}
	}
	h.mu.RUnlock()

	ran := make([]string, 0, len(pending))
	for _, hk := range pending {
		hk.fn(ctx, req)
		ran = append(ran, hk.name)
	}
	return ran
}

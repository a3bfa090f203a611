package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHooks_RunInRegistrationOrder(t *testing.T) {
	h := NewHooks()
	var order []string
	h.Register(HookProfiles, "a", func(context.Context, Request) { order = append(order, "a") })
	h.Register(HookProfiles, "b", func(context.Context, Request) { order = append(order, "b") })
	h.Register(HookPosts, "c", func(context.Context, Request) { order = append(order, "c") })

	ran := h.Run(context.Background(), testReq, HookProfiles)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestHooks_SharedHookRunsOnce(t *testing.T) {
	h := NewHooks()
	calls := 0
	fn := func(context.Context, Request) { calls++ }
	h.Register(HookPosts, "badge", fn)
	h.Register(HookNotifications, "badge", fn)

	h.Run(context.Background(), testReq, HookPosts, HookNotifications)
	assert.Equal(t, 1, calls)
}

func TestHooks_UnknownKindRunsNothing(t *testing.T) {
	h := NewHooks()
	assert.Empty(t, h.Run(context.Background(), testReq, HookNotifications))
}

// Package views renders the dashboard as HTML. The components are templ
// templates; every record field is escaped by the generated code, and actions
// are plain forms posting to /commands with the target in data-id and
// data-command.
package views

import (
	"activitydash/internal/formatter"
	"activitydash/internal/models"
	"activitydash/internal/structures"
	"activitydash/internal/timeline"
	"fmt"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

type Renderer struct {
	loc        *time.Location
	truncateAt int
	body       *formatter.BodyFormatter
	toastFor   time.Duration
	closeDelay time.Duration
	now        func() time.Time
}

func NewRenderer(conf *structures.Config) (*Renderer, error) {
	loc, err := time.LoadLocation(conf.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("display timezone: %w", err)
	}
	return &Renderer{
		loc:        loc,
		truncateAt: conf.Display.TruncateAt,
		body:       formatter.NewBodyFormatter(conf.Display.ExternalHosts),
		toastFor:   conf.Toast.Duration,
		closeDelay: conf.Upload.CloseDelay,
		now:        time.Now,
	}, nil
}

// WithClock replaces the render clock. Day labels and relative times are
// computed from it on every render.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	clone := *r
	clone.now = now
	return &clone
}

func (r *Renderer) date(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return formatter.Date(ts.In(r.loc))
}

func (r *Renderer) timeAgo(ts *models.Timestamp, now time.Time) string {
	t := timeline.Local(ts, r.loc)
	if t == nil {
		return ""
	}
	return formatter.TimeAgo(*t, now)
}

func (r *Renderer) postGroups(view models.PostsView, now time.Time) []timeline.DayGroup[timeline.JoinedPost] {
	joined := timeline.Join(view.Posts, view.Profiles)
	return timeline.GroupByDay(joined, func(jp timeline.JoinedPost) *time.Time {
		return timeline.Local(jp.Post.DisplayTime(), r.loc)
	}, now)
}

func (r *Renderer) notificationGroups(view models.NotificationsView, now time.Time) []timeline.DayGroup[models.Notification] {
	return timeline.GroupByDay(view.Notifications, func(n models.Notification) *time.Time {
		return timeline.Local(n.CreatedAt, r.loc)
	}, now)
}

func (r *Renderer) toastStyle() templ.SafeCSS {
	return templ.SafeCSS("animation-duration: " + seconds(r.toastFor))
}

func (r *Renderer) closeRefreshContent() string {
	return strconv.Itoa(int(r.closeDelay.Round(time.Second)/time.Second)) + ";url=/?tab=profiles"
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// emailFormValues picks what the email form shows and whether a password is
// already stored.
func emailFormValues(loaded models.EmailSettings, draft *models.EmailDraft) (models.EmailDraft, bool) {
	values := models.EmailDraft{
		NotifyEmail: loaded.NotifyEmail,
		SMTPUser:    loaded.SMTPUser,
		SMTPHost:    loaded.SMTPHost,
		SMTPPort:    loaded.SMTPPort,
	}
	stored := loaded.PasswordStored()
	if draft != nil {
		values = *draft
		stored = stored || draft.Saved
	}
	return values, stored
}

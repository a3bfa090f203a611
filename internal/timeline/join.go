package timeline

import (
	"activitydash/internal/models"
	"time"
)

const UnknownAuthor = "Unknown"

// Identity is the author shown on a post card. An empty URL renders as
// plain text.
type Identity struct {
	Name string
	URL  string
}

type JoinedPost struct {
	Post   models.Post
	Author Identity
}

// Join resolves every post's profile_id against profiles. The lookup lives
// only for this call.
func Join(posts []models.Post, profiles []models.Profile) []JoinedPost {
	lookup := make(map[int64]*models.Profile, len(profiles))
	for i := range profiles {
		lookup[profiles[i].ID] = &profiles[i]
	}

	joined := make([]JoinedPost, len(posts))
	for i, post := range posts {
		author := Identity{Name: UnknownAuthor}
		if p, ok := lookup[post.ProfileID]; ok {
			author = Identity{Name: p.Name, URL: p.LinkedInURL}
			if author.Name == "" {
				author.Name = UnknownAuthor
			}
		}
		joined[i] = JoinedPost{Post: post, Author: author}
	}
	return joined
}

// Local places a backend timestamp in loc; nil and zero stay nil.
func Local(ts *models.Timestamp, loc *time.Location) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.In(loc)
	return &t
}

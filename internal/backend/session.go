package backend

import "net/http"

// Session carries the browser's backend session cookie through to every
// backend call. A zero Session makes the backend answer 401.
type Session struct {
	Token string
}

func SessionFromRequest(r *http.Request, cookieName string) Session {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return Session{}
	}
	return Session{Token: c.Value}
}

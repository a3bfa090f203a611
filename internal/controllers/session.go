package controllers

import (
	"activitydash/internal/backend"
	"activitydash/internal/services"
	"net/http"

	"github.com/google/uuid"
)

const dashboardCookie = "dash_sid"

// dashboardSID returns the browser's dashboard session id, issuing one on
// first visit. It keys toasts and workflow state, never backend auth.
func dashboardSID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(dashboardCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     dashboardCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func serviceRequest(w http.ResponseWriter, r *http.Request, sessionCookie string) services.Request {
	return services.Request{
		SID:     dashboardSID(w, r),
		Session: backend.SessionFromRequest(r, sessionCookie),
	}
}

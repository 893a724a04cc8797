package server

import "net/http"

type hostSession struct {
	HostID string
	Email  string
}

const hostCookieName = "host_session"

// hostFromRequest reads the host_session cookie and looks up the session.
func hostFromRequest(r *http.Request, hosts *HostStore) (hostSession, error) {
	cookie, err := r.Cookie(hostCookieName)
	if err != nil || cookie.Value == "" {
		return hostSession{}, errNoHostSession
	}
	return hosts.HostFromSession(r.Context(), cookie.Value)
}

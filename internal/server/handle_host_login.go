package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/daliev/quizroom/internal/room"
)

// HostLoginRequest is the request body for POST /api/host/login.
type HostLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HostMeResponse is the response for GET /api/host/me.
type HostMeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func handleHostLogin(hosts *HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HostLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		hostID, passwordHash, err := hosts.HostByEmail(r.Context(), req.Email)
		if errors.Is(err, room.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		sessionID, err := hosts.CreateSession(r.Context(), hostID, req.Email)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     hostCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(7 * 24 * time.Hour / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, HostMeResponse{ID: hostID, Email: req.Email})
	}
}

func handleHostLogout(hosts *HostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(hostCookieName); err == nil && cookie.Value != "" {
			if err := hosts.DeleteSession(r.Context(), cookie.Value); err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     hostCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func handleHostMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := hostFrom(r)
		writeJSON(w, http.StatusOK, HostMeResponse{ID: sess.HostID, Email: sess.Email})
	}
}

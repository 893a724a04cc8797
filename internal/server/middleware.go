package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daliev/quizroom/internal/room"
)

type ctxKey int

const (
	ctxKeyActor ctxKey = iota
	ctxKeyHost
)

// roomMiddleware resolves {code} to the single actor owning that room and
// injects it into the request context. Actors are created lazily, so any
// code is valid on first reference.
func roomMiddleware(rooms *room.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := chi.URLParam(r, "code")
			if code == "" {
				writeError(w, http.StatusNotFound, "room not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyActor, rooms.Get(code))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hostAuthMiddleware(hosts *HostStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := hostFromRequest(r, hosts)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyHost, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func roomActor(r *http.Request) *room.Actor {
	return r.Context().Value(ctxKeyActor).(*room.Actor)
}

func roomCode(r *http.Request) string {
	return chi.URLParam(r, "code")
}

func hostFrom(r *http.Request) hostSession {
	return r.Context().Value(ctxKeyHost).(hostSession)
}

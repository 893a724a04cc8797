package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"

	"github.com/daliev/quizroom/internal/room"
)

func addRoutes(r chi.Router, logger *slog.Logger, rooms *room.Registry, hosts *HostStore, db *sql.DB, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Quizroom API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))
	r.Handle("/metrics", promhttp.Handler())

	// Room operations — {code} resolved by roomMiddleware; any code is
	// valid and materializes the room lazily.
	r.Route("/api/rooms/{code}", func(r chi.Router) {
		r.Use(roomMiddleware(rooms))
		r.Post("/create", handleCreate())
		r.Post("/join", handleJoin())
		r.Post("/start", handleStart())
		r.Get("/current", handleCurrent())
		r.Post("/answer", handleAnswer())
		r.Post("/next", handleNext())
		r.Get("/scoreboard", handleScoreboard())
	})

	// Host auth and scenario library.
	r.Post("/api/host/login", handleHostLogin(hosts))
	r.Post("/api/host/logout", handleHostLogout(hosts))

	r.Group(func(r chi.Router) {
		r.Use(hostAuthMiddleware(hosts))
		r.Get("/api/host/me", handleHostMe())
		r.Route("/api/host/scenarios", func(r chi.Router) {
			r.Get("/", handleListScenarios(hosts))
			r.Post("/", handleCreateScenario(hosts))
			r.Get("/{id}", handleGetScenario(hosts))
			r.Put("/{id}", handleUpdateScenario(hosts))
			r.Delete("/{id}", handleDeleteScenario(hosts))
		})
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving static assets", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}

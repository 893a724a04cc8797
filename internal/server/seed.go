package server

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/daliev/quizroom/internal/room"
)

// Seed creates the host account and a demo scenario when the database is
// empty. Idempotent: does nothing once a host exists.
func Seed(ctx context.Context, logger *slog.Logger, hosts *HostStore, email, password string) error {
	count, err := hosts.CountHosts(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := hosts.CreateHost(ctx, email, string(hash)); err != nil {
		return err
	}

	demo := room.FallbackScenario()
	if _, err := hosts.CreateScenario(ctx, ScenarioRequest{
		Title:  demo.Title,
		Rounds: demo.Rounds,
	}); err != nil {
		return err
	}

	logger.Info("host account and demo scenario seeded", "email", email)
	return nil
}

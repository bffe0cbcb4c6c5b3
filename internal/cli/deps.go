package cli

import (
	"log/slog"

	"github.com/higexxp/issuedash/internal/config"
	"github.com/higexxp/issuedash/internal/format"
	"github.com/higexxp/issuedash/internal/notify"
	"github.com/higexxp/issuedash/internal/service"
)

// Dependencies holds all injectable dependencies for CLI commands.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	Config      *config.Config
	Formatter   *format.Formatter
	Logger      *slog.Logger
	Broadcaster *notify.Broadcaster

	// Services provide the core dashboard logic
	Deps service.DependencyServiceInterface
	Time service.TimeServiceInterface
	Sync service.SyncServiceInterface
}

// NewDependencies creates dependencies with real implementations.
func NewDependencies(cfg *config.Config, services *service.Services, broadcaster *notify.Broadcaster, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		Config:      cfg,
		Formatter:   format.New(),
		Logger:      logger,
		Broadcaster: broadcaster,
		Deps:        services.Dependencies,
		Time:        services.Time,
		Sync:        services.Sync,
	}
}

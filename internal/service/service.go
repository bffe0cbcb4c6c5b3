// Package service provides a service layer between interfaces (CLI/HTTP)
// and the core packages. It handles caching, validation, persistence, and
// change notification.
package service

import (
	"log/slog"

	"github.com/higexxp/issuedash/internal/config"
	"github.com/higexxp/issuedash/internal/github"
	"github.com/higexxp/issuedash/internal/notify"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// Services holds all service instances
type Services struct {
	Dependencies *DependencyService
	Time         *TimeService
	Sync         *SyncService

	store *timetrack.Store
}

// New creates all services with a shared configuration and store.
func New(cfg *config.Config, store *timetrack.Store, gh *github.Client, notifier notify.Notifier, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = &notify.LogNotifier{Logger: logger}
	}

	depSvc := NewDependencyService(cfg.ParseTTL(), cfg.GraphTTL(), logger)
	return &Services{
		Dependencies: depSvc,
		Time:         NewTimeService(store, notifier, logger),
		Sync:         NewSyncService(gh, depSvc, notifier, logger),
		store:        store,
	}
}

// Store returns the underlying entry store for advanced operations.
func (s *Services) Store() *timetrack.Store {
	return s.store
}

// Close releases cache janitors held by the services.
func (s *Services) Close() {
	s.Dependencies.Close()
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/github"
	"github.com/higexxp/issuedash/internal/notify"
)

// ErrNoClient is returned when a sync is requested without a configured
// GitHub client.
var ErrNoClient = errors.New("no GitHub client configured")

// SyncService pulls open issues from GitHub, parses their dependency
// sections, and rebuilds the dependency graph.
type SyncService struct {
	client   *github.Client
	deps     *DependencyService
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewSyncService creates a new SyncService. client may be nil; syncs then
// fail with ErrNoClient.
func NewSyncService(client *github.Client, depSvc *DependencyService, notifier notify.Notifier, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = &notify.LogNotifier{Logger: logger}
	}
	return &SyncService{
		client:   client,
		deps:     depSvc,
		notifier: notifier,
		logger:   logger,
	}
}

// SyncRepository fetches one repository's open issues and returns its
// dependency graph.
func (s *SyncService) SyncRepository(ctx context.Context, repository string) (*deps.Graph, error) {
	return s.Sync(ctx, []string{repository})
}

// Sync fetches open issues across the given repositories and builds a
// combined dependency graph. Cross-repo references stay resolvable
// because every input carries its repository.
func (s *SyncService) Sync(ctx context.Context, repositories []string) (*deps.Graph, error) {
	if s.client == nil {
		return nil, ErrNoClient
	}

	var inputs []deps.IssueInput
	for _, repo := range repositories {
		issues, err := s.client.ListIssues(ctx, repo, "open")
		if err != nil {
			if github.IsRateLimitError(err) {
				s.logger.Warn("rate limited during sync",
					"repository", repo, "retryAfter", github.GetRetryAfter(err))
			}
			return nil, fmt.Errorf("failed to list issues for %s: %w", repo, err)
		}

		for _, issue := range issues {
			res := s.deps.Parse(issue.Body, repo, issue.Number)
			inputs = append(inputs, deps.IssueInput{
				IssueNumber:  issue.Number,
				Repository:   repo,
				Title:        issue.Title,
				State:        issue.State,
				Dependencies: res.Dependencies,
			})
		}
		s.logger.Info("synced repository", "repository", repo, "issues", len(issues))
	}

	s.deps.InvalidateGraph(inputs)
	g := s.deps.BuildGraph(inputs)

	for _, repo := range repositories {
		s.notifier.Publish(notify.Event{
			Type:       notify.EventGraphUpdated,
			Repository: repo,
		})
	}
	return g, nil
}

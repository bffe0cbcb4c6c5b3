package service

import (
	"context"
	"time"

	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// DependencyServiceInterface defines the contract for dependency operations
type DependencyServiceInterface interface {
	Parse(body, currentRepo string, currentIssue int) ParseResult
	Validate(dependencies []deps.IssueDependency, currentIssue int) deps.Validation
	BuildGraph(issues []deps.IssueInput) *deps.Graph
	InvalidateGraph(issues []deps.IssueInput)
	Markdown(dependencies []deps.IssueDependency) string
}

// TimeServiceInterface defines the contract for time-tracking operations
type TimeServiceInterface interface {
	StartSession(issueNumber int, repository, userID, description string) (*timetrack.Session, error)
	PauseSession(issueNumber int, repository, userID string) *timetrack.Session
	ResumeSession(issueNumber int, repository, userID string) *timetrack.Session
	StopSession(issueNumber int, repository, userID string) (*timetrack.Entry, error)
	AddEntry(issueNumber int, repository, userID string, durationMinutes int, description string, startTime time.Time, tags []string) (*timetrack.Entry, error)
	ActiveSession(userID string) *timetrack.Session
	UserSessions(userID string) []timetrack.Session
	Entries(f timetrack.EntryFilter) ([]timetrack.Entry, error)
	UpdateEntry(id string, upd timetrack.EntryUpdate) (*timetrack.Entry, error)
	SpentLabels(issueNumber int, repository string, existing []string) ([]string, error)
	Report(userID string, start, end time.Time) (*timetrack.Report, error)
}

// SyncServiceInterface defines the contract for GitHub synchronization
type SyncServiceInterface interface {
	SyncRepository(ctx context.Context, repository string) (*deps.Graph, error)
	Sync(ctx context.Context, repositories []string) (*deps.Graph, error)
}

// Verify implementations satisfy interfaces (compile-time check)
var (
	_ DependencyServiceInterface = (*DependencyService)(nil)
	_ TimeServiceInterface       = (*TimeService)(nil)
	_ SyncServiceInterface       = (*SyncService)(nil)
)

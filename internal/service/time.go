package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/higexxp/issuedash/internal/labels"
	"github.com/higexxp/issuedash/internal/notify"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// TimeService handles time-tracking operations: the live session state
// machine, the durable entry store, and report aggregation. Every state
// change publishes a notify event.
type TimeService struct {
	manager  *timetrack.Manager
	store    *timetrack.Store
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewTimeService creates a new TimeService.
func NewTimeService(store *timetrack.Store, notifier notify.Notifier, logger *slog.Logger) *TimeService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = &notify.LogNotifier{Logger: logger}
	}
	return &TimeService{
		manager:  timetrack.NewManager(store, logger),
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// StartSession begins tracking, taking over any live session the user has.
func (s *TimeService) StartSession(issueNumber int, repository, userID, description string) (*timetrack.Session, error) {
	sess, err := s.manager.Start(issueNumber, repository, userID, description)
	if err != nil {
		return nil, err
	}
	s.publish(notify.EventSessionStarted, sess)
	return sess, nil
}

// PauseSession pauses the matching active session; nil when no match.
func (s *TimeService) PauseSession(issueNumber int, repository, userID string) *timetrack.Session {
	sess := s.manager.Pause(issueNumber, repository, userID)
	if sess != nil {
		s.publish(notify.EventSessionPaused, sess)
	}
	return sess
}

// ResumeSession resumes the matching paused session; nil when no match.
func (s *TimeService) ResumeSession(issueNumber int, repository, userID string) *timetrack.Session {
	sess := s.manager.Resume(issueNumber, repository, userID)
	if sess != nil {
		s.publish(notify.EventSessionResumed, sess)
	}
	return sess
}

// StopSession closes the matching session into a stored entry. Returns
// (nil, nil) when there is nothing to stop.
func (s *TimeService) StopSession(issueNumber int, repository, userID string) (*timetrack.Entry, error) {
	entry, err := s.manager.Stop(issueNumber, repository, userID)
	if err != nil || entry == nil {
		return entry, err
	}
	s.notifier.Publish(notify.Event{
		Type:        notify.EventSessionStopped,
		Repository:  entry.Repository,
		IssueNumber: entry.IssueNumber,
		UserID:      entry.UserID,
		Payload:     entry,
	})
	return entry, nil
}

// AddEntry records a manual time entry.
func (s *TimeService) AddEntry(issueNumber int, repository, userID string, durationMinutes int, description string, startTime time.Time, tags []string) (*timetrack.Entry, error) {
	entry, err := s.manager.AddManualEntry(issueNumber, repository, userID, durationMinutes, description, startTime, tags)
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(notify.Event{
		Type:        notify.EventEntryAdded,
		Repository:  entry.Repository,
		IssueNumber: entry.IssueNumber,
		UserID:      entry.UserID,
		Payload:     entry,
	})
	return entry, nil
}

// ActiveSession returns the user's live session, active or paused.
func (s *TimeService) ActiveSession(userID string) *timetrack.Session {
	return s.manager.ActiveSession(userID)
}

// UserSessions returns the user's currently active sessions.
func (s *TimeService) UserSessions(userID string) []timetrack.Session {
	return s.manager.UserSessions(userID)
}

// Entries lists stored entries matching the filter, oldest first.
func (s *TimeService) Entries(f timetrack.EntryFilter) ([]timetrack.Entry, error) {
	return s.store.List(f)
}

// UpdateEntry modifies a stored entry.
func (s *TimeService) UpdateEntry(id string, upd timetrack.EntryUpdate) (*timetrack.Entry, error) {
	return s.store.Update(id, upd)
}

// SpentLabels recomputes an issue's label-encoded metadata from its
// tracked time. Existing priority/category/size/status labels are kept;
// the time-spent label is replaced with the stored total.
func (s *TimeService) SpentLabels(issueNumber int, repository string, existing []string) ([]string, error) {
	entries, err := s.store.List(timetrack.EntryFilter{
		Repository:  repository,
		IssueNumber: issueNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	total := 0
	for _, e := range entries {
		total += e.Duration
	}

	meta := labels.FromLabels(existing)
	meta.TimeSpentMinutes = total
	return meta.ToLabels(), nil
}

// Report aggregates stored entries over [start, end], optionally
// filtered to one user.
func (s *TimeService) Report(userID string, start, end time.Time) (*timetrack.Report, error) {
	entries, err := s.store.List(timetrack.EntryFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	rep := timetrack.BuildReport(entries, start, end)
	return &rep, nil
}

func (s *TimeService) publish(eventType string, sess *timetrack.Session) {
	s.notifier.Publish(notify.Event{
		Type:        eventType,
		Repository:  sess.Repository,
		IssueNumber: sess.IssueNumber,
		UserID:      sess.UserID,
	})
}

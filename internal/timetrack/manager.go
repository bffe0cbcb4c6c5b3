package timetrack

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EntryAppender receives closed time entries. The sqlite Store satisfies
// it; tests substitute an in-memory fake.
type EntryAppender interface {
	Append(Entry) error
}

// Manager owns the live session table. One live session per user is the
// core invariant: starting a new session implicitly stops any other live
// session the same user owns, whatever issue it tracks. The table is
// guarded by a mutex so the takeover is atomic under concurrent callers;
// sessions live in process memory only and are lost on restart.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    EntryAppender
	clock    func() time.Time
	logger   *slog.Logger
}

// NewManager creates a Manager writing closed entries to store.
func NewManager(store EntryAppender, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		clock:    time.Now,
		logger:   logger,
	}
}

// Start begins a new active session for the user. Any prior live session
// (active or paused, any issue) is closed into an entry first, so a reader
// never observes two live sessions for one user.
func (m *Manager) Start(issueNumber int, repository, userID, description string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.sessions[userID]; ok {
		entry := m.closeLocked(prev)
		if err := m.store.Append(entry); err != nil {
			return nil, fmt.Errorf("close previous session: %w", err)
		}
		delete(m.sessions, userID)
		m.logger.Info("session taken over",
			"user", userID, "previousIssue", prev.IssueNumber, "issue", issueNumber)
	}

	s := &Session{
		ID:          uuid.NewString(),
		IssueNumber: issueNumber,
		Repository:  repository,
		UserID:      userID,
		Description: description,
		StartTime:   m.clock(),
		IsActive:    true,
	}
	m.sessions[userID] = s

	out := *s
	return &out, nil
}

// Pause transitions a matching active session to paused. Returns nil when
// no session matches the (issue, repository, user) triple or the session
// is already paused; "nothing to pause" is an expected steady state.
func (m *Manager) Pause(issueNumber int, repository, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.matchLocked(issueNumber, repository, userID)
	if s == nil || !s.IsActive {
		return nil
	}
	s.IsActive = false
	out := *s
	return &out
}

// Resume transitions a matching paused session back to active. Returns nil
// when no paused session matches.
func (m *Manager) Resume(issueNumber int, repository, userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.matchLocked(issueNumber, repository, userID)
	if s == nil || s.IsActive {
		return nil
	}
	s.IsActive = true
	out := *s
	return &out
}

// Stop closes a matching session (active or paused) into an entry and
// removes it from the live table. Returns nil, nil when no session
// matches — never an error for an absent session.
func (m *Manager) Stop(issueNumber int, repository, userID string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.matchLocked(issueNumber, repository, userID)
	if s == nil {
		return nil, nil
	}
	entry := m.closeLocked(s)
	if err := m.store.Append(entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	delete(m.sessions, userID)

	out := entry
	return &out, nil
}

// AddManualEntry appends a closed entry directly, bypassing the live
// session table. A zero startTime means now; the end time is derived from
// the duration.
func (m *Manager) AddManualEntry(issueNumber int, repository, userID string, durationMinutes int, description string, startTime time.Time, tags []string) (*Entry, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	if startTime.IsZero() {
		startTime = m.clock()
	}

	entry := Entry{
		ID:          uuid.NewString(),
		IssueNumber: issueNumber,
		Repository:  repository,
		UserID:      userID,
		Description: description,
		StartTime:   startTime,
		EndTime:     startTime.Add(time.Duration(durationMinutes) * time.Minute),
		Duration:    durationMinutes,
		Tags:        tags,
	}
	if err := m.store.Append(entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	return &entry, nil
}

// ActiveSession returns the user's current live session, active or paused,
// or nil.
func (m *Manager) ActiveSession(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil
	}
	out := *s
	return &out
}

// UserSessions returns the user's sessions currently in the active state.
// Paused sessions are excluded; a long-standing quirk kept for
// compatibility with existing dashboards.
func (m *Manager) UserSessions(userID string) []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Session
	if s, ok := m.sessions[userID]; ok && s.IsActive {
		out = append(out, *s)
	}
	return out
}

// matchLocked finds the user's live session if it tracks the given issue.
func (m *Manager) matchLocked(issueNumber int, repository, userID string) *Session {
	s, ok := m.sessions[userID]
	if !ok || s.IssueNumber != issueNumber || s.Repository != repository {
		return nil
	}
	return s
}

// closeLocked converts a live session to an entry, rounding the elapsed
// time to whole minutes.
func (m *Manager) closeLocked(s *Session) Entry {
	now := m.clock()
	return Entry{
		ID:          s.ID,
		IssueNumber: s.IssueNumber,
		Repository:  s.Repository,
		UserID:      s.UserID,
		Description: s.Description,
		StartTime:   s.StartTime,
		EndTime:     now,
		Duration:    int(math.Round(now.Sub(s.StartTime).Minutes())),
	}
}

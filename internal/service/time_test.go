package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higexxp/issuedash/internal/notify"
	"github.com/higexxp/issuedash/internal/timetrack"
)

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Publish(ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, ev := range n.events {
		out[i] = ev.Type
	}
	return out
}

func newTestTimeService(t *testing.T) (*TimeService, *recordingNotifier) {
	t.Helper()
	store, err := timetrack.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	rec := &recordingNotifier{}
	return NewTimeService(store, rec, nil), rec
}

func TestTimeService_SessionLifecycleEvents(t *testing.T) {
	svc, rec := newTestTimeService(t)

	sess, err := svc.StartSession(1, "owner/repo", "alice", "working")
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.NotNil(t, svc.PauseSession(1, "owner/repo", "alice"))
	assert.NotNil(t, svc.ResumeSession(1, "owner/repo", "alice"))

	entry, err := svc.StopSession(1, "owner/repo", "alice")
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, []string{
		notify.EventSessionStarted,
		notify.EventSessionPaused,
		notify.EventSessionResumed,
		notify.EventSessionStopped,
	}, rec.types())

	// Stopped session landed in the store.
	entries, err := svc.Entries(timetrack.EntryFilter{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestTimeService_StopWithoutSession(t *testing.T) {
	svc, rec := newTestTimeService(t)

	entry, err := svc.StopSession(1, "owner/repo", "nobody")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Empty(t, rec.types(), "no event for a no-op stop")
}

func TestTimeService_PauseMismatchPublishesNothing(t *testing.T) {
	svc, rec := newTestTimeService(t)

	_, err := svc.StartSession(1, "owner/repo", "alice", "")
	require.NoError(t, err)

	assert.Nil(t, svc.PauseSession(2, "owner/repo", "alice"))
	assert.Equal(t, []string{notify.EventSessionStarted}, rec.types())
}

func TestTimeService_AddEntryAndReport(t *testing.T) {
	svc, rec := newTestTimeService(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entry, err := svc.AddEntry(5, "owner/repo", "bob", 90, "review", start, []string{"review"})
	require.NoError(t, err)
	assert.Equal(t, 90, entry.Duration)
	assert.Equal(t, []string{notify.EventEntryAdded}, rec.types())

	rep, err := svc.Report("bob", start.Add(-time.Hour), start.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 90, rep.Summary.TotalMinutes)
	assert.Equal(t, 1, rep.Summary.EntriesCount)
	assert.Equal(t, timetrack.PeriodWeek, rep.Period.Type)
}

func TestTimeService_SpentLabels(t *testing.T) {
	svc, _ := newTestTimeService(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.AddEntry(5, "owner/repo", "bob", 60, "", start, nil)
	require.NoError(t, err)
	_, err = svc.AddEntry(5, "owner/repo", "alice", 30, "", start.Add(time.Hour), nil)
	require.NoError(t, err)

	updated, err := svc.SpentLabels(5, "owner/repo", []string{"priority:high", "time-spent:10"})
	require.NoError(t, err)
	assert.Contains(t, updated, "priority:high")
	assert.Contains(t, updated, "time-spent:90")
	assert.NotContains(t, updated, "time-spent:10")
}

func TestTimeService_AddEntryRejectsNonPositiveDuration(t *testing.T) {
	svc, rec := newTestTimeService(t)

	_, err := svc.AddEntry(5, "owner/repo", "bob", 0, "", time.Time{}, nil)
	assert.Error(t, err)
	assert.Empty(t, rec.types())
}

package timetrack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func storedEntry(id string, user string, issue int, start time.Time, minutes int) Entry {
	return Entry{
		ID:          id,
		IssueNumber: issue,
		Repository:  "owner/repo",
		UserID:      user,
		Description: "work",
		StartTime:   start,
		EndTime:     start.Add(time.Duration(minutes) * time.Minute),
		Duration:    minutes,
		Tags:        []string{"dev", "backend"},
	}
}

func TestStore_AppendGet(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	require.NoError(t, s.Append(storedEntry("e1", "user1", 1, start, 30)))

	got, err := s.Get("e1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.IssueNumber)
	assert.Equal(t, start, got.StartTime)
	assert.Equal(t, 30, got.Duration)
	assert.Equal(t, []string{"dev", "backend"}, got.Tags)

	missing, err := s.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_ListFilters(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Append(storedEntry("e1", "user1", 1, base, 30)))
	require.NoError(t, s.Append(storedEntry("e2", "user2", 1, base.Add(time.Hour), 60)))
	require.NoError(t, s.Append(storedEntry("e3", "user1", 2, base.Add(48*time.Hour), 15)))

	byUser, err := s.List(EntryFilter{UserID: "user1"})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byIssue, err := s.List(EntryFilter{IssueNumber: 1})
	require.NoError(t, err)
	assert.Len(t, byIssue, 2)

	byRange, err := s.List(EntryFilter{From: base, To: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, byRange, 2)
	assert.Equal(t, "e1", byRange[0].ID, "oldest first")
}

func TestStore_UpdateRecomputesDuration(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(storedEntry("e1", "user1", 1, start, 30)))

	newEnd := start.Add(2 * time.Hour)
	got, err := s.Update("e1", EntryUpdate{EndTime: &newEnd})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 120, got.Duration, "duration follows the changed times")

	desc := "revised"
	got, err = s.Update("e1", EntryUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "revised", got.Description)
	assert.Equal(t, 120, got.Duration, "duration untouched when times unchanged")

	missing, err := s.Update("nope", EntryUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_ManagerIntegration(t *testing.T) {
	s := newTestStore(t)
	m := NewManager(s, nil)

	_, err := m.Start(5, "owner/repo", "user1", "wired through sqlite")
	require.NoError(t, err)
	entry, err := m.Stop(5, "owner/repo", "user1")
	require.NoError(t, err)
	require.NotNil(t, entry)

	stored, err := s.List(EntryFilter{UserID: "user1"})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 5, stored[0].IssueNumber)
}

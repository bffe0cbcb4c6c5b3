package timetrack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(start time.Time, minutes int, user string, issue int) Entry {
	return Entry{
		ID:          "e",
		IssueNumber: issue,
		Repository:  "owner/repo",
		UserID:      user,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(minutes) * time.Minute),
		Duration:    minutes,
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	s := Summarize([]Entry{
		entryAt(day1, 30, "user1", 1),
		entryAt(day1.Add(2*time.Hour), 90, "user1", 2),
		entryAt(day2, 15, "user2", 1),
	})

	assert.Equal(t, 135, s.TotalMinutes)
	assert.Equal(t, 2.25, s.TotalHours)
	assert.Equal(t, 3, s.EntriesCount)
	assert.Equal(t, 45.0, s.AverageSessionMinutes)
	assert.Equal(t, 90, s.LongestSessionMinutes)
	assert.Equal(t, 15, s.ShortestSessionMinutes)
	assert.Equal(t, 2, s.ActiveDays)
}

func TestBuildReport_GroupsAndFilters(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.Add(5 * 24 * time.Hour)

	entries := []Entry{
		entryAt(start.Add(time.Hour), 30, "user1", 1),
		entryAt(start.Add(26*time.Hour), 60, "user2", 1),
		entryAt(start.Add(27*time.Hour), 10, "user1", 2),
		entryAt(end.Add(time.Hour), 99, "user1", 3), // outside [start, end]
	}

	r := BuildReport(entries, start, end)

	assert.Equal(t, 3, r.Summary.EntriesCount)
	assert.Equal(t, 100, r.Summary.TotalMinutes)

	require.Contains(t, r.ByIssue, "owner/repo#1")
	assert.Equal(t, 90, r.ByIssue["owner/repo#1"].TotalMinutes)
	assert.Equal(t, 40, r.ByUser["user1"].TotalMinutes)
	assert.Equal(t, 60, r.ByUser["user2"].TotalMinutes)
	assert.Equal(t, 30, r.ByDay["2026-03-02"].TotalMinutes)
	assert.Equal(t, 70, r.ByDay["2026-03-03"].TotalMinutes)
}

func TestBuildReport_PeriodClassification(t *testing.T) {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want PeriodType
	}{
		{"same calendar day", base.Add(8 * time.Hour), PeriodDay},
		{"exactly seven days", base.Add(7 * 24 * time.Hour), PeriodWeek},
		{"three days", base.Add(3 * 24 * time.Hour), PeriodWeek},
		{"thirty-one days", base.Add(31 * 24 * time.Hour), PeriodMonth},
		{"thirty-two days", base.Add(32 * 24 * time.Hour), PeriodCustom},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := BuildReport(nil, base, tc.end)
			assert.Equal(t, tc.want, r.Period.Type)
		})
	}
}

func TestBuildReport_EmptyRange(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	r := BuildReport(nil, start, start.Add(24*time.Hour))

	assert.Equal(t, Summary{}, r.Summary)
	assert.Empty(t, r.ByIssue)
	assert.Empty(t, r.ByUser)
	assert.Empty(t, r.ByDay)
}

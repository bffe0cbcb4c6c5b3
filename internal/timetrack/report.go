package timetrack

import (
	"math"
	"time"
)

// Summary aggregates a set of closed entries. An empty input yields the
// zero Summary.
type Summary struct {
	TotalMinutes           int     `json:"totalMinutes"`
	TotalHours             float64 `json:"totalHours"`
	EntriesCount           int     `json:"entriesCount"`
	AverageSessionMinutes  float64 `json:"averageSessionMinutes"`
	LongestSessionMinutes  int     `json:"longestSessionMinutes"`
	ShortestSessionMinutes int     `json:"shortestSessionMinutes"`
	ActiveDays             int     `json:"activeDays"`
}

// PeriodType classifies a report's span.
type PeriodType string

const (
	PeriodDay    PeriodType = "day"
	PeriodWeek   PeriodType = "week"
	PeriodMonth  PeriodType = "month"
	PeriodCustom PeriodType = "custom"
)

// Period describes the reported time range.
type Period struct {
	Type  PeriodType `json:"type"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// Report groups entries by issue, user, and calendar day, each group
// carrying its own sub-summary computed by the same aggregation rule.
type Report struct {
	Summary Summary            `json:"summary"`
	ByIssue map[string]Summary `json:"byIssue"`
	ByUser  map[string]Summary `json:"byUser"`
	ByDay   map[string]Summary `json:"byDay"`
	Period  Period             `json:"period"`
}

// Summarize computes the summary statistics for a set of entries.
func Summarize(entries []Entry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	s := Summary{
		EntriesCount:           len(entries),
		ShortestSessionMinutes: entries[0].Duration,
	}
	days := make(map[string]struct{})
	for _, e := range entries {
		s.TotalMinutes += e.Duration
		if e.Duration > s.LongestSessionMinutes {
			s.LongestSessionMinutes = e.Duration
		}
		if e.Duration < s.ShortestSessionMinutes {
			s.ShortestSessionMinutes = e.Duration
		}
		days[e.Day()] = struct{}{}
	}
	s.ActiveDays = len(days)
	s.TotalHours = round2(float64(s.TotalMinutes) / 60)
	s.AverageSessionMinutes = round2(float64(s.TotalMinutes) / float64(len(entries)))
	return s
}

// BuildReport filters entries whose start time falls in [start, end] and
// aggregates them overall and per issue, user, and day.
func BuildReport(entries []Entry, start, end time.Time) Report {
	var filtered []Entry
	for _, e := range entries {
		if e.StartTime.Before(start) || e.StartTime.After(end) {
			continue
		}
		filtered = append(filtered, e)
	}

	byIssue := make(map[string][]Entry)
	byUser := make(map[string][]Entry)
	byDay := make(map[string][]Entry)
	for _, e := range filtered {
		byIssue[e.IssueKey()] = append(byIssue[e.IssueKey()], e)
		byUser[e.UserID] = append(byUser[e.UserID], e)
		byDay[e.Day()] = append(byDay[e.Day()], e)
	}

	return Report{
		Summary: Summarize(filtered),
		ByIssue: summarizeGroups(byIssue),
		ByUser:  summarizeGroups(byUser),
		ByDay:   summarizeGroups(byDay),
		Period: Period{
			Type:  classifyPeriod(start, end),
			Start: start,
			End:   end,
		},
	}
}

// classifyPeriod buckets the span length: a single calendar day, up to a
// week, up to a month (31 days), else custom.
func classifyPeriod(start, end time.Time) PeriodType {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy == ey && sm == em && sd == ed {
		return PeriodDay
	}
	span := end.Sub(start)
	switch {
	case span <= 7*24*time.Hour:
		return PeriodWeek
	case span <= 31*24*time.Hour:
		return PeriodMonth
	default:
		return PeriodCustom
	}
}

func summarizeGroups(groups map[string][]Entry) map[string]Summary {
	out := make(map[string]Summary, len(groups))
	for key, entries := range groups {
		out[key] = Summarize(entries)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

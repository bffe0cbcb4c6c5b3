// Package timetrack implements per-user time tracking: a live session
// state machine (start/pause/resume/stop with automatic takeover), a
// durable entry store, and multi-dimensional report aggregation.
package timetrack

import (
	"strconv"
	"time"
)

// Session is a live, mutable record of in-progress time tracking for one
// user on one issue. A user owns at most one live session at a time.
type Session struct {
	ID          string    `json:"id"`
	IssueNumber int       `json:"issueNumber"`
	Repository  string    `json:"repository"`
	UserID      string    `json:"userId"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	IsActive    bool      `json:"isActive"`
}

// Entry is a closed record of elapsed time. Entries are immutable once
// written except through an explicit update, which may recompute the
// duration when the times change.
type Entry struct {
	ID          string    `json:"id"`
	IssueNumber int       `json:"issueNumber"`
	Repository  string    `json:"repository"`
	UserID      string    `json:"userId"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Duration    int       `json:"duration"` // minutes
	Tags        []string  `json:"tags,omitempty"`
}

// IssueKey groups an entry by its (repository, issue number) pair.
func (e Entry) IssueKey() string {
	return e.Repository + "#" + strconv.Itoa(e.IssueNumber)
}

// Day returns the calendar date of the entry's start time.
func (e Entry) Day() string {
	return e.StartTime.Format("2006-01-02")
}

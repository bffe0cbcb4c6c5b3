// Package labels encodes dashboard metadata into GitHub label strings and
// back. Priority, category, size, and status ride on prefixed labels
// ("priority:high", "size:medium"); time spent uses "time-spent:<minutes>".
// Unknown labels pass through untouched in both directions.
package labels

import (
	"fmt"
	"strconv"
	"strings"
)

// Label prefixes recognized by the codec.
const (
	prefixPriority  = "priority:"
	prefixCategory  = "category:"
	prefixSize      = "size:"
	prefixStatus    = "status:"
	prefixTimeSpent = "time-spent:"
)

// Priority ranks an issue's urgency.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Category classifies the kind of work.
type Category string

const (
	CategoryBug           Category = "bug"
	CategoryFeature       Category = "feature"
	CategoryRefactor      Category = "refactor"
	CategoryDocumentation Category = "documentation"
	CategoryQuestion      Category = "question"
)

// Size estimates the effort involved.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeXLarge Size = "xlarge"
)

// Status tracks dashboard workflow state beyond GitHub's open/closed.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusReady      Status = "ready"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Metadata is the label-encoded information attached to one issue. Zero
// values mean the corresponding label is absent.
type Metadata struct {
	Priority         Priority `json:"priority,omitempty"`
	Category         Category `json:"category,omitempty"`
	Size             Size     `json:"size,omitempty"`
	Status           Status   `json:"status,omitempty"`
	TimeSpentMinutes int      `json:"timeSpentMinutes,omitempty"`
}

// FromLabels decodes metadata from a label set. Later labels win when a
// prefix repeats; unparseable values are ignored.
func FromLabels(labelNames []string) Metadata {
	var m Metadata
	for _, l := range labelNames {
		name := strings.TrimSpace(l)
		switch {
		case strings.HasPrefix(name, prefixPriority):
			m.Priority = Priority(strings.TrimPrefix(name, prefixPriority))
		case strings.HasPrefix(name, prefixCategory):
			m.Category = Category(strings.TrimPrefix(name, prefixCategory))
		case strings.HasPrefix(name, prefixSize):
			m.Size = Size(strings.TrimPrefix(name, prefixSize))
		case strings.HasPrefix(name, prefixStatus):
			m.Status = Status(strings.TrimPrefix(name, prefixStatus))
		case strings.HasPrefix(name, prefixTimeSpent):
			if minutes, err := strconv.Atoi(strings.TrimPrefix(name, prefixTimeSpent)); err == nil && minutes >= 0 {
				m.TimeSpentMinutes = minutes
			}
		}
	}
	return m
}

// ToLabels encodes metadata back into label strings. Absent fields emit no
// label, so FromLabels(ToLabels(m)) == m.
func (m Metadata) ToLabels() []string {
	var out []string
	if m.Priority != "" {
		out = append(out, prefixPriority+string(m.Priority))
	}
	if m.Category != "" {
		out = append(out, prefixCategory+string(m.Category))
	}
	if m.Size != "" {
		out = append(out, prefixSize+string(m.Size))
	}
	if m.Status != "" {
		out = append(out, prefixStatus+string(m.Status))
	}
	if m.TimeSpentMinutes > 0 {
		out = append(out, fmt.Sprintf("%s%d", prefixTimeSpent, m.TimeSpentMinutes))
	}
	return out
}

// Merge overlays other onto m, field by field. Set fields in other win.
func (m Metadata) Merge(other Metadata) Metadata {
	if other.Priority != "" {
		m.Priority = other.Priority
	}
	if other.Category != "" {
		m.Category = other.Category
	}
	if other.Size != "" {
		m.Size = other.Size
	}
	if other.Status != "" {
		m.Status = other.Status
	}
	if other.TimeSpentMinutes > 0 {
		m.TimeSpentMinutes = other.TimeSpentMinutes
	}
	return m
}

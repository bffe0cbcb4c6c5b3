package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLabels(t *testing.T) {
	m := FromLabels([]string{
		"priority:high",
		"category:bug",
		"size:medium",
		"status:in-progress",
		"time-spent:90",
		"help wanted", // unknown, ignored
	})

	assert.Equal(t, PriorityHigh, m.Priority)
	assert.Equal(t, CategoryBug, m.Category)
	assert.Equal(t, SizeMedium, m.Size)
	assert.Equal(t, StatusInProgress, m.Status)
	assert.Equal(t, 90, m.TimeSpentMinutes)
}

func TestFromLabels_BadTimeSpentIgnored(t *testing.T) {
	m := FromLabels([]string{"time-spent:lots", "time-spent:-5"})
	assert.Zero(t, m.TimeSpentMinutes)
}

func TestRoundTrip(t *testing.T) {
	m := Metadata{
		Priority:         PriorityCritical,
		Size:             SizeLarge,
		TimeSpentMinutes: 45,
	}

	assert.Equal(t, m, FromLabels(m.ToLabels()))
}

func TestToLabels_EmptyMetadata(t *testing.T) {
	assert.Empty(t, Metadata{}.ToLabels())
}

func TestMerge(t *testing.T) {
	base := Metadata{Priority: PriorityLow, Category: CategoryBug}
	merged := base.Merge(Metadata{Priority: PriorityHigh, TimeSpentMinutes: 30})

	assert.Equal(t, PriorityHigh, merged.Priority)
	assert.Equal(t, CategoryBug, merged.Category)
	assert.Equal(t, 30, merged.TimeSpentMinutes)
}

package format

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higexxp/issuedash/internal/deps"
	"github.com/higexxp/issuedash/internal/timetrack"
)

func TestParseOutputType(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputType
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{"yaml", OutputText, true},
	}
	for _, tt := range tests {
		got, err := ParseOutputType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTextRenderer_Dependencies(t *testing.T) {
	f := New()

	out := f.Dependencies([]deps.IssueDependency{
		{Type: deps.DependsOn, IssueNumber: 123, Description: "auth"},
		{Type: deps.Blocks, IssueNumber: 456, Repository: "owner/other"},
	}, OutputText)

	assert.Contains(t, out, "DEPENDENCIES (2)")
	assert.Contains(t, out, "depends on #123 (auth)")
	assert.Contains(t, out, "blocks owner/other#456")
}

func TestTextRenderer_EmptyDependencies(t *testing.T) {
	f := New()
	assert.Equal(t, "No dependencies found.", f.Dependencies(nil, OutputText))
}

func TestTextRenderer_Graph_LevelsAndCycles(t *testing.T) {
	f := New()
	g := &deps.Graph{
		Nodes: []deps.Node{
			{IssueNumber: 1, Title: "top", Level: 2},
			{IssueNumber: 2, Level: 1},
			{IssueNumber: 3, Level: 0},
		},
		Edges: []deps.Edge{
			{From: 1, To: 2, Type: deps.DependsOn},
			{From: 2, To: 3, Type: deps.DependsOn},
		},
		Cycles: [][]int{{1, 2, 1}},
	}

	out := f.Graph(g, OutputText)
	assert.Contains(t, out, "GRAPH (3 nodes, 2 edges)")
	assert.Contains(t, out, "Level 2:")
	assert.Contains(t, out, "#1 top")
	assert.Contains(t, out, "CYCLES (1)")
	assert.Contains(t, out, "#1 -> #2 -> #1")

	// Deepest prerequisites render first.
	assert.Less(t, strings.Index(out, "Level 2:"), strings.Index(out, "Level 0:"))
}

func TestTextRenderer_Validation(t *testing.T) {
	f := New()
	out := f.Validation(&deps.Validation{
		IsValid:  false,
		Errors:   []string{"issue cannot depend on itself"},
		Warnings: []string{"duplicate dependency: #5"},
	}, OutputText)

	assert.Contains(t, out, "INVALID")
	assert.Contains(t, out, "error: issue cannot depend on itself")
	assert.Contains(t, out, "warning: duplicate dependency: #5")
}

func TestTextRenderer_Report(t *testing.T) {
	f := New()
	rep := &timetrack.Report{
		Summary: timetrack.Summary{
			TotalMinutes: 90, TotalHours: 1.5, EntriesCount: 2,
			AverageSessionMinutes: 45, LongestSessionMinutes: 60,
			ShortestSessionMinutes: 30, ActiveDays: 1,
		},
		ByIssue: map[string]timetrack.Summary{
			"owner/repo#1": {TotalMinutes: 90, EntriesCount: 2},
		},
		Period: timetrack.Period{
			Type:  timetrack.PeriodDay,
			Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC),
		},
	}

	out := f.Report(rep, OutputText)
	assert.Contains(t, out, "TIME REPORT (day)")
	assert.Contains(t, out, "Total: 90m (1.50h) across 2 entries, 1 active days")
	assert.Contains(t, out, "owner/repo#1: 90m (2 entries)")
}

func TestJSONRenderer_Graph(t *testing.T) {
	f := New()
	g := &deps.Graph{
		Nodes: []deps.Node{{IssueNumber: 1, Level: 0}},
	}

	out := f.Graph(g, OutputJSON)

	var decoded deps.Graph
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Nodes, 1)
	assert.Equal(t, 1, decoded.Nodes[0].IssueNumber)
}

func TestJSONRenderer_NilSession(t *testing.T) {
	f := New()
	assert.Equal(t, "null", f.Session(nil, OutputJSON))
}

func TestJSONRenderer_EmptyEntries(t *testing.T) {
	f := New()
	assert.Equal(t, "[]", f.EntryList(nil, OutputJSON))
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higexxp/issuedash/internal/deps"
)

func newTestDependencyService(t *testing.T) *DependencyService {
	t.Helper()
	s := NewDependencyService(time.Minute, time.Minute, nil)
	t.Cleanup(s.Close)
	return s
}

func TestDependencyService_Parse(t *testing.T) {
	s := newTestDependencyService(t)

	res := s.Parse("Depends on: #123 (auth)\nBlocks: #456", "owner/repo", 1)

	require.Len(t, res.Dependencies, 2)
	assert.Equal(t, deps.DependsOn, res.Dependencies[0].Type)
	assert.Equal(t, 123, res.Dependencies[0].IssueNumber)
	assert.True(t, res.Validation.IsValid)
}

func TestDependencyService_Parse_SelfDependency(t *testing.T) {
	s := newTestDependencyService(t)

	res := s.Parse("Depends on: #7", "owner/repo", 7)

	assert.False(t, res.Validation.IsValid)
	require.Len(t, res.Validation.Errors, 1)
}

func TestDependencyService_Parse_Memoized(t *testing.T) {
	s := newTestDependencyService(t)

	first := s.Parse("Depends on: #1", "owner/repo", 2)
	second := s.Parse("Depends on: #1", "owner/repo", 2)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.parseCache.Len())

	// Different current issue is a distinct cache entry.
	s.Parse("Depends on: #1", "owner/repo", 3)
	assert.Equal(t, 2, s.parseCache.Len())
}

func TestDependencyService_BuildGraph_Cached(t *testing.T) {
	s := newTestDependencyService(t)

	issues := []deps.IssueInput{
		{IssueNumber: 1, Dependencies: []deps.IssueDependency{
			{Type: deps.DependsOn, IssueNumber: 2},
		}},
		{IssueNumber: 2},
	}

	first := s.BuildGraph(issues)
	second := s.BuildGraph(issues)
	assert.Same(t, first, second, "identical input hits the cache")

	s.InvalidateGraph(issues)
	third := s.BuildGraph(issues)
	assert.NotSame(t, first, third, "invalidation forces a rebuild")
	assert.Equal(t, first.Edges, third.Edges)
}

func TestDependencyService_Markdown(t *testing.T) {
	s := newTestDependencyService(t)

	md := s.Markdown([]deps.IssueDependency{
		{Type: deps.DependsOn, IssueNumber: 123},
	})
	assert.Contains(t, md, "## Dependencies")
	assert.Contains(t, md, "- #123")
}

package service

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/higexxp/issuedash/internal/cache"
	"github.com/higexxp/issuedash/internal/deps"
)

// ParseResult bundles parsed dependencies with their validation.
type ParseResult struct {
	Dependencies []deps.IssueDependency `json:"dependencies"`
	Validation   deps.Validation        `json:"validation"`
}

// DependencyService handles dependency parsing, graph building, and
// validation. Parse and graph results are memoized; the caches are keyed
// on input content, so a changed issue body always misses.
type DependencyService struct {
	parser     *deps.Parser
	parseCache *cache.Cache[ParseResult]
	graphCache *cache.Cache[*deps.Graph]
	logger     *slog.Logger
}

// NewDependencyService creates a new DependencyService.
func NewDependencyService(parseTTL, graphTTL time.Duration, logger *slog.Logger) *DependencyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DependencyService{
		parser:     deps.NewParser(),
		parseCache: cache.New[ParseResult](parseTTL),
		graphCache: cache.New[*deps.Graph](graphTTL),
		logger:     logger,
	}
}

// Parse extracts dependencies from an issue body and validates them.
// currentIssue, when positive, enables self-dependency detection.
func (s *DependencyService) Parse(body, currentRepo string, currentIssue int) ParseResult {
	key := cache.ParseKey(currentRepo, body) + ":" + strconv.Itoa(currentIssue)
	if res, ok := s.parseCache.Get(key); ok {
		return res
	}

	dependencies := s.parser.Parse(body, currentRepo)
	res := ParseResult{
		Dependencies: dependencies,
		Validation:   deps.Validate(dependencies, currentIssue),
	}
	s.parseCache.Set(key, res)
	s.logger.Debug("parsed issue body",
		"repository", currentRepo, "issue", currentIssue,
		"dependencies", len(dependencies))
	return res
}

// Validate checks a dependency set without parsing.
func (s *DependencyService) Validate(dependencies []deps.IssueDependency, currentIssue int) deps.Validation {
	return deps.Validate(dependencies, currentIssue)
}

// BuildGraph assembles the dependency graph for a set of issues. The
// result is cached on the issue set's identity; call InvalidateGraph
// after a sync to force a rebuild.
func (s *DependencyService) BuildGraph(issues []deps.IssueInput) *deps.Graph {
	key := graphCacheKey(issues)
	if g, ok := s.graphCache.Get(key); ok {
		return g
	}

	g := deps.BuildGraph(issues)
	s.graphCache.Set(key, g)
	s.logger.Debug("built dependency graph",
		"nodes", len(g.Nodes), "edges", len(g.Edges), "cycles", len(g.Cycles))
	return g
}

// InvalidateGraph drops the cached graph for the given issue set.
func (s *DependencyService) InvalidateGraph(issues []deps.IssueInput) {
	s.graphCache.Invalidate(graphCacheKey(issues))
}

// Markdown renders a dependency list back to a Dependencies section.
func (s *DependencyService) Markdown(dependencies []deps.IssueDependency) string {
	return deps.GenerateMarkdown(dependencies)
}

// Close stops the cache janitors.
func (s *DependencyService) Close() {
	s.parseCache.Close()
	s.graphCache.Close()
}

func graphCacheKey(issues []deps.IssueInput) string {
	ids := make([]string, 0, len(issues))
	for _, in := range issues {
		id := in.Repository + "#" + strconv.Itoa(in.IssueNumber) + ":" + strconv.Itoa(len(in.Dependencies))
		for _, d := range in.Dependencies {
			id += "," + d.Key()
		}
		ids = append(ids, id)
	}
	return cache.GraphKey(ids)
}

// Package deps implements the dependency engine: extracting typed
// dependency references from issue text, assembling them into a directed
// graph with depth levels and cycle detection, and validating dependency
// sets for duplicates and logical conflicts.
package deps

import (
	"fmt"
)

// DependencyType classifies the relation a dependency expresses.
type DependencyType string

const (
	// DependsOn means the source issue cannot complete until the target does.
	DependsOn DependencyType = "depends_on"
	// Blocks means the source issue prevents the target from proceeding.
	Blocks DependencyType = "blocks"
)

// IsValid reports whether t is one of the two known dependency types.
func (t DependencyType) IsValid() bool {
	return t == DependsOn || t == Blocks
}

// IssueDependency is a single typed dependency reference extracted from
// issue text. Repository is empty when the target lives in the same
// repository as the source issue.
type IssueDependency struct {
	Type        DependencyType `json:"type"`
	IssueNumber int            `json:"issueNumber"`
	Repository  string         `json:"repository,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Key returns the deduplication key for a dependency. Same-repo references
// use the literal "current" so they collide with explicit references to the
// current repository after normalization.
func (d IssueDependency) Key() string {
	repo := d.Repository
	if repo == "" {
		repo = "current"
	}
	return fmt.Sprintf("%s:%s:%d", d.Type, repo, d.IssueNumber)
}

// Node is one vertex of a dependency graph. A node exists per distinct
// (repository, issue number) pair, including issues that only ever appear
// as dependency targets; those have no title or state.
type Node struct {
	IssueNumber int    `json:"issueNumber"`
	Repository  string `json:"repository"`
	Title       string `json:"title,omitempty"`
	State       string `json:"state,omitempty"`
	Level       int    `json:"level"`
}

// Edge is a directed predecessor→successor relation between two issues.
// Both dependency types converge to this single direction: for depends_on
// the dependent issue is the source, for blocks the blocker is the source.
type Edge struct {
	From       int            `json:"from"`
	To         int            `json:"to"`
	Type       DependencyType `json:"type"`
	Repository string         `json:"repository,omitempty"`
}

// Graph is the assembled dependency graph for a set of issues. Each cycle
// is an ordered issue-number sequence starting and ending at the same node,
// in DFS discovery order.
type Graph struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Cycles [][]int `json:"cycles"`

	// Order is a suggested execution order (issues after everything they
	// wait on). Only populated when the graph is acyclic.
	Order []int `json:"order,omitempty"`
}

// MaxLevel returns the largest depth level present in the graph, 0 when
// the graph is empty.
func (g *Graph) MaxLevel() int {
	max := 0
	for _, n := range g.Nodes {
		if n.Level > max {
			max = n.Level
		}
	}
	return max
}

// IssueInput is one issue fed to the graph builder.
type IssueInput struct {
	IssueNumber  int               `json:"issueNumber"`
	Repository   string            `json:"repository"`
	Title        string            `json:"title,omitempty"`
	State        string            `json:"state,omitempty"`
	Dependencies []IssueDependency `json:"dependencies"`
}

// Validation is the result of checking a dependency set. Warnings never
// block validity; IsValid is true iff Errors is empty.
type Validation struct {
	IsValid  bool     `json:"isValid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

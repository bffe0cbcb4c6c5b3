package deps

import (
	"fmt"

	dgraph "github.com/dominikbraun/graph"
)

// nodeKey identifies a node by its (repository, issue number) pair. Level
// and cycle computations key on the full pair so cross-repository issues
// sharing a number never collide.
type nodeKey struct {
	repo   string
	number int
}

func (k nodeKey) String() string {
	return fmt.Sprintf("%s#%d", k.repo, k.number)
}

// builder assembles a Graph from issue inputs. Node and edge slices keep
// insertion order; all traversals run in that order.
type builder struct {
	nodes []Node
	index map[nodeKey]int
	edges []Edge
	ends  []edgeEnds
}

// edgeEnds carries the fully-keyed endpoints for an edge, parallel to
// builder.edges. The public Edge shape only exposes issue numbers.
type edgeEnds struct {
	from, to nodeKey
}

// BuildGraph assembles the dependency graph for a set of issues. Every
// input issue becomes a node, as does every dependency target, even
// targets that never appear as primary issues. An edge from A to B means
// A waits on B: depends_on keeps the dependent as the source, blocks is
// inverted so the blocked issue is the source. Levels and cycles are
// computed before returning; no error paths exist for well-formed input.
func BuildGraph(issues []IssueInput) *Graph {
	b := &builder{index: make(map[nodeKey]int)}

	for _, is := range issues {
		b.ensure(nodeKey{is.Repository, is.IssueNumber}, is.Title, is.State)
	}

	for _, is := range issues {
		src := nodeKey{is.Repository, is.IssueNumber}
		for _, d := range is.Dependencies {
			repo := d.Repository
			if repo == "" {
				repo = is.Repository
			}
			tgt := nodeKey{repo, d.IssueNumber}
			b.ensure(tgt, "", "")

			switch d.Type {
			case DependsOn:
				b.addEdge(src, tgt, DependsOn, d.Repository)
			case Blocks:
				b.addEdge(tgt, src, Blocks, d.Repository)
			}
		}
	}

	b.computeLevels()
	g := &Graph{Nodes: b.nodes, Edges: b.edges, Cycles: b.detectCycles()}
	if len(g.Cycles) == 0 {
		g.Order = b.workOrder()
	}
	return g
}

// ensure creates the node for key if absent. Title and state are filled in
// when an issue that first appeared as a dependency target later shows up
// as a primary input.
func (b *builder) ensure(key nodeKey, title, state string) {
	if i, ok := b.index[key]; ok {
		if title != "" && b.nodes[i].Title == "" {
			b.nodes[i].Title = title
		}
		if state != "" && b.nodes[i].State == "" {
			b.nodes[i].State = state
		}
		return
	}
	b.index[key] = len(b.nodes)
	b.nodes = append(b.nodes, Node{
		IssueNumber: key.number,
		Repository:  key.repo,
		Title:       title,
		State:       state,
	})
}

func (b *builder) addEdge(from, to nodeKey, typ DependencyType, repository string) {
	b.edges = append(b.edges, Edge{
		From:       from.number,
		To:         to.number,
		Type:       typ,
		Repository: repository,
	})
	b.ends = append(b.ends, edgeEnds{from: from, to: to})
}

// Visitation states shared by the level and cycle walks.
const (
	white = iota // unvisited
	gray         // in progress
	black        // done
)

// computeLevels assigns each node the length of the longest chain of
// issues it waits on: 0 with no outgoing edges, else 1 + max over the
// targets it points at. Memoized DFS with an explicit frame stack; a node
// re-entered while gray contributes level 0 for that occurrence, which
// bounds the walk on cyclic input without failing it.
func (b *builder) computeLevels() {
	waits := make(map[nodeKey][]nodeKey)
	for _, e := range b.ends {
		waits[e.from] = append(waits[e.from], e.to)
	}

	state := make(map[nodeKey]int, len(b.nodes))
	level := make(map[nodeKey]int, len(b.nodes))

	type frame struct {
		key  nodeKey
		deps []nodeKey
		i    int
		max  int
	}

	for i := range b.nodes {
		start := nodeKey{b.nodes[i].Repository, b.nodes[i].IssueNumber}
		if state[start] != white {
			continue
		}
		state[start] = gray
		stack := []frame{{key: start, deps: waits[start]}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.i < len(f.deps) {
				dep := f.deps[f.i]
				switch state[dep] {
				case black:
					if level[dep] > f.max {
						f.max = level[dep]
					}
					f.i++
				case gray:
					// Cycle guard: counts as level 0.
					f.i++
				default:
					state[dep] = gray
					stack = append(stack, frame{key: dep, deps: waits[dep]})
				}
				continue
			}

			lv := 0
			if len(f.deps) > 0 {
				lv = f.max + 1
			}
			level[f.key] = lv
			state[f.key] = black
			stack = stack[:len(stack)-1]
		}
	}

	for i := range b.nodes {
		b.nodes[i].Level = level[nodeKey{b.nodes[i].Repository, b.nodes[i].IssueNumber}]
	}
}

// detectCycles runs a three-color DFS over outgoing edges, visiting nodes
// and edges in insertion order. Hitting a gray node emits the current path
// slice from that node's first occurrence through the repeat, inclusive.
// Fully processed nodes are never revisited, so each disjoint cycle is
// reported once.
func (b *builder) detectCycles() [][]int {
	out := make(map[nodeKey][]nodeKey)
	for _, e := range b.ends {
		out[e.from] = append(out[e.from], e.to)
	}

	color := make(map[nodeKey]int, len(b.nodes))
	var cycles [][]int
	var path []nodeKey

	type frame struct {
		key   nodeKey
		succs []nodeKey
		i     int
	}

	for i := range b.nodes {
		start := nodeKey{b.nodes[i].Repository, b.nodes[i].IssueNumber}
		if color[start] != white {
			continue
		}
		color[start] = gray
		path = append(path, start)
		stack := []frame{{key: start, succs: out[start]}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.i < len(f.succs) {
				next := f.succs[f.i]
				f.i++
				switch color[next] {
				case white:
					color[next] = gray
					path = append(path, next)
					stack = append(stack, frame{key: next, succs: out[next]})
				case gray:
					cycles = append(cycles, cycleNumbers(path, next))
				}
				continue
			}
			color[f.key] = black
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}
	return cycles
}

// cycleNumbers slices the DFS path from the first occurrence of repeat to
// the end and closes the loop by repeating the entry node.
func cycleNumbers(path []nodeKey, repeat nodeKey) []int {
	start := 0
	for i, k := range path {
		if k == repeat {
			start = i
			break
		}
	}
	cycle := make([]int, 0, len(path)-start+1)
	for _, k := range path[start:] {
		cycle = append(cycle, k.number)
	}
	return append(cycle, repeat.number)
}

// workOrder computes a suggested execution order for an acyclic graph:
// issues appear after everything they wait on. Ties break on the node key
// string so the order is stable across runs.
func (b *builder) workOrder() []int {
	dg := dgraph.New(dgraph.StringHash, dgraph.Directed())

	numbers := make(map[string]int, len(b.nodes))
	for i := range b.nodes {
		key := nodeKey{b.nodes[i].Repository, b.nodes[i].IssueNumber}
		numbers[key.String()] = key.number
		_ = dg.AddVertex(key.String())
	}
	// Reversed: an edge A→B means A waits on B, so B sorts first.
	for _, e := range b.ends {
		_ = dg.AddEdge(e.to.String(), e.from.String())
	}

	order, err := dgraph.StableTopologicalSort(dg, func(a, b string) bool {
		return a < b
	})
	if err != nil {
		return nil
	}

	result := make([]int, 0, len(order))
	for _, key := range order {
		result = append(result, numbers[key])
	}
	return result
}

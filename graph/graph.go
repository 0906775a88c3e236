// Package graph implements connected-component detection and
// longest-simple-path ranking over the friendship graph.
package graph

import "github.com/google/uuid"

// Adjacency maps a user to their friends. Callers that need deterministic
// output must supply deterministically ordered id slices and neighbor
// lists.
type Adjacency map[uuid.UUID][]uuid.UUID

// DefaultMaxExhaustiveNodes bounds the exhaustive longest-path search.
// Longest simple path is NP-hard; above this component size the search
// would blow up on dense graphs, so the component is ranked by its node
// count instead.
const DefaultMaxExhaustiveNodes = 16

// Options tunes the analytics algorithms.
type Options struct {
	// MaxExhaustiveNodes is the largest component size still searched
	// exhaustively for the longest simple path. Zero or negative selects
	// DefaultMaxExhaustiveNodes.
	MaxExhaustiveNodes int
}

func (o Options) maxExhaustive() int {
	if o.MaxExhaustiveNodes <= 0 {
		return DefaultMaxExhaustiveNodes
	}
	return o.MaxExhaustiveNodes
}

// Component collects every node reachable from start over adj into one
// slice, marking them in visited. Nodes appear in DFS preorder.
func Component(start uuid.UUID, visited map[uuid.UUID]bool, adj Adjacency) []uuid.UUID {
	component := []uuid.UUID{start}
	visited[start] = true
	for _, next := range adj[start] {
		if !visited[next] {
			component = append(component, Component(next, visited, adj)...)
		}
	}
	return component
}

// Components partitions ids into connected components.
func Components(ids []uuid.UUID, adj Adjacency) [][]uuid.UUID {
	visited := make(map[uuid.UUID]bool, len(ids))
	var components [][]uuid.UUID
	for _, id := range ids {
		if !visited[id] {
			components = append(components, Component(id, visited, adj))
		}
	}
	return components
}

// LongestPath returns the length in edges of the longest simple path whose
// endpoints lie in component. Components above the exhaustive-search cap
// are scored by their node count.
func LongestPath(component []uuid.UUID, adj Adjacency, opts Options) int {
	if len(component) > opts.maxExhaustive() {
		return len(component)
	}
	max := 0
	visited := make(map[uuid.UUID]bool, len(component))
	for _, id := range component {
		visited[id] = true
		if p := longestFrom(id, visited, adj); p > max {
			max = p
		}
		delete(visited, id)
	}
	return max
}

// longestFrom walks every simple path starting at source, backtracking
// through visited, and returns the longest edge count found.
func longestFrom(source uuid.UUID, visited map[uuid.UUID]bool, adj Adjacency) int {
	max := -1
	for _, next := range adj[source] {
		if !visited[next] {
			visited[next] = true
			if p := longestFrom(next, visited, adj); p > max {
				max = p
			}
			delete(visited, next)
		}
	}
	return max + 1
}

// MostActive partitions ids into components and ranks them by longest
// simple path. It returns the total component count and every component
// tied for the best score; a strictly greater score discards the previous
// best set.
func MostActive(ids []uuid.UUID, adj Adjacency, opts Options) (int, [][]uuid.UUID) {
	visited := make(map[uuid.UUID]bool, len(ids))
	var best [][]uuid.UUID
	bestScore := -1
	count := 0

	for _, id := range ids {
		if visited[id] {
			continue
		}
		count++
		component := Component(id, visited, adj)
		score := LongestPath(component, adj, opts)
		switch {
		case score > bestScore:
			best = [][]uuid.UUID{component}
			bestScore = score
		case score == bestScore:
			best = append(best, component)
		}
	}
	return count, best
}

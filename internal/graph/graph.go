package graph

// TaskID is the unique identifier for a task inside a dependency graph.
// Kept as a string alias so callers can use whatever identifier scheme
// their task store produces.
type TaskID string

// Edge is one directed "depends on" relationship: Dependent depends on
// Prerequisite. The graph is represented as a flat edge list plus index
// maps computed per query; tasks are referenced only by opaque IDs, never
// by pointers to each other.
type Edge struct {
	ID           string
	Dependent    TaskID
	Prerequisite TaskID
}

// Index answers dependency queries over a fixed edge set. Build one from
// the project's current edges, query it, throw it away; it holds no
// state beyond the adjacency maps. Not safe for concurrent mutation, but
// all methods on a built Index are read-only.
type Index struct {
	edges []Edge

	// dependsOn maps a task to the prerequisites it depends on.
	dependsOn map[TaskID][]TaskID

	// dependedBy maps a task to the dependents waiting on it.
	dependedBy map[TaskID][]TaskID
}

// NewIndex builds an adjacency index from an edge list.
func NewIndex(edges []Edge) *Index {
	idx := &Index{
		edges:      edges,
		dependsOn:  make(map[TaskID][]TaskID, len(edges)),
		dependedBy: make(map[TaskID][]TaskID, len(edges)),
	}
	for _, e := range edges {
		idx.dependsOn[e.Dependent] = append(idx.dependsOn[e.Dependent], e.Prerequisite)
		idx.dependedBy[e.Prerequisite] = append(idx.dependedBy[e.Prerequisite], e.Dependent)
	}
	return idx
}

// Dependencies returns the immediate prerequisite IDs for the given task.
func (idx *Index) Dependencies(id TaskID) []TaskID {
	deps := idx.dependsOn[id]
	out := make([]TaskID, len(deps))
	copy(out, deps)
	return out
}

// Dependents returns the IDs of tasks that directly depend on the given
// task.
func (idx *Index) Dependents(id TaskID) []TaskID {
	deps := idx.dependedBy[id]
	out := make([]TaskID, len(deps))
	copy(out, deps)
	return out
}

// Reachable reports whether `to` can be reached from `from` by following
// "depends on" edges. Iterative DFS with a visited set so cyclic input
// cannot loop forever.
func (idx *Index) Reachable(from, to TaskID) bool {
	if from == to {
		return true
	}

	visited := make(map[TaskID]bool)
	stack := []TaskID{from}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range idx.dependsOn[current] {
			if next == to {
				return true
			}
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}

// WouldCycle reports whether inserting the edge (dependent, prerequisite)
// into this edge set would close a cycle. That is the case exactly when
// the prerequisite already depends, transitively, on the dependent.
func (idx *Index) WouldCycle(dependent, prerequisite TaskID) bool {
	return idx.Reachable(prerequisite, dependent)
}

// IsAcyclic verifies the whole edge set via Kahn's algorithm. Used by the
// post-write verification step, where the just-inserted edge is already
// part of the set.
func (idx *Index) IsAcyclic() bool {
	inDegree := make(map[TaskID]int)
	for _, e := range idx.edges {
		if _, ok := inDegree[e.Dependent]; !ok {
			inDegree[e.Dependent] = 0
		}
		if _, ok := inDegree[e.Prerequisite]; !ok {
			inDegree[e.Prerequisite] = 0
		}
		inDegree[e.Dependent]++
	}

	var queue []TaskID
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dependent := range idx.dependedBy[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	return visited == len(inDegree)
}

// Len returns the number of edges in the index.
func (idx *Index) Len() int {
	return len(idx.edges)
}

package layout

import (
	"slices"

	"github.com/matzehuels/draftboard/pkg/graph"
)

// assignLayers assigns every node to a horizontal rank using longest-path
// leveling via topological sort (Kahn's algorithm). Each node lands at one
// plus the maximum layer of any processed predecessor, so all parents are
// strictly above their children in acyclic regions.
//
// The traversal seeds from source nodes (in-degree 0). A graph with no
// sources - fully cyclic, or edge-less with nothing recorded - seeds from
// the first node in input order instead, which guarantees progress without
// special-casing cycles. Nodes never reached by the traversal (isolated,
// or locked inside a cycle) keep the default layer 0.
//
// Termination is unconditional: every edge relaxation decrements a
// remaining in-degree counter bounded by the edge count.
func assignLayers(g *graph.Graph) map[string]int {
	ids := g.NodeIDs()
	layers := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return layers
	}

	inDegree := make(map[string]int, len(ids))
	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		degree := g.InDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	if len(queue) == 0 {
		queue = append(queue, ids[0])
	}

	// A node's layer is final once it is dequeued. On a DAG the guard is a
	// no-op (all predecessors run first); on cyclic input it stops back
	// edges from bumping already-placed nodes and re-processing them.
	done := make(map[string]bool, len(ids))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if done[curr] {
			continue
		}
		done[curr] = true

		for _, child := range g.Children(curr) {
			if layer := layers[curr] + 1; layer > layers[child] && !done[child] {
				layers[child] = layer
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return layers
}

// layerRows groups node IDs by layer, ordered top to bottom, with each
// row sorted by ID string value. The sort is the documented tie-break:
// identical layer assignments always produce the same left-to-right order,
// which keeps layouts byte-identical across runs.
func layerRows(g *graph.Graph, layers map[string]int) [][]string {
	maxLayer := 0
	for _, id := range g.NodeIDs() {
		if l := layers[id]; l > maxLayer {
			maxLayer = l
		}
	}

	rows := make([][]string, maxLayer+1)
	for _, id := range g.NodeIDs() {
		l := layers[id]
		rows[l] = append(rows[l], id)
	}
	for _, row := range rows {
		slices.Sort(row)
	}
	return rows
}

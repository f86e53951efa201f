package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Graph is a directed diagram graph. Unlike a strict DAG it accepts cycles
// and dangling edges; the layout engine degrades gracefully on both, so the
// graph never rejects structurally questionable input at insertion time
// (only empty or duplicate node IDs are errors).
//
// Node input order is preserved and significant: the layering engine uses
// it as a deterministic fallback when the graph has no sources.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization, but distinct graphs are fully
// independent.
type Graph struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// Build constructs a Graph from node and edge slices, preserving node
// order. Nodes with empty or duplicate IDs are dropped rather than
// reported, matching the tolerance the rest of the pipeline applies to
// generator output. Edges are always added; dangling ones are kept and
// skipped downstream.
func Build(nodes []Node, edges []Edge) *Graph {
	g := New()
	for _, n := range nodes {
		_ = g.AddNode(n)
	}
	for _, e := range edges {
		g.AddEdge(e)
	}
	return g
}

// AddNode adds a node, preserving insertion order. Returns
// ErrInvalidNodeID or ErrDuplicateNodeID on bad input.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := n
	g.nodes[node.ID] = &node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds a directed edge. Adjacency indices are only updated when
// both endpoints exist; a dangling edge is recorded in Edges but never
// appears in Children, Parents, or degree counts.
func (g *Graph) AddEdge(e Edge) {
	g.edges = append(g.edges, e)
	if _, ok := g.nodes[e.From]; !ok {
		return
	}
	if _, ok := g.nodes[e.To]; !ok {
		return
	}
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = *g.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order, including
// dangling ones.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// ConnectedEdges returns the edges whose both endpoints exist in the node
// set, in insertion order. This is the edge view the layout engine and the
// element synthesizer operate on.
func (g *Graph) ConnectedEdges() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if g.Has(e.From) && g.Has(e.To) {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the IDs of nodes this node has edges to.
// The returned slice is a read-only view.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes with edges to this node.
// The returned slice is a read-only view.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// InDegree returns the number of connected incoming edges.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// OutDegree returns the number of connected outgoing edges.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, including dangling ones.
func (g *Graph) EdgeCount() int { return len(g.edges) }

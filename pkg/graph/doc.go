// Package graph defines the abstract diagram model consumed by the layout
// engine: nodes with a shape kind and optional label, and directed edges
// between them.
//
// # Architecture
//
// The package sits at the input boundary of the layout pipeline:
//
//   - [Graph], [Node], [Edge]: the diagram model (this package)
//   - pkg/layout: positions for every node
//   - pkg/render: drawable elements synthesized from positions
//
// Graphs typically come from a language model or from hand-written JSON, so
// the model is deliberately tolerant: an edge whose endpoint is missing from
// the node set is kept in the graph but skipped by every consumer. Strict
// validation (count caps, label lengths) lives in [Graph.Validate] and is
// applied at the collaborator boundary, not inside the layout engine.
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "start", "kind": "box", "label": "Start"}],
//	  "edges": [{"from": "start", "to": "end", "label": "ok"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadFile("diagram.json")  // File → Graph
//	graph.WriteFile(g, "out.json")          // Graph → File
//	data, _ := graph.Marshal(g)             // Graph → []byte
//	g, _ := graph.Unmarshal(data)           // []byte → Graph
package graph

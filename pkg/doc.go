// Package pkg provides the core libraries for Draftboard diagram generation.
//
// # Overview
//
// Draftboard turns short text prompts into laid-out diagrams. A language
// model proposes the diagram's structure as a node-and-edge document; the
// layout engine measures labels, places nodes into layers, and emits drawable
// elements; the render sinks turn those elements into SVG, PNG, JSON, or DOT.
//
// # Architecture
//
// The typical data flow through Draftboard:
//
//	Text prompt
//	     ↓
//	[llm] package (language-model document generation)
//	     ↓
//	[graph] package (document validation + graph structure)
//	     ↓
//	[layout] package (text metrics, layering, positions)
//	     ↓
//	[render] package (scene synthesis + output sinks)
//	     ↓
//	SVG/PNG/JSON/DOT output
//
// # Quick Start
//
// Build a graph and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/draftboard/pkg/graph"
//	    "github.com/matzehuels/draftboard/pkg/render"
//	    "github.com/matzehuels/draftboard/pkg/render/sink"
//	)
//
//	g := graph.Build(
//	    []graph.Node{{ID: "a", Label: "Start"}, {ID: "b", Label: "End"}},
//	    []graph.Edge{{From: "a", To: "b"}},
//	)
//	elements := render.Elements(g, 42)
//	svg := sink.RenderSVG(elements)
//
// # Main Packages
//
// [graph] - Diagram documents and the validated in-memory graph. Nodes carry
// a kind (box, diamond, ellipse, text), an optional label, and size hints;
// edges connect node IDs and may be labeled.
//
// [layout] - Deterministic layout primitives: approximate text measurement,
// label wrapping, Kahn-style layer assignment, and per-layer positioning.
//
// [scene] - Drawable element types (shapes, text, arrows) shared by the
// renderer and the persistence layer.
//
// [render] - Scene synthesis from a graph plus the output sinks:
//
//   - [render/sink]: SVG, PNG, and JSON scene output
//   - [render/nodelink]: Graphviz-based DOT export and rendering
//
// [llm] - Language-model document source speaking the OpenAI-compatible
// chat completions protocol.
//
// [pipeline] - Orchestration of generate → compose → render with per-stage
// caching, used by both the CLI and the HTTP API.
//
// [cache] - Cache interface with file, Redis, and null backends, plus
// content-addressed key derivation.
//
// [board] - Saved boards with optimistic concurrency, backed by memory or
// MongoDB stores.
//
// [session] - Bearer-token sessions scoping cache entries and board access.
//
// [errors] - Coded errors shared across packages, mapped to HTTP statuses
// by the API server.
//
// [httputil] - Retry helpers for transient upstream failures.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/layout
// [scene]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/scene
// [render]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/render/nodelink
// [llm]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/llm
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/cache
// [board]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/board
// [session]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/session
// [errors]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/draftboard/pkg/httputil
package pkg

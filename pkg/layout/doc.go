// Package layout computes 2D positions for diagram graphs.
//
// The engine is a layered layout: every node is assigned a horizontal rank
// (layer) by topological leveling over the edge set, then rows are stacked
// top to bottom with each row horizontally centered in the widest row.
//
// The whole package is pure: one call to [Build] reads the graph and
// returns a [Layout]; nothing is cached or shared between invocations, so
// concurrent layouts of different graphs need no coordination.
//
// Malformed input degrades instead of failing:
//
//   - Edges referencing missing nodes are ignored.
//   - Cyclic subsets terminate with the affected nodes defaulting to the
//     topmost layer.
//   - An empty graph produces an empty layout.
//
// [Measure] estimates rendered text extents with a fixed monospace-like
// approximation; it exists so the element synthesizer can size labels
// without a font engine.
package layout

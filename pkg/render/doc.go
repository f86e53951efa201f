// Package render synthesizes drawable elements from a positioned diagram
// graph.
//
// [Compose] walks the layout row by row and emits one shape (or standalone
// text) per node, an optional embedded label, and one center-to-center
// arrow per fully-resolved edge, with edge labels at the arrow midpoint.
// [Elements] is the end-to-end convenience: layout, compose, clamp.
//
// Output ordering is part of the contract: a label element always follows
// the shape or arrow that owns it, so consumers rendering in list order
// get correct stacking without a z-index.
//
// Sinks for concrete output formats live in the sink subpackage; Graphviz
// DOT export lives in nodelink.
package render

package graph

import (
	"unicode"

	"github.com/matzehuels/draftboard/pkg/errors"
)

// ValidateDocument checks a wire-format document against the boundary caps.
// This is the only strict validation in the system: it runs on
// language-model output and API request bodies before a Graph is built.
// The layout engine itself never validates - it degrades gracefully on
// dangling edges and cycles instead.
//
// Rules:
//   - 1..MaxNodes nodes, 0..MaxEdges edges
//   - Non-empty node IDs without control characters, unique within the set
//   - Known shape kinds (empty kind is allowed and treated as box)
//   - Label length caps (MaxNodeLabelLen / MaxEdgeLabelLen)
//   - Non-negative size hints
//
// Dangling edges are deliberately NOT an error here: generators routinely
// emit them and the engine drops them silently.
func ValidateDocument(doc Document) error {
	if len(doc.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidGraph, "graph has no nodes")
	}
	if len(doc.Nodes) > MaxNodes {
		return errors.New(errors.ErrCodeInvalidGraph, "too many nodes: %d (max %d)", len(doc.Nodes), MaxNodes)
	}
	if len(doc.Edges) > MaxEdges {
		return errors.New(errors.ErrCodeInvalidGraph, "too many edges: %d (max %d)", len(doc.Edges), MaxEdges)
	}

	seen := make(map[string]struct{}, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "node %d has an empty id", i)
		}
		if hasControl(n.ID) {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q: id contains control characters", n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}

		if !ValidKind(n.Kind) {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q: unknown kind %q", n.ID, n.Kind)
		}
		if len(n.Label) > MaxNodeLabelLen {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q: label exceeds %d characters", n.ID, MaxNodeLabelLen)
		}
		if n.Width < 0 || n.Height < 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q: negative size hint", n.ID)
		}
	}

	for i, e := range doc.Edges {
		if e.From == "" || e.To == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %d has an empty endpoint", i)
		}
		if len(e.Label) > MaxEdgeLabelLen {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %s→%s: label exceeds %d characters", e.From, e.To, MaxEdgeLabelLen)
		}
	}

	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

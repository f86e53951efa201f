package render

import (
	"math"

	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/layout"
	"github.com/matzehuels/draftboard/pkg/scene"
)

// Compose turns a positioned graph into an ordered element list. Nodes are
// emitted in row order (top to bottom, left to right), then edges in input
// order; each label element directly follows its owner. Edges whose
// endpoints are not both present in the layout are skipped entirely.
//
// Compose has no side effects: it only reads its inputs and draws
// identifiers from ids. Identical inputs (including the ids seed) yield a
// byte-identical element list.
func Compose(g *graph.Graph, l layout.Layout, ids *scene.IDSource) []scene.Element {
	var out []scene.Element

	for _, row := range l.Rows {
		for _, id := range row {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			out = append(out, composeNode(*n, l.Boxes[id], ids)...)
		}
	}

	for _, e := range g.Edges() {
		out = append(out, composeEdge(e, l, ids)...)
	}

	return out
}

// Elements is the full synthesis path: layout, compose, clamp. The seed
// feeds the element ID source and must be supplied per call (see
// scene.IDSource).
func Elements(g *graph.Graph, seed uint64) []scene.Element {
	l := layout.Build(g)
	return scene.Clamp(Compose(g, l, scene.NewIDSource(seed)))
}

func composeNode(n graph.Node, box layout.Box, ids *scene.IDSource) []scene.Element {
	if n.IsText() {
		wrap := clampWidth(box.Width, layout.MinShapeWidth, layout.MaxTextWidth)
		m := layout.Measure(n.DisplayLabel(), layout.FontSizeText, wrap)
		return []scene.Element{
			scene.NewText(ids.Next(), n.DisplayLabel(), layout.FontSizeText, box.X, box.Y, m.Width, m.Height),
		}
	}

	shape := scene.NewShape(ids.Next(), shapeType(n.Kind), box.X, box.Y, box.Width, box.Height)
	out := []scene.Element{shape}

	if n.Label != "" {
		interior := box.Width - 2*layout.TextPadding
		m := layout.Measure(n.Label, layout.FontSizeNodeLabel, interior)
		out = append(out, scene.NewText(
			ids.Next(), n.Label, layout.FontSizeNodeLabel,
			shape.CenterX()-m.Width/2, shape.CenterY()-m.Height/2,
			m.Width, m.Height,
		))
	}
	return out
}

func composeEdge(e graph.Edge, l layout.Layout, ids *scene.IDSource) []scene.Element {
	from, okFrom := l.Box(e.From)
	to, okTo := l.Box(e.To)
	if !okFrom || !okTo {
		return nil // dangling edge
	}

	x1, y1 := from.CenterX(), from.CenterY()
	x2, y2 := to.CenterX(), to.CenterY()
	dx, dy := x2-x1, y2-y1

	arrow := scene.NewArrow(
		ids.Next(),
		x1, y1, math.Abs(dx), math.Abs(dy),
		[]scene.Point{{0, 0}, {dx, dy}},
		&scene.Binding{NodeID: e.From},
		&scene.Binding{NodeID: e.To},
	)
	out := []scene.Element{arrow}

	if e.Label != "" {
		m := layout.Measure(e.Label, layout.FontSizeEdgeLabel, layout.EdgeLabelWrapWidth)
		out = append(out, scene.NewText(
			ids.Next(), e.Label, layout.FontSizeEdgeLabel,
			(x1+x2)/2-m.Width/2, (y1+y2)/2-m.Height/2,
			m.Width, m.Height,
		))
	}
	return out
}

func shapeType(kind string) scene.Type {
	switch kind {
	case graph.KindDiamond:
		return scene.TypeDiamond
	case graph.KindEllipse:
		return scene.TypeEllipse
	default:
		return scene.TypeRectangle
	}
}

func clampWidth(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

package layout

import (
	"math"

	"github.com/matzehuels/draftboard/pkg/graph"
)

// Box is a node's computed position and size. X and Y locate the top-left
// corner; the coordinate space grows rightward and downward.
type Box struct {
	NodeID string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// Layout is the result of one layout run. Positions are derived data:
// they are recomputed on every Build call and never persisted on their own.
type Layout struct {
	// Boxes maps node ID to its computed position and size.
	Boxes map[string]Box `json:"boxes"`

	// Rows lists node IDs per layer, top to bottom, in their final
	// left-to-right order.
	Rows [][]string `json:"rows"`

	// Layers maps node ID to its layer index.
	Layers map[string]int `json:"layers"`

	// Width and Height are the overall canvas extent including margins.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box returns the box for a node and whether it exists.
func (l Layout) Box(id string) (Box, bool) {
	b, ok := l.Boxes[id]
	return b, ok
}

// ScaledSize returns a node's layout size: the nominal hints multiplied by
// ShapeScale, floored to the shape minimums. Zero hints fall back to the
// graph defaults before scaling.
func ScaledSize(n graph.Node) (w, h float64) {
	width, height := n.Width, n.Height
	if width <= 0 {
		width = graph.DefaultNodeWidth
	}
	if height <= 0 {
		height = graph.DefaultNodeHeight
	}
	w = math.Max(width*ShapeScale, MinShapeWidth)
	h = math.Max(height*ShapeScale, MinShapeHeight)
	return w, h
}

// Build computes the full layered layout for a graph. It never fails:
// cycles terminate, dangling edges are ignored, and an empty graph yields
// an empty layout. Two calls with the same graph produce identical output.
func Build(g *graph.Graph) Layout {
	layers := assignLayers(g)
	rows := layerRows(g, layers)

	l := Layout{
		Boxes:  make(map[string]Box, g.NodeCount()),
		Rows:   rows,
		Layers: layers,
	}
	if g.NodeCount() == 0 {
		return l
	}

	// Pass 1: row extents from scaled node sizes.
	rowWidths := make([]float64, len(rows))
	rowHeights := make([]float64, len(rows))
	var canvasWidth float64
	for i, row := range rows {
		var width, height float64
		for j, id := range row {
			n, _ := g.Node(id)
			w, h := ScaledSize(*n)
			width += w
			if j > 0 {
				width += SiblingGap
			}
			height = math.Max(height, h)
		}
		rowWidths[i] = width
		rowHeights[i] = height
		canvasWidth = math.Max(canvasWidth, width)
	}

	// Pass 2: place rows top to bottom, each centered in the widest row.
	y := Margin
	for i, row := range rows {
		x := Margin + (canvasWidth-rowWidths[i])/2
		for _, id := range row {
			n, _ := g.Node(id)
			w, h := ScaledSize(*n)
			l.Boxes[id] = Box{NodeID: id, X: x, Y: y, Width: w, Height: h}
			x += w + SiblingGap
		}
		y += rowHeights[i] + RowGap
	}

	l.Width = canvasWidth + 2*Margin
	l.Height = y - RowGap + Margin
	return l
}

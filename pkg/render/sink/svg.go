package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/draftboard/pkg/layout"
	"github.com/matzehuels/draftboard/pkg/scene"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	padding    float64
}

// WithBackground sets a canvas background color. The default is a
// transparent canvas.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPadding sets the whitespace between the outermost elements and the
// SVG frame edge.
func WithPadding(p float64) SVGOption {
	return func(r *svgRenderer) { r.padding = p }
}

// RenderSVG renders the element list as a standalone SVG document.
// Elements are drawn in list order, so labels composed after their owner
// shape stack correctly without z-index bookkeeping.
func RenderSVG(els []scene.Element, opts ...SVGOption) []byte {
	r := svgRenderer{padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, maxX, maxY := frame(els)
	width := maxX - minX + 2*r.padding
	height := maxY - minY + 2*r.padding
	offX := r.padding - minX
	offY := r.padding - minY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	renderDefs(&buf)

	if r.background != "" && r.background != "transparent" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			width, height, r.background)
	}

	for _, e := range els {
		renderElement(&buf, e, offX, offY)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frame returns the bounding box enclosing every element. Arrow extents
// come from their point lists, which may reach left or above the origin.
func frame(els []scene.Element) (minX, minY, maxX, maxY float64) {
	if len(els) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, e := range els {
		x0, y0, x1, y1 := e.X, e.Y, e.X+e.Width, e.Y+e.Height
		if e.Type == scene.TypeArrow && len(e.Points) > 0 {
			x0, y0, x1, y1 = e.X, e.Y, e.X, e.Y
			for _, p := range e.Points {
				x0 = math.Min(x0, e.X+p[0])
				y0 = math.Min(y0, e.Y+p[1])
				x1 = math.Max(x1, e.X+p[0])
				y1 = math.Max(y1, e.Y+p[1])
			}
		}
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}
	return minX, minY, maxX, maxY
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <marker id="arrowhead" markerWidth="10" markerHeight="8" refX="9" refY="4" orient="auto">
      <path d="M 0 0 L 10 4 L 0 8 z" fill="` + scene.DefaultStrokeColor + `"/>
    </marker>
  </defs>
`)
}

func renderElement(buf *bytes.Buffer, e scene.Element, offX, offY float64) {
	x, y := e.X+offX, e.Y+offY

	switch e.Type {
	case scene.TypeRectangle:
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x, y, e.Width, e.Height, fillAttr(e), e.StrokeColor, e.StrokeWidth)

	case scene.TypeEllipse:
		fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x+e.Width/2, y+e.Height/2, e.Width/2, e.Height/2, fillAttr(e), e.StrokeColor, e.StrokeWidth)

	case scene.TypeDiamond:
		cx, cy := x+e.Width/2, y+e.Height/2
		fmt.Fprintf(buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			cx, y, x+e.Width, cy, cx, y+e.Height, x, cy, fillAttr(e), e.StrokeColor, e.StrokeWidth)

	case scene.TypeText:
		renderText(buf, e, x, y)

	case scene.TypeArrow:
		renderArrow(buf, e, x, y)
	}
}

func renderText(buf *bytes.Buffer, e scene.Element, x, y float64) {
	lineHeight := layout.LineHeight(e.FontSize)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.0f" fill="%s">`+"\n",
		x, y, e.FontSize, e.StrokeColor)
	for i, line := range strings.Split(e.Text, "\n") {
		fmt.Fprintf(buf, `    <tspan x="%.1f" y="%.1f">%s</tspan>`+"\n",
			x, y+e.FontSize+float64(i)*lineHeight, escape(line))
	}
	buf.WriteString("  </text>\n")
}

func renderArrow(buf *bytes.Buffer, e scene.Element, x, y float64) {
	if len(e.Points) < 2 {
		return
	}
	var pts []string
	for _, p := range e.Points {
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x+p[0], y+p[1]))
	}
	marker := ""
	if e.EndArrowhead != "" {
		marker = ` marker-end="url(#arrowhead)"`
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		strings.Join(pts, " "), e.StrokeColor, e.StrokeWidth, marker)
}

func fillAttr(e scene.Element) string {
	if e.Background == "" || e.Background == "transparent" {
		return "none"
	}
	return e.Background
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }

package sink

import (
	"github.com/matzehuels/draftboard/pkg/render"
	"github.com/matzehuels/draftboard/pkg/scene"
)

// RenderPDF renders the element list as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(els []scene.Element, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(els, opts...))
}

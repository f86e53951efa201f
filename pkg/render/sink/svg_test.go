package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/render"
	"github.com/matzehuels/draftboard/pkg/scene"
)

func TestRenderSVGStructure(t *testing.T) {
	els := render.Elements(testGraph(t), 3)
	svg := string(RenderSVG(els))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Fatalf("missing svg root: %.60s", svg)
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("missing closing tag")
	}
	for _, want := range []string{"<rect", "<polygon", "<polyline", "<text", "marker-end"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	g := graph.Build([]graph.Node{{ID: "a", Label: "<cache> & \"store\""}}, nil)

	svg := string(RenderSVG(render.Elements(g, 1)))
	if strings.Contains(svg, "<cache>") {
		t.Error("raw angle brackets leaked into markup")
	}
	for _, want := range []string{"&lt;cache&gt;", "&amp;", "&quot;store&quot;"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing escaped %q", want)
		}
	}
}

func TestRenderSVGBackground(t *testing.T) {
	els := render.Elements(testGraph(t), 3)

	if def := string(RenderSVG(els)); strings.Contains(def, `fill="#ffffff"`) {
		t.Error("default output should not paint a background")
	}
	if bg := string(RenderSVG(els, WithBackground("#ffffff"))); !strings.Contains(bg, `fill="#ffffff"`) {
		t.Error("background rect missing")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil))
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Errorf("empty scene should still be a valid document: %s", svg)
	}
}

func TestFrameCoversArrowPoints(t *testing.T) {
	arrow := scene.NewArrow("a1", 100, 100, 50, 50,
		[]scene.Point{{0, 0}, {-80, 120}}, nil, nil)

	minX, _, _, maxY := frame([]scene.Element{arrow})
	if minX != 20 {
		t.Errorf("minX = %v, want 20 (arrow reaches left of origin)", minX)
	}
	if maxY != 220 {
		t.Errorf("maxY = %v, want 220", maxY)
	}
}

package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/draftboard/pkg/graph"
)

func buildGraph(t *testing.T, doc graph.Document) *graph.Graph {
	t.Helper()
	return graph.Build(doc.Nodes, doc.Edges)
}

func TestToDOTBasic(t *testing.T) {
	g := buildGraph(t, graph.Document{
		Nodes: []graph.Node{
			{ID: "api", Label: "API Gateway"},
			{ID: "db", Kind: graph.KindEllipse},
		},
		Edges: []graph.Edge{{From: "api", To: "db", Label: "reads"}},
	})

	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"api" [label="API Gateway"];`,
		`"db" [label="db", shape=ellipse];`,
		`"api" -> "db" [label="reads"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in DOT output:\n%s", want, dot)
		}
	}
}

func TestToDOTKindShapes(t *testing.T) {
	g := buildGraph(t, graph.Document{
		Nodes: []graph.Node{
			{ID: "a", Kind: graph.KindDiamond},
			{ID: "b", Kind: graph.KindText, Label: "note"},
			{ID: "c", Kind: graph.KindBox},
		},
	})

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, "shape=diamond") {
		t.Error("diamond kind should map to shape=diamond")
	}
	if !strings.Contains(dot, "shape=plaintext") {
		t.Error("text kind should map to shape=plaintext")
	}
	if strings.Contains(dot, `"c" [label="c", shape=`) {
		t.Error("box kind should use the default node shape")
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := buildGraph(t, graph.Document{
		Nodes: []graph.Node{{ID: "a", Width: 200, Height: 80}},
	})

	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, "kind: box") {
		t.Errorf("detailed label missing kind:\n%s", dot)
	}
	if !strings.Contains(dot, "hint: 200x80") {
		t.Errorf("detailed label missing size hint:\n%s", dot)
	}
}

func TestToDOTLeftRight(t *testing.T) {
	g := buildGraph(t, graph.Document{Nodes: []graph.Node{{ID: "a"}}})
	if dot := ToDOT(g, Options{LeftRight: true}); !strings.Contains(dot, "rankdir=LR;") {
		t.Error("LeftRight should set rankdir=LR")
	}
}

func TestToDOTKeepsDanglingEdges(t *testing.T) {
	g := buildGraph(t, graph.Document{
		Nodes: []graph.Node{{ID: "a"}},
		Edges: []graph.Edge{{From: "a", To: "ghost"}},
	})

	if dot := ToDOT(g, Options{}); !strings.Contains(dot, `"a" -> "ghost";`) {
		t.Error("dangling edge should appear in DOT preview")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8.5in" height="11in" viewBox="0.00 0.00 612.00 792.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 612.00 792.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="612" height="792"`) {
		t.Errorf("pixel size not rewritten: %s", out)
	}
}

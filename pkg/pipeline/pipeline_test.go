package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/draftboard/pkg/cache"
	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/llm"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Document: &graph.Document{Nodes: []graph.Node{{ID: "a"}}}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}

	// Idempotent
	opts.Formats = nil
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Formats != nil {
		t.Error("validated options should not be re-defaulted")
	}
}

func TestValidateRequiresInput(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty options should fail validation")
	}

	opts = Options{Prompt: "something"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("prompt without source should fail validation")
	}
}

func testDocument() *graph.Document {
	return &graph.Document{
		Nodes: []graph.Node{
			{ID: "a", Label: "Start", Kind: graph.KindEllipse},
			{ID: "b", Label: "Work"},
			{ID: "c", Label: "Done", Kind: graph.KindEllipse},
		},
		Edges: []graph.Edge{
			{From: "a", To: "b"},
			{From: "b", To: "c", Label: "ok"},
		},
	}
}

func TestExecuteFromDocument(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Document: testDocument(),
		Formats:  []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.GraphHash == "" {
		t.Error("graph hash should be computed")
	}
	if len(result.Elements) == 0 {
		t.Error("elements should be composed")
	}
	if result.Stats.ElementCount != len(result.Elements) {
		t.Error("element count mismatch")
	}

	for _, format := range []string{FormatSVG, FormatJSON, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing artifact %q", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "digraph G {") {
		t.Error("dot artifact should be DOT source")
	}
}

func TestExecuteFromPrompt(t *testing.T) {
	source := &llm.Static{Doc: *testDocument()}
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Prompt: "three step flow",
		Source: source,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("nodes = %d, want 3", result.Stats.NodeCount)
	}
}

func TestExecuteRejectsInvalidDocument(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Document: &graph.Document{Nodes: []graph.Node{{ID: "a"}, {ID: "a"}}},
	})
	if err == nil {
		t.Error("duplicate node IDs should fail")
	}
}

type countingSource struct {
	llm.Static
	calls int
}

func (c *countingSource) Generate(ctx context.Context, prompt string) (graph.Document, error) {
	c.calls++
	return c.Static.Generate(ctx, prompt)
}

func TestExecuteCachesStages(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	source := &countingSource{Static: llm.Static{Doc: *testDocument()}}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Prompt: "flow", Source: source, Formats: []string{FormatSVG}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.GenerateHit || first.CacheInfo.ComposeHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), Options{Prompt: "flow", Source: source, Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.GenerateHit || !second.CacheInfo.ComposeHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere: %+v", second.CacheInfo)
	}
	if source.calls != 1 {
		t.Errorf("source called %d times, want 1", source.calls)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match rendered artifact")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	source := &countingSource{Static: llm.Static{Doc: *testDocument()}}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	for range 2 {
		if _, err := runner.Execute(context.Background(), Options{
			Prompt: "flow", Source: source, Refresh: true,
		}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}
	if source.calls != 2 {
		t.Errorf("refresh should bypass the generate cache, calls = %d", source.calls)
	}
}

func TestComposeDeterministicAcrossRunners(t *testing.T) {
	doc := testDocument()
	g := graph.Build(doc.Nodes, doc.Edges)

	a, err := NewRunner(nil, nil, nil).Compose(context.Background(), g, Options{Seed: 9})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	b, err := NewRunner(nil, nil, nil).Compose(context.Background(), g, Options{Seed: 9})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("element counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Fatalf("element %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/draftboard/pkg/cache"
	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/render"
	"github.com/matzehuels/draftboard/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → compose → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	generateStart := time.Now()
	g, generateHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Graph = g
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.GenerateHit = generateHit

	if data, err := graph.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("generated diagram",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Compose
	composeStart := time.Now()
	elements, composeHit, err := r.ComposeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Elements = elements
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.ElementCount = len(elements)
	result.CacheInfo.ComposeHit = composeHit

	r.Logger.Info("composed scene",
		"elements", len(elements),
		"duration", result.Stats.ComposeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, elements, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo produces the diagram graph with caching and
// returns cache hit info. A supplied document bypasses both the LLM and
// the cache, since building a graph from a document is cheap.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Document != nil {
		if err := graph.ValidateDocument(*opts.Document); err != nil {
			return nil, false, err
		}
		return graph.Build(opts.Document.Nodes, opts.Document.Edges), false, nil
	}

	cacheKey := r.Keyer.DiagramKey(opts.Prompt, opts.DiagramKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.Unmarshal(data); err == nil {
				return g, true, nil
			}
		}
	}

	doc, err := opts.Source.Generate(ctx, opts.Prompt)
	if err != nil {
		return nil, false, err
	}
	g := graph.Build(doc.Nodes, doc.Edges)

	if data, err := graph.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DiagramTTL)
	}

	return g, false, nil
}

// Generate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*graph.Graph, error) {
	g, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return g, err
}

// ComposeWithCacheInfo composes the drawable scene with caching and
// returns cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) ([]scene.Element, bool, error) {
	opts.SetComposeDefaults()
	r.applyLogger(&opts)

	graphData, err := graph.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.SceneKey(cache.Hash(graphData), opts.SceneKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached []scene.Element
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, true, nil
		}
		// Corrupt entry, fall through to recompose
	}

	elements := render.Elements(g, opts.Seed)

	if data, err := json.Marshal(elements); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.SceneTTL)
	}

	return elements, false, nil
}

// Compose is a convenience wrapper that discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, g *graph.Graph, opts Options) ([]scene.Element, error) {
	elements, _, err := r.ComposeWithCacheInfo(ctx, g, opts)
	return elements, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, elements []scene.Element, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sceneData, err := json.Marshal(elements)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := renderArtifacts(elements, g, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, elements []scene.Element, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, elements, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

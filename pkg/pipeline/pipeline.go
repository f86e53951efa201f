// Package pipeline provides the core diagram pipeline for draftboard.
//
// This package implements the complete generate → compose → render
// pipeline used by the CLI and the HTTP server. Centralizing it keeps
// caching and defaulting behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: Turn a natural-language prompt into a diagram document
//     via an LLM source (skipped when a document is supplied directly).
//  2. Compose: Lay the graph out and synthesize drawable elements.
//  3. Render: Produce output artifacts (SVG, PNG, JSON, DOT).
//
// Each stage can be run independently or as part of the complete
// pipeline, and each stage result is cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Prompt:  "checkout flow with payment provider",
//	    Source:  llmClient,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/draftboard/pkg/cache"
	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/llm"
	"github.com/matzehuels/draftboard/pkg/scene"
)

// Defaults shared by the CLI and API entry points.
const (
	// DefaultSeed is the default element ID seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options. Exactly one of Prompt or Document feeds the
	// pipeline; a supplied Document skips the generate stage.
	Prompt   string          `json:"prompt,omitempty"`
	Document *graph.Document `json:"document,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`

	// Compose options
	Seed uint64 `json:"seed,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Source llm.Source  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the diagram graph fed to the compose stage.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph document.
	GraphHash string

	// Elements is the composed drawable scene.
	Elements []scene.Element

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ElementCount int
	GenerateTime time.Duration
	ComposeTime  time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool
	ComposeHit  bool
	RenderHit   bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	o.SetComposeDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks required fields for the generate stage.
func (o *Options) ValidateForGenerate() error {
	if o.Prompt == "" && o.Document == nil {
		return fmt.Errorf("prompt or document is required")
	}
	if o.Prompt != "" && o.Document == nil && o.Source == nil {
		return fmt.Errorf("a generation source is required for prompts")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetComposeDefaults sets default values for scene composition.
func (o *Options) SetComposeDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetComposeDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// DiagramKeyOpts returns cache key options for the generate stage.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	opts := cache.DiagramKeyOpts{}
	if m, ok := o.Source.(interface{ Model() string }); ok {
		opts.Model = m.Model()
	}
	return opts
}

// SceneKeyOpts returns cache key options for the compose stage.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{Seed: o.Seed}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		Scale:      o.Scale,
	}
}

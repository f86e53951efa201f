package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit;
	// a miss is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per pipeline stage. Generated diagrams can go stale as
// models change; scenes and artifacts are pure functions of their inputs,
// so their entries stay valid until evicted for space.
const (
	DiagramTTL  = 24 * time.Hour
	SceneTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// DiagramKeyOpts are the knobs that change what a prompt generates.
type DiagramKeyOpts struct {
	Model    string
	MaxNodes int
}

// SceneKeyOpts are the knobs that change how a graph is composed.
type SceneKeyOpts struct {
	Seed uint64
}

// ArtifactKeyOpts are the knobs that change how a scene is rendered.
type ArtifactKeyOpts struct {
	Format     string
	Background string
	Scale      float64
}

// Keyer generates cache keys for the pipeline stages. Implementations
// must be deterministic: the same inputs always produce the same key.
type Keyer interface {
	// DiagramKey keys a generated diagram document by its prompt.
	DiagramKey(prompt string, opts DiagramKeyOpts) string

	// SceneKey keys a composed element list by the source graph hash.
	SceneKey(graphHash string, opts SceneKeyOpts) string

	// ArtifactKey keys a rendered artifact by the scene hash.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a SHA-256
// hash of the inputs and options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) DiagramKey(prompt string, opts DiagramKeyOpts) string {
	return hashKey("diagram", prompt, opts)
}

func (k *DefaultKeyer) SceneKey(graphHash string, opts SceneKeyOpts) string {
	return hashKey("scene", graphHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)

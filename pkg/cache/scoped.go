package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Boards owned by different sessions get separate cache namespaces, so
// one user's regenerated diagram never serves another user's request.
//
// Example usage:
//
//	// Session-specific keys for private boards
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
//
//	// Global keys for anonymous one-shot renders
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DiagramKey generates a prefixed key for generated diagram documents.
func (k *ScopedKeyer) DiagramKey(prompt string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(prompt, opts)
}

// SceneKey generates a prefixed key for composed scenes.
func (k *ScopedKeyer) SceneKey(graphHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

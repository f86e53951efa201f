// Package llm turns natural-language prompts into diagram documents by
// calling an OpenAI-compatible chat completions API. The model is asked
// for a JSON node/edge document, which is validated before use so a
// hallucinated response never reaches the layout engine.
package llm

import (
	"context"

	"github.com/matzehuels/draftboard/pkg/graph"
)

// Source generates a diagram document from a prompt. Implementations
// must return a document that passes graph.ValidateDocument.
type Source interface {
	Generate(ctx context.Context, prompt string) (graph.Document, error)
}

// Static is a Source returning a fixed document, for tests and for the
// offline demo mode.
type Static struct {
	Doc graph.Document
	Err error
}

func (s *Static) Generate(ctx context.Context, prompt string) (graph.Document, error) {
	if s.Err != nil {
		return graph.Document{}, s.Err
	}
	return s.Doc, nil
}

var _ Source = (*Static)(nil)

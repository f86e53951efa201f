package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/draftboard/pkg/errors"
	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/httputil"
)

// Defaults for the OpenAI client.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second
)

const systemPrompt = `You convert a description of a system or process into a diagram.
Respond with a single JSON object and nothing else:
{"nodes":[{"id":"...","kind":"box|diamond|ellipse|text","label":"..."}],"edges":[{"from":"...","to":"...","label":"..."}]}
Rules:
- Node ids are short unique slugs; labels are human-readable.
- Use "diamond" for decisions, "ellipse" for start/end points, "text" for free-standing notes, "box" for everything else.
- Edge "from"/"to" reference node ids. Edge labels are optional.
- Keep the diagram focused: prefer fewer, well-named nodes.`

// OpenAIConfig configures the chat completions client.
type OpenAIConfig struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// BaseURL overrides the API endpoint, for proxies and compatible
	// providers. Defaults to the OpenAI API.
	BaseURL string

	// Model defaults to DefaultModel.
	Model string

	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
}

// OpenAI is a Source backed by an OpenAI-compatible chat completions
// endpoint.
type OpenAI struct {
	cfg OpenAIConfig
}

// NewOpenAI creates a chat completions source.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &OpenAI{cfg: cfg}, nil
}

// Model returns the configured model name.
func (o *OpenAI) Model() string { return o.cfg.Model }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the model for a diagram document. Transient upstream
// failures are retried with backoff; a malformed or invalid document is
// a hard error.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (graph.Document, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return graph.Document{}, errors.New(errors.ErrCodeInvalidInput, "prompt is empty")
	}

	var content string
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		content, err = o.complete(ctx, prompt)
		return err
	})
	if err != nil {
		return graph.Document{}, err
	}

	doc, err := parseDocument(content)
	if err != nil {
		return graph.Document{}, err
	}
	if err := graph.ValidateDocument(doc); err != nil {
		return graph.Document{}, errors.Wrap(errors.ErrCodeUpstream, err, "model returned an invalid diagram")
	}
	return doc, nil
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: o.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "chat completions request"))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response"))
	}

	if resp.StatusCode != http.StatusOK {
		err := errors.New(errors.ErrCodeUpstream, "chat completions returned %d: %s",
			resp.StatusCode, truncate(string(data), 200))
		if httputil.StatusRetryable(resp.StatusCode) {
			return "", httputil.Retryable(err)
		}
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", errors.Wrap(errors.ErrCodeUpstream, err, "decode chat response")
	}
	if parsed.Error != nil {
		return "", errors.New(errors.ErrCodeUpstream, "chat completions error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New(errors.ErrCodeUpstream, "chat completions returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parseDocument extracts the JSON document from the model reply. Models
// occasionally wrap JSON in a markdown code fence even when asked not
// to, so fences are stripped before decoding.
func parseDocument(content string) (graph.Document, error) {
	content = strings.TrimSpace(content)
	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	var doc graph.Document
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return graph.Document{}, errors.Wrap(errors.ErrCodeUpstream, err, "model reply is not a JSON diagram")
	}
	return doc, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ Source = (*OpenAI)(nil)

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/draftboard/internal/config"
	"github.com/matzehuels/draftboard/pkg/board"
	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/llm"
	"github.com/matzehuels/draftboard/pkg/pipeline"
	"github.com/matzehuels/draftboard/pkg/session"
)

func testDoc() *graph.Document {
	return &graph.Document{
		Nodes: []graph.Node{
			{ID: "a", Label: "Start"},
			{ID: "b", Label: "End"},
		},
		Edges: []graph.Edge{{From: "a", To: "b"}},
	}
}

func newTestServer(t *testing.T, cfg config.ServerConfig) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := New(cfg, Deps{
		Runner:   pipeline.NewRunner(nil, nil, logger),
		Source:   &llm.Static{Doc: *testDoc()},
		Boards:   board.NewMemoryStore(),
		Sessions: session.NewMemoryStore(),
		Logger:   logger,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, data
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, data := doJSON(t, http.MethodPost, ts.URL+"/api/sessions", "", map[string]string{"name": "tester"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session: status %d: %s", resp.StatusCode, data)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Token == "" {
		t.Fatalf("session response %s: %v", data, err)
	}
	return out.Token
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/boards", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/boards", "bogus", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", resp.StatusCode)
	}
}

func TestNoAuthMode(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{NoAuth: true})
	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/boards", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("no-auth request: status = %d, want 200", resp.StatusCode)
	}
}

func TestDiagramFromDocument(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	token := createSession(t, ts)

	resp, data := doJSON(t, http.MethodPost, ts.URL+"/api/diagram", token, map[string]any{
		"document": testDoc(),
		"formats":  []string{"svg", "json"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	var out struct {
		GraphHash string            `json:"graph_hash"`
		Elements  []json.RawMessage `json:"elements"`
		Artifacts map[string]string `json:"artifacts"`
		Stats     struct {
			Nodes int `json:"nodes"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Stats.Nodes != 2 || out.GraphHash == "" {
		t.Errorf("response = %s", data)
	}
	if len(out.Elements) != 5 {
		t.Errorf("elements = %d, want 5 (two labeled shapes plus arrow)", len(out.Elements))
	}
	if out.Artifacts["svg"] == "" || out.Artifacts["json"] == "" {
		t.Error("missing artifacts")
	}
}

func TestDiagramFromPrompt(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	token := createSession(t, ts)

	resp, data := doJSON(t, http.MethodPost, ts.URL+"/api/diagram", token, map[string]any{
		"prompt": "two step flow",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
}

func TestDiagramRejectsConverterFormats(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	token := createSession(t, ts)

	for _, format := range []string{"png", "pdf"} {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/diagram", token, map[string]any{
			"document": testDoc(),
			"formats":  []string{format},
		})
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("%s format: status = %d, want 422", format, resp.StatusCode)
		}
	}
}

func TestDiagramRejectsEmptyRequest(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	token := createSession(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/diagram", token, map[string]any{})
	if resp.StatusCode != http.StatusInternalServerError && resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty request: status = %d", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{RateLimit: 2})
	token := createSession(t, ts)

	body := map[string]any{"document": testDoc()}
	for i := range 2 {
		resp, data := doJSON(t, http.MethodPost, ts.URL+"/api/diagram", token, body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d: %s", i, resp.StatusCode, data)
		}
	}

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/diagram", token, body)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("over limit: status = %d, want 429", resp.StatusCode)
	}

	// Boards are not rate limited
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/boards", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("boards after limit: status = %d", resp.StatusCode)
	}
}

func TestBoardLifecycle(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	token := createSession(t, ts)

	// Create
	resp, data := doJSON(t, http.MethodPost, ts.URL+"/api/boards", token, map[string]any{
		"name": "Checkout Flow",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", resp.StatusCode, data)
	}
	var created board.Board
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID == "" || created.Version != 1 {
		t.Fatalf("created = %+v", created)
	}

	// List
	resp, data = doJSON(t, http.MethodGet, ts.URL+"/api/boards", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status = %d", resp.StatusCode)
	}
	var listed struct {
		Boards []board.Summary `json:"boards"`
	}
	if err := json.Unmarshal(data, &listed); err != nil || len(listed.Boards) != 1 {
		t.Fatalf("list = %s", data)
	}

	// Get
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/boards/%s", ts.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get: status = %d", resp.StatusCode)
	}

	// Update with correct version
	resp, data = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/boards/%s", ts.URL, created.ID), token, map[string]any{
		"name":    "Renamed",
		"version": created.Version,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status = %d: %s", resp.StatusCode, data)
	}

	// Stale update conflicts
	resp, _ = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/boards/%s", ts.URL, created.ID), token, map[string]any{
		"name":    "Stale",
		"version": created.Version,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("stale update: status = %d, want 409", resp.StatusCode)
	}

	// Delete
	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/boards/%s", ts.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete: status = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/boards/%s", ts.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", resp.StatusCode)
	}
}

func TestBoardIsolationBetweenSessions(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{})
	alice := createSession(t, ts)
	mallory := createSession(t, ts)

	resp, data := doJSON(t, http.MethodPost, ts.URL+"/api/boards", alice, map[string]any{"name": "Private"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d", resp.StatusCode)
	}
	var created board.Board
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/boards/%s", ts.URL, created.ID), mallory, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("cross-session access: status = %d, want 404", resp.StatusCode)
	}
}

func TestWindowLimiter(t *testing.T) {
	l := NewWindowLimiter(2)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Error("third request in window should be rejected")
	}
	if !l.Allow("b") {
		t.Error("limits are per key")
	}

	now = base.Add(time.Minute)
	if !l.Allow("a") {
		t.Error("new window should reset the count")
	}
}

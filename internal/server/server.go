// Package server exposes the diagram pipeline and board store over HTTP.
//
// Authentication is a bearer session token issued by POST /api/sessions;
// the no-auth mode substitutes a fixed local session for single-user
// deployments. Diagram generation is rate limited per session.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/draftboard/internal/config"
	"github.com/matzehuels/draftboard/pkg/board"
	"github.com/matzehuels/draftboard/pkg/errors"
	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/llm"
	"github.com/matzehuels/draftboard/pkg/pipeline"
	"github.com/matzehuels/draftboard/pkg/scene"
	"github.com/matzehuels/draftboard/pkg/session"
)

// Server wires the pipeline, board store, and session store behind an
// HTTP API.
type Server struct {
	cfg      config.ServerConfig
	runner   *pipeline.Runner
	source   llm.Source
	boards   board.Store
	sessions session.Store
	limiter  Limiter
	logger   *log.Logger
}

// Deps are the collaborators a Server needs. Limiter may be nil to
// disable rate limiting regardless of configuration.
type Deps struct {
	Runner   *pipeline.Runner
	Source   llm.Source
	Boards   board.Store
	Sessions session.Store
	Limiter  Limiter
	Logger   *log.Logger
}

// New creates a Server. The default limiter is a per-session fixed
// window sized by cfg.RateLimit.
func New(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Limiter == nil && cfg.RateLimit > 0 {
		deps.Limiter = NewWindowLimiter(cfg.RateLimit)
	}
	return &Server{
		cfg:      cfg,
		runner:   deps.Runner,
		source:   deps.Source,
		boards:   deps.Boards,
		sessions: deps.Sessions,
		limiter:  deps.Limiter,
		logger:   deps.Logger,
	}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/sessions", s.handleCreateSession)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.With(s.rateLimit).Post("/api/diagram", s.handleDiagram)

		r.Route("/api/boards", func(r chi.Router) {
			r.Get("/", s.handleListBoards)
			r.Post("/", s.handleCreateBoard)
			r.Get("/{id}", s.handleGetBoard)
			r.Put("/{id}", s.handleUpdateBoard)
			r.Delete("/{id}", s.handleDeleteBoard)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createSessionRequest struct {
	Name string `json:"name"`
}

type sessionResponse struct {
	Token     string `json:"token"`
	Name      string `json:"name"`
	ExpiresAt string `json:"expires_at"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "anonymous"
	}

	sess, err := session.New(name, session.DefaultTTL)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "create session"))
		return
	}
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     sess.ID,
		Name:      sess.Name,
		ExpiresAt: sess.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

type diagramRequest struct {
	Prompt   string          `json:"prompt,omitempty"`
	Document *graph.Document `json:"document,omitempty"`
	Seed     uint64          `json:"seed,omitempty"`
	Formats  []string        `json:"formats,omitempty"`
	Refresh  bool            `json:"refresh,omitempty"`
}

type diagramResponse struct {
	GraphHash string             `json:"graph_hash"`
	Document  graph.Document     `json:"document"`
	Elements  []scene.Element    `json:"elements"`
	Artifacts map[string]string  `json:"artifacts,omitempty"`
	Stats     diagramStats       `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

type diagramStats struct {
	Nodes    int    `json:"nodes"`
	Edges    int    `json:"edges"`
	Elements int    `json:"elements"`
	Duration string `json:"duration"`
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	// PNG and PDF need an external converter; the API serves SVG and JSON.
	for _, f := range req.Formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			writeError(w, errors.New(errors.ErrCodeUnsupported, "%s is not available over the API; render svg client-side", f))
			return
		}
	}

	opts := pipeline.Options{
		Prompt:   req.Prompt,
		Document: req.Document,
		Seed:     req.Seed,
		Formats:  req.Formats,
		Refresh:  req.Refresh,
		Source:   s.source,
		Logger:   s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	artifacts := make(map[string]string, len(result.Artifacts))
	for format, data := range result.Artifacts {
		artifacts[format] = string(data)
	}

	writeJSON(w, http.StatusOK, diagramResponse{
		GraphHash: result.GraphHash,
		Document:  graph.Export(result.Graph),
		Elements:  result.Elements,
		Artifacts: artifacts,
		Stats: diagramStats{
			Nodes:    result.Stats.NodeCount,
			Edges:    result.Stats.EdgeCount,
			Elements: result.Stats.ElementCount,
			Duration: (result.Stats.GenerateTime + result.Stats.ComposeTime + result.Stats.RenderTime).String(),
		},
		Cache: result.CacheInfo,
	})
}

type boardRequest struct {
	Name     string          `json:"name"`
	Prompt   string          `json:"prompt,omitempty"`
	Elements []scene.Element `json:"elements"`
	Version  int64           `json:"version,omitempty"`
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	list, err := s.boards.List(r.Context(), ownerFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"boards": list})
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	b := board.New(ownerFrom(r), req.Name, req.Elements)
	b.Prompt = req.Prompt
	if err := s.boards.Create(r.Context(), b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.boards.Get(r.Context(), ownerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	owner := ownerFrom(r)
	b := &board.Board{
		ID:       chi.URLParam(r, "id"),
		Owner:    owner,
		Name:     req.Name,
		Prompt:   req.Prompt,
		Elements: req.Elements,
		Version:  req.Version,
	}
	if err := s.boards.Update(r.Context(), b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.boards.Delete(r.Context(), ownerFrom(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/draftboard/internal/config"
	"github.com/matzehuels/draftboard/internal/server"
	"github.com/matzehuels/draftboard/pkg/board"
	"github.com/matzehuels/draftboard/pkg/cache"
	"github.com/matzehuels/draftboard/pkg/llm"
	"github.com/matzehuels/draftboard/pkg/pipeline"
	"github.com/matzehuels/draftboard/pkg/session"
)

// serveCommand creates the serve command for running the HTTP API server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		noAuth     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the diagram pipeline and board storage over HTTP:
sessions are created via POST /api/sessions, diagrams generated via
POST /api/diagram, and boards managed under /api/boards. Cache and board
backends are selected by the config file ([cache] and [board] sections).

The server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr, noAuth)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/draftboard/config.toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address override (e.g. :8080)")
	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "disable session authentication")

	return cmd
}

// runServe wires the configured backends into a server and runs it until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, configPath, addr string, noAuth bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if noAuth {
		cfg.Server.NoAuth = true
	}

	store, err := newServerCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	boards, err := newBoardStore(ctx, cfg.Board)
	if err != nil {
		return fmt.Errorf("initialize board store: %w", err)
	}
	defer boards.Close(context.Background())

	sessions, err := session.NewFileStore("")
	if err != nil {
		return fmt.Errorf("initialize session store: %w", err)
	}

	var source llm.Source
	if cfg.LLM.APIKey != "" {
		source, err = newSource(cfg.LLM)
		if err != nil {
			return err
		}
	} else {
		c.Logger.Warn("no API key configured, prompt generation is disabled")
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(cfg.Server, server.Deps{
		Runner:   runner,
		Source:   source,
		Boards:   boards,
		Sessions: sessions,
		Logger:   c.Logger,
	})

	c.Logger.Info("starting server", "addr", cfg.Server.Addr, "cache", cacheBackendName(cfg.Cache), "boards", boardBackendName(cfg.Board))
	return srv.ListenAndServe(ctx)
}

// newServerCache builds the configured cache backend.
func newServerCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default: // file
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// newBoardStore builds the configured board store.
func newBoardStore(ctx context.Context, cfg config.BoardConfig) (board.Store, error) {
	switch cfg.Backend {
	case "mongo":
		return board.NewMongoStore(ctx, board.MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default: // memory
		return board.NewMemoryStore(), nil
	}
}

func cacheBackendName(cfg config.CacheConfig) string {
	if cfg.Backend == "" {
		return "file"
	}
	return cfg.Backend
}

func boardBackendName(cfg config.BoardConfig) string {
	if cfg.Backend == "" {
		return "memory"
	}
	return cfg.Backend
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/draftboard/internal/config"
	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/llm"
	"github.com/matzehuels/draftboard/pkg/pipeline"
)

// generateCommand creates the generate command for turning prompts into documents.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output     string
		configPath string
		model      string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a diagram document from a text prompt",
		Long: `Generate a diagram document from a text prompt.

The generate command sends the prompt to the configured language model and
writes the resulting document as JSON. The document describes nodes and edges
only; use 'layout' or 'render' to turn it into a drawable diagram.

An API key is required (config file llm.api_key or DRAFTBOARD_API_KEY).
Results are cached locally so repeated prompts do not re-query the model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], generateOpts{
				output:     output,
				configPath: configPath,
				model:      model,
				noCache:    noCache,
				refresh:    refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/draftboard/config.toml)")
	cmd.Flags().StringVar(&model, "model", "", "model name override")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and re-query the model")

	return cmd
}

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output     string
	configPath string
	model      string
	noCache    bool
	refresh    bool
}

// runGenerate queries the language model and writes the document.
func (c *CLI) runGenerate(ctx context.Context, prompt string, opts generateOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.model != "" {
		cfg.LLM.Model = opts.model
	}

	source, err := newSource(cfg.LLM)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Generating diagram...")
	spinner.Start()

	g, cacheHit, err := runner.GenerateWithCacheInfo(ctx, pipeline.Options{
		Prompt:  prompt,
		Refresh: opts.refresh,
		Source:  source,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := graph.Write(g, out); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Document generated")
		printFile(opts.output)
		printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
		printNewline()
		printNextStep("Render", "draftboard render "+opts.output)
	}
	return nil
}

// newSource builds the language-model source from configuration.
func newSource(cfg config.LLMConfig) (llm.Source, error) {
	return llm.NewOpenAI(llm.OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
}

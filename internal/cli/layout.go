package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/draftboard/pkg/pipeline"
	"github.com/matzehuels/draftboard/pkg/render/sink"
)

// layoutCommand creates the layout command for computing the drawable scene.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		seed    uint64
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [document.json]",
		Short: "Compute the drawable scene for a diagram document",
		Long: `Compute the drawable scene for a diagram document.

The layout command takes a document.json file (produced by 'generate') and
computes element positions: shapes are measured, placed into layers, and
connected by arrows. The output is a scene.json file holding the positioned
elements, ready for client-side rendering or the 'render' command.

Layout is deterministic for a given document and seed. Results are cached
locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], layoutOpts{
				output:  output,
				seed:    seed,
				noCache: noCache,
				refresh: refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.scene.json)")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "element ID seed")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output  string
	seed    uint64
	noCache bool
	refresh bool
}

// runLayout loads the document, composes the scene, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOpts) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	popts := pipeline.Options{
		Document: &doc,
		Seed:     opts.seed,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	}

	g, _, err := runner.GenerateWithCacheInfo(ctx, popts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	elements, cacheHit, err := runner.ComposeWithCacheInfo(ctx, g, popts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := opts.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".scene.json"
	}

	data, err := sink.RenderJSON(elements,
		sink.WithJSONSource(appName),
		sink.WithJSONSeed(opts.seed),
		sink.WithJSONIndent())
	if err != nil {
		return err
	}

	out, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	printDetail("%d elements", len(elements))
	printNewline()
	printNextStep("Render", "draftboard render "+input)

	return nil
}

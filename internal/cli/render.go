package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/draftboard/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "png", "pdf", "json", "dot"
	seed       uint64   // element ID seed
	background string   // background color, empty for transparent
	scale      float64  // PNG scale factor
	noCache    bool     // disable caching
	refresh    bool     // bypass cached stages
}

// renderCommand creates the render command for producing visual artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		seed:  pipeline.DefaultSeed,
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Render a diagram document to SVG, PNG, JSON, or DOT",
		Long: `Render a diagram document to one or more output formats.

The render command runs the full pipeline on a document.json file: the scene
is composed (shapes measured, layered, and connected by arrows) and rendered
to the requested formats. Multiple formats can be produced in one run
(comma-separated), each written to <base>.<format>.

PNG rendering requires rsvg-convert on PATH; DOT output can be fed to
Graphviz directly. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "element ID seed")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (default: transparent)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runRender loads the document, runs the pipeline, and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	doc, err := readDocument(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Document:   &doc,
		Seed:       opts.seed,
		Formats:    opts.formats,
		Background: opts.background,
		Scale:      opts.scale,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(opts.output, input)
	var paths []string
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return fmt.Errorf("no %s artifact produced", format)
		}

		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	return nil
}

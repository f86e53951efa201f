package pipeline

import (
	"fmt"

	"github.com/matzehuels/draftboard/pkg/graph"
	"github.com/matzehuels/draftboard/pkg/render/nodelink"
	"github.com/matzehuels/draftboard/pkg/render/sink"
	"github.com/matzehuels/draftboard/pkg/scene"
)

// renderArtifacts produces every requested format from the composed
// scene. The DOT format renders from the graph instead; it is a
// structural preview, not a scene export.
func renderArtifacts(elements []scene.Element, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svgOpts []sink.SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(elements, svgOpts...)

		case FormatJSON:
			data, err := sink.RenderJSON(elements,
				sink.WithJSONSource("draftboard"),
				sink.WithJSONSeed(opts.Seed))
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[format] = data

		case FormatPNG:
			data, err := sink.RenderPNG(elements,
				sink.WithPNGSVGOptions(svgOpts...),
				sink.WithScale(opts.Scale))
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data

		case FormatPDF:
			data, err := sink.RenderPDF(elements, svgOpts...)
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = data

		case FormatDOT:
			if g == nil {
				return nil, fmt.Errorf("dot format requires the diagram graph")
			}
			artifacts[format] = []byte(nodelink.ToDOT(g, nodelink.Options{}))

		default:
			return nil, ValidateFormat(format)
		}
	}

	return artifacts, nil
}

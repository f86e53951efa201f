package layout

// Geometry constants. These are the single source of truth for sizing;
// pkg/render derives every element dimension from them.
const (
	// ShapeScale multiplies a node's nominal size hints before layout.
	ShapeScale = 1.6

	// MinShapeWidth and MinShapeHeight floor the scaled node size.
	MinShapeWidth  = 160.0
	MinShapeHeight = 64.0

	// SiblingGap is the horizontal space between nodes in the same row.
	SiblingGap = 60.0

	// RowGap is the vertical space between consecutive rows.
	RowGap = 100.0

	// Margin is the blank border around the whole diagram.
	Margin = 100.0

	// MaxTextWidth caps the wrap width for standalone and in-shape text.
	MaxTextWidth = 600.0
)

// Font sizes by text role.
const (
	FontSizeText      = 22.0 // standalone text nodes
	FontSizeNodeLabel = 20.0 // labels embedded in shapes
	FontSizeEdgeLabel = 16.0 // labels on arrows
)

// Text measurement constants.
const (
	// charWidthRatio approximates glyph width as a fraction of font size.
	charWidthRatio = 0.6

	// lineHeightRatio converts font size to line height before rounding.
	lineHeightRatio = 1.2

	// TextPadding is the inner padding applied on each side of a text box.
	TextPadding = 10.0

	// minMeasuredWidth floors the estimated width, so empty strings still
	// produce a drawable box.
	minMeasuredWidth = 40.0
)

// EdgeLabelWrapWidth is the fixed wrap width for arrow labels.
const EdgeLabelWrapWidth = 200.0

package layout

import (
	"math"
	"strings"
)

// TextMetrics is the estimated extent of a rendered string.
type TextMetrics struct {
	Width  float64
	Height float64
	Lines  int
}

// LineHeight returns the rounded line height for a font size. Renderers
// use it to space wrapped lines the same way [Measure] counted them.
func LineHeight(fontSize float64) float64 {
	return math.Round(fontSize * lineHeightRatio)
}

// Measure estimates the rendered size of text at the given font size,
// wrapped to maxWidth. Characters are approximated at a fixed fraction of
// the font size (monospace-like); this is not a substitute for real glyph
// metrics, but it is deterministic and close enough for layout sizing.
//
// Words are wrapped greedily: whitespace-delimited words accumulate onto a
// line until the next word would overflow the usable width
// (maxWidth minus padding on both sides), which starts a new line. Words
// longer than the usable width occupy a line of their own rather than
// being split.
//
// An empty string yields a fixed minimum-size box. Measure is pure and
// never fails.
func Measure(text string, fontSize, maxWidth float64) TextMetrics {
	lineHeight := LineHeight(fontSize)

	words := strings.Fields(text)
	if len(words) == 0 {
		return TextMetrics{
			Width:  minMeasuredWidth,
			Height: lineHeight + TextPadding,
			Lines:  1,
		}
	}

	charWidth := fontSize * charWidthRatio
	usable := maxWidth - 2*TextPadding

	lines := 1
	var lineWidth, maxLineWidth float64
	for _, word := range words {
		wordWidth := float64(len(word)+1) * charWidth
		if lineWidth > 0 && lineWidth+wordWidth > usable {
			lines++
			lineWidth = 0
		}
		lineWidth += wordWidth
		maxLineWidth = math.Max(maxLineWidth, lineWidth)
	}

	width := math.Max(maxLineWidth+2*TextPadding, math.Min(MaxTextWidth, maxWidth))
	width = math.Min(width, maxWidth)
	width = math.Max(width, minMeasuredWidth)

	return TextMetrics{
		Width:  width,
		Height: float64(lines)*lineHeight + TextPadding,
		Lines:  lines,
	}
}

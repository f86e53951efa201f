package scene

// Type discriminates the element variants.
type Type string

// Element types. Rectangle, Diamond, and Ellipse are the shape variants;
// Text and Arrow carry their own extra fields.
const (
	TypeRectangle Type = "rectangle"
	TypeDiamond   Type = "diamond"
	TypeEllipse   Type = "ellipse"
	TypeText      Type = "text"
	TypeArrow     Type = "arrow"
)

// Default styling shared by all emitted elements. These are fixed: the
// layout core does not expose styling knobs, so consumers restyle after
// the fact if they need to.
const (
	DefaultStrokeColor = "#1e1e1e"
	DefaultBackground  = "transparent"
	DefaultFillStyle   = "solid"
	DefaultStrokeWidth = 2.0
	DefaultRoughness   = 1.0
	DefaultOpacity     = 100.0
)

// ArrowheadArrow is the arrowhead drawn at an arrow's terminus. The origin
// end is always undecorated.
const ArrowheadArrow = "arrow"

// Point is a coordinate pair. Arrow points are relative to the arrow's
// own X/Y origin.
type Point [2]float64

// Binding ties an arrow endpoint to the node it visually connects to, so
// consumers that support live re-routing can keep the arrow attached.
// It references the diagram node identifier, not a generated element ID.
type Binding struct {
	NodeID string `json:"nodeId" bson:"nodeId"`
}

// Element is one drawable primitive. X/Y locate the top-left corner of
// the element's bounding box in absolute canvas coordinates.
//
// Variant fields:
//   - Text, FontSize: set for TypeText only
//   - Points, StartBinding, EndBinding, EndArrowhead: set for TypeArrow only
type Element struct {
	ID     string  `json:"id" bson:"id"`
	Type   Type    `json:"type" bson:"type"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	StrokeColor string  `json:"strokeColor" bson:"strokeColor"`
	Background  string  `json:"backgroundColor" bson:"backgroundColor"`
	FillStyle   string  `json:"fillStyle" bson:"fillStyle"`
	StrokeWidth float64 `json:"strokeWidth" bson:"strokeWidth"`
	Roughness   float64 `json:"roughness" bson:"roughness"`
	Opacity     float64 `json:"opacity" bson:"opacity"`

	Text     string  `json:"text,omitempty" bson:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty" bson:"fontSize,omitempty"`

	Points       []Point  `json:"points,omitempty" bson:"points,omitempty"`
	StartBinding *Binding `json:"startBinding,omitempty" bson:"startBinding,omitempty"`
	EndBinding   *Binding `json:"endBinding,omitempty" bson:"endBinding,omitempty"`
	EndArrowhead string   `json:"endArrowhead,omitempty" bson:"endArrowhead,omitempty"`
}

// IsShape reports whether the element is one of the shape variants.
func (e Element) IsShape() bool {
	switch e.Type {
	case TypeRectangle, TypeDiamond, TypeEllipse:
		return true
	}
	return false
}

// CenterX returns the horizontal center of the element's bounding box.
func (e Element) CenterX() float64 { return e.X + e.Width/2 }

// CenterY returns the vertical center of the element's bounding box.
func (e Element) CenterY() float64 { return e.Y + e.Height/2 }

// base returns an element of the given type with default styling applied.
func base(id string, typ Type, x, y, w, h float64) Element {
	return Element{
		ID:          id,
		Type:        typ,
		X:           x,
		Y:           y,
		Width:       w,
		Height:      h,
		StrokeColor: DefaultStrokeColor,
		Background:  DefaultBackground,
		FillStyle:   DefaultFillStyle,
		StrokeWidth: DefaultStrokeWidth,
		Roughness:   DefaultRoughness,
		Opacity:     DefaultOpacity,
	}
}

// NewShape creates a shape element with default styling. typ must be one
// of the shape variants.
func NewShape(id string, typ Type, x, y, w, h float64) Element {
	return base(id, typ, x, y, w, h)
}

// NewText creates a text element with default styling.
func NewText(id, text string, fontSize, x, y, w, h float64) Element {
	e := base(id, TypeText, x, y, w, h)
	e.Text = text
	e.FontSize = fontSize
	return e
}

// NewArrow creates an arrow element with default styling, an arrowhead on
// the terminus, and the given relative point list. Bindings may be nil.
func NewArrow(id string, x, y, w, h float64, points []Point, start, end *Binding) Element {
	e := base(id, TypeArrow, x, y, w, h)
	e.Points = points
	e.StartBinding = start
	e.EndBinding = end
	e.EndArrowhead = ArrowheadArrow
	return e
}

package graph

// Shape kinds for diagram nodes. Unknown kinds are treated as KindBox by
// consumers rather than rejected, since upstream generators occasionally
// invent values.
const (
	KindBox     = "box"
	KindDiamond = "diamond"
	KindEllipse = "ellipse"
	KindText    = "text"
)

// Validation caps applied at the collaborator boundary (see Validate).
// The layout engine itself trusts its input once past this boundary.
const (
	MaxNodes         = 500
	MaxEdges         = 1000
	MaxNodeLabelLen  = 2000
	MaxEdgeLabelLen  = 500
	DefaultNodeWidth = 120.0
	DefaultNodeHeight = 60.0
)

// Node is an abstract diagram entity. Width and Height are nominal size
// hints in the generator's coordinate space; the layout engine scales them
// and enforces minimums, so hints only influence relative sizing.
type Node struct {
	ID     string  `json:"id" bson:"id"`
	Kind   string  `json:"kind,omitempty" bson:"kind,omitempty"`
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
}

// IsText reports whether the node renders as standalone text rather than
// a shape with an embedded label.
func (n Node) IsText() bool { return n.Kind == KindText }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed relationship between two node identifiers.
// An edge may reference identifiers absent from the node set (dangling);
// consumers skip such edges instead of failing.
type Edge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// ValidKind reports whether k is one of the known shape kinds.
func ValidKind(k string) bool {
	switch k {
	case KindBox, KindDiamond, KindEllipse, KindText, "":
		return true
	}
	return false
}

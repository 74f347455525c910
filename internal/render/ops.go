package render

import "github.com/jm-ren/SeeingwithHand-sub001/internal/annotation"

// Op kinds. An Op is one drawing primitive in display-space coordinates,
// ready for a canvas client to execute verbatim.
const (
	KindCircle   = "circle"
	KindSegment  = "segment"
	KindPolyline = "polyline"
	KindPolygon  = "polygon"
	KindRect     = "rect"
)

// Op is a single drawing command. Ops are rebuilt from scratch on every
// frame; nothing downstream may hold on to them across redraws.
type Op struct {
	Kind  string `json:"kind"`
	Color string `json:"color"`

	// circle: center and radius. Zero is a legitimate coordinate, so none
	// of the numeric fields are omitempty.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`

	// segment: second endpoint
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`

	// rect: size, growing from (X, Y); negative spans grow leftward/upward
	W float64 `json:"w"`
	H float64 `json:"h"`

	// polyline, polygon
	Points []annotation.Point `json:"points,omitempty"`
	Closed bool               `json:"closed,omitempty"`

	// polygon, rect: fill once the shape's animation has completed
	Fill      bool    `json:"fill,omitempty"`
	FillAlpha float64 `json:"fillAlpha,omitempty"`
}

func circle(x, y, r float64, color string) Op {
	return Op{Kind: KindCircle, X: x, Y: y, R: r, Color: color}
}

func segment(x1, y1, x2, y2 float64, color string) Op {
	return Op{Kind: KindSegment, X: x1, Y: y1, X2: x2, Y2: y2, Color: color}
}

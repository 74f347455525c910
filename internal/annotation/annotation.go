// Package annotation defines the immutable records a seeing session is made
// of. All point coordinates are pixels in the source image's natural space;
// records captured in percentage space are converted once at load time (see
// the catalog package) so nothing downstream ever has to ask which space a
// point is in.
package annotation

// Point is a 2-D coordinate in the source image's natural pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Type tags how an annotation's points should be drawn. The set is open:
// unrecognized types still render, via the point fallback.
type Type string

const (
	TypePoint    Type = "point"
	TypeLine     Type = "line"
	TypeFreehand Type = "freehand"
	TypeFrame    Type = "frame"
	TypeArea     Type = "area"
)

// MinPoints returns the smallest point count for which the type draws
// anything. Frame and area accept two points (a legacy rectangle, opposite
// corners) or three and more (a polygon).
func (t Type) MinPoints() int {
	switch t {
	case TypeLine, TypeFreehand, TypeFrame, TypeArea:
		return 2
	default:
		return 1
	}
}

// Annotation is one recorded mark. The list a replay is seeded with is
// ordered by Timestamp and never mutated.
type Annotation struct {
	ID        string  `json:"id"`
	Type      Type    `json:"type"`
	Points    []Point `json:"points"`
	Timestamp int64   `json:"timestamp"` // recording wall clock, milliseconds
	Color     string  `json:"color,omitempty"`
}

// Renderable reports whether the annotation has enough points for its type.
// Malformed records are skipped by the renderer, never treated as errors.
func (a Annotation) Renderable() bool {
	return len(a.Points) >= a.Type.MinPoints()
}

// Duration returns the replay length in milliseconds: the spread between the
// first and last timestamp. Zero for empty or single-element lists, which
// callers must treat as the degenerate case rather than divide by.
func Duration(list []Annotation) int64 {
	if len(list) < 2 {
		return 0
	}
	min, max := list[0].Timestamp, list[0].Timestamp
	for _, a := range list[1:] {
		if a.Timestamp < min {
			min = a.Timestamp
		}
		if a.Timestamp > max {
			max = a.Timestamp
		}
	}
	return max - min
}

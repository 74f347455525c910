// Package render is the progressive replay renderer: a pure function of the
// full annotation list, the clock's current virtual time and the current
// display geometry, producing the drawing commands for one complete frame.
// It is re-run on every tick, seek, resize and annotation-set change and
// always rebuilds the frame from scratch; there is no incremental diffing
// and no retained state between calls.
package render

import (
	"github.com/jm-ren/SeeingwithHand-sub001/internal/annotation"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/geometry"
)

// Animation windows per annotation type, in virtual milliseconds. A line
// grows from its start point to its end over LineWindowMs, a freehand stroke
// reveals its points over FreehandWindowMs, frames and areas build their
// outline over ShapeWindowMs.
const (
	LineWindowMs     int64 = 1000
	FreehandWindowMs int64 = 2000
	ShapeWindowMs    int64 = 1500
)

const (
	// AreaFillAlpha is the translucency of a completed area's fill.
	AreaFillAlpha = 0.2

	// PointRadius is the display-space radius of a point mark;
	// FallbackRadius the reduced radius used for unrecognized types.
	PointRadius    = 6.0
	FallbackRadius = 4.0
)

// Trace is an optional diagnostic hook. The renderer itself never logs.
type Trace func(event, annotationID string)

// Renderer renders progressive frames. The zero value is ready to use.
type Renderer struct {
	Trace Trace
}

func (r Renderer) trace(event, id string) {
	if r.Trace != nil {
		r.Trace(event, id)
	}
}

// Render produces the draw ops for one frame. Visibility is measured against
// a single shared virtual clock: an annotation is visible once its offset
// from the first annotation's timestamp has elapsed. Later annotations are
// emitted later in the op list and therefore draw on top. Malformed records
// are skipped; invalid geometry skips the whole frame (the caller retries on
// the next trigger).
func (r Renderer) Render(list []annotation.Annotation, currentTimeMs int64, d geometry.Display) []Op {
	if len(list) == 0 || !d.Valid() {
		return nil
	}
	fit := d.Fit()
	base := list[0].Timestamp

	ops := make([]Op, 0, len(list))
	for _, a := range list {
		offset := a.Timestamp - base
		if offset > currentTimeMs {
			continue
		}
		if !a.Renderable() {
			r.trace("skip-malformed", a.ID)
			continue
		}
		elapsed := currentTimeMs - offset
		color := annotation.ResolveColor(a.Color)

		switch a.Type {
		case annotation.TypePoint:
			x, y := fit.Project(a.Points[0].X, a.Points[0].Y)
			ops = append(ops, circle(x, y, PointRadius, color))
		case annotation.TypeLine:
			ops = append(ops, r.line(a, elapsed, fit, color))
		case annotation.TypeFreehand:
			if op, ok := r.reveal(a, elapsed, FreehandWindowMs, fit, color, false, false); ok {
				ops = append(ops, op)
			}
		case annotation.TypeFrame:
			if op, ok := r.shape(a, elapsed, fit, color, false); ok {
				ops = append(ops, op)
			}
		case annotation.TypeArea:
			if op, ok := r.shape(a, elapsed, fit, color, true); ok {
				ops = append(ops, op)
			}
		default:
			// Unknown future types degrade to a muted point mark.
			r.trace("fallback-point", a.ID)
			x, y := fit.Project(a.Points[0].X, a.Points[0].Y)
			ops = append(ops, circle(x, y, FallbackRadius, annotation.BlendToward(color, "#ffffff", 0.35)))
		}
	}
	return ops
}

// line draws a segment whose endpoint interpolates linearly from the start
// toward the end across LineWindowMs.
func (r Renderer) line(a annotation.Annotation, elapsed int64, fit geometry.Fit, color string) Op {
	t := fraction(elapsed, LineWindowMs)
	x1, y1 := fit.Project(a.Points[0].X, a.Points[0].Y)
	x2, y2 := fit.Project(a.Points[1].X, a.Points[1].Y)
	return segment(x1, y1, lerp(x1, x2, t), lerp(y1, y2, t), color)
}

// reveal draws the first floor(n*t) points of a stroke plus a linearly
// interpolated partial segment toward the next point for sub-step
// smoothness. Closing and filling happen only once t reaches 1.
func (r Renderer) reveal(a annotation.Annotation, elapsed, windowMs int64, fit geometry.Fit, color string, closeWhenDone, fillWhenDone bool) (Op, bool) {
	t := fraction(elapsed, windowMs)
	n := len(a.Points)
	total := float64(n) * t
	shown := int(total)

	if shown >= n {
		pts := projectAll(a.Points, fit)
		op := Op{Kind: KindPolyline, Points: pts, Color: color}
		if closeWhenDone {
			op.Kind = KindPolygon
			op.Closed = true
		}
		if fillWhenDone {
			op.Fill = true
			op.FillAlpha = AreaFillAlpha
		}
		return op, true
	}
	if shown == 0 {
		return Op{}, false
	}

	pts := projectAll(a.Points[:shown], fit)
	if partial := total - float64(shown); partial > 0 {
		prev := a.Points[shown-1]
		next := a.Points[shown]
		x, y := fit.Project(lerp(prev.X, next.X, partial), lerp(prev.Y, next.Y, partial))
		pts = append(pts, annotation.Point{X: x, Y: y})
	}
	if len(pts) < 2 {
		return Op{}, false
	}
	return Op{Kind: KindPolyline, Points: pts, Color: color}, true
}

// shape dispatches frames and areas to their polygon or legacy-rectangle
// form. Two points are opposite corners of a rectangle growing from the
// first corner; three or more are a polygon revealed edge by edge. Only an
// area fills, and only once its animation has fully completed.
func (r Renderer) shape(a annotation.Annotation, elapsed int64, fit geometry.Fit, color string, fills bool) (Op, bool) {
	if len(a.Points) >= 3 {
		return r.reveal(a, elapsed, ShapeWindowMs, fit, color, true, fills)
	}

	t := fraction(elapsed, ShapeWindowMs)
	x0, y0 := fit.Project(a.Points[0].X, a.Points[0].Y)
	x1, y1 := fit.Project(a.Points[1].X, a.Points[1].Y)
	op := Op{
		Kind:  KindRect,
		X:     x0,
		Y:     y0,
		W:     (x1 - x0) * t,
		H:     (y1 - y0) * t,
		Color: color,
	}
	if fills && t >= 1 {
		op.Fill = true
		op.FillAlpha = AreaFillAlpha
	}
	return op, true
}

func projectAll(src []annotation.Point, fit geometry.Fit) []annotation.Point {
	out := make([]annotation.Point, len(src))
	for i, p := range src {
		x, y := fit.Project(p.X, p.Y)
		out[i] = annotation.Point{X: x, Y: y}
	}
	return out
}

// fraction returns elapsed/window clamped to [0, 1].
func fraction(elapsedMs, windowMs int64) float64 {
	if elapsedMs <= 0 {
		return 0
	}
	if elapsedMs >= windowMs {
		return 1
	}
	return float64(elapsedMs) / float64(windowMs)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

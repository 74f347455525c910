// Package geometry maps annotation points from the image's natural pixel
// space into the on-screen surface. The fit policy is object-fit "contain":
// the image is scaled uniformly to sit inside the container and centered,
// preserving its aspect ratio.
package geometry

// Display describes the current rendering situation: the source image's
// intrinsic size and the on-screen container box. The container may change
// on every resize; the fit is recomputed per redraw, never cached across
// frames.
type Display struct {
	NaturalW   float64
	NaturalH   float64
	ContainerW float64
	ContainerH float64
}

// Valid reports whether the geometry is safe to project through. It is false
// until the image has loaded (natural size unknown) or while the container
// has collapsed to zero; callers skip the redraw entirely and retry on the
// next trigger rather than draw through division-unsafe scale factors.
func (d Display) Valid() bool {
	return d.NaturalW > 0 && d.NaturalH > 0 && d.ContainerW > 0 && d.ContainerH > 0
}

// Fit is the resolved contain transform: the displayed image box within the
// container and the per-axis scale factors from natural pixels to display
// pixels. With a uniform contain fit the two factors are equal; they are kept
// separate because correctness of every drawn primitive depends on each axis
// passing through its own factor.
type Fit struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	ScaleX  float64
	ScaleY  float64
}

// Fit computes the contain transform for the current display. Call only when
// Valid.
func (d Display) Fit() Fit {
	scale := d.ContainerW / d.NaturalW
	if s := d.ContainerH / d.NaturalH; s < scale {
		scale = s
	}
	w := d.NaturalW * scale
	h := d.NaturalH * scale
	return Fit{
		Width:   w,
		Height:  h,
		OffsetX: (d.ContainerW - w) / 2,
		OffsetY: (d.ContainerH - h) / 2,
		ScaleX:  scale,
		ScaleY:  scale,
	}
}

// Project maps a natural-space coordinate into display space.
func (f Fit) Project(x, y float64) (float64, float64) {
	return f.OffsetX + x*f.ScaleX, f.OffsetY + y*f.ScaleY
}

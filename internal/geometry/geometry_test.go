package geometry

import (
	"math"
	"testing"
)

func TestFitContain(t *testing.T) {
	tests := []struct {
		name    string
		d       Display
		scale   float64
		offsetX float64
		offsetY float64
	}{
		{
			name:    "wide image in wide container, height-bound",
			d:       Display{NaturalW: 2000, NaturalH: 1000, ContainerW: 800, ContainerH: 300},
			scale:   0.3,
			offsetX: 100, // (800 - 600) / 2
			offsetY: 0,
		},
		{
			name:    "tall image, width-bound",
			d:       Display{NaturalW: 500, NaturalH: 1000, ContainerW: 250, ContainerH: 1000},
			scale:   0.5,
			offsetX: 0,
			offsetY: 250, // (1000 - 500) / 2
		},
		{
			name:    "exact fit",
			d:       Display{NaturalW: 640, NaturalH: 480, ContainerW: 640, ContainerH: 480},
			scale:   1,
			offsetX: 0,
			offsetY: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.d.Fit()
			if !almost(f.ScaleX, tt.scale) || !almost(f.ScaleY, tt.scale) {
				t.Errorf("expected scale %v, got %v/%v", tt.scale, f.ScaleX, f.ScaleY)
			}
			if !almost(f.OffsetX, tt.offsetX) || !almost(f.OffsetY, tt.offsetY) {
				t.Errorf("expected offsets (%v, %v), got (%v, %v)",
					tt.offsetX, tt.offsetY, f.OffsetX, f.OffsetY)
			}
			if f.Width > tt.d.ContainerW+1e-9 || f.Height > tt.d.ContainerH+1e-9 {
				t.Errorf("displayed box %vx%v exceeds container", f.Width, f.Height)
			}
		})
	}
}

func TestProject(t *testing.T) {
	d := Display{NaturalW: 1000, NaturalH: 500, ContainerW: 500, ContainerH: 500}
	f := d.Fit() // scale 0.5, image box 500x250 centered vertically

	x, y := f.Project(0, 0)
	if !almost(x, 0) || !almost(y, 125) {
		t.Errorf("origin projected to (%v, %v), expected (0, 125)", x, y)
	}

	x, y = f.Project(1000, 500)
	if !almost(x, 500) || !almost(y, 375) {
		t.Errorf("far corner projected to (%v, %v), expected (500, 375)", x, y)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		d    Display
		want bool
	}{
		{Display{NaturalW: 100, NaturalH: 100, ContainerW: 100, ContainerH: 100}, true},
		{Display{NaturalW: 0, NaturalH: 100, ContainerW: 100, ContainerH: 100}, false},
		{Display{NaturalW: 100, NaturalH: 100, ContainerW: 0, ContainerH: 100}, false},
		{Display{}, false},
	}
	for _, tt := range tests {
		if got := tt.d.Valid(); got != tt.want {
			t.Errorf("Valid(%+v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

package annotation

import "testing"

func TestMinPoints(t *testing.T) {
	tests := []struct {
		typ  Type
		want int
	}{
		{TypePoint, 1},
		{TypeLine, 2},
		{TypeFreehand, 2},
		{TypeFrame, 2},
		{TypeArea, 2},
		{Type("gaze-cluster"), 1}, // unknown types fall back to point rendering
	}
	for _, tt := range tests {
		if got := tt.typ.MinPoints(); got != tt.want {
			t.Errorf("MinPoints(%q) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestRenderable(t *testing.T) {
	if (Annotation{Type: TypeLine, Points: []Point{{0, 0}}}).Renderable() {
		t.Error("one-point line should not be renderable")
	}
	if !(Annotation{Type: TypeLine, Points: []Point{{0, 0}, {1, 1}}}).Renderable() {
		t.Error("two-point line should be renderable")
	}
	if (Annotation{Type: TypePoint}).Renderable() {
		t.Error("empty points should never be renderable")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		list []Annotation
		want int64
	}{
		{"empty", nil, 0},
		{"single", []Annotation{{Timestamp: 5000}}, 0},
		{"two", []Annotation{{Timestamp: 1000}, {Timestamp: 1500}}, 500},
		{"equal timestamps", []Annotation{{Timestamp: 1000}, {Timestamp: 1000}}, 0},
		{"unordered", []Annotation{{Timestamp: 3000}, {Timestamp: 1000}, {Timestamp: 2000}}, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.list); got != tt.want {
				t.Errorf("Duration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultColor},
		{"#336699", "#336699"},
		{"#ABCDEF", "#abcdef"},
		{"not-a-color", DefaultColor},
	}
	for _, tt := range tests {
		if got := ResolveColor(tt.in); got != tt.want {
			t.Errorf("ResolveColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

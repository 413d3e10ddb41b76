package geometry

import "testing"

func TestBaseline(t *testing.T) {
	bounds := Rect{Width: 1920, Height: 1040}
	size := Size{Width: 128, Height: 128}

	if got := Baseline(bounds, size, 10); got != 902 {
		t.Errorf("expected 902, got %d", got)
	}
	if got := Baseline(Rect{Width: 100, Height: 50}, size, 10); got != 0 {
		t.Errorf("expected baseline clamped to 0, got %d", got)
	}
}

func TestPlace(t *testing.T) {
	size := Size{Width: 100, Height: 100}
	tests := []struct {
		name   string
		x      int
		bounds Rect
		want   Point
	}{
		{
			name:   "x inside is kept",
			x:      300,
			bounds: Rect{Width: 1000, Height: 800},
			want:   Point{X: 300, Y: 690},
		},
		{
			name:   "x past right edge falls back",
			x:      1500,
			bounds: Rect{Width: 1000, Height: 800},
			want:   Point{X: 850, Y: 690},
		},
		{
			name:   "negative x falls back",
			x:      -20,
			bounds: Rect{Width: 1000, Height: 800},
			want:   Point{X: 850, Y: 690},
		},
		{
			name:   "tiny screen clamps fallback",
			x:      500,
			bounds: Rect{Width: 120, Height: 200},
			want:   Point{X: 0, Y: 90},
		},
		{
			name:   "exactly at max x is kept",
			x:      900,
			bounds: Rect{Width: 1000, Height: 800},
			want:   Point{X: 900, Y: 690},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.x, tt.bounds, size, 10, 50)
			if got != tt.want {
				t.Errorf("Place(%d, %+v) = %+v, want %+v", tt.x, tt.bounds, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-5, 0, 10) != 0 || Clamp(15, 0, 10) != 10 || Clamp(7, 0, 10) != 7 {
		t.Error("clamp out of range")
	}
}

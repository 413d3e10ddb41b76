package geometry

type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

type Size struct {
	Width, Height int
}

// Rect is the available screen area, excluding taskbars and docks.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MaxX is the largest window x that keeps a window of the given size on
// screen.
func MaxX(bounds Rect, size Size) int {
	return max(0, bounds.Width-size.Width)
}

// Baseline is the y at which the pet stands, margin pixels above the bottom
// of the available area.
func Baseline(bounds Rect, size Size, margin int) int {
	return max(0, bounds.Height-size.Height-margin)
}

// Place returns where the window belongs after the screen changed: x is
// kept while it still fits, otherwise the window is pulled back to
// fallback pixels from the right edge. y always snaps to the baseline.
func Place(x int, bounds Rect, size Size, margin, fallback int) Point {
	y := Baseline(bounds, size, margin)
	if x < 0 || x > MaxX(bounds, size) {
		x = Clamp(bounds.Width-size.Width-fallback, 0, MaxX(bounds, size))
	}
	return Point{X: x, Y: y}
}

func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

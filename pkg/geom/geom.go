package geom

import "math"

// Point is a location in layout space.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Area returns W*H.
func (s Size) Area() float64 { return s.W * s.H }

// Scale returns the size multiplied uniformly by f.
func (s Size) Scale(f float64) Size { return Size{W: s.W * f, H: s.H * f} }

// Valid reports whether both dimensions are finite and strictly positive.
func (s Size) Valid() bool {
	return finite(s.W) && finite(s.H) && s.W > 0 && s.H > 0
}

// AspectRatio returns W/H, or 0 when H is zero.
func (s Size) AspectRatio() float64 {
	if s.H == 0 {
		return 0
	}
	return s.W / s.H
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// NewRect builds a rectangle from a location and a size.
func NewRect(p Point, s Size) Rect { return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H} }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// Location returns the top-left corner.
func (r Rect) Location() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// AspectRatio returns W/H, or 0 when H is zero.
func (r Rect) AspectRatio() float64 { return r.Size().AspectRatio() }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the overlap of r and o. Disjoint or touching
// rectangles yield the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether o lies inside r, allowing each edge to
// overshoot by at most eps.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

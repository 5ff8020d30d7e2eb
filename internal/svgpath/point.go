package svgpath

import "math"

// Point is a position in path coordinates. Y grows downward, as in SVG.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point        { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point      { return Point{p.X * f, p.Y * f} }
func (p Point) Hypot() float64           { return math.Hypot(p.X, p.Y) }
func (p Point) Distance(q Point) float64 { return q.Sub(p).Hypot() }

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Mul(t))
}

func rotatePt(pt Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

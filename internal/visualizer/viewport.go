package visualizer

import (
	"math"

	"github.com/olivier-w/epicycles/internal/cplx"
)

// Viewport maps the complex plane onto a canvas's dot grid. Braille dots are
// roughly square on a terminal, so one scale serves both axes.
type Viewport struct {
	center cplx.Number
	scale  float64
	ox, oy float64
}

// NewViewport fits the square center ± half into a w x h dot grid, with the
// imaginary axis pointing up.
func NewViewport(w, h int, center cplx.Number, half float64) Viewport {
	if half <= 0 {
		half = 1
	}
	side := float64(min(w, h))
	return Viewport{
		center: center,
		scale:  (side - 1) / (2 * half),
		ox:     float64(w-1) / 2,
		oy:     float64(h-1) / 2,
	}
}

// LimitViewport shows ±limit around the origin.
func LimitViewport(w, h int, limit float64) Viewport {
	return NewViewport(w, h, cplx.Number{}, limit)
}

// FitViewport frames points with a small border.
func FitViewport(w, h int, points []cplx.Number) Viewport {
	if len(points) == 0 {
		return NewViewport(w, h, cplx.Number{}, 1)
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.Real())
		maxX = math.Max(maxX, p.Real())
		minY = math.Min(minY, p.Imag())
		maxY = math.Max(maxY, p.Imag())
	}
	half := math.Max(maxX-minX, maxY-minY) / 2 * 1.1
	center := cplx.New((minX+maxX)/2, (minY+maxY)/2)
	return NewViewport(w, h, center, half)
}

// Point returns the dot for p.
func (v Viewport) Point(p cplx.Number) (x, y int) {
	fx := v.ox + (p.Real()-v.center.Real())*v.scale
	fy := v.oy - (p.Imag()-v.center.Imag())*v.scale
	return int(math.Round(fx)), int(math.Round(fy))
}

// Length returns a plane distance in dots.
func (v Viewport) Length(d float64) int {
	return int(math.Round(d * v.scale))
}

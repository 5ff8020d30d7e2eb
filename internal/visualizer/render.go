package visualizer

import (
	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/epicycle"
)

// Circles smaller than this many dots are skipped; they would only smear the
// vectors.
const minCircleDots = 2

// DrawFrame draws one animation frame: circles, then vectors, then the trace
// so far and the tip.
func DrawFrame(c *Canvas, v Viewport, f epicycle.Frame) {
	for _, circle := range f.Circles {
		r := v.Length(circle.Radius)
		if r < minCircleDots {
			continue
		}
		x, y := v.Point(circle.Center)
		c.Circle(x, y, r, LayerCircle)
	}
	for _, vec := range f.Vectors {
		x0, y0 := v.Point(vec.From)
		x1, y1 := v.Point(vec.To)
		c.Line(x0, y0, x1, y1, LayerVector)
	}
	drawPolyline(c, v, f.Trace, LayerTrace)
	x, y := v.Point(f.Tip)
	c.Set(x, y, LayerTip)
}

// DrawTrace draws a finished outline.
func DrawTrace(c *Canvas, v Viewport, trace []cplx.Number) {
	drawPolyline(c, v, trace, LayerTrace)
}

func drawPolyline(c *Canvas, v Viewport, points []cplx.Number, l Layer) {
	if len(points) == 1 {
		x, y := v.Point(points[0])
		c.Set(x, y, l)
		return
	}
	for i := 1; i < len(points); i++ {
		x0, y0 := v.Point(points[i-1])
		x1, y1 := v.Point(points[i])
		c.Line(x0, y0, x1, y1, l)
	}
}

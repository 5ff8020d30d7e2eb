package svgpath

import "math"

// Arc is an elliptical arc in center parametrization.
type Arc struct {
	From       Point
	To         Point
	Center     Point
	Radii      Point
	XRotation  float64
	StartAngle float64
	SweepAngle float64
}

func (a Arc) Start() Point { return a.From }
func (a Arc) End() Point   { return a.To }

func (a Arc) Eval(t float64) Point {
	switch t {
	case 0:
		return a.From
	case 1:
		return a.To
	}
	return a.Center.Add(sampleEllipse(a.Radii, a.XRotation, a.StartAngle+a.SweepAngle*t))
}

func (a Arc) Length() float64 { return arclen(a, 0, 1, a.From, a.To, 0) }

func sampleEllipse(radii Point, xRotation, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return rotatePt(Point{radii.X * cos, radii.Y * sin}, xRotation)
}

// endpointArc converts the SVG endpoint form of an arc to a segment.
// Zero radii degrade to a straight line; coincident endpoints draw nothing
// and return ok=false.
func endpointArc(p0 Point, rx, ry, rotDeg float64, large, sweep bool, p1 Point) (Segment, bool) {
	if p0 == p1 {
		return nil, false
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return Line{P0: p0, P1: p1}, true
	}

	phi := rotDeg * math.Pi / 180
	mid := rotatePt(p0.Sub(p1).Mul(0.5), -phi)

	// Scale radii up when no ellipse with the given radii can connect the
	// endpoints.
	lambda := (mid.X*mid.X)/(rx*rx) + (mid.Y*mid.Y)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*mid.Y*mid.Y - ry2*mid.X*mid.X
	den := rx2*mid.Y*mid.Y + ry2*mid.X*mid.X
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cp := Point{coef * rx * mid.Y / ry, -coef * ry * mid.X / rx}
	center := rotatePt(cp, phi).Add(p0.Add(p1).Mul(0.5))

	start := math.Atan2((mid.Y-cp.Y)/ry, (mid.X-cp.X)/rx)
	end := math.Atan2((-mid.Y-cp.Y)/ry, (-mid.X-cp.X)/rx)
	delta := end - start
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	return Arc{
		From:       p0,
		To:         p1,
		Center:     center,
		Radii:      Point{rx, ry},
		XRotation:  phi,
		StartAngle: start,
		SweepAngle: delta,
	}, true
}

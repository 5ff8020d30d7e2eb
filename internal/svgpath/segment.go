package svgpath

import "math"

// Segment is one drawing command of a path, parametrized over t ∈ [0,1].
type Segment interface {
	Start() Point
	End() Point
	Eval(t float64) Point
	Length() float64
}

const (
	lengthAccuracy = 1e-9
	minLengthDepth = 4
	maxLengthDepth = 16
)

type Line struct {
	P0, P1 Point
}

func (l Line) Start() Point         { return l.P0 }
func (l Line) End() Point           { return l.P1 }
func (l Line) Eval(t float64) Point { return l.P0.Lerp(l.P1, t) }
func (l Line) Length() float64      { return l.P0.Distance(l.P1) }

// Close is the implicit line drawn by a closepath command back to the
// start of the subpath.
type Close struct {
	Line
}

type QuadBez struct {
	P0, P1, P2 Point
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := q.P0.Mul(mt * mt)
	b := q.P1.Mul(mt * 2.0)
	c := q.P2.Mul(t)
	return a.Add(b.Add(c).Mul(t))
}

func (q QuadBez) Length() float64 { return arclen(q, 0, 1, q.P0, q.P2, 0) }

type CubicBez struct {
	P0, P1, P2, P3 Point
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := c.P0.Mul(mt * mt * mt)
	b := c.P1.Mul(mt * mt * 3.0)
	d := c.P2.Mul(mt * 3.0)
	e := c.P3
	return a.Add(b.Add(d.Add(e.Mul(t)).Mul(t)).Mul(t))
}

func (c CubicBez) Length() float64 { return arclen(c, 0, 1, c.P0, c.P3, 0) }

// arclen approximates the arc length of s between t0 and t1 by recursive
// chord subdivision until the two half chords agree with the whole chord.
func arclen(s Segment, t0, t1 float64, p0, p1 Point, depth int) float64 {
	mid := (t0 + t1) / 2
	pm := s.Eval(mid)
	whole := p0.Distance(p1)
	halves := p0.Distance(pm) + pm.Distance(p1)
	if depth >= maxLengthDepth || (depth >= minLengthDepth && halves-whole <= lengthAccuracy*math.Max(1, halves)) {
		return halves
	}
	return arclen(s, t0, mid, p0, pm, depth+1) + arclen(s, mid, t1, pm, p1, depth+1)
}

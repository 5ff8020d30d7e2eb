// Package svgpath parses SVG path data and evaluates the resulting outline
// as a single curve parametrized over t ∈ [0,1].
package svgpath

// Path is the drawable outline of the first subpath of some path data.
// It is immutable once built.
type Path struct {
	segments []Segment
	lengths  []float64
	total    float64
	subpaths int
}

// New builds a path from already constructed segments.
func New(segments ...Segment) *Path {
	p := &Path{
		segments: segments,
		lengths:  make([]float64, len(segments)),
		subpaths: 1,
	}
	for i, s := range segments {
		l := s.Length()
		p.lengths[i] = l
		p.total += l
	}
	return p
}

// Segments returns the drawn segments in order.
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Length returns the total arc length of the outline.
func (p *Path) Length() float64 { return p.total }

// Subpaths reports how many drawing subpaths the source data contained.
// Only the first one is part of the outline.
func (p *Path) Subpaths() int { return p.subpaths }

// Point evaluates the outline at t ∈ [0,1]. The range is shared between
// segments in proportion to their length; within a segment t follows the
// segment's own parametrization. A path without length gives every segment
// an equal share.
func (p *Path) Point(t float64) Point {
	n := len(p.segments)
	if n == 0 {
		return Point{}
	}
	if t <= 0 {
		return p.segments[0].Eval(0)
	}
	if t >= 1 {
		return p.segments[n-1].Eval(1)
	}

	if p.total == 0 {
		scaled := t * float64(n)
		i := min(int(scaled), n-1)
		return p.segments[i].Eval(scaled - float64(i))
	}

	start := 0.0
	for i, seg := range p.segments {
		frac := p.lengths[i] / p.total
		end := start + frac
		if frac > 0 && end >= t {
			return seg.Eval((t - start) / frac)
		}
		start = end
	}
	return p.segments[n-1].Eval(1)
}

// Package sampler turns SVG path data into evenly parametrized complex
// samples.
package sampler

import (
	"errors"
	"fmt"

	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/svgpath"
)

// ErrInvalidParameter is the sentinel every InvalidParameterError unwraps to.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a caller supplied parameter outside its
// domain, such as a non-positive sample count.
type InvalidParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e == nil {
		return ErrInvalidParameter.Error()
	}
	return fmt.Sprintf("%s %s=%v: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Options controls axis mirroring of the sampled points.
type Options struct {
	// MirrorHorizontal negates the imaginary part. SVG's y axis points down,
	// so this is on by default to get an upright outline in the plane.
	MirrorHorizontal bool
	// MirrorVertical negates the real part.
	MirrorVertical bool
}

// DefaultOptions mirrors about the horizontal axis only.
func DefaultOptions() Options {
	return Options{MirrorHorizontal: true}
}

// Sample parses d and returns n points of its first subpath at
// t = i/(n-1), i = 0..n-1. A single sample is taken at t = 0.
func Sample(d string, n int, opts Options) ([]cplx.Number, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}
	p, err := svgpath.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("sampling path: %w", err)
	}
	return SamplePath(p, n, opts)
}

// SamplePath is Sample on an already parsed path.
func SamplePath(p *svgpath.Path, n int, opts Options) ([]cplx.Number, error) {
	if err := checkCount(n); err != nil {
		return nil, err
	}

	signX, signY := 1.0, 1.0
	if opts.MirrorHorizontal {
		signX = -1
	}
	if opts.MirrorVertical {
		signY = -1
	}

	points := make([]cplx.Number, n)
	for i := range n {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		pt := p.Point(t)
		points[i] = cplx.New(signY*pt.X, signX*pt.Y)
	}
	return points, nil
}

func checkCount(n int) error {
	if n <= 0 {
		return &InvalidParameterError{Name: "samples", Value: n, Reason: "must be positive"}
	}
	return nil
}

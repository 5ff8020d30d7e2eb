// Package epicycle reconstructs an outline from its Fourier coefficients as a
// chain of rotating circles, one frame per sample.
package epicycle

import (
	"errors"

	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/fourier"
	"gonum.org/v1/gonum/floats"
)

// Margin is added to the largest coefficient magnitude to get the plot
// extent.
const Margin = 800

// ErrNotPlaying is returned by Step when the animation is not in the Playing
// state.
var ErrNotPlaying = errors.New("animation is not playing")

// Circle is the orbit of one term around the tip of the previous terms.
type Circle struct {
	Center cplx.Number
	Radius float64
}

// Vector is the arm of one term, from its circle's center to its tip.
type Vector struct {
	From, To cplx.Number
}

// Frame is everything drawn at one time step. Circles and Vectors replace the
// previous frame's; Trace accumulates the tips of frames 0..Index.
type Frame struct {
	Index   int
	Circles []Circle
	Vectors []Vector
	Tip     cplx.Number
	Trace   []cplx.Number
}

// State is the animation lifecycle.
type State int

const (
	AwaitingStart State = iota
	Playing
	AwaitingClose
	Closed
)

func (s State) String() string {
	switch s {
	case AwaitingStart:
		return "awaiting start"
	case Playing:
		return "playing"
	case AwaitingClose:
		return "awaiting close"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Limit returns the half extent of the plot: max |c_k| + Margin.
func Limit(coeffs []cplx.Number) (float64, error) {
	if len(coeffs) == 0 {
		return 0, &fourier.EmptyInputError{Stage: "render"}
	}
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = c.Magnitude()
	}
	return floats.Max(mags) + Margin, nil
}

// Animation steps through the N frames of a coefficient sequence.
type Animation struct {
	coeffs []cplx.Number
	limit  float64
	state  State
	next   int
	trace  []cplx.Number
}

// NewAnimation returns an animation awaiting start.
func NewAnimation(coeffs []cplx.Number) (*Animation, error) {
	limit, err := Limit(coeffs)
	if err != nil {
		return nil, err
	}
	return &Animation{
		coeffs: coeffs,
		limit:  limit,
		trace:  make([]cplx.Number, 0, len(coeffs)),
	}, nil
}

// Start moves an animation awaiting start to Playing at frame 0. It is a
// no-op in any other state.
func (a *Animation) Start() error {
	if a.state == AwaitingStart {
		a.state = Playing
	}
	return nil
}

// Step renders the next frame and appends its tip to the trace. After the
// last frame the animation awaits close.
func (a *Animation) Step() (Frame, error) {
	if a.state != Playing {
		return Frame{}, ErrNotPlaying
	}

	t := a.next
	n := len(a.coeffs)
	frame := Frame{
		Index:   t,
		Circles: make([]Circle, n),
		Vectors: make([]Vector, n),
	}
	var acc cplx.Number
	for k, c := range a.coeffs {
		tip := acc.Add(fourier.Term(c, k, t, n))
		frame.Circles[k] = Circle{Center: acc, Radius: c.Magnitude()}
		frame.Vectors[k] = Vector{From: acc, To: tip}
		acc = tip
	}
	frame.Tip = acc
	a.trace = append(a.trace, acc)
	frame.Trace = a.trace

	a.next++
	if a.next >= n {
		a.state = AwaitingClose
	}
	return frame, nil
}

// Close ends the animation from any state.
func (a *Animation) Close() {
	a.state = Closed
}

func (a *Animation) State() State { return a.state }

// Frame returns the index of the next frame Step will render.
func (a *Animation) Frame() int { return a.next }

func (a *Animation) Len() int { return len(a.coeffs) }

func (a *Animation) Limit() float64 { return a.limit }

// Trace returns the tips rendered so far. The slice must not be modified.
func (a *Animation) Trace() []cplx.Number { return a.trace }

// StaticTrace returns the reconstructed point of every frame at once.
func StaticTrace(coeffs []cplx.Number) ([]cplx.Number, error) {
	if len(coeffs) == 0 {
		return nil, &fourier.EmptyInputError{Stage: "render"}
	}
	trace, err := fourier.Inverse(coeffs)
	if err != nil {
		return nil, err
	}
	return trace, nil
}

// Package cplx provides the immutable complex value used across the
// sampling, transform and reconstruction stages.
package cplx

import (
	"fmt"
	"math"
)

// Number is a point in the complex plane with its polar form cached.
// The zero value is the origin.
type Number struct {
	re    float64
	im    float64
	mag   float64
	phase float64
}

// New returns the number re + j·im with magnitude and phase derived.
//
// Phase is math.Atan2(re, im), not the conventional Atan2(im, re). Multiply
// is built on the same convention so products come out right, but code that
// reads Phase directly must account for it.
func New(re, im float64) Number {
	return Number{
		re:    re,
		im:    im,
		mag:   math.Sqrt(re*re + im*im),
		phase: math.Atan2(re, im),
	}
}

// FromComplex converts a builtin complex128.
func FromComplex(c complex128) Number {
	return New(real(c), imag(c))
}

// Expi returns the unit phasor cos θ + j·sin θ.
func Expi(theta float64) Number {
	sin, cos := math.Sincos(theta)
	return New(cos, sin)
}

func (n Number) Real() float64      { return n.re }
func (n Number) Imag() float64      { return n.im }
func (n Number) Magnitude() float64 { return n.mag }
func (n Number) Phase() float64     { return n.phase }

// Complex returns n as a builtin complex128.
func (n Number) Complex() complex128 {
	return complex(n.re, n.im)
}

// Add returns the componentwise sum.
func (n Number) Add(o Number) Number {
	return New(n.re+o.re, n.im+o.im)
}

// Multiply composes both operands in polar form: magnitudes multiply,
// angles add. Stored phases are measured from the imaginary axis, so each
// is turned back into a standard angle (π/2 - phase) before composing.
func (n Number) Multiply(o Number) Number {
	angle := (math.Pi/2 - n.phase) + (math.Pi/2 - o.phase)
	m := n.mag * o.mag
	sin, cos := math.Sincos(angle)
	return New(m*cos, m*sin)
}

func (n Number) String() string {
	return fmt.Sprintf("(%g, %g)", n.re, n.im)
}

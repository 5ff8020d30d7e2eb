// Package fourier computes the discrete Fourier transform of a sampled
// outline by direct summation, and evaluates the inverse sum frame by frame.
package fourier

import (
	"errors"
	"fmt"
	"math"

	"github.com/olivier-w/epicycles/internal/cplx"
)

// ErrEmptyInput is the sentinel every EmptyInputError unwraps to.
var ErrEmptyInput = errors.New("empty input")

// EmptyInputError reports a sequence with no elements reaching a stage that
// needs at least one.
type EmptyInputError struct {
	Stage string
}

func (e *EmptyInputError) Error() string {
	if e == nil || e.Stage == "" {
		return ErrEmptyInput.Error()
	}
	return fmt.Sprintf("%s: %s", e.Stage, ErrEmptyInput)
}

func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}

// Transform returns the N coefficients
//
//	c[k] = (1/N) Σ x[i]·exp(-j·2πki/N)
//
// of the N samples. The sum is evaluated directly in O(N²).
func Transform(samples []cplx.Number) ([]cplx.Number, error) {
	return TransformProgress(samples, nil)
}

// TransformProgress is Transform with a callback invoked after each
// coefficient is finished.
func TransformProgress(samples []cplx.Number, progress func(done, total int)) ([]cplx.Number, error) {
	n := len(samples)
	if n == 0 {
		return nil, &EmptyInputError{Stage: "transform"}
	}

	coeffs := make([]cplx.Number, n)
	for k := range n {
		var re, im float64
		for i, x := range samples {
			sin, cos := math.Sincos(-2 * math.Pi * float64(k) * float64(i) / float64(n))
			re += x.Real()*cos - x.Imag()*sin
			im += x.Real()*sin + x.Imag()*cos
		}
		coeffs[k] = cplx.New(re/float64(n), im/float64(n))
		if progress != nil {
			progress(k+1, n)
		}
	}
	return coeffs, nil
}

// Term returns coefficient c of frequency k rotated to frame t of n.
func Term(c cplx.Number, k, t, n int) cplx.Number {
	return c.Multiply(cplx.Expi(2 * math.Pi * float64(k) * float64(t) / float64(n)))
}

// Evaluate returns the inverse sum Σ c[k]·exp(j·2πkt/N) for frame t.
func Evaluate(coeffs []cplx.Number, t int) (cplx.Number, error) {
	if len(coeffs) == 0 {
		return cplx.Number{}, &EmptyInputError{Stage: "evaluate"}
	}
	var sum cplx.Number
	for k, c := range coeffs {
		sum = sum.Add(Term(c, k, t, len(coeffs)))
	}
	return sum, nil
}

// Inverse evaluates every frame 0..N-1, reproducing the original samples.
func Inverse(coeffs []cplx.Number) ([]cplx.Number, error) {
	if len(coeffs) == 0 {
		return nil, &EmptyInputError{Stage: "inverse"}
	}
	out := make([]cplx.Number, len(coeffs))
	for t := range coeffs {
		out[t], _ = Evaluate(coeffs, t)
	}
	return out, nil
}

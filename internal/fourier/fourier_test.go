package fourier

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/olivier-w/epicycles/internal/cplx"
	gfourier "gonum.org/v1/gonum/dsp/fourier"
)

func randomSamples(n int, seed int64) []cplx.Number {
	r := rand.New(rand.NewSource(seed))
	out := make([]cplx.Number, n)
	for i := range out {
		out[i] = cplx.New(r.Float64()*200-100, r.Float64()*200-100)
	}
	return out
}

func scaleOf(xs []cplx.Number) float64 {
	s := 1.0
	for _, x := range xs {
		s = math.Max(s, x.Magnitude())
	}
	return s
}

func assertClose(t *testing.T, label string, got cplx.Number, want complex128, tol float64) {
	t.Helper()
	if math.Abs(got.Real()-real(want)) > tol || math.Abs(got.Imag()-imag(want)) > tol {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
}

func TestTransformInverseRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 16, 57, 150} {
		samples := randomSamples(n, int64(n))
		coeffs, err := Transform(samples)
		if err != nil {
			t.Fatalf("n=%d: Transform: %v", n, err)
		}
		back, err := Inverse(coeffs)
		if err != nil {
			t.Fatalf("n=%d: Inverse: %v", n, err)
		}
		tol := 1e-9 * scaleOf(samples)
		for i := range samples {
			assertClose(t, "sample", back[i], samples[i].Complex(), tol)
		}
	}
}

func TestTransformConstantSequence(t *testing.T) {
	samples := make([]cplx.Number, 12)
	for i := range samples {
		samples[i] = cplx.New(5, 0)
	}
	coeffs, err := Transform(samples)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	assertClose(t, "c[0]", coeffs[0], complex(5, 0), 1e-12)
	for k := 1; k < len(coeffs); k++ {
		assertClose(t, "c[k]", coeffs[k], 0, 1e-12)
	}
}

func TestTransformEmptyInput(t *testing.T) {
	_, err := Transform(nil)
	var eerr *EmptyInputError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected *EmptyInputError, got %v", err)
	}
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatal("expected error to wrap ErrEmptyInput")
	}
	if _, err := Evaluate(nil, 0); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Evaluate: expected ErrEmptyInput, got %v", err)
	}
	if _, err := Inverse(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Inverse: expected ErrEmptyInput, got %v", err)
	}
}

func TestTransformMatchesGonum(t *testing.T) {
	const n = 40
	samples := randomSamples(n, 7)
	seq := make([]complex128, n)
	for i, s := range samples {
		seq[i] = s.Complex()
	}
	want := gfourier.NewCmplxFFT(n).Coefficients(nil, seq)

	got, err := Transform(samples)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	tol := 1e-9 * scaleOf(samples)
	for k := range got {
		assertClose(t, "coefficient", got[k], want[k]/complex(n, 0), tol)
	}
}

func TestTransformMatchesGoDSP(t *testing.T) {
	const n = 33
	samples := randomSamples(n, 11)
	seq := make([]complex128, n)
	for i, s := range samples {
		seq[i] = s.Complex()
	}
	want := fft.FFT(seq)

	got, err := Transform(samples)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	tol := 1e-9 * scaleOf(samples)
	for k := range got {
		assertClose(t, "coefficient", got[k], want[k]/complex(n, 0), tol)
	}
}

func TestTransformProgressReportsEachCoefficient(t *testing.T) {
	var calls []int
	_, err := TransformProgress(randomSamples(5, 1), func(done, total int) {
		if total != 5 {
			t.Fatalf("total = %d, want 5", total)
		}
		calls = append(calls, done)
	})
	if err != nil {
		t.Fatalf("TransformProgress: %v", err)
	}
	if len(calls) != 5 || calls[0] != 1 || calls[4] != 5 {
		t.Fatalf("unexpected progress calls: %v", calls)
	}
}

func TestTermRotatesByFrequency(t *testing.T) {
	// Frequency 1 at frame 1 of 4 is a quarter turn.
	got := Term(cplx.New(3, 0), 1, 1, 4)
	assertClose(t, "term", got, complex(0, 3), 1e-12)
	// Frequency 0 never rotates.
	got = Term(cplx.New(3, 1), 0, 3, 4)
	assertClose(t, "term", got, complex(3, 1), 1e-12)
}

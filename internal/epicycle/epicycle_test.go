package epicycle

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/sampler"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func squareCoeffs(t *testing.T, n int) []cplx.Number {
	t.Helper()
	samples, err := sampler.Sample("M 0 0 L 10 0 L 10 10 L 0 10 Z", n, sampler.Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	coeffs, err := fourier.Transform(samples)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	return coeffs
}

func onSquareBoundary(p cplx.Number) bool {
	const eps = 1e-6
	x, y := p.Real(), p.Imag()
	if x < -eps || x > 10+eps || y < -eps || y > 10+eps {
		return false
	}
	return math.Abs(x) < eps || math.Abs(x-10) < eps || math.Abs(y) < eps || math.Abs(y-10) < eps
}

func TestStaticTraceOfSquareLiesOnBoundary(t *testing.T) {
	trace, err := StaticTrace(squareCoeffs(t, 40))
	if err != nil {
		t.Fatalf("StaticTrace: %v", err)
	}
	if len(trace) != 40 {
		t.Fatalf("expected 40 points, got %d", len(trace))
	}
	for i, p := range trace {
		if !onSquareBoundary(p) {
			t.Fatalf("point %d = %v is off the square", i, p)
		}
	}
}

func TestLimitAddsMargin(t *testing.T) {
	got, err := Limit([]cplx.Number{cplx.New(3, 4), cplx.New(1, 0)})
	if err != nil {
		t.Fatalf("Limit: %v", err)
	}
	if got != 5+Margin {
		t.Fatalf("limit = %g, want %g", got, 5.0+Margin)
	}
}

func TestEmptyCoefficients(t *testing.T) {
	if _, err := NewAnimation(nil); !errors.Is(err, fourier.ErrEmptyInput) {
		t.Fatalf("NewAnimation: expected ErrEmptyInput, got %v", err)
	}
	if _, err := StaticTrace(nil); !errors.Is(err, fourier.ErrEmptyInput) {
		t.Fatalf("StaticTrace: expected ErrEmptyInput, got %v", err)
	}
	s := &recordingSurface{}
	err := Run(context.Background(), nil, Options{Animated: true}, s, NoGate{}, nil)
	var eerr *fourier.EmptyInputError
	if !errors.As(err, &eerr) || eerr.Stage != "render" {
		t.Fatalf("Run: expected render EmptyInputError, got %v", err)
	}
	if len(s.frames) != 0 || s.traces != 0 {
		t.Fatal("nothing should be drawn for empty input")
	}
}

func TestAnimationStateMachine(t *testing.T) {
	anim, err := NewAnimation(squareCoeffs(t, 3))
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	if anim.State() != AwaitingStart {
		t.Fatalf("initial state = %v", anim.State())
	}
	if _, err := anim.Step(); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("Step before Start: expected ErrNotPlaying, got %v", err)
	}
	if err := anim.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if anim.State() != Playing || anim.Frame() != 0 {
		t.Fatalf("after Start: state=%v frame=%d", anim.State(), anim.Frame())
	}
	for i := range 3 {
		f, err := anim.Step()
		if err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		if f.Index != i {
			t.Fatalf("frame index = %d, want %d", f.Index, i)
		}
	}
	if anim.State() != AwaitingClose {
		t.Fatalf("after last frame: state = %v", anim.State())
	}
	if _, err := anim.Step(); !errors.Is(err, ErrNotPlaying) {
		t.Fatalf("Step after last frame: expected ErrNotPlaying, got %v", err)
	}
	anim.Close()
	if anim.State() != Closed {
		t.Fatalf("after Close: state = %v", anim.State())
	}
}

func TestCloseFromAnyState(t *testing.T) {
	anim, err := NewAnimation([]cplx.Number{cplx.New(1, 1)})
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	anim.Close()
	if anim.State() != Closed {
		t.Fatalf("state = %v", anim.State())
	}
	if err := anim.Start(); err != nil || anim.State() != Closed {
		t.Fatalf("Start after Close must not reopen: state=%v err=%v", anim.State(), err)
	}
}

func TestStepReplacesCirclesAndAccumulatesTrace(t *testing.T) {
	coeffs := squareCoeffs(t, 8)
	anim, _ := NewAnimation(coeffs)
	_ = anim.Start()

	static, _ := StaticTrace(coeffs)
	for i := range 8 {
		f, err := anim.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if len(f.Circles) != len(coeffs) || len(f.Vectors) != len(coeffs) {
			t.Fatalf("frame %d: %d circles, %d vectors", i, len(f.Circles), len(f.Vectors))
		}
		if len(f.Trace) != i+1 {
			t.Fatalf("frame %d: trace has %d points", i, len(f.Trace))
		}
		if f.Circles[0].Center != (cplx.Number{}) {
			t.Fatalf("frame %d: first circle must be centered on the origin", i)
		}
		for k := 1; k < len(f.Circles); k++ {
			if f.Circles[k].Center != f.Vectors[k-1].To {
				t.Fatalf("frame %d: circle %d is not centered on the previous tip", i, k)
			}
			if f.Circles[k].Radius != coeffs[k].Magnitude() {
				t.Fatalf("frame %d: circle %d radius mismatch", i, k)
			}
		}
		if d := f.Tip.Add(cplx.New(-static[i].Real(), -static[i].Imag())).Magnitude(); d > 1e-9 {
			t.Fatalf("frame %d: tip %v differs from static trace %v", i, f.Tip, static[i])
		}
	}
}

type recordingSurface struct {
	frames []int
	traces int
	limit  float64
}

func (s *recordingSurface) DrawFrame(f Frame, limit float64) error {
	s.frames = append(s.frames, f.Index)
	s.limit = limit
	return nil
}

func (s *recordingSurface) DrawTrace(trace []cplx.Number, limit float64) error {
	s.traces++
	s.limit = limit
	return nil
}

type countingGate struct {
	starts, closes int
	framesAtStart  int
	s              *recordingSurface
}

func (g *countingGate) AwaitStart(ctx context.Context) error {
	g.starts++
	g.framesAtStart = len(g.s.frames)
	return nil
}

func (g *countingGate) AwaitClose(ctx context.Context) error {
	g.closes++
	return nil
}

func TestRunAnimatedDrawsEveryFrame(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := &recordingSurface{}
	g := &countingGate{s: s}

	coeffs := squareCoeffs(t, 5)
	if err := Run(context.Background(), coeffs, Options{Animated: true}, s, g, zap.New(core)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(s.frames) != 5 {
		t.Fatalf("drew %d frames, want 5", len(s.frames))
	}
	if g.starts != 1 || g.closes != 1 {
		t.Fatalf("gate calls: start=%d close=%d", g.starts, g.closes)
	}
	if g.framesAtStart != 1 {
		t.Fatalf("expected frame 0 on screen before start, got %d frames", g.framesAtStart)
	}
	if got := logs.FilterMessage("frame").Len(); got != 5 {
		t.Fatalf("logged %d frames, want 5", got)
	}
	if logs.FilterMessage("animation finished").Len() != 1 {
		t.Fatal("expected a finished log entry")
	}
}

func TestRunStaticDrawsTraceOnce(t *testing.T) {
	s := &recordingSurface{}
	coeffs := squareCoeffs(t, 5)
	if err := Run(context.Background(), coeffs, Options{}, s, nil, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.traces != 1 || len(s.frames) != 0 {
		t.Fatalf("traces=%d frames=%d", s.traces, len(s.frames))
	}
	want, _ := Limit(coeffs)
	if s.limit != want {
		t.Fatalf("limit = %g, want %g", s.limit, want)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &recordingSurface{}
	err := Run(ctx, squareCoeffs(t, 5), Options{Animated: true, Pause: time.Hour}, s, NoGate{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(s.frames) > 1 {
		t.Fatalf("drew %d frames after cancel", len(s.frames))
	}
}

type failingSurface struct{ recordingSurface }

var errSurface = errors.New("surface gone")

func (failingSurface) DrawFrame(Frame, float64) error { return errSurface }

func TestRunPropagatesSurfaceErrors(t *testing.T) {
	err := Run(context.Background(), squareCoeffs(t, 3), Options{Animated: true}, &failingSurface{}, NoGate{}, nil)
	if !errors.Is(err, errSurface) {
		t.Fatalf("expected surface error, got %v", err)
	}
}

package epicycle

import (
	"context"
	"fmt"
	"time"

	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/fourier"
	"go.uber.org/zap"
)

// Surface draws frames produced by Run.
type Surface interface {
	DrawFrame(f Frame, limit float64) error
	DrawTrace(trace []cplx.Number, limit float64) error
}

// Gate blocks until the user asks to start or to close the display.
type Gate interface {
	AwaitStart(ctx context.Context) error
	AwaitClose(ctx context.Context) error
}

// NoGate never waits.
type NoGate struct{}

func (NoGate) AwaitStart(ctx context.Context) error { return ctx.Err() }
func (NoGate) AwaitClose(ctx context.Context) error { return ctx.Err() }

// Options selects animated or static drawing.
type Options struct {
	Animated bool
	// Pause is the delay after each animated frame.
	Pause time.Duration
}

// Run draws coeffs on s. Animated runs wait on g before the first frame and
// after the last one; static runs draw the complete trace once.
func Run(ctx context.Context, coeffs []cplx.Number, opts Options, s Surface, g Gate, logger *zap.Logger) error {
	if len(coeffs) == 0 {
		return &fourier.EmptyInputError{Stage: "render"}
	}
	if g == nil {
		g = NoGate{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if !opts.Animated {
		limit, err := Limit(coeffs)
		if err != nil {
			return err
		}
		trace, err := StaticTrace(coeffs)
		if err != nil {
			return err
		}
		logger.Info("drawing static trace", zap.Int("points", len(trace)), zap.Float64("limit", limit))
		if err := s.DrawTrace(trace, limit); err != nil {
			return fmt.Errorf("drawing trace: %w", err)
		}
		return nil
	}

	anim, err := NewAnimation(coeffs)
	if err != nil {
		return err
	}
	defer anim.Close()

	// Frame 0 is on screen while waiting for the start signal.
	if err := anim.Start(); err != nil {
		return err
	}
	if err := step(anim, s, logger); err != nil {
		return err
	}
	if err := g.AwaitStart(ctx); err != nil {
		return err
	}

	for anim.State() == Playing {
		if err := sleep(ctx, opts.Pause); err != nil {
			return err
		}
		if err := step(anim, s, logger); err != nil {
			return err
		}
	}

	logger.Info("animation finished", zap.Int("frames", anim.Len()))
	return g.AwaitClose(ctx)
}

func step(a *Animation, s Surface, logger *zap.Logger) error {
	f, err := a.Step()
	if err != nil {
		return err
	}
	logger.Debug("frame", zap.Int("t", f.Index), zap.Stringer("tip", f.Tip))
	if err := s.DrawFrame(f, a.Limit()); err != nil {
		return fmt.Errorf("drawing frame %d: %w", f.Index, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

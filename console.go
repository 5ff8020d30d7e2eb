package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/olivier-w/epicycles/internal/config"
	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/util"
	"go.uber.org/zap"
)

// consoleGate waits for Enter on the input before the first frame and before
// closing.
type consoleGate struct {
	lines <-chan struct{}
	out   io.Writer
}

func newConsoleGate(in io.Reader, out io.Writer) *consoleGate {
	lines := make(chan struct{})
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- struct{}{}
		}
	}()
	return &consoleGate{lines: lines, out: out}
}

func (g *consoleGate) AwaitStart(ctx context.Context) error {
	return g.await(ctx, "Press Enter to start show...")
}

func (g *consoleGate) AwaitClose(ctx context.Context) error {
	return g.await(ctx, "Press Enter to close...")
}

// await returns on Enter, at end of input or when ctx is done.
func (g *consoleGate) await(ctx context.Context, prompt string) error {
	fmt.Fprintln(g.out, prompt)
	select {
	case <-g.lines:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// consoleSurface prints the tip of every frame as "t: (x, y)".
type consoleSurface struct {
	out io.Writer
}

func (s consoleSurface) DrawFrame(f epicycle.Frame, _ float64) error {
	_, err := fmt.Fprintln(s.out, util.FormatPoint(f.Index, f.Tip))
	return err
}

func (s consoleSurface) DrawTrace(trace []cplx.Number, _ float64) error {
	for t, p := range trace {
		if _, err := fmt.Fprintln(s.out, util.FormatPoint(t, p)); err != nil {
			return err
		}
	}
	return nil
}

func runConsole(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, logger *zap.Logger) error {
	res, _, err := loadInput(ctx, cfg.Input, cfg, logger, nil)
	if err != nil {
		return err
	}
	if cfg.Play {
		sound, err := openCoeffSound(res.Coeffs)
		if err != nil {
			logger.Warn("opening audio", zap.Error(err))
		} else {
			defer sound.Close()
		}
	}

	opts := epicycle.Options{Animated: cfg.Animate, Pause: cfg.FrameInterval()}
	return epicycle.Run(ctx, res.Coeffs, opts, consoleSurface{out: out}, newConsoleGate(in, out), logger)
}

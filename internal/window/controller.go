// Package window shows the epicycle animation in a desktop window.
package window

import (
	"time"

	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"go.uber.org/zap"
)

// TPS is the window's update rate.
const TPS = 60

// Options configures a window run.
type Options struct {
	Title    string
	Animated bool
	Interval time.Duration
	Size     int
	Logger   *zap.Logger
}

// controller holds the animation state advanced by the window's update loop.
type controller struct {
	anim   *epicycle.Animation
	frame  epicycle.Frame
	shown  bool
	trace  []cplx.Number
	limit  float64
	every  int
	ticks  int
	done   bool
	logger *zap.Logger
}

func newController(coeffs []cplx.Number, opts Options) (*controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &controller{
		every:  max(int(opts.Interval*TPS/time.Second), 1),
		logger: logger,
	}
	if !opts.Animated {
		limit, err := epicycle.Limit(coeffs)
		if err != nil {
			return nil, err
		}
		trace, err := epicycle.StaticTrace(coeffs)
		if err != nil {
			return nil, err
		}
		c.trace, c.limit = trace, limit
		return c, nil
	}

	anim, err := epicycle.NewAnimation(coeffs)
	if err != nil {
		return nil, err
	}
	c.anim, c.limit = anim, anim.Limit()
	return c, nil
}

// state reports the animation state; a static drawing only awaits close.
func (c *controller) state() epicycle.State {
	switch {
	case c.done:
		return epicycle.Closed
	case c.anim == nil:
		return epicycle.AwaitingClose
	default:
		return c.anim.State()
	}
}

// confirm handles the start/close key.
func (c *controller) confirm() {
	switch c.state() {
	case epicycle.AwaitingStart:
		_ = c.anim.Start()
		c.ticks = 0
		c.advance()
	case epicycle.AwaitingClose:
		c.close()
	}
}

func (c *controller) close() {
	if c.anim != nil {
		c.anim.Close()
	}
	c.done = true
}

// tick runs once per update and steps a frame every c.every ticks.
func (c *controller) tick() {
	if c.state() != epicycle.Playing {
		return
	}
	c.ticks++
	if c.ticks < c.every {
		return
	}
	c.ticks = 0
	c.advance()
}

func (c *controller) advance() {
	f, err := c.anim.Step()
	if err != nil {
		return
	}
	c.frame, c.shown = f, true
	c.logger.Debug("frame", zap.Int("t", f.Index), zap.Stringer("tip", f.Tip))
	if c.anim.State() == epicycle.AwaitingClose {
		c.logger.Info("animation finished", zap.Int("frames", c.anim.Len()))
	}
}

func (c *controller) prompt() string {
	switch c.state() {
	case epicycle.AwaitingStart:
		return "Press space to start show..."
	case epicycle.AwaitingClose:
		return "Press space to close..."
	}
	return ""
}

// Package config reads the command line into a Config.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/olivier-w/epicycles/internal/sampler"
)

// Front ends selectable with -frontend.
const (
	FrontendTUI     = "tui"
	FrontendWindow  = "window"
	FrontendConsole = "console"
)

const (
	DefaultSamples = 150
	DefaultFPS     = 30
	DefaultSize    = 800
)

type Config struct {
	// Input is the SVG file. Empty opens the file browser.
	Input string

	Samples  int
	MirrorX  bool
	MirrorY  bool
	Animate  bool
	Frontend string
	FPS      int

	PNG  string
	GIF  string
	WAV  string
	Play bool
	Size int

	LogFile  string
	LogLevel string
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Samples:  DefaultSamples,
		MirrorX:  true,
		Animate:  true,
		Frontend: FrontendTUI,
		FPS:      DefaultFPS,
		Size:     DefaultSize,
		LogLevel: "info",
	}
}

func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("epicycles", flag.ContinueOnError)
	fs.IntVar(&cfg.Samples, "n", cfg.Samples, "number of points sampled along the path")
	fs.BoolVar(&cfg.MirrorX, "mirror-x", cfg.MirrorX, "mirror about the horizontal axis (SVG y points down)")
	fs.BoolVar(&cfg.MirrorY, "mirror-y", cfg.MirrorY, "mirror about the vertical axis")
	fs.BoolVar(&cfg.Animate, "animate", cfg.Animate, "animate the epicycles instead of drawing the finished trace")
	fs.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "display: tui, window or console")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "animation frames per second")
	fs.StringVar(&cfg.PNG, "png", cfg.PNG, "write the finished trace to a PNG file")
	fs.StringVar(&cfg.GIF, "gif", cfg.GIF, "write the animation to a GIF file")
	fs.StringVar(&cfg.WAV, "wav", cfg.WAV, "write the trace as XY oscilloscope audio to a WAV file")
	fs.BoolVar(&cfg.Play, "play", cfg.Play, "play the trace as XY oscilloscope audio while displaying")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "image size in pixels for -png and -gif")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "append JSON logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	return fs
}

// Parse reads flags and the optional SVG argument from args, which exclude
// the program name. Parse errors, including -h, are returned unprinted.
func Parse(args []string) (Config, error) {
	cfg := Default()
	fs := newFlagSet(&cfg)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Input = fs.Arg(0)
	default:
		return Config{}, fmt.Errorf("expected at most one SVG file, got %d arguments", fs.NArg())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Usage writes the flag help to w.
func Usage(w io.Writer) {
	cfg := Default()
	fs := newFlagSet(&cfg)
	fs.SetOutput(w)
	fmt.Fprintln(w, "Usage: epicycles [flags] [file.svg]")
	fs.PrintDefaults()
}

// Validate reports the first parameter outside its domain.
func (c Config) Validate() error {
	switch {
	case c.Samples <= 0:
		return invalid("n", c.Samples, "must be positive")
	case c.FPS <= 0:
		return invalid("fps", c.FPS, "must be positive")
	case c.Size < 16:
		return invalid("size", c.Size, "must be at least 16 pixels")
	}
	switch c.Frontend {
	case FrontendTUI, FrontendWindow, FrontendConsole:
	default:
		return invalid("frontend", c.Frontend, "must be tui, window or console")
	}
	// Only the TUI has a file browser.
	if c.Frontend != FrontendTUI && c.Input == "" {
		return invalid("frontend", c.Frontend, "needs an SVG file argument")
	}
	if c.Exporting() && c.Input == "" {
		return invalid("input", c.Input, "export flags need an SVG file argument")
	}
	return nil
}

// Exporting reports whether any file output was requested. Exports run
// without a front end.
func (c Config) Exporting() bool {
	return c.PNG != "" || c.GIF != "" || c.WAV != ""
}

func invalid(name string, value any, reason string) error {
	return &sampler.InvalidParameterError{Name: name, Value: value, Reason: reason}
}

// SamplerOptions returns the mirroring options for the sampler.
func (c Config) SamplerOptions() sampler.Options {
	return sampler.Options{MirrorHorizontal: c.MirrorX, MirrorVertical: c.MirrorY}
}

// FrameInterval is the delay between animation frames.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

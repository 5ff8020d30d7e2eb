package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/epicycles/internal/config"
	"github.com/olivier-w/epicycles/internal/logging"
	"github.com/olivier-w/epicycles/internal/pipeline"
	"github.com/olivier-w/epicycles/internal/window"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		config.Usage(os.Stdout)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		config.Usage(os.Stderr)
		os.Exit(2)
	}

	logger, cleanup, err := logging.New(
		logging.WithLevel(cfg.LogLevel),
		logging.WithDevelopment(cfg.LogLevel == "debug"),
		logging.WithFile(cfg.LogFile),
		// Terminal UIs own the screen; only the console front end logs to stderr.
		logging.WithStderr(cfg.Frontend == config.FrontendConsole && !cfg.Exporting()),
		logging.WithFields(map[string]any{"frontend": cfg.Frontend}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, logger)
	stop()
	cleanup()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if cfg.Exporting() {
		return runExports(ctx, cfg, logger)
	}

	switch cfg.Frontend {
	case config.FrontendConsole:
		return runConsole(ctx, cfg, os.Stdin, os.Stdout, logger)
	case config.FrontendWindow:
		return runWindow(ctx, cfg, logger)
	}
	return runTUI(cfg, logger)
}

func params(cfg config.Config) pipeline.Params {
	return pipeline.Params{Samples: cfg.Samples, Options: cfg.SamplerOptions()}
}

func runTUI(cfg config.Config, logger *zap.Logger) error {
	program := tea.NewProgram(newStartupModel(cfg, logger), tea.WithAltScreen())
	final, err := program.Run()
	if sm, ok := final.(startupModel); ok && sm.fatal != nil {
		return sm.fatal
	}
	return err
}

func runWindow(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
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
	return window.Run(res.Coeffs, window.Options{
		Title:    res.Name,
		Animated: cfg.Animate,
		Interval: cfg.FrameInterval(),
		Size:     cfg.Size,
		Logger:   logger,
	})
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/olivier-w/epicycles/internal/config"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/export"
	"github.com/olivier-w/epicycles/internal/pipeline"
	"github.com/olivier-w/epicycles/internal/scope"
	"go.uber.org/zap"
)

// wavSeconds is the length of an exported scope recording.
const wavSeconds = 5

// runExports writes every requested file and returns without a front end.
func runExports(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	res, _, err := loadInput(ctx, cfg.Input, cfg, logger, nil)
	if err != nil {
		return err
	}
	limit, err := epicycle.Limit(res.Coeffs)
	if err != nil {
		return err
	}
	trace, err := epicycle.StaticTrace(res.Coeffs)
	if err != nil {
		return err
	}

	if cfg.PNG != "" {
		if err := export.WritePNG(cfg.PNG, trace, limit, cfg.Size); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.PNG, err)
		}
		logger.Info("wrote png", zap.String("path", cfg.PNG), zap.Int("size", cfg.Size))
	}

	if cfg.GIF != "" {
		if err := writeGIF(ctx, cfg, res, logger); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.GIF, err)
		}
	}

	if cfg.WAV != "" {
		samples, err := scope.Encode(trace, limit, scope.SampleRate, wavSeconds*scope.LoopRate)
		if err != nil {
			return err
		}
		if err := scope.WriteWAV(cfg.WAV, samples, scope.SampleRate); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.WAV, err)
		}
		logger.Info("wrote wav", zap.String("path", cfg.WAV), zap.Int("seconds", wavSeconds))
	}
	return nil
}

func writeGIF(ctx context.Context, cfg config.Config, res pipeline.Result, logger *zap.Logger) (err error) {
	s := export.NewGIFSurface(cfg.Size, cfg.FrameInterval())
	// Frames are recorded as fast as they render; the delay lives in the file.
	opts := epicycle.Options{Animated: cfg.Animate}
	if err := epicycle.Run(ctx, res.Coeffs, opts, s, epicycle.NoGate{}, logger); err != nil {
		return err
	}

	f, err := os.Create(cfg.GIF)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := s.WriteGIF(f); err != nil {
		return err
	}
	logger.Info("wrote gif", zap.String("path", cfg.GIF), zap.Int("frames", s.Len()))
	return nil
}

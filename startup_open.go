package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olivier-w/epicycles/internal/config"
	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/downloader"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/gallery"
	"github.com/olivier-w/epicycles/internal/pipeline"
	"github.com/olivier-w/epicycles/internal/scope"
	"github.com/olivier-w/epicycles/internal/ui"
	"go.uber.org/zap"
)

// checkOutline rejects paths that are not SVG files.
func checkOutline(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if ext := filepath.Ext(path); !gallery.IsOutlineExt(ext) {
		return fmt.Errorf("unsupported format %q (expected .svg)", ext)
	}
	return nil
}

// loadInput computes the outline of a local file or URL. Local files come
// with their sibling SVG files as a gallery; URLs form a gallery of one.
func loadInput(ctx context.Context, input string, cfg config.Config, logger *zap.Logger, progress func(done, total int)) (pipeline.Result, *gallery.Gallery, error) {
	if downloader.IsURL(input) {
		path, cleanup, err := downloader.Download(ctx, input)
		if err != nil {
			return pipeline.Result{}, nil, err
		}
		defer cleanup()
		res, err := pipeline.Load(ctx, path, params(cfg), logger, progress)
		if err != nil {
			return pipeline.Result{}, nil, err
		}
		res.Name = downloader.Title(input)
		g := gallery.New([]gallery.Entry{{Title: res.Name, Path: input}})
		return res, g, nil
	}

	if err := checkOutline(input); err != nil {
		return pipeline.Result{}, nil, err
	}
	g, err := gallery.FromFile(input)
	if err != nil {
		return pipeline.Result{}, nil, err
	}
	res, err := pipeline.Load(ctx, input, params(cfg), logger, progress)
	if err != nil {
		return pipeline.Result{}, nil, err
	}
	return res, g, nil
}

// buildDisplayModel computes the outline at path and wraps it in the
// epicycle display.
func buildDisplayModel(ctx context.Context, path string, cfg config.Config, logger *zap.Logger, progress func(done, total int)) (ui.Model, error) {
	res, g, err := loadInput(ctx, path, cfg, logger, progress)
	if err != nil {
		return ui.Model{}, err
	}

	opts := ui.Options{
		Animated: cfg.Animate,
		Interval: cfg.FrameInterval(),
		Params:   params(cfg),
		Gallery:  g,
		Logger:   logger,
	}
	if cfg.Play {
		opts.OpenSound = openSound
	}
	return ui.New(res, opts)
}

func openSound(trace []cplx.Number, limit float64) (ui.Sound, error) {
	p, err := scope.NewPlayer(trace, limit)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// openCoeffSound plays the outline reconstructed from coeffs.
func openCoeffSound(coeffs []cplx.Number) (ui.Sound, error) {
	limit, err := epicycle.Limit(coeffs)
	if err != nil {
		return nil, err
	}
	trace, err := epicycle.StaticTrace(coeffs)
	if err != nil {
		return nil, err
	}
	return openSound(trace, limit)
}

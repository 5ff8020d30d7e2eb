// Package pipeline runs an SVG outline through sampling and the Fourier
// transform.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/document"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/sampler"
	"github.com/olivier-w/epicycles/internal/svgpath"
	"go.uber.org/zap"
)

type Params struct {
	Samples int
	Options sampler.Options
}

// DefaultParams samples 150 points mirrored about the horizontal axis.
func DefaultParams() Params {
	return Params{Samples: 150, Options: sampler.DefaultOptions()}
}

// Result holds the outputs of one run. The slices are shared with every
// consumer and must not be modified.
type Result struct {
	Name     string
	Samples  []cplx.Number
	Coeffs   []cplx.Number
	Subpaths int
}

// Load reads the first path of the SVG file at path and transforms it.
func Load(ctx context.Context, path string, params Params, logger *zap.Logger, progress func(done, total int)) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d, err := document.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	res, err := FromPathData(d, params, logger, progress)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	res.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return res, nil
}

// FromPathData samples and transforms raw path data.
func FromPathData(d string, params Params, logger *zap.Logger, progress func(done, total int)) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	p, err := svgpath.Parse(d)
	if err != nil {
		return Result{}, err
	}
	if p.Subpaths() > 1 {
		logger.Warn("only the first subpath is used", zap.Int("subpaths", p.Subpaths()))
	}
	logger.Info("parsed path",
		zap.Int("segments", len(p.Segments())),
		zap.Float64("length", p.Length()),
	)

	samples, err := sampler.SamplePath(p, params.Samples, params.Options)
	if err != nil {
		return Result{}, err
	}
	logger.Info("sampled path",
		zap.Int("samples", len(samples)),
		zap.Bool("mirror_horizontal", params.Options.MirrorHorizontal),
		zap.Bool("mirror_vertical", params.Options.MirrorVertical),
	)

	coeffs, err := fourier.TransformProgress(samples, progress)
	if err != nil {
		return Result{}, err
	}
	logger.Info("transformed samples", zap.Int("coefficients", len(coeffs)))

	return Result{
		Samples:  samples,
		Coeffs:   coeffs,
		Subpaths: p.Subpaths(),
	}, nil
}

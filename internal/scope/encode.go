// Package scope turns an outline into stereo audio that draws it on an XY
// oscilloscope: left is the real part, right the imaginary part.
package scope

import (
	"errors"
	"math"

	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/fourier"
)

const (
	SampleRate   = 44100
	channelCount = 2
	bitDepth     = 2 // 16-bit = 2 bytes

	// LoopRate is how many times per second the outline is traced.
	LoopRate = 50
	// amplitude keeps full scale slightly below clipping.
	amplitude = 0.9 * math.MaxInt16
)

// ErrInvalidRate is returned for a sample rate too low to trace the outline
// at LoopRate.
var ErrInvalidRate = errors.New("sample rate too low")

// Encode returns cycles passes over trace as interleaved stereo 16-bit
// samples. Each pass lasts 1/LoopRate seconds and is linearly interpolated
// between trace points. The outline is centered on its mean; limit is the
// distance mapped to full scale, or the farthest point when limit <= 0.
func Encode(trace []cplx.Number, limit float64, sampleRate, cycles int) ([]int16, error) {
	if len(trace) == 0 {
		return nil, &fourier.EmptyInputError{Stage: "encode"}
	}
	frames := sampleRate / LoopRate
	if frames < 2 {
		return nil, ErrInvalidRate
	}
	cycles = max(cycles, 1)

	var cx, cy float64
	for _, p := range trace {
		cx += p.Real()
		cy += p.Imag()
	}
	cx /= float64(len(trace))
	cy /= float64(len(trace))

	if limit <= 0 {
		for _, p := range trace {
			limit = math.Max(limit, math.Hypot(p.Real()-cx, p.Imag()-cy))
		}
	}
	scale := 0.0
	if limit > 0 {
		scale = amplitude / limit
	}

	cycle := make([]int16, frames*channelCount)
	n := len(trace)
	for i := range frames {
		pos := float64(i) * float64(n) / float64(frames)
		j := int(pos)
		t := pos - float64(j)
		a := trace[j%n]
		b := trace[(j+1)%n]
		x := a.Real() + (b.Real()-a.Real())*t - cx
		y := a.Imag() + (b.Imag()-a.Imag())*t - cy
		cycle[2*i] = clamp16(x * scale)
		cycle[2*i+1] = clamp16(y * scale)
	}

	out := make([]int16, 0, len(cycle)*cycles)
	for range cycles {
		out = append(out, cycle...)
	}
	return out, nil
}

func clamp16(v float64) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(math.Round(v))
	}
}

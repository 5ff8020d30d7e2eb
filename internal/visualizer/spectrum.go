package visualizer

import (
	"github.com/guptarohit/asciigraph"
	"github.com/olivier-w/epicycles/internal/cplx"
)

// spectrumLabelWidth is room for asciigraph's y axis labels.
const spectrumLabelWidth = 10

// SignedMagnitudes returns |c_k| ordered by signed frequency, from -(N-1)/2
// up to N/2, so the constant term sits in the middle.
func SignedMagnitudes(coeffs []cplx.Number) []float64 {
	n := len(coeffs)
	if n == 0 {
		return nil
	}
	out := make([]float64, 0, n)
	neg := n - n/2 - 1
	for k := n - neg; k < n; k++ {
		out = append(out, coeffs[k].Magnitude())
	}
	for k := 0; k <= n/2; k++ {
		out = append(out, coeffs[k].Magnitude())
	}
	return out
}

// Spectrum plots coefficient magnitudes by signed frequency as a line chart
// of the given cell size.
func Spectrum(coeffs []cplx.Number, width, height int) string {
	if len(coeffs) == 0 || width <= spectrumLabelWidth || height < 2 {
		return ""
	}
	series := SignedMagnitudes(coeffs)
	if len(series) == 1 {
		series = append(series, series[0])
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height-1),
		asciigraph.Width(width-spectrumLabelWidth),
		asciigraph.Caption("|c_k| by frequency"),
	)
}

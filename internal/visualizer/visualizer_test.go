package visualizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/epicycle"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, LayerTrace)
	c.Set(1, 3, LayerTrace)
	c.Set(99, 99, LayerTrace)

	got := stripANSI(c.String())
	want := string(rune(0x2800|1<<0|1<<7)) + string(rune(0x2800))
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCanvasKeepsHighestLayer(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, LayerTip)
	c.Set(0, 0, LayerCircle)
	if c.At(0, 0) != LayerTip {
		t.Fatalf("layer = %v, want tip", c.At(0, 0))
	}
	if c.At(-1, 0) != LayerNone {
		t.Fatal("off-canvas dot must read as empty")
	}
}

func TestCanvasLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Line(1, 1, 17, 13, LayerVector)
	if c.At(1, 1) != LayerVector || c.At(17, 13) != LayerVector {
		t.Fatal("line must include both endpoints")
	}
	count := 0
	for _, l := range c.dots {
		if l != LayerNone {
			count++
		}
	}
	// A Bresenham line sets one dot per step along its major axis.
	if count != 17 {
		t.Fatalf("line set %d dots, want 17", count)
	}
}

func TestCanvasCircleIsSymmetric(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Circle(10, 10, 6, LayerCircle)
	for _, p := range [][2]int{{16, 10}, {4, 10}, {10, 16}, {10, 4}} {
		if c.At(p[0], p[1]) != LayerCircle {
			t.Fatalf("expected dot at %v", p)
		}
	}
	if c.At(10, 10) != LayerNone {
		t.Fatal("center must stay empty")
	}
}

func TestViewportMapsLimitToEdges(t *testing.T) {
	v := LimitViewport(21, 21, 10)
	cases := map[[2]float64][2]int{
		{0, 0}:   {10, 10},
		{10, 0}:  {20, 10},
		{-10, 0}: {0, 10},
		{0, 10}:  {10, 0},
		{0, -10}: {10, 20},
	}
	for in, want := range cases {
		x, y := v.Point(cplx.New(in[0], in[1]))
		if diff := cmp.Diff(want, [2]int{x, y}); diff != "" {
			t.Fatalf("Point(%v) mismatch:\n%s", in, diff)
		}
	}
	if got := v.Length(5); got != 5 {
		t.Fatalf("Length(5) = %d", got)
	}
}

func TestFitViewportFramesPoints(t *testing.T) {
	pts := []cplx.Number{cplx.New(100, 100), cplx.New(110, 120)}
	v := FitViewport(41, 41, pts)
	for _, p := range pts {
		x, y := v.Point(p)
		if x < 0 || x > 40 || y < 0 || y > 40 {
			t.Fatalf("point %v mapped off the grid to (%d, %d)", p, x, y)
		}
	}
}

func TestDrawFrameSize(t *testing.T) {
	coeffs := []cplx.Number{cplx.New(0, 0), cplx.New(5, 0)}
	anim, err := epicycle.NewAnimation(coeffs)
	if err != nil {
		t.Fatalf("NewAnimation: %v", err)
	}
	_ = anim.Start()
	f, err := anim.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	c := NewCanvas(12, 6)
	w, h := c.Size()
	DrawFrame(c, LimitViewport(w, h, 6), f)
	out := stripANSI(c.String())
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 12 {
			t.Fatalf("row %d has %d cells", i, n)
		}
	}
	if strings.Trim(out, "⠀\n") == "" {
		t.Fatal("frame rendered empty")
	}
}

func TestDrawTraceOutline(t *testing.T) {
	trace := []cplx.Number{cplx.New(-5, -5), cplx.New(5, -5), cplx.New(5, 5), cplx.New(-5, 5), cplx.New(-5, -5)}
	c := NewCanvas(20, 10)
	w, h := c.Size()
	v := LimitViewport(w, h, 6)
	DrawTrace(c, v, trace)
	for _, p := range trace {
		x, y := v.Point(p)
		if c.At(x, y) != LayerTrace {
			t.Fatalf("corner %v not drawn", p)
		}
	}
	if c.String() == "" {
		t.Fatal("empty render")
	}
}

func TestSignedMagnitudesCentersConstantTerm(t *testing.T) {
	coeffs := []cplx.Number{cplx.New(7, 0), cplx.New(1, 0), cplx.New(2, 0), cplx.New(3, 0), cplx.New(4, 0)}
	got := SignedMagnitudes(coeffs)
	want := []float64{3, 4, 7, 1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if SignedMagnitudes(nil) != nil {
		t.Fatal("expected nil for no coefficients")
	}
}

func TestSpectrumPlot(t *testing.T) {
	coeffs := []cplx.Number{cplx.New(7, 0), cplx.New(1, 0), cplx.New(2, 0)}
	out := Spectrum(coeffs, 40, 6)
	if !strings.Contains(out, "|c_k| by frequency") {
		t.Fatalf("missing caption:\n%s", out)
	}
	if Spectrum(nil, 40, 6) != "" || Spectrum(coeffs, 5, 6) != "" {
		t.Fatal("expected empty output for degenerate input")
	}
}

func TestLayerRGBA(t *testing.T) {
	r, g, b, a := LayerTip.RGBA()
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Fatalf("tip color = %d,%d,%d,%d", r, g, b, a)
	}
}

func TestDetectColorProfile(t *testing.T) {
	for _, tc := range []struct {
		env  map[string]string
		want colorProfile
	}{
		{map[string]string{"NO_COLOR": "", "COLORTERM": "truecolor"}, colorNone},
		{map[string]string{"COLORTERM": "24bit", "TERM": "xterm"}, colorTrueColor},
		{map[string]string{"TERM": "xterm-256color"}, colorANSI256},
		{map[string]string{"TERM": "dumb"}, colorNone},
		{map[string]string{"TERM": "xterm"}, colorANSI16},
	} {
		getenv := func(k string) (string, bool) {
			v, ok := tc.env[k]
			return v, ok
		}
		if got := detectColorProfile(getenv); got != tc.want {
			t.Fatalf("env %v: profile = %d, want %d", tc.env, got, tc.want)
		}
	}
}

func TestANSIStateSkipsRepeatedLayers(t *testing.T) {
	seqs := [len(layerPalette)]string{}
	for l := range seqs {
		seqs[l] = layerSequence(colorANSI16, Layer(l))
	}
	s := ansiState{profile: colorANSI16, seqs: &seqs}
	var sb strings.Builder
	s.set(&sb, LayerTrace)
	s.set(&sb, LayerTrace)
	s.set(&sb, LayerTip)
	s.reset(&sb)
	if got, want := sb.String(), "\x1b[33m\x1b[31m\x1b[0m"; got != want {
		t.Fatalf("sequences = %q, want %q", got, want)
	}
}

func stripANSI(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		out.WriteByte(s[i])
	}
	return out.String()
}

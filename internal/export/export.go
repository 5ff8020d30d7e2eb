// Package export rasterizes epicycle drawings to PNG and animated GIF.
package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"time"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/visualizer"
)

// ErrNoFrames is returned when writing a GIF nothing was drawn on.
var ErrNoFrames = errors.New("no frames to encode")

const (
	circleWidth = 1.0
	vectorWidth = 1.0
	traceWidth  = 2.0
	tipRadius   = 3.0
)

func layerColor(l visualizer.Layer) color.RGBA {
	r, g, b, a := l.RGBA()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// palette holds the background and every layer color.
var palette = color.Palette{
	color.RGBA{A: 0xff},
	layerColor(visualizer.LayerCircle),
	layerColor(visualizer.LayerVector),
	layerColor(visualizer.LayerTrace),
	layerColor(visualizer.LayerTip),
}

// plane maps the square ±limit onto a size x size image, imaginary axis up.
type plane struct {
	half  float64
	scale float64
}

func newPlane(size int, limit float64) plane {
	if limit <= 0 {
		limit = 1
	}
	half := float64(size) / 2
	return plane{half: half, scale: half / limit}
}

func (p plane) point(z cplx.Number) (x, y float64) {
	return p.half + z.Real()*p.scale, p.half - z.Imag()*p.scale
}

func newImage(size int) (*image.RGBA, *draw2dimg.GraphicContext) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillColor(color.RGBA{A: 0xff})
	gc.Clear()
	return img, gc
}

func strokePolyline(gc *draw2dimg.GraphicContext, p plane, points []cplx.Number) {
	if len(points) < 2 {
		return
	}
	gc.SetStrokeColor(layerColor(visualizer.LayerTrace))
	gc.SetLineWidth(traceWidth)
	gc.BeginPath()
	x, y := p.point(points[0])
	gc.MoveTo(x, y)
	for _, z := range points[1:] {
		x, y = p.point(z)
		gc.LineTo(x, y)
	}
	gc.Stroke()
}

// RenderFrame rasterizes one animation frame.
func RenderFrame(f epicycle.Frame, limit float64, size int) *image.RGBA {
	img, gc := newImage(size)
	p := newPlane(size, limit)

	gc.SetStrokeColor(layerColor(visualizer.LayerCircle))
	gc.SetLineWidth(circleWidth)
	for _, c := range f.Circles {
		r := c.Radius * p.scale
		if r < 1 {
			continue
		}
		x, y := p.point(c.Center)
		gc.BeginPath()
		gc.ArcTo(x, y, r, r, 0, 2*math.Pi)
		gc.Close()
		gc.Stroke()
	}

	gc.SetStrokeColor(layerColor(visualizer.LayerVector))
	gc.SetLineWidth(vectorWidth)
	for _, v := range f.Vectors {
		x0, y0 := p.point(v.From)
		x1, y1 := p.point(v.To)
		gc.BeginPath()
		gc.MoveTo(x0, y0)
		gc.LineTo(x1, y1)
		gc.Stroke()
	}

	strokePolyline(gc, p, f.Trace)

	x, y := p.point(f.Tip)
	gc.SetFillColor(layerColor(visualizer.LayerTip))
	gc.BeginPath()
	gc.ArcTo(x, y, tipRadius, tipRadius, 0, 2*math.Pi)
	gc.Close()
	gc.Fill()
	return img
}

// RenderTrace rasterizes a finished outline.
func RenderTrace(trace []cplx.Number, limit float64, size int) *image.RGBA {
	img, gc := newImage(size)
	strokePolyline(gc, newPlane(size, limit), trace)
	return img
}

// WritePNG writes the finished outline to a PNG file.
func WritePNG(path string, trace []cplx.Number, limit float64, size int) error {
	return draw2dimg.SaveToPngFile(path, RenderTrace(trace, limit, size))
}

// GIFSurface collects the frames of a run for an animated GIF.
type GIFSurface struct {
	size   int
	delay  int
	frames []*image.Paletted
}

// NewGIFSurface returns a surface rendering size x size frames shown for
// frameDelay each. GIF delays are in hundredths of a second.
func NewGIFSurface(size int, frameDelay time.Duration) *GIFSurface {
	return &GIFSurface{
		size:  size,
		delay: max(int(frameDelay/(10*time.Millisecond)), 2),
	}
}

func (s *GIFSurface) DrawFrame(f epicycle.Frame, limit float64) error {
	s.add(RenderFrame(f, limit, s.size))
	return nil
}

func (s *GIFSurface) DrawTrace(trace []cplx.Number, limit float64) error {
	s.add(RenderTrace(trace, limit, s.size))
	return nil
}

func (s *GIFSurface) add(img *image.RGBA) {
	pal := image.NewPaletted(img.Bounds(), palette)
	draw.Draw(pal, pal.Bounds(), img, image.Point{}, draw.Src)
	s.frames = append(s.frames, pal)
}

// Len returns the number of frames collected.
func (s *GIFSurface) Len() int { return len(s.frames) }

// WriteGIF encodes the collected frames as a looping GIF.
func (s *GIFSurface) WriteGIF(w io.Writer) error {
	if len(s.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, f := range s.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, s.delay)
	}
	return gif.EncodeAll(w, &anim)
}

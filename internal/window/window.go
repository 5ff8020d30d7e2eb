//go:build cgo

package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/visualizer"
)

// Run opens the window and blocks until it is closed.
func Run(coeffs []cplx.Number, opts Options) error {
	c, err := newController(coeffs, opts)
	if err != nil {
		return err
	}
	size := max(opts.Size, 16)
	g := &game{c: c, size: size}

	title := "epicycles"
	if opts.Title != "" {
		title += " · " + opts.Title
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(size, size)
	ebiten.SetTPS(TPS)
	err = ebiten.RunGame(g)
	c.close()
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	c    *controller
	size int
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.c.close()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.c.confirm()
	default:
		g.c.tick()
	}
	if g.c.done {
		return ebiten.Termination
	}
	return nil
}

func layerColor(l visualizer.Layer) color.RGBA {
	r, gg, b, a := l.RGBA()
	return color.RGBA{R: r, G: gg, B: b, A: a}
}

func (g *game) point(z cplx.Number) (float32, float32) {
	half := float64(g.size) / 2
	scale := half / g.c.limit
	return float32(half + z.Real()*scale), float32(half - z.Imag()*scale)
}

func (g *game) polyline(screen *ebiten.Image, points []cplx.Number, width float32, clr color.Color) {
	for i := 1; i < len(points); i++ {
		x0, y0 := g.point(points[i-1])
		x1, y1 := g.point(points[i])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	c := g.c

	if c.anim == nil {
		g.polyline(screen, c.trace, 2, layerColor(visualizer.LayerTrace))
	} else if c.shown {
		scale := float64(g.size) / 2 / c.limit
		circle := layerColor(visualizer.LayerCircle)
		for _, ci := range c.frame.Circles {
			r := float32(ci.Radius * scale)
			if r < 1 {
				continue
			}
			x, y := g.point(ci.Center)
			vector.StrokeCircle(screen, x, y, r, 1, circle, true)
		}
		vec := layerColor(visualizer.LayerVector)
		for _, v := range c.frame.Vectors {
			x0, y0 := g.point(v.From)
			x1, y1 := g.point(v.To)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, vec, true)
		}
		g.polyline(screen, c.frame.Trace, 2, layerColor(visualizer.LayerTrace))
		x, y := g.point(c.frame.Tip)
		vector.DrawFilledCircle(screen, x, y, 3, layerColor(visualizer.LayerTip), true)
	}

	if p := c.prompt(); p != "" {
		ebitenutil.DebugPrint(screen, p)
	} else if c.state() == epicycle.Playing {
		ebitenutil.DebugPrint(screen, "esc to quit")
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.size, g.size
}

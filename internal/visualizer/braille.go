package visualizer

import "strings"

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Layer tags a dot with what drew it. When layers overlap in a cell the
// highest one picks the cell's color.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerCircle
	LayerVector
	LayerTrace
	LayerTip
)

// Canvas is a grid of Braille cells, each a 2x4 dot grid, giving 2x
// horizontal and 4x vertical resolution.
type Canvas struct {
	cols, rows int
	dots       []Layer
}

func NewCanvas(cols, rows int) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &Canvas{cols: cols, rows: rows, dots: make([]Layer, cols*2*rows*4)}
}

// Size returns the dot grid dimensions.
func (c *Canvas) Size() (w, h int) { return c.cols * 2, c.rows * 4 }

// Set marks dot (x, y). Dots off the canvas are ignored. A dot keeps the
// highest layer drawn on it.
func (c *Canvas) Set(x, y int, l Layer) {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	if i := y*w + x; l > c.dots[i] {
		c.dots[i] = l
	}
}

// At returns the layer of dot (x, y).
func (c *Canvas) At(x, y int) Layer {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return LayerNone
	}
	return c.dots[y*w+x]
}

// Line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, l Layer) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0, l)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Circle draws a circle of radius r around (cx, cy) with the midpoint
// algorithm. A zero radius sets the center dot.
func (c *Canvas) Circle(cx, cy, r int, l Layer) {
	if r <= 0 {
		c.Set(cx, cy, l)
		return
	}
	x, y := r, 0
	e := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y, l)
		c.Set(cx+y, cy+x, l)
		c.Set(cx-y, cy+x, l)
		c.Set(cx-x, cy+y, l)
		c.Set(cx-x, cy-y, l)
		c.Set(cx-y, cy-x, l)
		c.Set(cx+y, cy-x, l)
		c.Set(cx+x, cy-y, l)
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

// String renders the canvas as rows of Braille characters, colored by layer
// when the terminal supports it.
func (c *Canvas) String() string {
	w, _ := c.Size()
	var out strings.Builder
	color := newANSIState()
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range c.cols {
			var pattern uint
			top := LayerNone
			for dx := range 2 {
				for dy := range 4 {
					l := c.dots[(row*4+dy)*w+col*2+dx]
					if l == LayerNone {
						continue
					}
					pattern |= 1 << brailleBits[dx][dy]
					top = max(top, l)
				}
			}
			if top != LayerNone {
				color.set(&out, top)
			}
			out.WriteRune(rune(0x2800 + pattern))
		}
		color.reset(&out)
	}
	return out.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

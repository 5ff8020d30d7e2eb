package svgpath

import (
	"github.com/tdewolff/parse/v2/strconv"
)

var argCounts = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t' || path[i] == '\f') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Parse parses SVG path data. The whole string is validated, but only the
// first subpath becomes part of the returned outline: a moveto that follows
// drawn segments ends it.
func Parse(d string) (*Path, error) {
	path := []byte(d)
	i := skipCommaWhitespace(path)
	if i >= len(path) {
		return nil, parseErrorf(0, "no path data")
	}
	if upper(path[i]) != 'M' {
		return nil, parseErrorf(i+1, "path data must start with a moveto command, got %q", path[i])
	}

	var (
		f        [7]float64
		segments []Segment
		subpaths int
		cur      Point // current point
		start    Point // start of the current subpath
		ctrl     Point // last control point, for S and T reflection
		prevCmd  byte
		drawing  bool // a segment has been drawn since the last moveto
		finished bool // the first subpath is complete
	)
	add := func(s Segment) {
		if !drawing {
			drawing = true
			subpaths++
		}
		if !finished {
			segments = append(segments, s)
		}
	}

	for {
		i += skipCommaWhitespace(path[i:])
		if i >= len(path) {
			break
		}

		cmdPos := i + 1
		cmd := prevCmd
		repeat := true
		if prevCmd == 0 || prevCmd == 'z' || prevCmd == 'Z' || !isNumberStart(path[i]) {
			cmd = path[i]
			repeat = false
			i++
			i += skipCommaWhitespace(path[i:])
		}

		CMD := upper(cmd)
		nargs, ok := argCounts[CMD]
		if !ok {
			return nil, parseErrorf(cmdPos, "unknown command %q", cmd)
		}
		for j := 0; j < nargs; j++ {
			if CMD == 'A' && (j == 3 || j == 4) {
				if i < len(path) && (path[i] == '0' || path[i] == '1') {
					f[j] = float64(path[i] - '0')
					i++
				} else {
					return nil, parseErrorf(i+1, "arc flags of command %q must be 0 or 1", cmd)
				}
			} else {
				num, n := strconv.ParseFloat(path[i:])
				if n == 0 {
					if repeat && j == 0 {
						return nil, parseErrorf(i+1, "unknown command %q", path[i])
					}
					return nil, parseErrorf(i+1, "command %q expects %d numbers", cmd, nargs)
				}
				f[j] = num
				i += n
			}
			i += skipCommaWhitespace(path[i:])
		}

		rel := cmd != CMD
		abs := func(x, y float64) Point {
			if rel {
				return Point{cur.X + x, cur.Y + y}
			}
			return Point{x, y}
		}

		next := cur
		switch CMD {
		case 'M':
			next = abs(f[0], f[1])
			if drawing {
				finished = true
			}
			drawing = false
			start = next
			// Coordinate pairs after a moveto are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			next = start
			add(Close{Line{P0: cur, P1: start}})
		case 'L':
			next = abs(f[0], f[1])
			add(Line{P0: cur, P1: next})
		case 'H':
			next.X = f[0]
			if rel {
				next.X += cur.X
			}
			add(Line{P0: cur, P1: next})
		case 'V':
			next.Y = f[0]
			if rel {
				next.Y += cur.Y
			}
			add(Line{P0: cur, P1: next})
		case 'C':
			cp1 := abs(f[0], f[1])
			cp2 := abs(f[2], f[3])
			next = abs(f[4], f[5])
			add(CubicBez{P0: cur, P1: cp1, P2: cp2, P3: next})
			ctrl = cp2
		case 'S':
			cp1 := cur
			if p := upper(prevCmd); p == 'C' || p == 'S' {
				cp1 = cur.Mul(2).Sub(ctrl)
			}
			cp2 := abs(f[0], f[1])
			next = abs(f[2], f[3])
			add(CubicBez{P0: cur, P1: cp1, P2: cp2, P3: next})
			ctrl = cp2
		case 'Q':
			cp := abs(f[0], f[1])
			next = abs(f[2], f[3])
			add(QuadBez{P0: cur, P1: cp, P2: next})
			ctrl = cp
		case 'T':
			cp := cur
			if p := upper(prevCmd); p == 'Q' || p == 'T' {
				cp = cur.Mul(2).Sub(ctrl)
			}
			next = abs(f[0], f[1])
			add(QuadBez{P0: cur, P1: cp, P2: next})
			ctrl = cp
		case 'A':
			next = abs(f[5], f[6])
			if seg, ok := endpointArc(cur, f[0], f[1], f[2], f[3] == 1, f[4] == 1, next); ok {
				add(seg)
			}
		}
		prevCmd = cmd
		cur = next
	}

	if len(segments) == 0 {
		return nil, parseErrorf(0, "path has no drawable segments")
	}
	p := New(segments...)
	p.subpaths = subpaths
	return p, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed path literals.
func MustParse(d string) *Path {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

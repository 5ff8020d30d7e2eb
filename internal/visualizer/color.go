package visualizer

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

type colorProfile uint8

const (
	colorNone colorProfile = iota
	colorANSI16
	colorANSI256
	colorTrueColor
)

type colorRGB struct {
	R, G, B uint8
}

// Circles are sky blue (135, 206, 235) at 70% opacity over the black
// background.
var layerPalette = [...]colorRGB{
	LayerNone:   {},
	LayerCircle: {R: 94, G: 144, B: 164},
	LayerVector: {R: 255, G: 255, B: 255},
	LayerTrace:  {R: 255, G: 255},
	LayerTip:    {R: 255},
}

// ansi16 maps each layer to the nearest basic foreground color.
var ansi16 = [...]int{
	LayerNone:   30,
	LayerCircle: 36,
	LayerVector: 37,
	LayerTrace:  33,
	LayerTip:    31,
}

func layerColor(l Layer) colorRGB {
	if int(l) >= len(layerPalette) {
		return colorRGB{}
	}
	return layerPalette[l]
}

// RGBA returns the 8-bit color of a layer for raster back ends.
func (l Layer) RGBA() (r, g, b, a uint8) {
	c := layerColor(l)
	return c.R, c.G, c.B, 0xff
}

var (
	profileOnce sync.Once
	profile     colorProfile
	layerSeqs   [len(layerPalette)]string
)

// detectColorProfile reads the terminal's color support from the
// environment. NO_COLOR wins over everything.
func detectColorProfile(getenv func(string) (string, bool)) colorProfile {
	if _, disabled := getenv("NO_COLOR"); disabled {
		return colorNone
	}
	term, _ := getenv("TERM")
	colorTerm, _ := getenv("COLORTERM")
	term, colorTerm = strings.ToLower(term), strings.ToLower(colorTerm)
	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		return colorTrueColor
	case strings.Contains(term, "256color"):
		return colorANSI256
	case term == "", term == "dumb":
		return colorNone
	}
	return colorANSI16
}

func layerSequence(p colorProfile, l Layer) string {
	c := layerColor(l)
	switch p {
	case colorTrueColor:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	case colorANSI256:
		r, g, b := int(c.R)*5/255, int(c.G)*5/255, int(c.B)*5/255
		return fmt.Sprintf("\x1b[38;5;%dm", 16+36*r+6*g+b)
	case colorANSI16:
		return fmt.Sprintf("\x1b[%dm", ansi16[l])
	}
	return ""
}

// layerSequences returns the escape sequence of every layer for the
// terminal, computed once.
func layerSequences() (colorProfile, *[len(layerPalette)]string) {
	profileOnce.Do(func() {
		profile = detectColorProfile(os.LookupEnv)
		for l := range layerSeqs {
			layerSeqs[l] = layerSequence(profile, Layer(l))
		}
	})
	return profile, &layerSeqs
}

// ansiState writes a color change only when the layer differs from the
// previous cell's.
type ansiState struct {
	profile colorProfile
	seqs    *[len(layerPalette)]string
	current Layer
}

func newANSIState() ansiState {
	p, seqs := layerSequences()
	return ansiState{profile: p, seqs: seqs}
}

func (s *ansiState) set(sb *strings.Builder, l Layer) {
	if s.profile == colorNone || l == s.current {
		return
	}
	sb.WriteString(s.seqs[l])
	s.current = l
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == colorNone || s.current == LayerNone {
		return
	}
	sb.WriteString("\x1b[0m")
	s.current = LayerNone
}

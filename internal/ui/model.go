package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/epicycles/internal/cplx"
	"github.com/olivier-w/epicycles/internal/epicycle"
	"github.com/olivier-w/epicycles/internal/gallery"
	"github.com/olivier-w/epicycles/internal/pipeline"
	"github.com/olivier-w/epicycles/internal/util"
	"github.com/olivier-w/epicycles/internal/visualizer"
	"go.uber.org/zap"
)

const (
	defaultWidth  = 80
	defaultHeight = 30
	// Rows taken by everything but the canvas.
	chromeRows     = 10
	spectrumWidth  = 44
	spectrumHeight = 10
)

// Sound is audio playing alongside the drawing.
type Sound interface {
	TogglePause()
	Close()
}

// Options configures a Model.
type Options struct {
	Animated bool
	// Interval is the frame interval at 1x speed.
	Interval time.Duration
	Params   pipeline.Params
	Gallery  *gallery.Gallery
	Logger   *zap.Logger
	// OpenSound starts audio for an outline. Nil disables audio.
	OpenSound func(trace []cplx.Number, limit float64) (Sound, error)
}

// Model is the Bubbletea model for the epicycle display.
type Model struct {
	opts   Options
	result pipeline.Result

	anim  *epicycle.Animation
	frame epicycle.Frame
	trace []cplx.Number
	limit float64

	speed        speedControl
	repeatMode   RepeatMode
	paused       bool
	showSpectrum bool
	fit          bool
	sound        Sound
	tickSeq      int
	loading      bool
	statusMsg    string

	width    int
	height   int
	quitting bool
}

// New creates a Model for a computed outline. Animated models wait for
// enter before the first frame; static models show the finished trace.
func New(res pipeline.Result, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 30
	}
	m := Model{
		opts:  opts,
		speed: newSpeedControl(int(time.Second / opts.Interval)),
	}
	if err := m.load(res); err != nil {
		return Model{}, err
	}
	return m, nil
}

// load swaps in a new outline, resetting the animation.
func (m *Model) load(res pipeline.Result) error {
	anim, err := epicycle.NewAnimation(res.Coeffs)
	if err != nil {
		return err
	}
	trace, err := epicycle.StaticTrace(res.Coeffs)
	if err != nil {
		return err
	}

	m.result = res
	m.anim = anim
	m.trace = trace
	m.limit = anim.Limit()
	m.frame = epicycle.Frame{}
	m.paused = false
	m.tickSeq++

	if m.sound != nil {
		m.sound.Close()
		m.sound = nil
	}
	if m.opts.OpenSound != nil {
		s, err := m.opts.OpenSound(trace, m.limit)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Audio unavailable: %v", err)
			m.opts.Logger.Warn("opening audio", zap.Error(err))
		} else {
			m.sound = s
		}
	}
	m.opts.Logger.Info("outline ready", zap.String("name", res.Name), zap.Int("frames", anim.Len()))
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle(m.result.Name, m.anim.State()))
}

// State reports the animation state.
func (m Model) State() epicycle.State {
	return m.anim.State()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if msg.seq != m.tickSeq || m.paused || m.anim.State() != epicycle.Playing {
			return m, nil
		}
		return m.advance()

	case outlineLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			m.opts.Logger.Error("loading outline", zap.Error(msg.err))
			return m, nil
		}
		if m.opts.Gallery != nil {
			m.opts.Gallery.SetCurrentIndex(msg.index)
		}
		if err := m.load(msg.result); err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.statusMsg = ""
		return m.start()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		return m.quit()
	}

	switch msg.String() {
	case "enter", " ":
		switch m.anim.State() {
		case epicycle.AwaitingStart:
			if !m.opts.Animated {
				return m.quit()
			}
			return m.start()
		case epicycle.AwaitingClose:
			return m.quit()
		case epicycle.Playing:
			if msg.String() == " " {
				return m.togglePause()
			}
		}
		return m, nil
	case "s":
		m.showSpectrum = !m.showSpectrum
		return m, nil
	case "f":
		m.fit = !m.fit
		return m, nil
	case "r":
		m.repeatMode = m.repeatMode.Next()
		return m, nil
	case "n":
		return m.switchOutline(1)
	case "p":
		return m.switchOutline(-1)
	}

	switch {
	case isFaster(msg):
		m.speed.faster()
	case isSlower(msg):
		m.speed.slower()
	}
	return m, nil
}

func (m Model) start() (Model, tea.Cmd) {
	if !m.opts.Animated {
		return m, tea.SetWindowTitle(windowTitle(m.result.Name, m.anim.State()))
	}
	_ = m.anim.Start()
	m.tickSeq++
	// Frame 0 is drawn straight away; the tick schedules frame 1.
	next, cmd := m.advance()
	return next, tea.Batch(cmd, tea.SetWindowTitle(windowTitle(m.result.Name, next.anim.State())))
}

func (m Model) advance() (Model, tea.Cmd) {
	f, err := m.anim.Step()
	if err != nil {
		return m, nil
	}
	m.frame = f
	m.opts.Logger.Debug("frame", zap.Int("t", f.Index), zap.Stringer("tip", f.Tip))
	m.speed.step()

	if m.anim.State() == epicycle.Playing {
		return m, tickCmd(m.speed.interval(m.opts.Interval), m.tickSeq)
	}

	switch m.repeatMode {
	case RepeatOne:
		return m.restart()
	case RepeatAll:
		if g := m.opts.Gallery; g != nil && g.Len() > 1 {
			i := (g.CurrentIndex() + 1) % g.Len()
			m.loading = true
			return m, loadOutlineCmd(g.Entry(i).Path, i, m.opts.Params, m.opts.Logger)
		}
		return m.restart()
	}
	return m, tea.SetWindowTitle(windowTitle(m.result.Name, m.anim.State()))
}

func (m Model) restart() (Model, tea.Cmd) {
	anim, err := epicycle.NewAnimation(m.result.Coeffs)
	if err != nil {
		return m, nil
	}
	m.anim = anim
	return m.start()
}

func (m Model) togglePause() (Model, tea.Cmd) {
	m.paused = !m.paused
	if m.sound != nil {
		m.sound.TogglePause()
	}
	if m.paused {
		return m, nil
	}
	m.tickSeq++
	return m, tickCmd(m.speed.interval(m.opts.Interval), m.tickSeq)
}

func (m Model) switchOutline(delta int) (Model, tea.Cmd) {
	g := m.opts.Gallery
	if g == nil || g.Len() < 2 || m.loading {
		return m, nil
	}
	i, ok := g.Step(delta)
	if !ok {
		return m, nil
	}
	m.loading = true
	m.statusMsg = "Loading " + g.Entry(i).Title + "..."
	return m, loadOutlineCmd(g.Entry(i).Path, i, m.opts.Params, m.opts.Logger)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.anim.Close()
	if m.sound != nil {
		m.sound.Close()
		m.sound = nil
	}
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func loadOutlineCmd(path string, index int, params pipeline.Params, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		res, err := pipeline.Load(context.Background(), path, params, logger, nil)
		return outlineLoadedMsg{index: index, result: res, err: err}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w < 30 {
		w = defaultWidth
	}
	if h < chromeRows+4 {
		h = defaultHeight
	}

	var b strings.Builder
	b.WriteString("\n  " + headerStyle.Render("epicycles") + "\n\n")
	b.WriteString("  " + titleStyle.Render(m.result.Name) + "\n")
	b.WriteString("  " + subtitleStyle.Render(m.subtitle()) + "\n\n")

	cols := w - 4
	if m.showSpectrum {
		cols -= spectrumWidth + 2
	}
	rows := h - chromeRows
	plot := m.renderPlot(max(cols, 8), max(rows, 4))
	if m.showSpectrum {
		panel := panelStyle.Render(visualizer.Spectrum(m.result.Coeffs, spectrumWidth, spectrumHeight))
		plot = lipgloss.JoinHorizontal(lipgloss.Top, plot, "  ", panel)
	}
	b.WriteString(indent(plot, "  ") + "\n\n")

	if m.opts.Animated {
		loop := time.Duration(m.anim.Len()) * m.opts.Interval
		counter := util.FormatFrame(m.anim.Frame(), m.anim.Len()) + "  " + util.FormatDuration(loop)
		bar := renderProgressBar(float64(m.anim.Frame()), float64(m.anim.Len()), w-len(counter)-6)
		b.WriteString("  " + bar + " " + timeStyle.Render(counter) + "\n")
	}
	b.WriteString("  " + m.statusLine() + "\n")
	if m.statusMsg != "" {
		b.WriteString("  " + errorStyle.Render(m.statusMsg) + "\n")
	}
	if g := m.opts.Gallery; g != nil {
		if next := g.Peek(1); len(next) > 0 {
			b.WriteString("  " + subtitleStyle.Render("next: "+next[0].Title) + "\n")
		}
	}
	b.WriteString("\n  " + helpStyle.Render(helpText(m.opts.Animated, m.opts.Gallery != nil && m.opts.Gallery.Len() > 1)) + "\n")
	return b.String()
}

func (m Model) renderPlot(cols, rows int) string {
	c := visualizer.NewCanvas(cols, rows)
	dw, dh := c.Size()
	v := visualizer.LimitViewport(dw, dh, m.limit)
	if m.fit {
		v = visualizer.FitViewport(dw, dh, m.trace)
	}

	if !m.opts.Animated {
		visualizer.DrawTrace(c, v, m.trace)
		return c.String()
	}
	f := m.frame
	if f.Circles == nil {
		f = firstFrame(m.result.Coeffs)
	}
	visualizer.DrawFrame(c, v, f)
	return c.String()
}

// firstFrame renders frame 0 without touching the model's animation.
func firstFrame(coeffs []cplx.Number) epicycle.Frame {
	anim, err := epicycle.NewAnimation(coeffs)
	if err != nil {
		return epicycle.Frame{}
	}
	_ = anim.Start()
	f, _ := anim.Step()
	return f
}

func (m Model) subtitle() string {
	s := fmt.Sprintf("%d samples  ·  %d coefficients", len(m.result.Samples), len(m.result.Coeffs))
	if m.result.Subpaths > 1 {
		s += fmt.Sprintf("  ·  first of %d subpaths", m.result.Subpaths)
	}
	if g := m.opts.Gallery; g != nil && g.Len() > 1 {
		s += fmt.Sprintf("  ·  %d/%d", g.CurrentIndex()+1, g.Len())
	}
	return s
}

func (m Model) statusLine() string {
	if m.loading {
		return statusStyle.Render("loading...")
	}
	var left string
	switch m.anim.State() {
	case epicycle.AwaitingStart:
		if m.opts.Animated {
			return promptStyle.Render("Press enter to start")
		}
		return promptStyle.Render("Press enter to close")
	case epicycle.AwaitingClose:
		return promptStyle.Render("Press enter to close")
	case epicycle.Playing:
		left = "▶  playing"
		if m.paused {
			left = "❚❚  paused"
		}
	default:
		left = "closed"
	}
	left += "  " + renderSpeed(m.speed.pos)
	if icon := m.repeatMode.Icon(); icon != "" {
		left += "  " + icon
	}
	return statusStyle.Render(left)
}

func windowTitle(name string, state epicycle.State) string {
	if state == epicycle.Playing {
		return "▶ " + name + " · epicycles"
	}
	return name + " · epicycles"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

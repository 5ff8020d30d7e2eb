package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/epicycles/internal/config"
	"github.com/olivier-w/epicycles/internal/ui"
	"go.uber.org/zap"
)

type startupPhase uint8

const (
	phaseBrowse startupPhase = iota
	phaseComputing
)

type startupResolvedMsg struct {
	model ui.Model
	err   error
}

type transformProgress struct {
	done, total int
}

type startupProgressMsg transformProgress

type startupModel struct {
	cfg    config.Config
	logger *zap.Logger

	browser    ui.BrowserModel
	phase      startupPhase
	path       string
	errMsg     string
	fatal      error
	width      int
	height     int
	spinner    spinner.Model
	progress   progress.Model
	status     transformProgress
	progressCh chan transformProgress
	hasStatus  bool
}

// newStartupModel opens the file browser, or goes straight to computing when
// cfg names an input file.
func newStartupModel(cfg config.Config, logger *zap.Logger) startupModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	p := progress.New(
		progress.WithScaledGradient("#87CEEB", "#FFD700"),
		progress.WithoutPercentage(),
	)

	m := startupModel{
		cfg:      cfg,
		logger:   logger,
		phase:    phaseBrowse,
		spinner:  s,
		progress: p,
	}
	if cfg.Input == "" {
		m.browser = ui.NewEmbeddedBrowser()
	} else {
		m.phase = phaseComputing
		m.path = cfg.Input
		m.progressCh = make(chan transformProgress, 16)
	}
	return m
}

func (m startupModel) Init() tea.Cmd {
	if m.phase == phaseComputing {
		return tea.Batch(m.spinner.Tick, m.waitForProgress(), m.computeCmd())
	}
	return tea.Batch(m.browser.Init(), m.spinner.Tick)
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-8, 20), 60)
		if m.phase == phaseBrowse {
			return m.updateBrowser(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.phase == phaseComputing {
			return m, cmd
		}
		return m, nil

	case ui.BrowserCancelledMsg:
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case ui.BrowserSelectedMsg:
		m.phase = phaseComputing
		m.path = msg.Path
		m.errMsg = ""
		m.hasStatus = false
		m.status = transformProgress{}
		m.progressCh = make(chan transformProgress, 16)
		return m, tea.Batch(m.spinner.Tick, m.waitForProgress(), m.computeCmd())

	case startupProgressMsg:
		m.hasStatus = true
		m.status = transformProgress(msg)
		return m, m.waitForProgress()

	case startupResolvedMsg:
		if msg.err != nil {
			m.logger.Error("loading outline", zap.String("path", m.path), zap.Error(msg.err))
			m.progressCh = nil
			m.hasStatus = false
			// Without a browser to fall back to, the error ends the program.
			if m.cfg.Input != "" {
				m.fatal = msg.err
				return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
			}
			m.phase = phaseBrowse
			m.errMsg = msg.err.Error()
			return m, nil
		}

		cmds := []tea.Cmd{msg.model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return msg.model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.phase == phaseComputing && startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	if m.phase == phaseBrowse {
		return m.updateBrowser(msg)
	}
	return m, nil
}

func (m startupModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.browser.Update(msg)
	if browser, ok := model.(ui.BrowserModel); ok {
		m.browser = browser
	}
	return m, cmd
}

func (m startupModel) computeCmd() tea.Cmd {
	path, cfg, logger, ch := m.path, m.cfg, m.logger, m.progressCh
	return func() tea.Msg {
		defer close(ch)
		model, err := buildDisplayModel(context.Background(), path, cfg, logger, func(done, total int) {
			select {
			case ch <- transformProgress{done: done, total: total}:
			default:
			}
		})
		return startupResolvedMsg{model: model, err: err}
	}
}

func (m startupModel) waitForProgress() tea.Cmd {
	if m.progressCh == nil {
		return nil
	}
	ch := m.progressCh
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return startupProgressMsg(p)
	}
}

func (m startupModel) View() string {
	if m.phase == phaseBrowse {
		if m.browser.HasError() {
			return "\n  epicycles\n\n  " + m.browser.Error().Error() + "\n"
		}
		if m.errMsg == "" {
			return m.browser.View()
		}
		return "\n  epicycles\n\n  " + m.renderError() + "\n\n" + indentBlock(m.browser.View(), "  ")
	}

	return m.renderComputingView()
}

func (m startupModel) renderComputingView() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("epicycles"))
	if m.path != "" {
		b.WriteString("  ")
		b.WriteString(startupHelpStyle.Render(filepath.Base(m.path)))
	}
	b.WriteString("\n\n")

	if m.hasStatus && m.status.total > 0 {
		frac := float64(m.status.done) / float64(m.status.total)
		b.WriteString("  ")
		b.WriteString(startupStatusStyle.Render("Computing coefficients..."))
		b.WriteString("\n  ")
		b.WriteString(m.progress.ViewAs(frac))
		b.WriteString(fmt.Sprintf("  %d/%d\n", m.status.done, m.status.total))
	} else {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(startupStatusStyle.Render("Sampling outline..."))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(startupHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m startupModel) renderError() string {
	return startupErrorStyle.Render(m.errMsg)
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)

package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/epicycles/internal/pipeline"
)

// tickMsg advances the animation. seq ties a tick to the animation run that
// scheduled it so ticks from a replaced run are dropped.
type tickMsg struct {
	seq int
}

type outlineLoadedMsg struct {
	index  int
	result pipeline.Result
	err    error
}

func tickCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

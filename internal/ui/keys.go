package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func isFaster(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "+", "=", "right", "l":
		return true
	}
	return false
}

func isSlower(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "-", "_", "left", "h":
		return true
	}
	return false
}

func helpText(animated bool, hasGallery bool) string {
	s := ""
	if animated {
		s = "space pause  +/- speed  r repeat  "
	}
	s += "s spectrum  f fit"
	if hasGallery {
		s += "  n/p outline"
	}
	s += "  q quit"
	return s
}

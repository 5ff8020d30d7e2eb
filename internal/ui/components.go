package ui

import (
	"fmt"
	"strings"
)

func renderProgressBar(done, total float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 2

	var ratio float64
	if total > 0 {
		ratio = done / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(barWidth))
	return strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
}

func renderSpeed(multiplier float64) string {
	return fmt.Sprintf("speed %.2fx", multiplier)
}

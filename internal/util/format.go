package util

import (
	"fmt"
	"time"

	"github.com/olivier-w/epicycles/internal/cplx"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatPoint formats the tip of frame t as "t: (x, y)".
func FormatPoint(t int, p cplx.Number) string {
	return fmt.Sprintf("%d: (%v, %v)", t, p.Real(), p.Imag())
}

// FormatFrame formats animation progress as "frame/total".
func FormatFrame(frame, total int) string {
	return fmt.Sprintf("%*d/%d", len(fmt.Sprint(total)), frame, total)
}

package ui

// RepeatMode is what happens after the last frame of an outline: stop,
// replay the same outline, or move on through the gallery.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

func (r RepeatMode) Next() RepeatMode {
	return (r + 1) % (RepeatAll + 1)
}

func (r RepeatMode) String() string {
	switch r {
	case RepeatOne:
		return "outline"
	case RepeatAll:
		return "gallery"
	default:
		return "off"
	}
}

// Icon is the status line marker for the mode, empty when off.
func (r RepeatMode) Icon() string {
	if r == RepeatOff {
		return ""
	}
	return "[loop " + r.String() + "]"
}

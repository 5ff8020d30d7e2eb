// Package gallery keeps the ordered list of outline files a session can step
// through.
package gallery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var outlineExts = map[string]bool{
	".svg": true,
}

// IsOutlineExt returns true if the extension names a readable outline file.
func IsOutlineExt(ext string) bool {
	return outlineExts[strings.ToLower(ext)]
}

// Entry is one outline file.
type Entry struct {
	Title string
	Path  string
}

// Gallery is an ordered list of outlines with a current position.
// It is only mutated from Bubbletea's single-threaded Update loop.
type Gallery struct {
	entries []Entry
	current int
}

// New creates a Gallery from the given entries.
func New(entries []Entry) *Gallery {
	return &Gallery{entries: entries}
}

// FromFile builds a gallery of every outline in path's directory, positioned
// on path. A file with no siblings yields a single entry gallery.
func FromFile(path string) (*Gallery, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	files, err := Scan(filepath.Dir(abs))
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	start := -1
	for i, f := range files {
		entries = append(entries, Entry{Title: titleOf(f), Path: f})
		if f == abs {
			start = i
		}
	}
	if start < 0 {
		entries = append([]Entry{{Title: titleOf(abs), Path: abs}}, entries...)
		start = 0
	}

	g := New(entries)
	g.SetCurrentIndex(start)
	return g, nil
}

// Scan returns the outline files in dir sorted alphabetically, ignoring case.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsOutlineExt(filepath.Ext(e.Name())) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}

func titleOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// Current returns a pointer to the current entry, or nil if empty.
func (g *Gallery) Current() *Entry {
	if g.current < 0 || g.current >= len(g.entries) {
		return nil
	}
	return &g.entries[g.current]
}

// Step returns the index delta entries away from the current one without
// moving. ok is false past either end.
func (g *Gallery) Step(delta int) (i int, ok bool) {
	i = g.current + delta
	return i, i >= 0 && i < len(g.entries)
}

// Peek returns up to n entries after the current one.
func (g *Gallery) Peek(n int) []Entry {
	start := g.current + 1
	if start >= len(g.entries) {
		return nil
	}
	end := min(start+n, len(g.entries))
	result := make([]Entry, end-start)
	copy(result, g.entries[start:end])
	return result
}

func (g *Gallery) Len() int {
	return len(g.entries)
}

func (g *Gallery) CurrentIndex() int {
	return g.current
}

// SetCurrentIndex jumps to entry i. Out of range indices are ignored.
func (g *Gallery) SetCurrentIndex(i int) {
	if i >= 0 && i < len(g.entries) {
		g.current = i
	}
}

// Entry returns a pointer to entry i, or nil if out of range.
func (g *Gallery) Entry(i int) *Entry {
	if i < 0 || i >= len(g.entries) {
		return nil
	}
	return &g.entries[i]
}

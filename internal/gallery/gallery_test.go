package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNavigation(t *testing.T) {
	g := New([]Entry{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	if g.Current().Title != "a" || g.CurrentIndex() != 0 {
		t.Fatalf("unexpected start: %+v", g.Current())
	}
	if _, ok := g.Step(-1); ok {
		t.Fatal("step back from the start must fail")
	}
	if i, ok := g.Step(2); !ok || i != 2 {
		t.Fatalf("Step(2) = %d, %v", i, ok)
	}
	g.SetCurrentIndex(2)
	if _, ok := g.Step(1); ok {
		t.Fatal("step past the end must fail")
	}
	if i, ok := g.Step(-1); !ok || g.Entry(i).Title != "b" {
		t.Fatal("expected to step back to b")
	}
	if g.Current().Title != "c" {
		t.Fatal("Step must not move the gallery")
	}
}

func TestPeekAndSetCurrentIndex(t *testing.T) {
	g := New([]Entry{{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}})
	g.SetCurrentIndex(1)
	if diff := cmp.Diff([]Entry{{Title: "c"}, {Title: "d"}}, g.Peek(5)); diff != "" {
		t.Fatalf("Peek mismatch:\n%s", diff)
	}
	g.SetCurrentIndex(9)
	if g.CurrentIndex() != 1 {
		t.Fatal("out of range index must be ignored")
	}
	g.SetCurrentIndex(3)
	if g.Peek(2) != nil {
		t.Fatal("expected nothing after the last entry")
	}
	if g.Entry(-1) != nil || g.Entry(0).Title != "a" {
		t.Fatal("Entry bounds")
	}
}

func TestEmptyGallery(t *testing.T) {
	g := New(nil)
	if _, ok := g.Step(0); g.Current() != nil || g.Len() != 0 || ok {
		t.Fatal("empty gallery must have no current entry")
	}
}

func TestFromFileScansSiblings(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.svg", "A.SVG", "c.svg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<svg/>"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.svg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	g, err := FromFile(filepath.Join(dir, "b.svg"))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	var titles []string
	for i := range g.Len() {
		titles = append(titles, g.Entry(i).Title)
	}
	if diff := cmp.Diff([]string{"A", "b", "c"}, titles); diff != "" {
		t.Fatalf("titles mismatch:\n%s", diff)
	}
	if g.Current().Title != "b" {
		t.Fatalf("current = %q, want b", g.Current().Title)
	}
}

func TestFromFileKeepsNonOutlineStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.xml")
	if err := os.WriteFile(path, []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	g, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if g.Len() != 1 || g.Current().Path != path {
		t.Fatalf("unexpected gallery: len=%d current=%+v", g.Len(), g.Current())
	}
}

func TestIsOutlineExt(t *testing.T) {
	if !IsOutlineExt(".SVG") || IsOutlineExt(".png") {
		t.Fatal("unexpected extension detection")
	}
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivier-w/epicycles/internal/config"
	"github.com/olivier-w/epicycles/internal/ui"
)

const squareSVG = `<svg><path d="M 0 0 L 10 0 L 10 10 L 0 10 Z"/></svg>`

func writeSVG(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testConfig(input string) config.Config {
	cfg := config.Default()
	cfg.Input = input
	cfg.Samples = 8
	return cfg
}

func TestStartupModelSelectionEntersComputingPhase(t *testing.T) {
	model, cmd := newStartupModel(testConfig(""), nil).Update(ui.BrowserSelectedMsg{Path: "square.svg"})
	if cmd == nil {
		t.Fatal("expected compute command")
	}

	startup, ok := model.(startupModel)
	if !ok {
		t.Fatalf("expected startupModel, got %T", model)
	}
	if startup.phase != phaseComputing {
		t.Fatalf("expected phaseComputing, got %v", startup.phase)
	}
	if startup.progressCh == nil {
		t.Fatal("expected progress channel to be initialized")
	}
}

func TestStartupModelWithInputSkipsBrowser(t *testing.T) {
	m := newStartupModel(testConfig("square.svg"), nil)
	if m.phase != phaseComputing || m.progressCh == nil {
		t.Fatalf("phase=%v, expected computing with a progress channel", m.phase)
	}
	if !strings.Contains(m.View(), "square.svg") {
		t.Fatal("expected file name in the computing view")
	}
}

func TestStartupModelErrorReturnsToBrowsePhase(t *testing.T) {
	m := newStartupModel(testConfig(""), nil)
	m.phase = phaseComputing

	model, cmd := m.Update(startupResolvedMsg{err: errBoom{}})
	if cmd != nil {
		t.Fatal("expected no command on error return")
	}

	startup := model.(startupModel)
	if startup.phase != phaseBrowse {
		t.Fatalf("expected phaseBrowse, got %v", startup.phase)
	}
	if startup.errMsg == "" || startup.fatal != nil {
		t.Fatal("expected a recoverable error message")
	}
}

func TestStartupModelErrorWithInputIsFatal(t *testing.T) {
	m := newStartupModel(testConfig("broken.svg"), nil)
	model, cmd := m.Update(startupResolvedMsg{err: errBoom{}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if model.(startupModel).fatal == nil {
		t.Fatal("expected fatal error")
	}
}

func TestStartupModelConsumesProgressUpdates(t *testing.T) {
	m := newStartupModel(testConfig(""), nil)
	m.phase = phaseComputing
	m.progressCh = make(chan transformProgress)

	model, cmd := m.Update(startupProgressMsg{done: 4, total: 8})
	if cmd == nil {
		t.Fatal("expected waitForProgress command")
	}

	startup := model.(startupModel)
	if !startup.hasStatus {
		t.Fatal("expected hasStatus to be true")
	}
	if startup.status.done != 4 || startup.status.total != 8 {
		t.Fatalf("unexpected status: %+v", startup.status)
	}
	if !strings.Contains(startup.View(), "4/8") {
		t.Fatal("expected progress counter in view")
	}
}

func TestComputeCmdResolvesDisplayModel(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "square.svg", squareSVG)
	m := newStartupModel(testConfig(path), nil)

	msg := m.computeCmd()()
	resolved, ok := msg.(startupResolvedMsg)
	if !ok {
		t.Fatalf("expected startupResolvedMsg, got %T", msg)
	}
	if resolved.err != nil {
		t.Fatalf("compute: %v", resolved.err)
	}

	// Every DFT row was reported before the channel closed.
	var last transformProgress
	for p := range m.progressCh {
		last = p
	}
	if last.total != 8 {
		t.Fatalf("last progress = %+v", last)
	}

	next, _ := m.Update(resolved)
	if _, ok := next.(ui.Model); !ok {
		t.Fatalf("expected ui.Model after resolving, got %T", next)
	}
}

func TestBuildDisplayModelRejectsNonSVG(t *testing.T) {
	dir := t.TempDir()
	path := writeSVG(t, dir, "notes.txt", squareSVG)
	if _, err := buildDisplayModel(t.Context(), path, testConfig(path), nil, nil); err == nil {
		t.Fatal("expected error for .txt input")
	}
	if _, err := buildDisplayModel(t.Context(), dir, testConfig(dir), nil, nil); err == nil {
		t.Fatal("expected error for a directory")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

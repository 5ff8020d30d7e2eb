package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestRunConsoleAnimated(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "square.svg", squareSVG)
	cfg := testConfig(path)
	cfg.Samples = 4
	cfg.FPS = 1000

	var out bytes.Buffer
	if err := runConsole(context.Background(), cfg, strings.NewReader("\n\n"), &out, nil); err != nil {
		t.Fatalf("runConsole: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "0: (") {
		t.Fatalf("frame 0 must print before the start prompt, got %q", lines[0])
	}
	if lines[1] != "Press Enter to start show..." || lines[5] != "Press Enter to close..." {
		t.Fatalf("unexpected prompts:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[4], "3: (") {
		t.Fatalf("last frame = %q", lines[4])
	}
}

func TestRunConsoleStatic(t *testing.T) {
	path := writeSVG(t, t.TempDir(), "square.svg", squareSVG)
	cfg := testConfig(path)
	cfg.Animate = false

	var out bytes.Buffer
	if err := runConsole(context.Background(), cfg, strings.NewReader(""), &out, nil); err != nil {
		t.Fatalf("runConsole: %v", err)
	}
	if n := strings.Count(out.String(), ": ("); n != 8 {
		t.Fatalf("printed %d points, want 8", n)
	}
}

func TestConsoleGateCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	g := newConsoleGate(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := g.AwaitStart(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

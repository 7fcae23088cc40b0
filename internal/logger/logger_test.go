package logger

import (
	"os"
	"strings"
	"testing"

	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/test"
)

func TestMain(m *testing.M) {
	// Bindings trigger listeners via fyne.Do, which requires a running app.
	test.NewApp()
	os.Exit(m.Run())
}

func TestNilBindingIsSafe(t *testing.T) {
	l := NewAppLogger(nil)
	l.SetLevel("disabled")
	l.Info("no UI sink attached")
	l.Warn("still fine")
	l.Error("and here")
	l.Debug("console only")
}

func TestAppendFormatsLevel(t *testing.T) {
	data := binding.NewStringList()
	l := NewAppLogger(data)
	l.SetLevel("disabled")

	l.Warn("collect hint missing on %s", "伙伴岛")

	lines, err := data.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "WARN: collect hint missing on 伙伴岛") {
		t.Fatalf("unexpected line: %q", lines[0])
	}
}

func TestDebugStaysOffTheUI(t *testing.T) {
	data := binding.NewStringList()
	l := NewAppLogger(data)
	l.SetLevel("disabled")

	l.Debug("poll tick details")

	lines, _ := data.Get()
	if len(lines) != 0 {
		t.Fatalf("debug leaked into the UI list: %v", lines)
	}
}

func TestBacklogIsBounded(t *testing.T) {
	data := binding.NewStringList()
	l := NewAppLogger(data)
	l.SetLevel("disabled")

	for i := 0; i < 120; i++ {
		l.Info("line %d", i)
	}

	lines, err := data.Get()
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(lines) > 100 {
		t.Fatalf("backlog grew to %d lines", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "line 119") {
		t.Fatalf("newest line missing: %q", lines[len(lines)-1])
	}
}

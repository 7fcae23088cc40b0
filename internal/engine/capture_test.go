package engine

import (
	"testing"
)

func TestCaptureOnceNoCollectHint(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)

	result, err := b.captureOnce(testZone(ZonePartner))
	if err != nil {
		t.Fatalf("captureOnce error: %v", err)
	}
	if result != ResultNoCollectHint {
		t.Fatalf("expected no_collect_hint, got %s", result)
	}
	if n := input.keyCount(InteractKey); n != 1 {
		t.Fatalf("interact key pressed %d times, want 1", n)
	}
	if n := input.keyCount(ActionKey); n != 0 {
		t.Fatalf("action key pressed %d times without a hint, want 0", n)
	}
}

func TestCaptureOnceSuccess(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)
	hint := b.targets.CollectHint.Asset

	// Hint shows up, clears after the first action press, and stays gone.
	probe.script(hint, true, true)
	probe.set(hint, false)

	result, err := b.captureOnce(testZone(ZonePartner))
	if err != nil {
		t.Fatalf("captureOnce error: %v", err)
	}
	if result != ResultOK {
		t.Fatalf("expected ok, got %s", result)
	}
	if n := input.keyCount(ActionKey); n != 1 {
		t.Fatalf("action key pressed %d times, want 1", n)
	}
}

func TestCaptureOnceCapReachedWhenHintNeverClears(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)

	probe.set(b.targets.CollectHint.Asset, true)

	result, err := b.captureOnce(testZone(ZonePartner))
	if err != nil {
		t.Fatalf("captureOnce error: %v", err)
	}
	if result != ResultCapReached {
		t.Fatalf("expected cap_reached, got %s", result)
	}
	if n := input.keyCount(ActionKey); n != b.timing.MaxActionAttempts {
		t.Fatalf("action key pressed %d times, want %d", n, b.timing.MaxActionAttempts)
	}
}

func TestCaptureOnceCapReachedWhenHintReappears(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)
	hint := b.targets.CollectHint.Asset

	// Appears, clears after the action press, then cycles straight back.
	probe.script(hint, true, true, false, false, true, true)

	result, err := b.captureOnce(testZone(ZonePartner))
	if err != nil {
		t.Fatalf("captureOnce error: %v", err)
	}
	if result != ResultCapReached {
		t.Fatalf("expected cap_reached on reappearance, got %s", result)
	}
	if n := input.keyCount(ActionKey); n != 1 {
		t.Fatalf("action key pressed %d times, want 1", n)
	}
}

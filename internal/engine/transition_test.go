package engine

import (
	"errors"
	"testing"
)

func TestEnterMapAlreadyInMap(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)

	probe.set(b.targets.InMapTask.Asset, true)

	if err := b.enterMap(testZone(ZonePartner)); err != nil {
		t.Fatalf("enterMap error: %v", err)
	}
	if len(input.clickOrder()) != 0 {
		t.Fatalf("unexpected clicks while already in map: %v", input.clickOrder())
	}
}

func TestEnterMapClicksIslandThenStart(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)

	// Not in map until after the start click.
	probe.script(b.targets.InMapTask.Asset, false, false, true)
	input.clickable[b.targets.PartnerSelect.Asset] = true
	input.clickable[b.targets.StartBattle.Asset] = true

	if err := b.enterMap(testZone(ZonePartner)); err != nil {
		t.Fatalf("enterMap error: %v", err)
	}

	clicks := input.clickOrder()
	if len(clicks) != 2 || clicks[0] != b.targets.PartnerSelect.Asset || clicks[1] != b.targets.StartBattle.Asset {
		t.Fatalf("unexpected click sequence: %v", clicks)
	}
}

func TestEnterMapUsesAdventureSelector(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)

	probe.script(b.targets.InMapTask.Asset, false, false, true)
	input.clickable[b.targets.AdventureSelect.Asset] = true
	input.clickable[b.targets.StartBattle.Asset] = true

	if err := b.enterMap(testZone(ZoneAdventure)); err != nil {
		t.Fatalf("enterMap error: %v", err)
	}
	clicks := input.clickOrder()
	if len(clicks) == 0 || clicks[0] != b.targets.AdventureSelect.Asset {
		t.Fatalf("unexpected click sequence: %v", clicks)
	}
}

func TestEnterMapTimesOut(t *testing.T) {
	b := newTestBot(newFakeProbe(), newFakeInput())

	err := b.enterMap(testZone(ZonePartner))
	if !errors.Is(err, ErrEnterMapTimeout) {
		t.Fatalf("expected ErrEnterMapTimeout, got %v", err)
	}
}

func TestEnterMapCancelled(t *testing.T) {
	b := newTestBot(newFakeProbe(), newFakeInput())
	close(b.stopChan)

	if err := b.enterMap(testZone(ZonePartner)); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestExitMapAlreadyOnZoneSelect(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)

	probe.set(b.targets.PartnerSelect.Asset, true)

	if err := b.exitMapToZoneSelect(); err != nil {
		t.Fatalf("exitMapToZoneSelect error: %v", err)
	}
	if input.moveClicks != 0 || input.keyCount(MenuKey) != 0 {
		t.Fatal("exit flow ran while already on the select screen")
	}
}

func TestExitMapFromMap(t *testing.T) {
	probe := newFakeProbe()
	input := newFakeInput()
	b := newTestBot(probe, input)

	// In the map at first; the select screen shows after exit plus confirm.
	probe.set(b.targets.InMapTask.Asset, true)
	probe.script(b.targets.PartnerSelect.Asset, false, true)
	input.clickable[b.targets.ExitMap.Asset] = true
	input.clickable[b.targets.ExitConfirm.Asset] = true

	if err := b.exitMapToZoneSelect(); err != nil {
		t.Fatalf("exitMapToZoneSelect error: %v", err)
	}
	if input.moveClicks != 1 {
		t.Fatalf("dismiss click issued %d times, want 1", input.moveClicks)
	}
	if input.keyCount(MenuKey) != 1 {
		t.Fatalf("menu key pressed %d times, want 1", input.keyCount(MenuKey))
	}
	clicks := input.clickOrder()
	if len(clicks) != 2 || clicks[0] != b.targets.ExitMap.Asset || clicks[1] != b.targets.ExitConfirm.Asset {
		t.Fatalf("unexpected click sequence: %v", clicks)
	}
}

func TestExitMapTimesOutInUnknownState(t *testing.T) {
	// Neither in-map nor on the select screen: no blind clicking, just a
	// bounded wait for the state to resolve.
	input := newFakeInput()
	b := newTestBot(newFakeProbe(), input)

	err := b.exitMapToZoneSelect()
	if !errors.Is(err, ErrExitMapTimeout) {
		t.Fatalf("expected ErrExitMapTimeout, got %v", err)
	}
	if input.moveClicks != 0 || input.keyCount(MenuKey) != 0 {
		t.Fatal("exit flow clicked in an unrecognized state")
	}
}

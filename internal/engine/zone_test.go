package engine

import (
	"testing"
	"time"
)

func TestOverrideIntervals(t *testing.T) {
	p := NewPartnerProfile()
	p.OverrideIntervals(12.5, 600)

	if p.FixedInterval != 12500*time.Millisecond {
		t.Fatalf("FixedInterval = %s, want 12.5s", p.FixedInterval)
	}
	if p.PatrolRefreshInterval != 600*time.Second {
		t.Fatalf("PatrolRefreshInterval = %s, want 600s", p.PatrolRefreshInterval)
	}
	if p.EnterWait == 0 {
		t.Fatal("override clobbered the enter wait")
	}
}

func TestZoneRunPeriodFollowsMode(t *testing.T) {
	profile := testZone(ZoneAdventure)
	profile.FixedInterval = 300 * time.Second
	profile.PatrolRefreshInterval = 1200 * time.Second

	fixed := &zoneRun{profile: profile, mode: ModeFixed}
	if fixed.period() != 300*time.Second {
		t.Fatalf("fixed period = %s, want 300s", fixed.period())
	}
	patrol := &zoneRun{profile: profile, mode: ModePatrol}
	if patrol.period() != 1200*time.Second {
		t.Fatalf("patrol period = %s, want 1200s", patrol.period())
	}
}

func TestModeAndResultStrings(t *testing.T) {
	if ModeFixed.String() != "fixed" || ModePatrol.String() != "patrol" {
		t.Fatal("unexpected mode strings")
	}
	if ResultCapReached.String() != "cap_reached" {
		t.Fatalf("cap result string = %q", ResultCapReached.String())
	}
}

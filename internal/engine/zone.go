package engine

import (
	"time"

	"github.com/ConserveLee/pal-hunter/internal/constants"
)

// ZoneKey identifies one of the two capturable islands.
type ZoneKey string

const (
	ZonePartner   ZoneKey = "partner"
	ZoneAdventure ZoneKey = "adventure"
)

// Mode selects how a zone loop behaves between capture attempts.
type Mode int

const (
	ModeFixed  Mode = iota // Stay resident in the map, capture on a fixed interval
	ModePatrol             // Exit and re-enter the map each round to force a refresh
)

func (m Mode) String() string {
	if m == ModePatrol {
		return "patrol"
	}
	return "fixed"
}

// CaptureResult is the outcome of a single capture attempt.
type CaptureResult int

const (
	ResultOK            CaptureResult = iota
	ResultNoCollectHint               // The collect hint never showed up
	ResultCapReached                  // The UI would not complete the interaction; daily cap suspected
)

func (r CaptureResult) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultNoCollectHint:
		return "no_collect_hint"
	case ResultCapReached:
		return "cap_reached"
	default:
		return "unknown"
	}
}

// ZoneProfile carries the static per-island parameters. User overrides are
// applied before a run starts; it is never mutated while loops are running.
type ZoneProfile struct {
	Key                   ZoneKey
	Name                  string
	FixedInterval         time.Duration
	PatrolRefreshInterval time.Duration
	EnterWait             time.Duration
}

// NewPartnerProfile returns the stock partner island profile.
func NewPartnerProfile() *ZoneProfile {
	return &ZoneProfile{
		Key:                   ZonePartner,
		Name:                  "伙伴岛",
		FixedInterval:         secondsToDuration(constants.PartnerFixedIntervalSec),
		PatrolRefreshInterval: secondsToDuration(constants.PartnerPatrolIntervalSec),
		EnterWait:             constants.EnterWait,
	}
}

// NewAdventureProfile returns the stock adventure island profile.
func NewAdventureProfile() *ZoneProfile {
	return &ZoneProfile{
		Key:                   ZoneAdventure,
		Name:                  "探险岛",
		FixedInterval:         secondsToDuration(constants.AdventureFixedIntervalSec),
		PatrolRefreshInterval: secondsToDuration(constants.AdventurePatrolIntervalSec),
		EnterWait:             constants.EnterWait,
	}
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

// OverrideIntervals applies raw user-supplied interval values (seconds).
// Values are taken as-is; the configuration surface owns validation.
func (p *ZoneProfile) OverrideIntervals(fixedSec, patrolSec float64) {
	p.FixedInterval = secondsToDuration(fixedSec)
	p.PatrolRefreshInterval = secondsToDuration(patrolSec)
}

// zoneRun is the scheduler-side mutable state for one zone. Once done or
// failed is set the zone is never visited again for the rest of the run.
type zoneRun struct {
	profile         *ZoneProfile
	mode            Mode
	done            bool // daily cap reached, clean retirement
	failed          bool // streak exceeded or transition failure
	noCollectStreak int
}

func (z *zoneRun) available() bool {
	return !z.done && !z.failed
}

// period is the zone's characteristic refresh period under its mode.
func (z *zoneRun) period() time.Duration {
	if z.mode == ModePatrol {
		return z.profile.PatrolRefreshInterval
	}
	return z.profile.FixedInterval
}

// noCollectLimit is the streak threshold for the zone's mode.
func (z *zoneRun) noCollectLimit() int {
	if z.mode == ModePatrol {
		return constants.PatrolNoCollectMax
	}
	return constants.FixedNoCollectMax
}

package engine

import (
	"errors"
	"sync"

	"github.com/ConserveLee/pal-hunter/internal/config"
	"github.com/ConserveLee/pal-hunter/internal/logger"
)

// BotStatus represents the current state of the bot
type BotStatus int

const (
	StatusStopped BotStatus = iota
	StatusRunning
)

// CaptureBot owns one capture run: the two island profiles, the vision and
// input collaborators, and the stop channel every bounded wait selects on.
type CaptureBot struct {
	probe  Prober
	input  Inputter
	log    *logger.AppLogger
	timing Timing

	targets   Targets
	partner   *ZoneProfile
	adventure *ZoneProfile
	settings  config.Settings

	// Callbacks for UI updates
	StatusFunc func(string)
	DoneFunc   func()

	status   BotStatus
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex

	// Indirection points for the loops; tests script them.
	captureFn func(*ZoneProfile) (CaptureResult, error)
	enterFn   func(*ZoneProfile) error
	exitFn    func() error
}

// NewCaptureBot creates a bot wired to the given collaborators.
func NewCaptureBot(probe Prober, input Inputter, log *logger.AppLogger) *CaptureBot {
	b := &CaptureBot{
		probe:      probe,
		input:      input,
		log:        log,
		timing:     DefaultTiming(),
		targets:    DefaultTargets(),
		partner:    NewPartnerProfile(),
		adventure:  NewAdventureProfile(),
		settings:   config.Default(),
		StatusFunc: func(string) {},
		DoneFunc:   func() {},
		stopChan:   make(chan struct{}),
	}
	b.captureFn = b.captureOnce
	b.enterFn = b.enterMap
	b.exitFn = b.exitMapToZoneSelect
	return b
}

// Start applies the settings and launches the run goroutine. Interval
// overrides are taken as raw seconds without validation.
func (b *CaptureBot) Start(s config.Settings) {
	b.mu.Lock()
	if b.status == StatusRunning {
		b.mu.Unlock()
		return
	}
	b.settings = s
	b.partner.OverrideIntervals(s.Partner.FixedIntervalSec, s.Partner.PatrolIntervalSec)
	b.adventure.OverrideIntervals(s.Adventure.FixedIntervalSec, s.Adventure.PatrolIntervalSec)
	b.status = StatusRunning
	b.stopChan = make(chan struct{}) // Re-make channel for restart ability
	b.mu.Unlock()

	b.log.Info("capture bot started")
	b.wg.Add(1)
	go b.run()
}

// Stop requests cancellation and waits for all in-flight waits to unwind.
func (b *CaptureBot) Stop() {
	b.mu.Lock()
	if b.status != StatusRunning {
		b.mu.Unlock()
		return
	}
	select {
	case <-b.stopChan:
	default:
		close(b.stopChan)
	}
	b.mu.Unlock()

	b.wg.Wait()
	b.setStatus(StatusStopped)
	b.log.Info("capture bot stopped")
	b.StatusFunc("Status: Stopped")
}

// Status returns the current lifecycle state.
func (b *CaptureBot) Status() BotStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *CaptureBot) setStatus(s BotStatus) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

// startPage is the preflight detection outcome.
type startPage int

const (
	startPageZoneSelect startPage = iota
	startPageInMap
	startPageTimeout
	startPageCancelled
)

// waitForStartPage waits until the session shows a state the run can start
// from: the island select screen, or the map (which is exited first).
func (b *CaptureBot) waitForStartPage() startPage {
	timer := NewTimer(b.timing.StartPageTimeout).Start()
	for {
		if b.cancelled() {
			return startPageCancelled
		}
		b.refresh()
		if b.isInMap() {
			return startPageInMap
		}
		if b.isOnZoneSelect() {
			return startPageZoneSelect
		}
		if timer.Reached() {
			return startPageTimeout
		}
		b.log.Warn("start page not detected (island select screen or in-map task icon). Open the capture pals island select screen and hold still.")
		if !b.sleep(b.timing.StartPageNagEvery) {
			return startPageCancelled
		}
	}
}

// run is the whole capture session, executed on the bot goroutine.
func (b *CaptureBot) run() {
	defer b.wg.Done()
	defer b.setStatus(StatusStopped)
	defer b.DoneFunc()

	switch b.waitForStartPage() {
	case startPageCancelled:
		return
	case startPageTimeout:
		b.log.Error("startup failed: no start page detected within %s. Enter the island select screen (or the map) manually and restart.",
			b.timing.StartPageTimeout)
		return
	case startPageInMap:
		b.log.Info("already in a map, exiting to the island select screen first")
		if err := b.exitFn(); err != nil {
			if !errors.Is(err, ErrCancelled) {
				b.log.Error("in a map but the exit flow failed; check the exit button image and confirm crop")
			}
			return
		}
	}

	s := b.settings
	if !s.Partner.Enabled && !s.Adventure.Enabled {
		b.log.Error("%v", ErrNoZoneSelected)
		return
	}
	partnerMode := Mode(s.Partner.Mode)
	adventureMode := Mode(s.Adventure.Mode)

	// Sync needs both islands; otherwise the enabled islands run in
	// sequence, partner first.
	if s.Sync && s.Partner.Enabled && s.Adventure.Enabled {
		b.log.Info("sync capture enabled (independent island modes, capped islands retire automatically)")
		b.finishRun(b.runSync(partnerMode, adventureMode))
		return
	}

	if s.Partner.Enabled {
		if err := b.runZone(b.partner, partnerMode); errors.Is(err, ErrCancelled) {
			return
		}
	}
	if s.Adventure.Enabled && !b.cancelled() {
		b.finishRun(b.runZone(b.adventure, adventureMode))
	}
}

// runZone dispatches a single-zone loop by mode.
func (b *CaptureBot) runZone(z *ZoneProfile, mode Mode) error {
	if mode == ModePatrol {
		return b.runPatrolLoop(z)
	}
	return b.runFixedLoop(z)
}

// finishRun logs a run-ending error; the loops have already emitted the
// zone-specific diagnostics.
func (b *CaptureBot) finishRun(err error) {
	if err == nil || errors.Is(err, ErrCancelled) {
		return
	}
	b.log.Error("capture run ended: %v", err)
}

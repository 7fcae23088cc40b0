package engine

import (
	"sync"
	"time"

	"github.com/ConserveLee/pal-hunter/internal/logger"
)

// fakeProbe answers FindPresence from per-asset scripts. Queued answers are
// consumed one per read; once a queue drains the last steady value repeats.
type fakeProbe struct {
	mu        sync.Mutex
	queued    map[string][]bool
	steady    map[string]bool
	refreshes int
}

func newFakeProbe() *fakeProbe {
	return &fakeProbe{
		queued: make(map[string][]bool),
		steady: make(map[string]bool),
	}
}

// script queues presence answers for one asset; the final answer becomes the
// steady value once the queue drains.
func (p *fakeProbe) script(asset string, answers ...bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queued[asset] = append(p.queued[asset], answers...)
	if len(answers) > 0 {
		p.steady[asset] = answers[len(answers)-1]
	}
}

// set pins the steady presence answer for one asset.
func (p *fakeProbe) set(asset string, present bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steady[asset] = present
}

func (p *fakeProbe) Refresh() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshes++
	return nil
}

func (p *fakeProbe) FindPresence(t Target) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if q := p.queued[t.Asset]; len(q) > 0 {
		v := q[0]
		p.queued[t.Asset] = q[1:]
		return v
	}
	return p.steady[t.Asset]
}

// fakeInput records injected events. ClickIfPresent succeeds only for assets
// marked clickable, mirroring the real driver's locate-then-click behavior.
type fakeInput struct {
	mu         sync.Mutex
	keys       []string
	clicked    []string
	clickable  map[string]bool
	moveClicks int
}

func newFakeInput() *fakeInput {
	return &fakeInput{clickable: make(map[string]bool)}
}

func (in *fakeInput) PressKey(key string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.keys = append(in.keys, key)
}

func (in *fakeInput) ClickIfPresent(t Target) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.clickable[t.Asset] {
		return false
	}
	in.clicked = append(in.clicked, t.Asset)
	return true
}

func (in *fakeInput) MoveAndClick(xFrac, yFrac float64, button MouseButton, pressDuration float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.moveClicks++
}

func (in *fakeInput) keyCount(key string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	n := 0
	for _, k := range in.keys {
		if k == key {
			n++
		}
	}
	return n
}

func (in *fakeInput) clickOrder() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]string(nil), in.clicked...)
}

// testTiming shrinks every bounded wait to milliseconds so loops settle fast.
func testTiming() Timing {
	return Timing{
		PollTick:            time.Millisecond,
		InteractSettleWait:  time.Millisecond,
		HintAppearTimeout:   20 * time.Millisecond,
		HintGoneTimeout:     15 * time.Millisecond,
		HintReappearTimeout: 20 * time.Millisecond,
		HintStableCount:     2,
		MaxActionAttempts:   3,
		PostCaptureWait:     time.Millisecond,
		EnterMapTimeout:     30 * time.Millisecond,
		ExitMapTimeout:      30 * time.Millisecond,
		ClickRetries:        3,
		AfterClickWait:      time.Millisecond,
		StartButtonWait:     10 * time.Millisecond,
		StartPageTimeout:    30 * time.Millisecond,
		StartPageNagEvery:   time.Millisecond,
	}
}

func testZone(key ZoneKey) *ZoneProfile {
	return &ZoneProfile{
		Key:                   key,
		Name:                  string(key),
		FixedInterval:         time.Millisecond,
		PatrolRefreshInterval: time.Millisecond,
		EnterWait:             time.Millisecond,
	}
}

func newTestBot(probe *fakeProbe, input *fakeInput) *CaptureBot {
	log := logger.NewAppLogger(nil)
	log.SetLevel("disabled")
	b := NewCaptureBot(probe, input, log)
	b.timing = testTiming()
	return b
}

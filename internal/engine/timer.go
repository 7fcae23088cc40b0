package engine

import (
	"time"

	"github.com/ConserveLee/pal-hunter/internal/constants"
)

// Timer is a monotonic deadline helper.
type Timer struct {
	duration time.Duration
	deadline time.Time
}

// NewTimer creates a timer for the given duration, not yet started.
func NewTimer(d time.Duration) *Timer {
	return &Timer{duration: d}
}

// Start arms the deadline and returns the timer for chaining.
func (t *Timer) Start() *Timer {
	t.deadline = time.Now().Add(t.duration)
	return t
}

// Reached reports whether the deadline has passed. An unstarted timer never
// reaches its deadline.
func (t *Timer) Reached() bool {
	return !t.deadline.IsZero() && !time.Now().Before(t.deadline)
}

// Timing bundles every bounded-wait parameter so tests can shrink them.
type Timing struct {
	PollTick            time.Duration
	InteractSettleWait  time.Duration
	HintAppearTimeout   time.Duration
	HintGoneTimeout     time.Duration
	HintReappearTimeout time.Duration
	HintStableCount     int
	MaxActionAttempts   int
	PostCaptureWait     time.Duration
	EnterMapTimeout     time.Duration
	ExitMapTimeout      time.Duration
	ClickRetries        int
	AfterClickWait      time.Duration
	StartButtonWait     time.Duration
	StartPageTimeout    time.Duration
	StartPageNagEvery   time.Duration
}

// DefaultTiming returns the production timing values.
func DefaultTiming() Timing {
	return Timing{
		PollTick:            constants.PollTick,
		InteractSettleWait:  constants.InteractSettleWait,
		HintAppearTimeout:   constants.HintAppearTimeout,
		HintGoneTimeout:     constants.HintGoneTimeout,
		HintReappearTimeout: constants.HintReappearTimeout,
		HintStableCount:     constants.HintStableCount,
		MaxActionAttempts:   constants.MaxActionAttempts,
		PostCaptureWait:     constants.PostCaptureWait,
		EnterMapTimeout:     constants.EnterMapTimeout,
		ExitMapTimeout:      constants.ExitMapTimeout,
		ClickRetries:        constants.ClickRetries,
		AfterClickWait:      constants.AfterClickWait,
		StartButtonWait:     constants.StartButtonWait,
		StartPageTimeout:    constants.StartPageTimeout,
		StartPageNagEvery:   constants.StartPageNagEvery,
	}
}

// cancelled reports whether Stop has been requested.
func (b *CaptureBot) cancelled() bool {
	select {
	case <-b.stopChan:
		return true
	default:
		return false
	}
}

// sleep waits for d at tick granularity, unwinding early on Stop.
// Returns false when the wait was cut short by cancellation.
func (b *CaptureBot) sleep(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	deadline := time.Now().Add(d)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		step := b.timing.PollTick
		if remaining < step {
			step = remaining
		}
		select {
		case <-b.stopChan:
			return false
		case <-time.After(step):
		}
	}
}

// refresh captures a fresh frame, absorbing transient capture errors.
func (b *CaptureBot) refresh() {
	if err := b.probe.Refresh(); err != nil {
		b.log.Debug("screen refresh failed: %v", err)
	}
}

// waitStable polls the target until its presence matches want for stable
// consecutive reads, filtering single-frame misdetections. Returns false on
// timeout; the only error it returns is ErrCancelled.
func (b *CaptureBot) waitStable(t Target, want bool, stable int, timeout time.Duration) (bool, error) {
	timer := NewTimer(timeout).Start()
	streak := 0
	for {
		if b.cancelled() {
			return false, ErrCancelled
		}
		b.refresh()
		if b.probe.FindPresence(t) == want {
			streak++
			if streak >= stable {
				return true, nil
			}
		} else {
			streak = 0
		}
		if timer.Reached() {
			return false, nil
		}
		if !b.sleep(b.timing.PollTick) {
			return false, ErrCancelled
		}
	}
}

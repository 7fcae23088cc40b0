package constants

import "time"

// Capture Pals Configuration
const (
	// Polling
	PollTick = 200 * time.Millisecond // Base tick for bounded waits and interruptible sleeps

	// Capture attempt
	InteractSettleWait  = 2 * time.Second        // Wait after pressing the interact key
	HintAppearTimeout   = 3 * time.Second        // Window for the collect hint to show up
	HintGoneTimeout     = 1500 * time.Millisecond // Per action-key attempt window for the hint to clear
	HintReappearTimeout = 5 * time.Second        // Window to catch the hint cycling straight back (cap hit)
	HintStableCount     = 3                      // Consecutive identical reads before a state flip is accepted
	MaxActionAttempts   = 3                      // Action key presses before suspecting the daily cap
	PostCaptureWait     = 5 * time.Second        // Settle after a confirmed capture

	// Map transitions
	EnterMapTimeout    = 25 * time.Second
	ExitMapTimeout     = 20 * time.Second
	ClickRetries       = 3 // Defensive re-clicks per target within one pass
	AfterClickWait     = 500 * time.Millisecond
	StartButtonWait    = 3 * time.Second // In-map poll window after clicking start
	StartPageTimeout   = 120 * time.Second
	StartPageNagEvery  = 1 * time.Second

	// Loop thresholds
	FixedNoCollectMax  = 3 // Fixed mode: consecutive missing-hint rounds before giving up
	PatrolNoCollectMax = 3 // Patrol mode: same, counted per re-entry round

	// Image Matching
	DefaultTolerance = 60   // Color tolerance for pixel comparison
	MaxFailRate      = 0.03 // Allow up to 3% of pixels to fail matching

	// Zone defaults (overridable from config)
	EnterWait                      = 4 * time.Second
	PartnerFixedIntervalSec        = 35.0
	PartnerPatrolIntervalSec       = 2.0
	AdventureFixedIntervalSec      = 300.0
	AdventurePatrolIntervalSec     = 1200.0
)

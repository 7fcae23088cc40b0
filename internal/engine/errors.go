package engine

import "errors"

// Stop conditions surfaced by the capture loops. A reached daily cap is not
// an error; loops return nil for it.
var (
	ErrEnterMapTimeout         = errors.New("enter map timed out")
	ErrExitMapTimeout          = errors.New("exit map timed out")
	ErrNoHintStreakExceeded    = errors.New("collect hint missing for too many consecutive rounds")
	ErrNoZoneSelected          = errors.New("no island enabled")
	ErrUnrecoverableTransition = errors.New("map transition failed for the only remaining island")
	ErrCancelled               = errors.New("stopped by user")
)

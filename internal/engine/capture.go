package engine

// captureOnce runs one capture attempt while positioned inside the zone's
// map: interact key, wait for the collect hint, then action key until the
// hint clears. Every wait is timeout-bounded; the only error returned is
// ErrCancelled.
func (b *CaptureBot) captureOnce(z *ZoneProfile) (CaptureResult, error) {
	b.input.PressKey(InteractKey)
	if !b.sleep(b.timing.InteractSettleWait) {
		return ResultNoCollectHint, ErrCancelled
	}

	present, err := b.waitStable(b.targets.CollectHint, true, b.timing.HintStableCount, b.timing.HintAppearTimeout)
	if err != nil {
		return ResultNoCollectHint, err
	}
	if !present {
		return ResultNoCollectHint, nil
	}

	cleared := false
	for attempt := 0; attempt < b.timing.MaxActionAttempts; attempt++ {
		b.input.PressKey(ActionKey)
		gone, err := b.waitStable(b.targets.CollectHint, false, b.timing.HintStableCount, b.timing.HintGoneTimeout)
		if err != nil {
			return ResultNoCollectHint, err
		}
		if gone {
			cleared = true
			break
		}
	}
	if !cleared {
		b.log.Warn("%s: action key ignored %d times, daily capture cap suspected",
			z.Name, b.timing.MaxActionAttempts)
		return ResultCapReached, nil
	}

	// The hint cycling straight back means the cap landed on this very
	// attempt, so a longer reappearance window is checked before claiming
	// success.
	back, err := b.waitStable(b.targets.CollectHint, true, b.timing.HintStableCount, b.timing.HintReappearTimeout)
	if err != nil {
		return ResultNoCollectHint, err
	}
	if back {
		b.log.Warn("%s: collect hint reappeared right after the capture, daily cap suspected", z.Name)
		return ResultCapReached, nil
	}

	b.log.Info("%s: captured a pal", z.Name)
	if !b.sleep(b.timing.PostCaptureWait) {
		return ResultOK, ErrCancelled
	}
	return ResultOK, nil
}

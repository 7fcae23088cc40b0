package engine

// isInMap checks the last refreshed frame for the in-map task icon.
func (b *CaptureBot) isInMap() bool {
	return b.probe.FindPresence(b.targets.InMapTask)
}

// isOnZoneSelect checks the last refreshed frame for the island select
// screen. Only the partner island crop is probed; it is always visible on
// that screen.
func (b *CaptureBot) isOnZoneSelect() bool {
	return b.probe.FindPresence(b.targets.PartnerSelect)
}

// enterMap drives the select screen into the zone's map. Idempotent when
// already in-map; any sighting of the task icon short-circuits to success.
// States that are neither in-map nor recognizable are retried until the
// overall timeout.
func (b *CaptureBot) enterMap(z *ZoneProfile) error {
	timer := NewTimer(b.timing.EnterMapTimeout).Start()
	selector := b.selectorTarget(z)

	for {
		if b.cancelled() {
			return ErrCancelled
		}
		b.refresh()
		if b.isInMap() {
			b.log.Info("%s: already in map (task icon visible)", z.Name)
			return nil
		}

		// Click the island button, defensively re-trying within this pass.
		for i := 0; i < b.timing.ClickRetries; i++ {
			b.refresh()
			if b.input.ClickIfPresent(selector) {
				if !b.sleep(b.timing.AfterClickWait) {
					return ErrCancelled
				}
				break
			}
		}

		// Click start; the map may already be loading by now.
		for i := 0; i < b.timing.ClickRetries; i++ {
			b.refresh()
			if b.isInMap() {
				b.log.Info("%s: entered map", z.Name)
				return nil
			}
			if b.input.ClickIfPresent(b.targets.StartBattle) {
				if !b.sleep(b.timing.AfterClickWait) {
					return ErrCancelled
				}
				break
			}
		}

		ok, err := b.waitStable(b.targets.InMapTask, true, 1, b.timing.StartButtonWait)
		if err != nil {
			return err
		}
		if ok {
			b.log.Info("%s: entered map", z.Name)
			return nil
		}

		if timer.Reached() {
			b.log.Error("%s: enter map timed out after %s (check island button crop, start button crop, task icon crop/threshold, and that the island select screen is open)",
				z.Name, b.timing.EnterMapTimeout)
			return ErrEnterMapTimeout
		}
	}
}

// exitMapToZoneSelect returns from the map to the island select screen.
// Idempotent when already there. The exit flow only runs while the task
// icon is visible, so stray clicks never land on unrelated screens.
func (b *CaptureBot) exitMapToZoneSelect() error {
	timer := NewTimer(b.timing.ExitMapTimeout).Start()

	for {
		if b.cancelled() {
			return ErrCancelled
		}
		b.refresh()
		if b.isOnZoneSelect() {
			return nil
		}

		if b.isInMap() {
			// Clear any transient popup before opening the menu.
			b.input.MoveAndClick(b.targets.DismissX, b.targets.DismissY, ButtonLeft, 0.05)
			b.input.PressKey(MenuKey)
			if !b.sleep(b.timing.AfterClickWait) {
				return ErrCancelled
			}

			for i := 0; i < b.timing.ClickRetries; i++ {
				b.refresh()
				if b.input.ClickIfPresent(b.targets.ExitMap) {
					if !b.sleep(b.timing.AfterClickWait) {
						return ErrCancelled
					}
					break
				}
			}
			for i := 0; i < b.timing.ClickRetries; i++ {
				b.refresh()
				if b.input.ClickIfPresent(b.targets.ExitConfirm) {
					if !b.sleep(b.timing.AfterClickWait) {
						return ErrCancelled
					}
					break
				}
			}
		}

		b.refresh()
		if b.isOnZoneSelect() {
			b.log.Info("back on the island select screen")
			return nil
		}
		if timer.Reached() {
			b.log.Error("exit map timed out after %s (check exit button image/crop/threshold, confirm button crop, island select detection)",
				b.timing.ExitMapTimeout)
			return ErrExitMapTimeout
		}
		if !b.sleep(b.timing.PollTick) {
			return ErrCancelled
		}
	}
}

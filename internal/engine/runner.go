package engine

import (
	"errors"

	"github.com/ConserveLee/pal-hunter/internal/constants"
)

// runFixedLoop enters the zone once and stays resident, capturing on the
// zone's fixed interval until the cap is reached, the hint goes missing for
// too many rounds, or the run is stopped.
func (b *CaptureBot) runFixedLoop(z *ZoneProfile) error {
	b.log.Info("%s: fixed capture started, interval=%.1fs", z.Name, z.FixedInterval.Seconds())

	if err := b.enterFn(z); err != nil {
		if !errors.Is(err, ErrCancelled) {
			b.log.Error("%s: enter map failed, stopping fixed capture", z.Name)
		}
		return err
	}
	if !b.sleep(z.EnterWait) {
		return ErrCancelled
	}

	streak := 0
	for {
		if b.cancelled() {
			return ErrCancelled
		}
		result, err := b.captureFn(z)
		if err != nil {
			return err
		}

		switch result {
		case ResultCapReached:
			b.log.Warn("%s: daily capture cap detected, stopping fixed capture", z.Name)
			return nil
		case ResultNoCollectHint:
			streak++
			b.log.Warn("%s: no collect hint this round, maybe waiting on a respawn. streak=%d/%d",
				z.Name, streak, constants.FixedNoCollectMax)
			if streak >= constants.FixedNoCollectMax {
				b.log.Error("%s: no collect hint for %d refresh cycles in a row, the standing spot is probably off. Stopping fixed capture.",
					z.Name, constants.FixedNoCollectMax)
				return ErrNoHintStreakExceeded
			}
		default:
			streak = 0
		}

		if !b.sleep(z.FixedInterval) {
			return ErrCancelled
		}
	}
}

// runPatrolLoop re-enters the zone each round to force a refresh: enter,
// settle, capture, exit, sleep the patrol interval. Any transition failure
// aborts the loop.
func (b *CaptureBot) runPatrolLoop(z *ZoneProfile) error {
	b.log.Info("%s: patrol capture started, refresh interval=%.1fs", z.Name, z.PatrolRefreshInterval.Seconds())

	streak := 0
	for {
		if b.cancelled() {
			return ErrCancelled
		}
		if err := b.enterFn(z); err != nil {
			if !errors.Is(err, ErrCancelled) {
				b.log.Error("%s: enter map failed, stopping patrol capture", z.Name)
			}
			return err
		}
		if !b.sleep(z.EnterWait) {
			return ErrCancelled
		}

		result, err := b.captureFn(z)
		if err != nil {
			return err
		}

		switch result {
		case ResultCapReached:
			b.log.Warn("%s: daily capture cap detected, stopping patrol capture", z.Name)
			return nil
		case ResultNoCollectHint:
			streak++
			b.log.Warn("%s: no collect hint this round, streak=%d/%d",
				z.Name, streak, constants.PatrolNoCollectMax)
			if streak >= constants.PatrolNoCollectMax {
				b.log.Error("%s: no collect hint for %d patrol rounds in a row, route or standing spot is probably off. Stopping patrol capture.",
					z.Name, constants.PatrolNoCollectMax)
				return ErrNoHintStreakExceeded
			}
		default:
			streak = 0
		}

		if err := b.exitFn(); err != nil {
			if !errors.Is(err, ErrCancelled) {
				b.log.Error("%s: exit map failed, stopping patrol capture", z.Name)
			}
			return err
		}
		if !b.sleep(z.PatrolRefreshInterval) {
			return ErrCancelled
		}
	}
}

package engine

import (
	"errors"
	"time"
)

// syncScheduler time-slices one run across both islands. Exactly one zone is
// resident at any instant; the idle zone is visited for a single full round
// whenever the interleave period has elapsed. Each zone retires
// independently on cap or failure and is never visited again.
type syncScheduler struct {
	bot            *CaptureBot
	syncEvery      time.Duration
	lastInterleave time.Time
}

func syncEveryPeriod(a, b *zoneRun) time.Duration {
	if a.period() >= b.period() {
		return a.period()
	}
	return b.period()
}

// runSync coordinates the partner and adventure islands under the given
// per-island modes until both retire or a transition failure aborts the run.
func (b *CaptureBot) runSync(partnerMode, adventureMode Mode) error {
	partner := &zoneRun{profile: b.partner, mode: partnerMode}
	adventure := &zoneRun{profile: b.adventure, mode: adventureMode}
	s := &syncScheduler{bot: b}
	return s.run(partner, adventure)
}

// markResult folds one capture result into the zone's run state. Returns
// true when the zone just retired and residency must move on.
func (s *syncScheduler) markResult(z *zoneRun, result CaptureResult) bool {
	b := s.bot
	switch result {
	case ResultCapReached:
		z.done = true
		b.log.Warn("%s: daily capture cap detected, island retired for this run", z.profile.Name)
		return true
	case ResultNoCollectHint:
		z.noCollectStreak++
		limit := z.noCollectLimit()
		b.log.Warn("%s: no collect hint, streak=%d/%d (%s mode)",
			z.profile.Name, z.noCollectStreak, limit, z.mode)
		if z.noCollectStreak >= limit {
			b.log.Error("%s: no collect hint for %d rounds in a row, island marked failed and retired",
				z.profile.Name, limit)
			z.failed = true
			return true
		}
	default:
		z.noCollectStreak = 0
	}
	return false
}

// enterZone brings the session from wherever it is into the zone's map and
// waits out the settle delay. A failed map entry marks the zone failed.
func (s *syncScheduler) enterZone(z *zoneRun) error {
	b := s.bot
	b.refresh()
	if !b.isOnZoneSelect() {
		if err := b.exitFn(); err != nil {
			if !errors.Is(err, ErrCancelled) {
				b.log.Error("sync capture: exit before entering %s failed", z.profile.Name)
			}
			return err
		}
	}
	if err := b.enterFn(z.profile); err != nil {
		if !errors.Is(err, ErrCancelled) {
			b.log.Error("sync capture: entering %s failed, island marked failed", z.profile.Name)
			z.failed = true
		}
		return err
	}
	if !b.sleep(z.profile.EnterWait) {
		return ErrCancelled
	}
	return nil
}

// visitRound captures once in the zone's map, then always returns to the
// island select screen so residency can move.
func (s *syncScheduler) visitRound(z *zoneRun) (CaptureResult, error) {
	b := s.bot
	result, err := b.captureFn(z.profile)
	if err != nil {
		return result, err
	}
	if exitErr := b.exitFn(); exitErr != nil {
		if errors.Is(exitErr, ErrCancelled) {
			return result, exitErr
		}
		b.log.Error("%s: exit after the round failed, island marked failed", z.profile.Name)
		z.failed = true
	}
	return result, nil
}

// interleave makes one full visit to the idle zone and resets the
// interleave timer. A failed entry retires the zone via enterZone.
func (s *syncScheduler) interleave(z *zoneRun) error {
	b := s.bot
	b.log.Info("sync capture: interleave period reached, visiting %s for one round", z.profile.Name)
	if err := s.enterZone(z); err != nil {
		if errors.Is(err, ErrCancelled) {
			return err
		}
		return nil
	}
	result, err := s.visitRound(z)
	if err != nil {
		return err
	}
	s.markResult(z, result)
	s.lastInterleave = time.Now()
	return nil
}

func (s *syncScheduler) run(partner, adventure *zoneRun) error {
	b := s.bot
	s.syncEvery = syncEveryPeriod(partner, adventure)
	b.log.Info("sync capture: interleave period=%.0fs (partner=%.0fs, adventure=%.0fs)",
		s.syncEvery.Seconds(), partner.period().Seconds(), adventure.period().Seconds())

	// One round on the long-period island first; idling out a long first
	// interval on the short-period island would waste it.
	long, short := partner, adventure
	if adventure.period() > partner.period() {
		long, short = adventure, partner
	}
	b.log.Info("sync capture: visiting the long-period island %s first, resident island will be %s",
		long.profile.Name, short.profile.Name)

	if err := s.enterZone(long); err != nil {
		if errors.Is(err, ErrCancelled) {
			return err
		}
		// Long island unreachable; fall through to residency on the short one.
		if err := s.enterZone(short); err != nil {
			if errors.Is(err, ErrCancelled) {
				return err
			}
			b.log.Error("sync capture: neither island reachable, aborting")
			return ErrUnrecoverableTransition
		}
	} else {
		result, err := s.visitRound(long)
		if err != nil {
			return err
		}
		s.markResult(long, result)
		if err := s.enterZone(short); err != nil {
			if errors.Is(err, ErrCancelled) {
				return err
			}
			b.log.Error("sync capture: resident island unreachable, aborting")
			return ErrUnrecoverableTransition
		}
	}

	current, other := short, long
	s.lastInterleave = time.Now()

	for {
		if b.cancelled() {
			return ErrCancelled
		}
		if !partner.available() && !adventure.available() {
			b.log.Warn("sync capture: both islands done or failed, finishing")
			return nil
		}

		// Swap residency away from a retired zone, re-checking availability
		// before acting on the new role.
		if !current.available() {
			current, other = other, current
			if !current.available() {
				b.log.Warn("sync capture: no island left to visit, finishing")
				return nil
			}
			if err := s.enterZone(current); err != nil {
				if errors.Is(err, ErrCancelled) {
					return err
				}
				continue
			}
			s.lastInterleave = time.Now()
		}

		result, err := b.captureFn(current.profile)
		if err != nil {
			return err
		}
		if s.markResult(current, result) {
			// Back to the select screen so the swap can happen next pass.
			if err := b.exitFn(); err != nil {
				if errors.Is(err, ErrCancelled) {
					return err
				}
				b.log.Error("sync capture: exit before the island swap failed, aborting")
				return ErrUnrecoverableTransition
			}
			continue
		}

		interleaveDue := other.available() && time.Since(s.lastInterleave) >= s.syncEvery

		if current.mode == ModePatrol {
			// Patrol always fully cycles its round.
			if err := b.exitFn(); err != nil {
				if errors.Is(err, ErrCancelled) {
					return err
				}
				b.log.Error("%s: patrol round exit failed, aborting sync", current.profile.Name)
				return ErrUnrecoverableTransition
			}
			if interleaveDue {
				if err := s.interleave(other); err != nil {
					return err
				}
			} else if !b.sleep(current.profile.PatrolRefreshInterval) {
				return ErrCancelled
			}
			if current.available() {
				if err := s.enterZone(current); err != nil {
					if errors.Is(err, ErrCancelled) {
						return err
					}
					continue
				}
			}
		} else {
			if interleaveDue {
				// Fixed mode leaves the map only for the interleave visit.
				if err := b.exitFn(); err != nil {
					if errors.Is(err, ErrCancelled) {
						return err
					}
					b.log.Error("sync capture: exit before the interleave failed, aborting")
					return ErrUnrecoverableTransition
				}
				if err := s.interleave(other); err != nil {
					return err
				}
				if current.available() {
					if err := s.enterZone(current); err != nil {
						if errors.Is(err, ErrCancelled) {
							return err
						}
						continue
					}
				}
			} else if !b.sleep(current.profile.FixedInterval) {
				return ErrCancelled
			}
		}
	}
}

package engine

// Game keys used by the capture flow.
const (
	InteractKey = "c"
	ActionKey   = "f"
	MenuKey     = "esc"
)

// Targets holds every on-screen cue the capture flow probes or clicks.
// Crop rects are fractions of a 1920x1080 reference layout and scale with
// the captured resolution.
type Targets struct {
	CollectHint     Target
	PartnerSelect   Target
	AdventureSelect Target
	StartBattle     Target
	InMapTask       Target
	ExitMap         Target
	ExitConfirm     Target

	// Normalized position for the defensive dismiss click before exiting.
	DismissX, DismissY float64
}

// DefaultTargets returns the stock asset set.
func DefaultTargets() Targets {
	return Targets{
		CollectHint: Target{
			Asset:     "assets/capture_pals/collect.png",
			Kind:      KindImage,
			Crop:      CropRect{1506.0 / 1920, 684.0 / 1080, 1547.0 / 1920, 731.0 / 1080},
			Threshold: 0.65,
		},
		PartnerSelect: Target{
			Asset:     "assets/capture_pals/partner_island.png",
			Kind:      KindImage,
			Crop:      CropRect{707.0 / 1920, 451.0 / 1080, 770.0 / 1920, 504.0 / 1080},
			Threshold: 0.5,
		},
		AdventureSelect: Target{
			Asset:     "assets/capture_pals/adventure_island.png",
			Kind:      KindImage,
			Crop:      CropRect{1318.0 / 1920, 558.0 / 1080, 1378.0 / 1920, 612.0 / 1080},
			Threshold: 0.5,
		},
		StartBattle: Target{
			Asset: "开始",
			Kind:  KindText,
			Crop:  CropRect{1734.0 / 1920, 973.0 / 1080, 1798.0 / 1920, 1013.0 / 1080},
		},
		InMapTask: Target{
			Asset:     "assets/capture_pals/in_map_task.png",
			Kind:      KindImage,
			Crop:      CropRect{1824.0 / 1920, 434.0 / 1080, 1857.0 / 1920, 465.0 / 1080},
			Threshold: 0.65,
		},
		ExitMap: Target{
			Asset:     "assets/capture_pals/exit_map.png",
			Kind:      KindImage,
			Crop:      CropRect{1838.0 / 1920, 968.0 / 1080, 1870.0 / 1920, 1006.0 / 1080},
			Threshold: 0.5,
		},
		ExitConfirm: Target{
			Asset: "定",
			Kind:  KindText,
			Crop:  CropRect{1420.0 / 1920, 740.0 / 1080, 1505.0 / 1920, 788.0 / 1080},
		},
		DismissX: 0.5,
		DismissY: 0.85,
	}
}

// selectorTarget maps a zone to its island button on the select screen.
func (b *CaptureBot) selectorTarget(z *ZoneProfile) Target {
	if z.Key == ZoneAdventure {
		return b.targets.AdventureSelect
	}
	return b.targets.PartnerSelect
}

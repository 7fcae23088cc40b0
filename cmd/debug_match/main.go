package main

import (
	"fmt"
	"os"

	"github.com/ConserveLee/pal-hunter/internal/engine"
	"github.com/ConserveLee/pal-hunter/internal/engine/screen"
)

// Offline crop/threshold checker: load a saved screenshot and report, per
// image target, whether the template matches inside its crop region.
// Usage: go run ./cmd/debug_match [screenshot.png]
func main() {
	screenPath := "debug_screen.png"
	if len(os.Args) > 1 {
		screenPath = os.Args[1]
	}

	searcher := screen.NewSearcher()
	frame, err := searcher.LoadImage(screenPath)
	if err != nil {
		fmt.Printf("Failed to load screen %s: %v\n", screenPath, err)
		return
	}
	searcher.SetFrame(frame)
	fmt.Printf("Screen size: %dx%d\n", frame.Bounds().Dx(), frame.Bounds().Dy())

	targets := engine.DefaultTargets()
	checks := []struct {
		name   string
		target engine.Target
	}{
		{"collect_hint", targets.CollectHint},
		{"partner_island", targets.PartnerSelect},
		{"adventure_island", targets.AdventureSelect},
		{"in_map_task", targets.InMapTask},
		{"exit_map", targets.ExitMap},
	}

	for _, c := range checks {
		fmt.Printf("\n=== %s (%s, threshold %.2f) ===\n", c.name, c.target.Asset, c.target.Threshold)
		x, y, found := searcher.LocateCenter(c.target)
		if found {
			fmt.Printf("  MATCH at center (%d, %d)\n", x, y)
		} else {
			fmt.Printf("  no match (check the crop rect and the saved template)\n")
		}
	}

	fmt.Printf("\nText targets (%q, %q) need a live tesseract install and are not checked here.\n",
		targets.StartBattle.Asset, targets.ExitConfirm.Asset)
}

package screen

import (
	"image"
	"image/color"
	"testing"

	"github.com/ConserveLee/pal-hunter/internal/constants"
	"github.com/ConserveLee/pal-hunter/internal/engine"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCropRegionScaling(t *testing.T) {
	s := NewSearcher()
	s.SetFrame(solidImage(200, 100, color.RGBA{A: 255}))

	region, ok := s.cropRegion(engine.CropRect{X0: 0.25, Y0: 0.5, X1: 0.5, Y1: 1.0})
	if !ok {
		t.Fatal("cropRegion reported an empty region")
	}
	want := image.Rect(50, 50, 100, 100)
	if region != want {
		t.Fatalf("cropRegion = %v, want %v", region, want)
	}
}

func TestCropRegionClampsToFrame(t *testing.T) {
	s := NewSearcher()
	s.SetFrame(solidImage(100, 100, color.RGBA{A: 255}))

	region, ok := s.cropRegion(engine.CropRect{X0: 0.9, Y0: 0.9, X1: 1.5, Y1: 1.5})
	if !ok {
		t.Fatal("cropRegion reported an empty region")
	}
	if !region.In(image.Rect(0, 0, 100, 100)) {
		t.Fatalf("region %v escapes the frame", region)
	}
}

func TestLocateCenterFindsTemplate(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	frame := solidImage(100, 100, color.RGBA{A: 255})
	for y := 40; y < 50; y++ {
		for x := 60; x < 70; x++ {
			frame.SetRGBA(x, y, red)
		}
	}

	s := NewSearcher()
	s.SetFrame(frame)
	s.AddTemplate("red-square", solidImage(10, 10, red))

	target := engine.Target{
		Asset:     "red-square",
		Kind:      engine.KindImage,
		Crop:      engine.CropRect{X0: 0, Y0: 0, X1: 1, Y1: 1},
		Threshold: 0.9,
	}
	x, y, found := s.LocateCenter(target)
	if !found {
		t.Fatal("template not found in the frame")
	}
	if x != 65 || y != 45 {
		t.Fatalf("LocateCenter = (%d, %d), want (65, 45)", x, y)
	}
	if !s.FindPresence(target) {
		t.Fatal("FindPresence disagrees with LocateCenter")
	}
}

func TestFindPresenceRejectsMissingTemplate(t *testing.T) {
	s := NewSearcher()
	s.SetFrame(solidImage(100, 100, color.RGBA{A: 255}))
	s.AddTemplate("blue-square", solidImage(10, 10, color.RGBA{B: 255, A: 255}))

	target := engine.Target{
		Asset:     "blue-square",
		Kind:      engine.KindImage,
		Crop:      engine.CropRect{X0: 0, Y0: 0, X1: 1, Y1: 1},
		Threshold: 0.9,
	}
	if s.FindPresence(target) {
		t.Fatal("found a template the frame does not contain")
	}
}

func TestFindPresenceHonorsCropRegion(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	frame := solidImage(100, 100, color.RGBA{A: 255})
	for y := 40; y < 50; y++ {
		for x := 60; x < 70; x++ {
			frame.SetRGBA(x, y, red)
		}
	}

	s := NewSearcher()
	s.SetFrame(frame)
	s.AddTemplate("red-square", solidImage(10, 10, red))

	// The square sits outside this crop, so the probe must miss it.
	target := engine.Target{
		Asset:     "red-square",
		Kind:      engine.KindImage,
		Crop:      engine.CropRect{X0: 0, Y0: 0, X1: 0.4, Y1: 0.4},
		Threshold: 0.9,
	}
	if s.FindPresence(target) {
		t.Fatal("found the template outside its crop region")
	}
}

func TestLocateCenterWithoutFrame(t *testing.T) {
	s := NewSearcher()
	if _, _, found := s.LocateCenter(engine.Target{Asset: "x", Kind: engine.KindImage}); found {
		t.Fatal("located a target without a captured frame")
	}
}

func TestFailRateFor(t *testing.T) {
	if got := failRateFor(0.65); got < 0.349 || got > 0.351 {
		t.Fatalf("failRateFor(0.65) = %f, want 0.35", got)
	}
	if got := failRateFor(0); got != constants.MaxFailRate {
		t.Fatalf("failRateFor(0) = %f, want the default %f", got, constants.MaxFailRate)
	}
	if got := failRateFor(1.5); got != constants.MaxFailRate {
		t.Fatalf("failRateFor(1.5) = %f, want the default %f", got, constants.MaxFailRate)
	}
}

func TestFrameSizeUsesInjectedFrame(t *testing.T) {
	s := NewSearcher()
	s.SetFrame(solidImage(320, 240, color.RGBA{A: 255}))
	w, h := s.FrameSize()
	if w != 320 || h != 240 {
		t.Fatalf("FrameSize = %dx%d, want 320x240", w, h)
	}
}

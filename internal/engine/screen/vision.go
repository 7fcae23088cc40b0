package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/kbinani/screenshot"
	"github.com/otiai10/gosseract/v2"

	"github.com/ConserveLee/pal-hunter/internal/constants"
	"github.com/ConserveLee/pal-hunter/internal/engine"
)

// Searcher captures the game display and probes targets inside normalized
// crop regions. It implements engine.Prober; the input driver also uses it
// to locate click positions in the last refreshed frame.
type Searcher struct {
	DisplayIndex int

	frame     *image.RGBA
	templates map[string]image.Image
	debugFunc func(string, ...interface{})
}

// NewSearcher creates a new instance
func NewSearcher() *Searcher {
	return &Searcher{
		DisplayIndex: 0, // Default to main display
		templates:    make(map[string]image.Image),
		debugFunc:    func(string, ...interface{}) {},
	}
}

// SetDisplayID sets the target display index for capturing
func (s *Searcher) SetDisplayID(index int) {
	s.DisplayIndex = index
}

// SetDebugFunc sets the debug logging function
func (s *Searcher) SetDebugFunc(f func(string, ...interface{})) {
	s.debugFunc = f
}

// Refresh captures a fresh frame. Probes never reuse a stale frame
// implicitly; callers refresh before every read that must see current state.
func (s *Searcher) Refresh() error {
	bounds := screenshot.GetDisplayBounds(s.DisplayIndex)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return fmt.Errorf("failed to capture screen %d: %v", s.DisplayIndex, err)
	}
	s.frame = img
	return nil
}

// SetFrame injects a pre-captured frame, bypassing the display. Used by the
// offline matcher tool and tests.
func (s *Searcher) SetFrame(img image.Image) {
	if rgba, ok := img.(*image.RGBA); ok {
		s.frame = rgba
		return
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	s.frame = rgba
}

// FrameSize returns the dimensions of the last captured frame, falling back
// to the display bounds before the first Refresh.
func (s *Searcher) FrameSize() (int, int) {
	if s.frame != nil {
		return s.frame.Bounds().Dx(), s.frame.Bounds().Dy()
	}
	bounds := screenshot.GetDisplayBounds(s.DisplayIndex)
	return bounds.Dx(), bounds.Dy()
}

// FindPresence reports whether the target is visible in its crop region of
// the last refreshed frame.
func (s *Searcher) FindPresence(t engine.Target) bool {
	_, _, found := s.LocateCenter(t)
	return found
}

// LocateCenter finds the target and returns the click position in frame
// coordinates. Text targets are located by OCR over the crop region; their
// click position is the region center.
func (s *Searcher) LocateCenter(t engine.Target) (int, int, bool) {
	if s.frame == nil {
		return 0, 0, false
	}
	region, ok := s.cropRegion(t.Crop)
	if !ok {
		return 0, 0, false
	}

	if t.Kind == engine.KindText {
		text, err := s.recognizeText(s.frame.SubImage(region))
		if err != nil {
			s.debugFunc("[OCR] %q failed: %v", t.Asset, err)
			return 0, 0, false
		}
		if !strings.Contains(text, t.Asset) {
			return 0, 0, false
		}
		return (region.Min.X + region.Max.X) / 2, (region.Min.Y + region.Max.Y) / 2, true
	}

	tpl, err := s.loadTemplate(t.Asset)
	if err != nil {
		s.debugFunc("[Match] failed to load template %s: %v", t.Asset, err)
		return 0, 0, false
	}

	maxFailRate := failRateFor(t.Threshold)
	x, y, found := findTemplateInRegion(s.frame, tpl, region, constants.DefaultTolerance, maxFailRate)
	if !found {
		return 0, 0, false
	}
	return x + tpl.Bounds().Dx()/2, y + tpl.Bounds().Dy()/2, true
}

// cropRegion scales the normalized rect to the captured resolution and
// clamps it to the frame.
func (s *Searcher) cropRegion(c engine.CropRect) (image.Rectangle, bool) {
	bounds := s.frame.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	region := image.Rect(
		bounds.Min.X+int(c.X0*w),
		bounds.Min.Y+int(c.Y0*h),
		bounds.Min.X+int(math.Ceil(c.X1*w)),
		bounds.Min.Y+int(math.Ceil(c.Y1*h)),
	).Intersect(bounds)
	return region, !region.Empty()
}

// failRateFor maps the contract's match threshold in [0,1] to the allowed
// fraction of mismatching template pixels.
func failRateFor(threshold float64) float64 {
	if threshold <= 0 || threshold > 1 {
		return constants.MaxFailRate
	}
	return 1 - threshold
}

// AddTemplate seeds the template cache directly, so matching can run
// without filesystem assets.
func (s *Searcher) AddTemplate(name string, img image.Image) {
	s.templates[name] = img
}

// loadTemplate loads and caches a template image from the filesystem.
func (s *Searcher) loadTemplate(path string) (image.Image, error) {
	if img, ok := s.templates[path]; ok {
		return img, nil
	}
	img, err := s.LoadImage(path)
	if err != nil {
		return nil, err
	}
	s.templates[path] = img
	return img, nil
}

// LoadImage loads an image from the filesystem
func (s *Searcher) LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// recognizeText runs OCR over the region.
func (s *Searcher) recognizeText(region image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, region); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage("chi_sim", "eng"); err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", err
	}
	return client.Text()
}

// findTemplateInRegion slides the template over the region, using three key
// pixels for quick rejection and a bounded fail-rate full check. Transparent
// template pixels act as wildcards. Returns the first match's top-left.
func findTemplateInRegion(screenImg, templateImg image.Image, region image.Rectangle, tolerance, maxFailRate float64) (int, int, bool) {
	tBounds := templateImg.Bounds()
	tWidth, tHeight := tBounds.Dx(), tBounds.Dy()

	if region.Dx() < tWidth || region.Dy() < tHeight {
		return 0, 0, false
	}

	getRgbAndAlpha := func(img image.Image, x, y int) (r, g, b, a uint32) {
		c := img.At(x, y)
		r, g, b, a = c.RGBA()
		return r >> 8, g >> 8, b >> 8, a >> 8
	}

	// Key pixels for quick rejection: top-left, center, bottom-right
	tr0, tg0, tb0, ta0 := getRgbAndAlpha(templateImg, tBounds.Min.X, tBounds.Min.Y)
	tr1, tg1, tb1, ta1 := getRgbAndAlpha(templateImg, tBounds.Min.X+tWidth/2, tBounds.Min.Y+tHeight/2)
	tr2, tg2, tb2, ta2 := getRgbAndAlpha(templateImg, tBounds.Max.X-1, tBounds.Max.Y-1)

	for y := region.Min.Y; y <= region.Max.Y-tHeight; y++ {
		for x := region.Min.X; x <= region.Max.X-tWidth; x++ {
			if ta0 > 0 {
				sr, sg, sb, _ := getRgbAndAlpha(screenImg, x, y)
				if !colorSimilar(sr, sg, sb, tr0, tg0, tb0, tolerance) {
					continue
				}
			}
			if ta1 > 0 {
				sr, sg, sb, _ := getRgbAndAlpha(screenImg, x+tWidth/2, y+tHeight/2)
				if !colorSimilar(sr, sg, sb, tr1, tg1, tb1, tolerance) {
					continue
				}
			}
			if ta2 > 0 {
				sr, sg, sb, _ := getRgbAndAlpha(screenImg, x+tWidth-1, y+tHeight-1)
				if !colorSimilar(sr, sg, sb, tr2, tg2, tb2, tolerance) {
					continue
				}
			}

			if matchAt(screenImg, templateImg, x, y, tolerance, maxFailRate, getRgbAndAlpha) {
				return x, y, true
			}
		}
	}

	return 0, 0, false
}

func colorSimilar(r1, g1, b1, r2, g2, b2 uint32, tolerance float64) bool {
	// Simple Euclidean distance in RGB space
	diff := math.Sqrt(float64((r1-r2)*(r1-r2) + (g1-g2)*(g1-g2) + (b1-b2)*(b1-b2)))
	return diff <= tolerance
}

// matchAt does the full pixel comparison at one position, allowing up to
// maxFailRate of the opaque template pixels to miss.
func matchAt(screenImg, templateImg image.Image, sx, sy int, tolerance, maxFailRate float64, getRgbAndAlpha func(image.Image, int, int) (uint32, uint32, uint32, uint32)) bool {
	tBounds := templateImg.Bounds()
	totalPixels := 0
	failedPixels := 0

	for ty := 0; ty < tBounds.Dy(); ty++ {
		for tx := 0; tx < tBounds.Dx(); tx++ {
			tr, tg, tb, ta := getRgbAndAlpha(templateImg, tBounds.Min.X+tx, tBounds.Min.Y+ty)

			// Skip transparent pixels in template (act as wildcard)
			if ta == 0 {
				continue
			}

			totalPixels++
			sr, sg, sb, _ := getRgbAndAlpha(screenImg, sx+tx, sy+ty)

			if !colorSimilar(sr, sg, sb, tr, tg, tb, tolerance) {
				failedPixels++
				if float64(failedPixels)/float64(totalPixels) > maxFailRate && totalPixels > 100 {
					return false
				}
			}
		}
	}

	if totalPixels == 0 {
		return false
	}
	return float64(failedPixels)/float64(totalPixels) <= maxFailRate
}

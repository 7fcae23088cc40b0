package input

import (
	"github.com/go-vgo/robotgo"

	"github.com/ConserveLee/pal-hunter/internal/engine"
	"github.com/ConserveLee/pal-hunter/internal/engine/screen"
)

// Driver injects keyboard and mouse events via robotgo. Click positions are
// resolved against the searcher's last refreshed frame and offset into the
// selected display's global coordinates.
type Driver struct {
	searcher *screen.Searcher

	displayOffsetX int
	displayOffsetY int

	debugFunc func(string, ...interface{})
}

// NewDriver creates a driver sharing the given searcher's frames.
func NewDriver(searcher *screen.Searcher) *Driver {
	return &Driver{
		searcher:  searcher,
		debugFunc: func(string, ...interface{}) {},
	}
}

// SetDebugFunc sets the debug logging function
func (d *Driver) SetDebugFunc(f func(string, ...interface{})) {
	d.debugFunc = f
}

// SetDisplayID records the display's global offset for click translation.
func (d *Driver) SetDisplayID(id int) {
	x, y, _, _ := robotgo.GetDisplayBounds(id)
	d.displayOffsetX = x
	d.displayOffsetY = y
}

// PressKey taps a keyboard key.
func (d *Driver) PressKey(key string) {
	robotgo.KeyTap(key)
}

// ClickIfPresent locates the target in the last refreshed frame and clicks
// its center. Returns true iff a click was issued.
func (d *Driver) ClickIfPresent(t engine.Target) bool {
	x, y, found := d.searcher.LocateCenter(t)
	if !found {
		return false
	}
	globalX := x + d.displayOffsetX
	globalY := y + d.displayOffsetY
	d.debugFunc("Clicking [%s] at (%d, %d) [Global: %d, %d]", t.Asset, x, y, globalX, globalY)
	robotgo.MoveMouse(globalX, globalY)
	robotgo.Click(string(engine.ButtonLeft))
	return true
}

// MoveAndClick clicks at a fixed normalized screen position, holding the
// button for pressDuration seconds.
func (d *Driver) MoveAndClick(xFrac, yFrac float64, button engine.MouseButton, pressDuration float64) {
	w, h := d.searcher.FrameSize()
	globalX := d.displayOffsetX + int(xFrac*float64(w))
	globalY := d.displayOffsetY + int(yFrac*float64(h))
	d.debugFunc("Press-clicking (%s) at [Global: %d, %d] for %.2fs", button, globalX, globalY, pressDuration)
	robotgo.MoveMouse(globalX, globalY)
	robotgo.Toggle(string(button))
	robotgo.MilliSleep(int(pressDuration * 1000))
	robotgo.Toggle(string(button), "up")
}

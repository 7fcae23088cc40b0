package engine

// TargetKind selects how a target asset is matched on screen.
type TargetKind int

const (
	KindImage TargetKind = iota // PNG template, pixel matched
	KindText                    // OCR substring match
)

// CropRect is a screen region in fractions of frame width/height, so the
// same target definition works at any capture resolution.
type CropRect struct {
	X0, Y0, X1, Y1 float64
}

// Target binds an asset to the region and threshold it is matched with.
type Target struct {
	Asset     string // PNG path for KindImage, literal text for KindText
	Kind      TargetKind
	Crop      CropRect
	Threshold float64 // Minimum match score in [0,1]; ignored for KindText
}

// Prober observes the game screen. Refresh must be called before any
// presence check that should see current state; frames are never reused
// implicitly.
type Prober interface {
	Refresh() error
	FindPresence(t Target) bool
}

// MouseButton for MoveAndClick.
type MouseButton string

const (
	ButtonLeft  MouseButton = "left"
	ButtonRight MouseButton = "right"
)

// Inputter injects keyboard and mouse events into the game window.
type Inputter interface {
	PressKey(key string)
	// ClickIfPresent locates the target in the last refreshed frame and
	// clicks its center. Returns true iff a click was issued.
	ClickIfPresent(t Target) bool
	// MoveAndClick clicks at a fixed normalized screen position.
	MoveAndClick(xFrac, yFrac float64, button MouseButton, pressDuration float64)
}

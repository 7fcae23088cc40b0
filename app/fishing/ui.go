package fishing

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// NewFishingPanel creates the UI panel for the fishing module (Placeholder)
func NewFishingPanel() fyne.CanvasObject {
	return container.NewCenter(
		container.NewVBox(
			widget.NewLabel("钓鱼挂机功能开发中..."),
			widget.NewIcon(nil), // Placeholder icon
			widget.NewButton("敬请期待 (TODO)", func() {}),
		),
	)
}

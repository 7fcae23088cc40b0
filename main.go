package main

import (
	"github.com/ConserveLee/pal-hunter/app/capture"
	"github.com/ConserveLee/pal-hunter/app/fishing"
	"github.com/ConserveLee/pal-hunter/app/tools"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

func main() {
	myApp := app.New()
	myWindow := myApp.NewWindow("Pal Hunter Toolset")
	myWindow.Resize(fyne.NewSize(520, 680))

	// Create tabs for different features
	tabs := container.NewAppTabs(
		container.NewTabItem("抓帕鲁", capture.NewCapturePalsPanel()),
		container.NewTabItem("钓鱼", fishing.NewFishingPanel()),
		container.NewTabItem("工具箱", tools.NewToolsPanel(myWindow)),
	)

	tabs.SetTabLocation(container.TabLocationTop)

	myWindow.SetContent(tabs)
	myWindow.ShowAndRun()
}

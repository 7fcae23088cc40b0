package tools

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/kbinani/screenshot"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// NewToolsPanel creates the UI panel for utility tools
func NewToolsPanel(win fyne.Window) fyne.CanvasObject {
	// State
	selectedDisplay := 0

	// --- UI Components ---

	// 1. Screen Selector
	numDisplays := screenshot.NumActiveDisplays()
	var displayOptions []string
	for i := 0; i < numDisplays; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		displayOptions = append(displayOptions, fmt.Sprintf("Display %d (%dx%d)", i, bounds.Dx(), bounds.Dy()))
	}
	if len(displayOptions) == 0 {
		displayOptions = []string{"Display 0 (Default)"}
	}

	displaySelect := widget.NewSelect(displayOptions, func(selected string) {
		var id int
		_, err := fmt.Sscanf(selected, "Display %d", &id)
		if err == nil {
			selectedDisplay = id
		}
	})
	if len(displayOptions) > 0 {
		displaySelect.SetSelected(displayOptions[0])
	}

	// 2. Info Label
	infoLabel := widget.NewLabel("1. 选择屏幕\n2. 点击“截取并裁切”\n3. 在弹出的窗口中框选目标区域\n4. 保存素材并记录 crop 比例")
	infoLabel.Alignment = fyne.TextAlignCenter

	// 3. Action Buttons

	cropBtn := widget.NewButton("截取并裁切 (Capture & Crop)", func() {
		// 1. Capture Full Screen
		bounds := screenshot.GetDisplayBounds(selectedDisplay)
		img, err := screenshot.CaptureRect(bounds)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}

		// 2. Open Cropper Window
		showCropperWindow(win, img)
	})
	cropBtn.Importance = widget.HighImportance

	openDirBtn := widget.NewButton("打开素材目录 (Open Assets)", func() {
		openDir("assets")
	})

	// Layout
	content := container.NewVBox(
		widget.NewLabel("选择屏幕:"),
		displaySelect,
		widget.NewSeparator(),
		infoLabel,
		layoutSpacer(),
		cropBtn,
		layoutSpacer(),
		widget.NewSeparator(),
		openDirBtn,
	)

	return content
}

func layoutSpacer() fyne.CanvasObject {
	return widget.NewLabel("") // rudimentary spacer
}

func openDir(path string) {
	var cmd *exec.Cmd
	absPath, _ := filepath.Abs(path)

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("explorer", absPath)
	default:
		cmd = exec.Command("xdg-open", absPath)
	}
	cmd.Run()
}

func showCropperWindow(parent fyne.Window, fullImg image.Image) {
	w := fyne.CurrentApp().NewWindow("裁切素材 (Crop Template)")
	w.Resize(fyne.NewSize(800, 600))

	// Status label
	lbl := widget.NewLabel("请在图片上拖拽鼠标框选目标...")
	lbl.Alignment = fyne.TextAlignCenter

	// Confirm button (starts hidden or disabled)
	saveBtn := widget.NewButton("保存选区", nil)
	saveBtn.Disable()

	var currentSelection image.Rectangle

	// Cropper Widget
	cropper := NewCropperWidget(fullImg, func(rect image.Rectangle) {
		currentSelection = rect
		lbl.SetText(fmt.Sprintf("已选区: %v\ncrop = %s (点击保存)", rect, formatCrop(rect, fullImg.Bounds())))
		saveBtn.Enable()
	})

	saveBtn.OnTapped = func() {
		if currentSelection.Empty() {
			return
		}

		// Crop logic: SubImage
		subImg, ok := fullImg.(interface {
			SubImage(r image.Rectangle) image.Image
		})

		if !ok {
			dialog.ShowError(fmt.Errorf("image type does not support cropping"), w)
			return
		}

		finalImg := subImg.SubImage(currentSelection)

		// Show Save Dialog Logic
		showSaveForm(w, finalImg, currentSelection, fullImg.Bounds())
	}

	content := container.NewBorder(
		nil,
		container.NewVBox(lbl, saveBtn),
		nil, nil,
		cropper,
	)

	w.SetContent(content)
	w.Show()
}

// formatCrop renders the selection as normalized fractions, ready to be
// pasted into a Target's CropRect.
func formatCrop(sel, frame image.Rectangle) string {
	w := float64(frame.Dx())
	h := float64(frame.Dy())
	return fmt.Sprintf("(%.4f, %.4f, %.4f, %.4f)",
		float64(sel.Min.X)/w, float64(sel.Min.Y)/h,
		float64(sel.Max.X)/w, float64(sel.Max.Y)/h)
}

func showSaveForm(win fyne.Window, img image.Image, sel, frame image.Rectangle) {
	// Preview
	imageObj := canvas.NewImageFromImage(img)
	imageObj.FillMode = canvas.ImageFillContain
	imageObj.SetMinSize(fyne.NewSize(100, 100))

	// The capture flow probes a fixed target set; each choice maps to its
	// expected asset file.
	fileMap := map[string]string{
		"抓帕鲁 - F提示 (Collect Hint)":      "assets/capture_pals/collect.png",
		"抓帕鲁 - 伙伴岛按钮 (Partner Island)":   "assets/capture_pals/partner_island.png",
		"抓帕鲁 - 探险岛按钮 (Adventure Island)": "assets/capture_pals/adventure_island.png",
		"抓帕鲁 - 任务图标 (In-Map Task)":       "assets/capture_pals/in_map_task.png",
		"抓帕鲁 - 退出按钮 (Exit Map)":          "assets/capture_pals/exit_map.png",
	}
	fileOptions := []string{
		"抓帕鲁 - F提示 (Collect Hint)",
		"抓帕鲁 - 伙伴岛按钮 (Partner Island)",
		"抓帕鲁 - 探险岛按钮 (Adventure Island)",
		"抓帕鲁 - 任务图标 (In-Map Task)",
		"抓帕鲁 - 退出按钮 (Exit Map)",
	}

	fileSelect := widget.NewSelect(fileOptions, nil)
	fileSelect.SetSelected(fileOptions[0])

	cropLabel := widget.NewLabel(fmt.Sprintf("crop = %s", formatCrop(sel, frame)))

	content := container.NewVBox(
		widget.NewLabel("确认保存此素材?"),
		container.NewCenter(imageObj),
		widget.NewLabel("保存为 (Target):"),
		fileSelect,
		widget.NewLabel("对应的 crop 比例 (填入 targets.go):"),
		cropLabel,
	)

	dialog.ShowCustomConfirm("保存素材", "保存", "取消", content, func(confirm bool) {
		if !confirm {
			return
		}

		targetPath, ok := fileMap[fileSelect.Selected]
		if !ok {
			return
		}

		// Ensure directory exists before saving
		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			dialog.ShowError(err, win)
			return
		}

		f, err := os.Create(targetPath)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		defer f.Close()

		if err := png.Encode(f, img); err != nil {
			dialog.ShowError(err, win)
			return
		}

		dialog.ShowInformation("成功", fmt.Sprintf("已保存: %s\n(%s)", targetPath, fileSelect.Selected), win)
		win.Close()
	}, win)
}

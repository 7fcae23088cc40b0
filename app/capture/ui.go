package capture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kbinani/screenshot"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/pal-hunter/internal/config"
	"github.com/ConserveLee/pal-hunter/internal/engine"
	"github.com/ConserveLee/pal-hunter/internal/engine/input"
	"github.com/ConserveLee/pal-hunter/internal/engine/screen"
	"github.com/ConserveLee/pal-hunter/internal/logger"
)

const configPath = "capture.toml"

// NewCapturePalsPanel creates the UI panel for dual-island pal capture
func NewCapturePalsPanel() fyne.CanvasObject {
	// --- Data Binding ---
	logData := binding.NewStringList()
	statusData := binding.NewString()
	statusData.Set("Status: Ready")

	appLogger := logger.NewAppLogger(logData)

	settings, err := config.Load(configPath)
	if err != nil {
		appLogger.Warn("capture.toml unreadable, falling back to defaults: %v", err)
	}
	appLogger.SetLevel(settings.LogLevel)

	// --- Bot Initialization ---
	searcher := screen.NewSearcher()
	searcher.SetDebugFunc(appLogger.Debug)
	driver := input.NewDriver(searcher)
	driver.SetDebugFunc(appLogger.Debug)

	bot := engine.NewCaptureBot(searcher, driver, appLogger)
	bot.StatusFunc = func(msg string) { statusData.Set(msg) }

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

	selectedDisplay := 0
	displaySelect := widget.NewSelect(displayOptions, func(selected string) {
		var id int
		_, err := fmt.Sscanf(selected, "Display %d", &id)
		if err != nil {
			id = 0
		}
		selectedDisplay = id
		searcher.SetDisplayID(id)
		driver.SetDisplayID(id)
		appLogger.Info("Switched to Display %d", id)
	})
	initialDisplay := settings.Display
	if initialDisplay < 0 || initialDisplay >= len(displayOptions) {
		initialDisplay = 0
	}
	displaySelect.SetSelected(displayOptions[initialDisplay])

	// 2. Island Settings
	modeOptions := []string{"定点 (Fixed)", "巡逻 (Patrol)"}

	partnerCheck := widget.NewCheck("伙伴岛", nil)
	partnerCheck.SetChecked(settings.Partner.Enabled)
	partnerMode := widget.NewSelect(modeOptions, nil)
	partnerMode.SetSelectedIndex(settings.Partner.Mode)
	partnerFixed := widget.NewEntry()
	partnerFixed.SetText(formatSeconds(settings.Partner.FixedIntervalSec))
	partnerPatrol := widget.NewEntry()
	partnerPatrol.SetText(formatSeconds(settings.Partner.PatrolIntervalSec))

	adventureCheck := widget.NewCheck("探险岛", nil)
	adventureCheck.SetChecked(settings.Adventure.Enabled)
	adventureMode := widget.NewSelect(modeOptions, nil)
	adventureMode.SetSelectedIndex(settings.Adventure.Mode)
	adventureFixed := widget.NewEntry()
	adventureFixed.SetText(formatSeconds(settings.Adventure.FixedIntervalSec))
	adventurePatrol := widget.NewEntry()
	adventurePatrol.SetText(formatSeconds(settings.Adventure.PatrolIntervalSec))

	syncCheck := widget.NewCheck("同步抓帕鲁 (两岛交替)", nil)
	syncCheck.SetChecked(settings.Sync)

	islandGrid := container.NewGridWithColumns(2,
		container.NewVBox(
			partnerCheck,
			partnerMode,
			widget.NewLabel("定点间隔(s):"),
			partnerFixed,
			widget.NewLabel("巡逻间隔(s):"),
			partnerPatrol,
		),
		container.NewVBox(
			adventureCheck,
			adventureMode,
			widget.NewLabel("定点间隔(s):"),
			adventureFixed,
			widget.NewLabel("巡逻间隔(s):"),
			adventurePatrol,
		),
	)

	// 3. Status & Logs
	statusLabel := widget.NewLabelWithData(statusData)
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	logList := widget.NewListWithData(
		logData,
		func() fyne.CanvasObject { return widget.NewLabel("Log entry template") },
		func(i binding.DataItem, o fyne.CanvasObject) { o.(*widget.Label).Bind(i.(binding.String)) },
	)

	// Auto-scroll
	logData.AddListener(binding.NewDataListener(func() {
		list, _ := logData.Get()
		if len(list) > 0 {
			logList.ScrollToBottom()
		}
	}))

	// 4. Buttons
	startBtn := widget.NewButton("Start Capture", nil)
	stopBtn := widget.NewButton("Stop", nil)
	stopBtn.Disable()

	collectSettings := func() config.Settings {
		s := settings
		s.Display = selectedDisplay
		s.Sync = syncCheck.Checked
		s.Partner.Enabled = partnerCheck.Checked
		s.Partner.Mode = partnerMode.SelectedIndex()
		s.Partner.FixedIntervalSec = parseSeconds(partnerFixed.Text, s.Partner.FixedIntervalSec)
		s.Partner.PatrolIntervalSec = parseSeconds(partnerPatrol.Text, s.Partner.PatrolIntervalSec)
		s.Adventure.Enabled = adventureCheck.Checked
		s.Adventure.Mode = adventureMode.SelectedIndex()
		s.Adventure.FixedIntervalSec = parseSeconds(adventureFixed.Text, s.Adventure.FixedIntervalSec)
		s.Adventure.PatrolIntervalSec = parseSeconds(adventurePatrol.Text, s.Adventure.PatrolIntervalSec)
		return s
	}

	setRunningUI := func(running bool) {
		if running {
			startBtn.Disable()
			stopBtn.Enable()
			displaySelect.Disable()
		} else {
			stopBtn.Disable()
			startBtn.Enable()
			displaySelect.Enable()
		}
	}

	startBtn.OnTapped = func() {
		s := collectSettings()
		settings = s
		if err := config.Save(configPath, s); err != nil {
			appLogger.Warn("could not save capture.toml: %v", err)
		}
		statusData.Set("Status: Running")
		setRunningUI(true)
		bot.Start(s)
	}

	stopBtn.OnTapped = func() {
		bot.Stop()
		setRunningUI(false)
	}

	bot.DoneFunc = func() {
		fyne.Do(func() {
			setRunningUI(false)
			statusData.Set("Status: Finished")
		})
	}

	// --- Layout ---
	controls := container.NewVBox(
		widget.NewLabel("抓帕鲁配置:"),
		container.NewHBox(widget.NewLabel("Screen:"), displaySelect),
		islandGrid,
		syncCheck,
		statusLabel,
		container.NewHBox(startBtn, stopBtn),
		widget.NewSeparator(),
		widget.NewLabel("运行日志:"),
	)

	return container.NewBorder(controls, nil, nil, nil, logList)
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 1, 64)
}

// parseSeconds takes the raw entry text as seconds; the engine accepts the
// value without range validation, so only unparseable input falls back.
func parseSeconds(text string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fallback
	}
	return v
}

package training

import (
	"fmt"
	"image/color"

	"eyeflow/internal/core/model"
	"eyeflow/internal/core/motion"
	"eyeflow/internal/core/session"
	"eyeflow/internal/core/trainer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines the handlers the window forwards user input to.
type Callbacks struct {
	OnSpeed   func(motion.Speed)
	OnPattern func(motion.Pattern)
	OnRestart func()
	OnArea    func(width, height, markerSize float64)
}

// Window is the trainer window: header with controls, the training area
// with the ball and an article panel underneath.
type Window struct {
	window        fyne.Window
	callbacks     Callbacks
	ballSize      float32
	ballPos       fyne.Position
	areaSize      fyne.Size
	setLabel      *widget.Label
	timerLabel    *canvas.Text
	pausedLabel   *widget.Label
	historyLabel  *widget.Label
	speedSelect   *widget.Select
	patternSelect *widget.Select
	restartButton *widget.Button
	controls      *fyne.Container
	controlsSlot  *fyne.Container
	header        fyne.CanvasObject
	area          *fyne.Container
	ball          *canvas.Circle
	restOverlay   *fyne.Container
	restCount     *canvas.Text
}

var (
	areaColor     = color.NRGBA{R: 24, G: 32, B: 44, A: 255}
	ballColor     = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	timerColor    = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	completeColor = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	restColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	restShade     = color.NRGBA{R: 0, G: 0, B: 0, A: 150}
)

const (
	windowWidth  = float32(900)
	windowHeight = float32(700)
)

// New creates the trainer window.
func New(app fyne.App, speed motion.Speed, pattern motion.Pattern, ballSize float32) *Window {
	window := app.NewWindow("EyeFlow")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	trainingWindow := &Window{
		window:   window,
		ballSize: ballSize,
	}

	trainingWindow.setLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	trainingWindow.timerLabel = canvas.NewText("", timerColor)
	trainingWindow.timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	trainingWindow.timerLabel.TextSize = 20

	trainingWindow.pausedLabel = widget.NewLabel("Paused")
	trainingWindow.pausedLabel.Hide()

	trainingWindow.historyLabel = widget.NewLabel("")
	trainingWindow.historyLabel.Hide()

	trainingWindow.speedSelect = widget.NewSelect(motion.SpeedLabels(), func(label string) {
		if selected, ok := motion.SpeedFromLabel(label); ok && trainingWindow.callbacks.OnSpeed != nil {
			trainingWindow.callbacks.OnSpeed(selected)
		}
	})
	trainingWindow.patternSelect = widget.NewSelect(motion.PatternLabels(), func(label string) {
		if selected, ok := motion.PatternFromLabel(label); ok && trainingWindow.callbacks.OnPattern != nil {
			trainingWindow.callbacks.OnPattern(selected)
		}
	})
	trainingWindow.setSelectionUnsafe(speed, pattern)

	trainingWindow.restartButton = widget.NewButton("Start New Session", func() {
		if trainingWindow.callbacks.OnRestart != nil {
			trainingWindow.callbacks.OnRestart()
		}
	})
	trainingWindow.restartButton.Importance = widget.HighImportance

	trainingWindow.controls = container.NewHBox(
		widget.NewLabel("Speed"), trainingWindow.speedSelect,
		widget.NewLabel("Pattern"), trainingWindow.patternSelect,
	)
	trainingWindow.controlsSlot = container.NewStack(trainingWindow.controls)

	trainingWindow.header = container.NewHBox(
		trainingWindow.setLabel,
		trainingWindow.timerLabel,
		trainingWindow.pausedLabel,
		layout.NewSpacer(),
		trainingWindow.historyLabel,
		trainingWindow.controlsSlot,
	)

	background := canvas.NewRectangle(areaColor)
	background.CornerRadius = 8

	trainingWindow.ball = canvas.NewCircle(ballColor)

	trainingWindow.restCount = canvas.NewText("", restColor)
	trainingWindow.restCount.TextSize = 48
	trainingWindow.restCount.TextStyle = fyne.TextStyle{Bold: true}
	trainingWindow.restCount.Alignment = fyne.TextAlignCenter

	restTitle := canvas.NewText("Rest your eyes", restColor)
	restTitle.TextSize = 22
	restTitle.Alignment = fyne.TextAlignCenter

	trainingWindow.restOverlay = container.NewStack(
		canvas.NewRectangle(restShade),
		container.NewCenter(container.NewVBox(restTitle, trainingWindow.restCount)),
	)
	trainingWindow.restOverlay.Hide()

	trainingWindow.area = container.New(&areaLayout{window: trainingWindow}, background, trainingWindow.ball, trainingWindow.restOverlay)

	trainingWindow.SetArticles(nil)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	initial := session.NewTimer(model.DefaultSessionConfig()).State()
	trainingWindow.renderUnsafe(trainer.Snapshot{Session: initial})

	return trainingWindow
}

// Window returns the underlying fyne window.
func (trainingWindow *Window) Window() fyne.Window {
	return trainingWindow.window
}

// SetArticles places the article panel below the training area. A nil
// panel leaves the area alone in the window.
func (trainingWindow *Window) SetArticles(articles fyne.CanvasObject) {
	var body fyne.CanvasObject = trainingWindow.area
	if articles != nil {
		split := container.NewVSplit(trainingWindow.area, articles)
		split.SetOffset(0.65)
		body = split
	}
	trainingWindow.window.SetContent(container.NewPadded(
		container.NewBorder(trainingWindow.header, nil, nil, nil, body),
	))
}

// SetCallbacks attaches input handlers. The current area size is reported
// right away when it is already known.
func (trainingWindow *Window) SetCallbacks(callbacks Callbacks) {
	trainingWindow.callbacks = callbacks
	if trainingWindow.areaSize.Width > 0 && trainingWindow.areaSize.Height > 0 {
		trainingWindow.reportArea()
	}
}

// Show brings the window to the front.
func (trainingWindow *Window) Show() {
	trainingWindow.window.Show()
	trainingWindow.window.RequestFocus()
}

// SetPosition moves the ball. It implements motion.Sink and may be called
// from any goroutine.
func (trainingWindow *Window) SetPosition(x, y float64) {
	fyne.Do(func() {
		trainingWindow.moveBallUnsafe(x, y)
	})
}

// Render updates labels, the rest indicator and the controls from a
// trainer snapshot. It may be called from any goroutine.
func (trainingWindow *Window) Render(snapshot trainer.Snapshot) {
	fyne.Do(func() {
		trainingWindow.renderUnsafe(snapshot)
	})
}

// SetCompletedToday shows the number of sessions finished today.
func (trainingWindow *Window) SetCompletedToday(count int) {
	fyne.Do(func() {
		trainingWindow.setCompletedTodayUnsafe(count)
	})
}

// ApplySettings updates the selected speed, pattern and ball size without
// firing the selection callbacks.
func (trainingWindow *Window) ApplySettings(speed motion.Speed, pattern motion.Pattern, ballSize float32) {
	trainingWindow.setSelectionUnsafe(speed, pattern)
	if ballSize != trainingWindow.ballSize {
		trainingWindow.ballSize = ballSize
		trainingWindow.area.Refresh()
		trainingWindow.reportArea()
	}
}

func (trainingWindow *Window) setSelectionUnsafe(speed motion.Speed, pattern motion.Pattern) {
	callbacks := trainingWindow.callbacks
	trainingWindow.callbacks.OnSpeed = nil
	trainingWindow.callbacks.OnPattern = nil
	trainingWindow.speedSelect.SetSelected(speed.Label())
	trainingWindow.patternSelect.SetSelected(pattern.Label())
	trainingWindow.callbacks = callbacks
}

func (trainingWindow *Window) moveBallUnsafe(x, y float64) {
	trainingWindow.ballPos = fyne.NewPos(float32(x), float32(y))
	trainingWindow.ball.Move(trainingWindow.ballPos)
}

func (trainingWindow *Window) renderUnsafe(snapshot trainer.Snapshot) {
	state := snapshot.Session
	trainingWindow.setLabel.SetText(fmt.Sprintf("Set %d/%d", state.DisplaySet(), state.TotalSets))

	switch state.Phase {
	case session.PhaseComplete:
		trainingWindow.timerLabel.Text = "Complete!"
		trainingWindow.timerLabel.Color = completeColor
		trainingWindow.restOverlay.Hide()
		trainingWindow.ball.Hide()
		trainingWindow.showControlsUnsafe(trainingWindow.restartButton)
	case session.PhaseResting:
		trainingWindow.timerLabel.Text = formatSeconds(0)
		trainingWindow.timerLabel.Color = timerColor
		trainingWindow.restCount.Text = formatSeconds(state.SecondsRemaining)
		trainingWindow.restCount.Refresh()
		trainingWindow.restOverlay.Show()
		trainingWindow.ball.Show()
		trainingWindow.historyLabel.Hide()
		trainingWindow.showControlsUnsafe(trainingWindow.controls)
	default:
		trainingWindow.timerLabel.Text = formatSeconds(state.SecondsRemaining)
		trainingWindow.timerLabel.Color = timerColor
		trainingWindow.restOverlay.Hide()
		trainingWindow.ball.Show()
		trainingWindow.historyLabel.Hide()
		trainingWindow.showControlsUnsafe(trainingWindow.controls)
	}
	trainingWindow.timerLabel.Refresh()

	if snapshot.Paused {
		trainingWindow.pausedLabel.Show()
	} else {
		trainingWindow.pausedLabel.Hide()
	}
}

func (trainingWindow *Window) setCompletedTodayUnsafe(count int) {
	trainingWindow.historyLabel.SetText(fmt.Sprintf("Sessions completed today: %d", count))
	trainingWindow.historyLabel.Show()
}

func (trainingWindow *Window) showControlsUnsafe(object fyne.CanvasObject) {
	slot := trainingWindow.controlsSlot
	if len(slot.Objects) == 1 && slot.Objects[0] == object {
		return
	}
	slot.Objects = []fyne.CanvasObject{object}
	slot.Refresh()
}

func (trainingWindow *Window) reportArea() {
	if trainingWindow.callbacks.OnArea == nil {
		return
	}
	trainingWindow.callbacks.OnArea(
		float64(trainingWindow.areaSize.Width),
		float64(trainingWindow.areaSize.Height),
		float64(trainingWindow.ballSize),
	)
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%ds", seconds)
}

// areaLayout stretches the background and rest overlay over the area, keeps
// the ball at its last reported position and reports size changes.
type areaLayout struct {
	window *Window
}

func (layout *areaLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	background := objects[0]
	ball := objects[1]
	rest := objects[2]

	background.Move(fyne.NewPos(0, 0))
	background.Resize(size)
	rest.Move(fyne.NewPos(0, 0))
	rest.Resize(size)

	side := layout.window.ballSize
	ball.Resize(fyne.NewSize(side, side))
	ball.Move(layout.window.ballPos)

	if size != layout.window.areaSize {
		layout.window.areaSize = size
		layout.window.reportArea()
	}
}

func (layout *areaLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	side := layout.window.ballSize * 4
	return fyne.NewSize(side, side)
}

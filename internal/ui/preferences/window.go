package preferences

import (
	"fmt"

	"eyeflow/internal/core/motion"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	onCancel  func()
	speed     *widget.Select
	pattern   *widget.Select
	sound     *widget.Check
	ballSize  *widget.Slider
	sizeLabel *widget.Label
	cancel    *widget.Button
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("EyeFlow Settings")

	speed := widget.NewSelect(motion.SpeedLabels(), nil)
	pattern := widget.NewSelect(motion.PatternLabels(), nil)

	sound := widget.NewCheck("Play a chime on phase changes", nil)

	sizeLabel := widget.NewLabel("")
	ballSize := widget.NewSlider(MinBallSize, MaxBallSize)
	ballSize.Step = 2
	ballSize.OnChanged = func(value float64) {
		sizeLabel.SetText(fmt.Sprintf("%d px", int(value)))
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Defaults", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Speed"), speed),
		container.NewHBox(widget.NewLabel("Pattern"), pattern),
		sound,
		container.NewHBox(widget.NewLabel("Ball size"), sizeLabel),
		ballSize,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 300))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		speed:     speed,
		pattern:   pattern,
		sound:     sound,
		ballSize:  ballSize,
		sizeLabel: sizeLabel,
		cancel:    cancelButton,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		prefs.UpdateSettings(prefs.settings)
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the handler invoked when edits are discarded.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	settings = settings.Sanitized()
	prefs.settings = settings
	prefs.speed.SetSelected(settings.Speed.Label())
	prefs.pattern.SetSelected(settings.Pattern.Label())
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.ballSize.SetValue(float64(settings.BallSize))
	prefs.sizeLabel.SetText(fmt.Sprintf("%d px", int(settings.BallSize)))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if speed, ok := motion.SpeedFromLabel(prefs.speed.Selected); ok {
		settings.Speed = speed
	}
	if pattern, ok := motion.PatternFromLabel(prefs.pattern.Selected); ok {
		settings.Pattern = pattern
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.BallSize = float32(prefs.ballSize.Value)

	prefs.settings = settings.Sanitized()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

package tray

import (
	"fmt"

	"eyeflow/internal/core/session"

	"fyne.io/fyne/v2"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnRestart     func()
	OnPreferences func()
	OnQuit        func()
}

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons are shown while the session runs and while it is paused.
type Icons struct {
	Active fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	host        MenuHost
	icons       Icons
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.refreshMenu()
	manager.refreshIcon()

	return manager
}

// FormatStatus renders the one-line session status, e.g.
// "Set 2/3 · Training 0:14".
func FormatStatus(state session.State) string {
	if state.Phase == session.PhaseComplete {
		return fmt.Sprintf("Set %d/%d · Complete", state.DisplaySet(), state.TotalSets)
	}
	phase := "Training"
	if state.Phase == session.PhaseResting {
		phase = "Resting"
	}
	seconds := state.SecondsRemaining
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("Set %d/%d · %s %d:%02d", state.DisplaySet(), state.TotalSets, phase, seconds/60, seconds%60)
}

// SetSession updates the status line from the session state.
func (manager *Manager) SetSession(state session.State) {
	manager.statusLabel = FormatStatus(state)
	manager.pauseItem.Disabled = state.Phase == session.PhaseComplete
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshIcon()
	manager.refreshStatus()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = status
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon() {
	if manager.host == nil {
		return
	}
	icon := manager.icons.Active
	if manager.paused {
		icon = manager.icons.Paused
	}
	if icon != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host == nil {
		return
	}
	manager.host.SetSystemTrayMenu(fyne.NewMenu("EyeFlow",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show trainer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.pauseItem,
		fyne.NewMenuItem("Restart session", func() {
			if manager.callbacks.OnRestart != nil {
				manager.callbacks.OnRestart()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

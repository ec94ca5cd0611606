package tray

import (
	"testing"

	"eyeflow/internal/core/session"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	menu *fyne.Menu
	icon fyne.Resource
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) { host.menu = menu }

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) { host.icon = icon }

func (host *fakeHost) item(t *testing.T, label string) *fyne.MenuItem {
	t.Helper()
	require.NotNil(t, host.menu)
	for _, item := range host.menu.Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		state session.State
		want  string
	}{
		{session.State{Phase: session.PhaseTraining, CurrentSet: 1, TotalSets: 3, SecondsRemaining: 14}, "Set 1/3 · Training 0:14"},
		{session.State{Phase: session.PhaseResting, CurrentSet: 2, TotalSets: 3, SecondsRemaining: 8}, "Set 2/3 · Resting 0:08"},
		{session.State{Phase: session.PhaseTraining, CurrentSet: 1, TotalSets: 3, SecondsRemaining: 75}, "Set 1/3 · Training 1:15"},
		{session.State{Phase: session.PhaseComplete, CurrentSet: 4, TotalSets: 3}, "Set 3/3 · Complete"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatStatus(tt.state))
	}
}

func TestMenuCallbacks(t *testing.T) {
	host := &fakeHost{}
	var called []string
	New(host, Icons{}, Callbacks{
		OnShow:        func() { called = append(called, "show") },
		OnTogglePause: func() { called = append(called, "pause") },
		OnRestart:     func() { called = append(called, "restart") },
		OnPreferences: func() { called = append(called, "prefs") },
		OnQuit:        func() { called = append(called, "quit") },
	})

	for _, label := range []string{"Show trainer", "Pause", "Restart session", "Preferences", "Quit"} {
		host.item(t, label).Action()
	}

	assert.Equal(t, []string{"show", "pause", "restart", "prefs", "quit"}, called)
}

func TestPausedStatusAndIcon(t *testing.T) {
	host := &fakeHost{}
	active := fyne.NewStaticResource("active.png", []byte{1})
	paused := fyne.NewStaticResource("paused.png", []byte{2})
	manager := New(host, Icons{Active: active, Paused: paused}, Callbacks{})
	assert.Equal(t, active, host.icon)

	manager.SetSession(session.State{Phase: session.PhaseTraining, CurrentSet: 2, TotalSets: 3, SecondsRemaining: 5})
	manager.SetPaused(true)

	assert.Equal(t, "Set 2/3 · Training 0:05 (paused)", manager.Status())
	assert.Equal(t, paused, host.icon)
	host.item(t, "Resume")

	manager.SetPaused(false)
	assert.Equal(t, active, host.icon)
	host.item(t, "Pause")
}

func TestCompleteDisablesPause(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Icons{}, Callbacks{})

	manager.SetSession(session.State{Phase: session.PhaseComplete, CurrentSet: 4, TotalSets: 3})

	assert.True(t, host.item(t, "Pause").Disabled)
	assert.Equal(t, "Set 3/3 · Complete", host.item(t, "Set 3/3 · Complete").Label)
}

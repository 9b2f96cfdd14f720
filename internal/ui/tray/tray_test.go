package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	desktop.App
	menus []*fyne.Menu
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func (app *fakeDesktop) last(t *testing.T) *fyne.Menu {
	t.Helper()
	require.NotEmpty(t, app.menus)
	return app.menus[len(app.menus)-1]
}

func item(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, entry := range menu.Items {
		if entry.Label == label {
			return entry
		}
	}
	t.Fatalf("menu item %q not found", label)
	return nil
}

func TestTrayStatusAndAlarm(t *testing.T) {
	app := &fakeDesktop{}
	manager := New(app, Callbacks{})
	assert.Equal(t, "Status: idle", manager.Status())
	assert.True(t, item(t, app.last(t), "Silence alarm").Disabled)

	manager.SetStatus("countdown 04:59")
	manager.SetAlarm(true)
	assert.Equal(t, "Status: countdown 04:59 (sound on)", manager.Status())
	assert.False(t, item(t, app.last(t), "Silence alarm").Disabled)

	count := len(app.menus)
	manager.SetAlarm(true)
	assert.Len(t, app.menus, count, "unchanged alarm state does not rebuild the menu")
}

func TestTrayCallbacks(t *testing.T) {
	app := &fakeDesktop{}
	var calls []string
	New(app, Callbacks{
		OnShow:        func() { calls = append(calls, "show") },
		OnPauseAll:    func() { calls = append(calls, "pause") },
		OnSilence:     func() { calls = append(calls, "silence") },
		OnPreferences: func() { calls = append(calls, "prefs") },
		OnQuit:        func() { calls = append(calls, "quit") },
	})

	menu := app.last(t)
	for _, label := range []string{"Show", "Pause all timers", "Silence alarm", "Preferences", "Quit"} {
		item(t, menu, label).Action()
	}
	assert.Equal(t, []string{"show", "pause", "silence", "prefs", "quit"}, calls)
}

func TestTrayWithoutApp(t *testing.T) {
	manager := New(nil, Callbacks{})
	manager.SetStatus("x")
	assert.Equal(t, "Status: x", manager.Status())
}

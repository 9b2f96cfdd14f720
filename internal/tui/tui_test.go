package tui

import (
	"testing"
	"time"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"
	"timeapp/internal/core/timekeeper/timekeepertest"
	"timeapp/internal/logging"
	"timeapp/resources"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, mode model.Mode, seconds int, track string) (*Model, *timekeepertest.Clock, *audio.Player) {
	t.Helper()
	clock := timekeepertest.NewClock()
	player := audio.NewPlayer(audio.NewLibrary(resources.Sounds()), audio.Silent(), logging.Nop())
	keeper := timekeeper.New(mode, timekeeper.Config{Clock: clock, Alarm: player})
	require.NoError(t, keeper.Configure(seconds))
	m := NewModel(keeper, player, track)
	t.Cleanup(m.shutdown)
	return m, clock, player
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// pump feeds the next keeper event through Update.
func pump(t *testing.T, m *Model) timekeeper.Event {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- waitForEvent(m.events)() }()
	select {
	case msg := <-done:
		event, ok := msg.(eventMsg)
		require.True(t, ok, "expected an event, got %T", msg)
		_, cmd := m.Update(msg)
		assert.NotNil(t, cmd)
		return timekeeper.Event(event)
	case <-time.After(time.Second):
		t.Fatal("no event")
		return timekeeper.Event{}
	}
}

func TestCountdownExpiresAndRings(t *testing.T) {
	m, clock, player := newModel(t, model.ModeCountdown, 2, "")
	assert.Equal(t, 2, m.value)
	assert.NotNil(t, m.Init())

	m.Update(keyMsg(" "))
	assert.True(t, m.keeper.Running())
	assert.Equal(t, timekeeper.PhaseRunning, pump(t, m).Phase)

	require.True(t, clock.Tick(2))
	assert.Equal(t, 1, pump(t, m).Value)
	assert.Equal(t, timekeeper.EventTick, pump(t, m).Type)
	assert.Equal(t, timekeeper.EventExpired, pump(t, m).Type)

	assert.Equal(t, 1, m.expired)
	assert.Equal(t, 0, m.value)
	assert.Equal(t, model.AlarmState{Playing: true, Track: audio.TrackAlarm}, player.State())
	assert.Contains(t, m.View(), "time's up!")
}

func TestRestartAfterExpiryUsesBaseline(t *testing.T) {
	m, clock, _ := newModel(t, model.ModeCountdown, 1, "")
	m.Update(keyMsg(" "))
	require.True(t, clock.Tick(1))
	require.Eventually(t, func() bool {
		return m.keeper.Phase() == timekeeper.PhaseExpired
	}, time.Second, 5*time.Millisecond)

	m.Update(keyMsg(" "))
	assert.True(t, m.keeper.Running())
	assert.Equal(t, 1, m.keeper.State().Value)
}

func TestStopwatchPlaysTrackWhileRunning(t *testing.T) {
	m, clock, player := newModel(t, model.ModeStopwatch, 0, audio.TrackMusic3)

	m.Update(keyMsg(" "))
	assert.Equal(t, model.AlarmState{Playing: true, Track: audio.TrackMusic3, Loop: true}, player.State())
	require.True(t, clock.Tick(3))
	require.Eventually(t, func() bool {
		return m.keeper.State().Value == 3
	}, time.Second, 5*time.Millisecond)

	m.Update(keyMsg(" "))
	assert.False(t, player.Playing())
	assert.False(t, m.keeper.Running())

	m.Update(keyMsg("r"))
	assert.Equal(t, 0, m.keeper.State().Value)
	view := m.View()
	assert.Contains(t, view, "Timer · music3")
	assert.Contains(t, view, "start/pause")
}

func TestQuitClosesKeeper(t *testing.T) {
	m, _, player := newModel(t, model.ModeStopwatch, 0, audio.TrackMusic1)
	m.Update(keyMsg(" "))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
	assert.False(t, player.Playing())
	assert.False(t, m.keeper.Running())
	assert.Empty(t, m.View())

	msg := waitForEvent(m.events)
	for {
		if _, ok := msg().(closedMsg); ok {
			break
		}
	}
}

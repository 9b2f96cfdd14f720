package stopwatch

import (
	"testing"
	"time"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"
	"timeapp/internal/core/timekeeper/timekeepertest"
	"timeapp/internal/logging"
	"timeapp/resources"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, track string) (*Screen, *timekeepertest.Clock, *audio.Player) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	clock := timekeepertest.NewClock()
	player := audio.NewPlayer(audio.NewLibrary(resources.Sounds()), audio.Silent(), logging.Nop())
	screen := New(Deps{Player: player, Clock: clock, Track: track, Logger: logging.Nop()})
	t.Cleanup(screen.Close)
	return screen, clock, player
}

func TestStopwatchPlaysMusicWhileRunning(t *testing.T) {
	screen, clock, player := newScreen(t, audio.TrackMusic2)

	test.Tap(screen.toggle)
	assert.Equal(t, model.AlarmState{Playing: true, Track: audio.TrackMusic2, Loop: true}, player.State())

	require.True(t, clock.Tick(3))
	require.Eventually(t, func() bool {
		return screen.display.Text() == "00:03"
	}, time.Second, 5*time.Millisecond)

	test.Tap(screen.toggle)
	assert.False(t, player.Playing())
	assert.Equal(t, timekeeper.PhasePaused, screen.Keeper().Phase())
	assert.Equal(t, 3, screen.Keeper().State().Value)
}

func TestStopwatchNeverExpires(t *testing.T) {
	screen, clock, _ := newScreen(t, "")
	events := screen.Keeper().Subscribe(256)

	test.Tap(screen.toggle)
	require.True(t, clock.Tick(120))
	require.Eventually(t, func() bool {
		return screen.Keeper().State().Value == 120
	}, time.Second, 5*time.Millisecond)
	assert.True(t, screen.Keeper().Running())

	screen.Keeper().Pause()
	for {
		select {
		case event := <-events:
			assert.NotEqual(t, timekeeper.EventExpired, event.Type)
		default:
			return
		}
	}
}

func TestStopwatchTrackChangeSwitchesMusic(t *testing.T) {
	screen, _, player := newScreen(t, audio.TrackMusic1)

	screen.tracks.SetSelected(audio.TrackMusic3)
	assert.False(t, player.Playing(), "selection alone does not start music")

	test.Tap(screen.toggle)
	screen.tracks.SetSelected(audio.TrackMusic2)
	assert.Equal(t, model.AlarmState{Playing: true, Track: audio.TrackMusic2, Loop: true}, player.State())
	assert.Equal(t, audio.TrackMusic2, screen.Track())
}

func TestStopwatchUnknownTrackFallsBack(t *testing.T) {
	screen, _, _ := newScreen(t, "missing")
	assert.Equal(t, audio.TrackMusic1, screen.Track())
}

func TestStopwatchResetAndMount(t *testing.T) {
	screen, clock, player := newScreen(t, audio.TrackMusic1)

	test.Tap(screen.toggle)
	require.True(t, clock.Tick(5))
	require.Eventually(t, func() bool {
		return screen.Keeper().State().Value == 5
	}, time.Second, 5*time.Millisecond)

	test.Tap(screen.reset)
	assert.False(t, player.Playing())
	assert.Equal(t, model.TimerState{Value: 0, Mode: model.ModeStopwatch}, screen.Keeper().State())

	test.Tap(screen.toggle)
	screen.Unmount()
	assert.False(t, player.Playing())
	assert.False(t, screen.Keeper().Running())

	screen.Mount()
	assert.Equal(t, timekeeper.PhaseIdle, screen.Keeper().Phase())
}

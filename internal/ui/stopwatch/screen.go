// Package stopwatch is the timer tab: an elapsed-time counter that plays
// looping background music while it runs.
package stopwatch

import (
	"log/slog"
	"slices"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"
	"timeapp/internal/logging"
	"timeapp/internal/ui/timerview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Deps are the collaborators a stopwatch screen needs.
type Deps struct {
	Player *audio.Player
	Clock  timekeeper.Clock
	Track  string
	Logger *slog.Logger
}

// Screen is the timer tab.
type Screen struct {
	keeper *timekeeper.TimeKeeper
	player *audio.Player
	logger *slog.Logger

	tracks  *widget.Select
	display *timerview.Display
	toggle  *widget.Button
	reset   *widget.Button
	content fyne.CanvasObject
}

// New creates the stopwatch screen. An unknown track falls back to the first
// music track.
func New(deps Deps) *Screen {
	screen := &Screen{
		player: deps.Player,
		logger: logging.OrDefault(deps.Logger).With("screen", "stopwatch"),
	}
	options := timekeeper.Config{Clock: deps.Clock}
	if deps.Player != nil {
		options.Alarm = deps.Player
	}
	screen.keeper = timekeeper.New(model.ModeStopwatch, options)

	track := deps.Track
	if !slices.Contains(audio.MusicTracks, track) {
		track = audio.MusicTracks[0]
	}
	screen.tracks = widget.NewSelect(audio.MusicTracks, nil)
	screen.tracks.SetSelected(track)
	screen.tracks.OnChanged = screen.handleTrack

	screen.display = timerview.NewDisplay()
	screen.toggle = widget.NewButton("", screen.handleToggle)
	timerview.SetToggle(screen.toggle, false)
	screen.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), screen.handleReset)
	screen.reset.Importance = widget.HighImportance

	screen.content = container.NewVBox(
		timerview.Title("Timer"),
		screen.display.Object(),
		layout.NewSpacer(),
		container.NewBorder(nil, nil, widget.NewIcon(theme.MediaMusicIcon()), nil, screen.tracks),
		container.NewGridWithColumns(2, screen.toggle, screen.reset),
	)

	timerview.Forward(screen.keeper.Subscribe(16), screen.handleEvent)
	return screen
}

// Content returns the screen layout.
func (screen *Screen) Content() fyne.CanvasObject {
	return screen.content
}

// Keeper exposes the screen's TimeKeeper for status reporting.
func (screen *Screen) Keeper() *timekeeper.TimeKeeper {
	return screen.keeper
}

// Track returns the selected music track.
func (screen *Screen) Track() string {
	return screen.tracks.Selected
}

// Mount resets elapsed time to zero when the tab is shown.
func (screen *Screen) Mount() {
	screen.keeper.Reset()
}

// Unmount pauses the timer and its music when the tab is hidden.
func (screen *Screen) Unmount() {
	screen.keeper.Pause()
	screen.stopMusic()
}

// Close releases the TimeKeeper and silences the music.
func (screen *Screen) Close() {
	screen.keeper.Close()
	screen.stopMusic()
}

func (screen *Screen) handleToggle() {
	if screen.keeper.Running() {
		screen.keeper.Pause()
		screen.stopMusic()
		return
	}
	screen.keeper.Start()
	screen.playMusic()
}

func (screen *Screen) handleReset() {
	screen.keeper.Reset()
}

func (screen *Screen) handleTrack(track string) {
	screen.logger.Debug("music track selected", "track", track)
	if screen.keeper.Running() {
		screen.playMusic()
	}
}

func (screen *Screen) handleEvent(event timekeeper.Event) {
	screen.display.Set(event.Value)
	timerview.SetToggle(screen.toggle, event.Phase == timekeeper.PhaseRunning)
}

func (screen *Screen) playMusic() {
	if screen.player != nil {
		screen.player.Play(screen.Track(), true)
	}
}

func (screen *Screen) stopMusic() {
	if screen.player != nil {
		screen.player.Stop()
	}
}

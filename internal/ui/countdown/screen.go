// Package countdown is the countdown tab: minutes/seconds entry, start/pause,
// reset and an alarm when the time runs out.
package countdown

import (
	"context"
	"fmt"
	"log/slog"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"
	"timeapp/internal/logging"
	"timeapp/internal/ui/animation"
	"timeapp/internal/ui/timerview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Deps are the collaborators a countdown screen needs.
type Deps struct {
	Player  *audio.Player
	Clock   timekeeper.Clock
	Minutes int
	Seconds int
	Logger  *slog.Logger
}

// Screen is the countdown tab.
type Screen struct {
	keeper  *timekeeper.TimeKeeper
	player  *audio.Player
	blinker *animation.Engine
	logger  *slog.Logger

	minutes *widget.Entry
	seconds *widget.Entry
	display *timerview.Display
	toggle  *widget.Button
	reset   *widget.Button
	content fyne.CanvasObject
}

// New creates the countdown screen and its TimeKeeper.
func New(deps Deps) *Screen {
	screen := &Screen{
		player: deps.Player,
		logger: logging.OrDefault(deps.Logger).With("screen", "countdown"),
	}
	options := timekeeper.Config{Clock: deps.Clock}
	if deps.Player != nil {
		options.Alarm = deps.Player
	}
	screen.keeper = timekeeper.New(model.ModeCountdown, options)

	screen.minutes = widget.NewEntry()
	screen.minutes.SetPlaceHolder("min")
	screen.minutes.SetText(fmt.Sprintf("%d", deps.Minutes))
	screen.seconds = widget.NewEntry()
	screen.seconds.SetPlaceHolder("sec")
	screen.seconds.SetText(fmt.Sprintf("%02d", deps.Seconds))

	screen.display = timerview.NewDisplay()
	screen.blinker = animation.New(animation.DefaultConfig(), func(visible bool) {
		fyne.Do(func() {
			screen.display.SetVisible(visible)
		})
	})

	screen.toggle = widget.NewButton("", screen.handleToggle)
	timerview.SetToggle(screen.toggle, false)
	screen.reset = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), screen.handleReset)
	screen.reset.Importance = widget.HighImportance

	inputs := container.NewGridWithColumns(3, screen.minutes, widget.NewLabelWithStyle(":", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}), screen.seconds)
	buttons := container.NewGridWithColumns(2, screen.toggle, screen.reset)
	screen.content = container.NewVBox(
		timerview.Title("Countdown"),
		screen.display.Object(),
		layout.NewSpacer(),
		container.NewCenter(inputs),
		buttons,
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

// Mount resets the timer when the tab is shown.
func (screen *Screen) Mount() {
	screen.blinker.Stop()
	screen.keeper.Reset()
}

// Unmount stops ticking and any alarm when the tab is hidden.
func (screen *Screen) Unmount() {
	screen.blinker.Stop()
	screen.keeper.Pause()
	screen.stopAlarm()
}

// Close releases the TimeKeeper. The screen is unusable afterwards.
func (screen *Screen) Close() {
	screen.blinker.Stop()
	screen.keeper.Close()
	screen.stopAlarm()
}

func (screen *Screen) handleToggle() {
	if screen.keeper.Running() {
		screen.keeper.Pause()
		return
	}
	screen.start()
}

func (screen *Screen) start() {
	screen.blinker.Stop()
	switch screen.keeper.Phase() {
	case timekeeper.PhaseIdle, timekeeper.PhaseExpired:
		duration := model.ParseDurationInput(screen.minutes.Text, screen.seconds.Text)
		if err := screen.keeper.Configure(duration); err != nil {
			screen.logger.Error("configure countdown", "error", err)
			return
		}
	}
	screen.keeper.Start()
}

func (screen *Screen) handleReset() {
	screen.blinker.Stop()
	screen.keeper.Reset()
}

func (screen *Screen) handleEvent(event timekeeper.Event) {
	screen.display.Set(event.Value)
	timerview.SetToggle(screen.toggle, event.Phase == timekeeper.PhaseRunning)

	if event.Type == timekeeper.EventExpired {
		screen.logger.Info("countdown expired")
		if screen.player != nil {
			screen.player.Play(audio.TrackAlarm, false)
		}
		screen.blinker.Start(context.Background())
	}
}

func (screen *Screen) stopAlarm() {
	if screen.player != nil {
		screen.player.Stop()
	}
}

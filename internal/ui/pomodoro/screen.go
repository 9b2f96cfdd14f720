// Package pomodoro is the work-session tab. Besides a countdown picked from
// minute and second wheels, it rings a looping alarm whenever the app is
// sent to the background mid-session.
package pomodoro

import (
	"context"
	"fmt"
	"log/slog"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"
	"timeapp/internal/lifecycle"
	"timeapp/internal/logging"
	"timeapp/internal/ui/animation"
	"timeapp/internal/ui/preferences"
	"timeapp/internal/ui/timerview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Deps are the collaborators a Pomodoro screen needs.
type Deps struct {
	Player  *audio.Player
	Clock   timekeeper.Clock
	Port    *lifecycle.Port
	Minutes int
	Seconds int
	Logger  *slog.Logger
}

// Screen is the Pomodoro tab.
type Screen struct {
	keeper   *timekeeper.TimeKeeper
	player   *audio.Player
	blinker  *animation.Engine
	observer *lifecycle.Observer
	logger   *slog.Logger

	stopObserver context.CancelFunc
	unsubscribe  func()

	minutes *widget.Select
	seconds *widget.Select
	display *timerview.Display
	toggle  *widget.Button
	reset   *widget.Button
	content fyne.CanvasObject
}

// New creates the Pomodoro screen. When port is set, the screen listens for
// lifecycle transitions until Close.
func New(deps Deps) *Screen {
	screen := &Screen{
		player: deps.Player,
		logger: logging.OrDefault(deps.Logger).With("screen", "pomodoro"),
	}
	options := timekeeper.Config{Clock: deps.Clock}
	if deps.Player != nil {
		options.Alarm = deps.Player
	}
	screen.keeper = timekeeper.New(model.ModeCountdown, options)

	screen.minutes = widget.NewSelect(wheel(preferences.MaxPomodoroMinutes, "%d"), nil)
	screen.minutes.SetSelectedIndex(clampIndex(deps.Minutes, preferences.MaxPomodoroMinutes))
	screen.minutes.OnChanged = screen.handleSelection
	screen.seconds = widget.NewSelect(wheel(preferences.MaxSeconds, "%02d"), nil)
	screen.seconds.SetSelectedIndex(clampIndex(deps.Seconds, preferences.MaxSeconds))
	screen.seconds.OnChanged = screen.handleSelection

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

	wheels := container.NewGridWithColumns(4,
		screen.minutes, widget.NewLabel("min"),
		screen.seconds, widget.NewLabel("sec"),
	)
	screen.content = container.NewVBox(
		timerview.Title("Pomodoro"),
		screen.display.Object(),
		layout.NewSpacer(),
		wheels,
		container.NewGridWithColumns(2, screen.toggle, screen.reset),
	)

	timerview.Forward(screen.keeper.Subscribe(16), screen.handleEvent)
	screen.configure()

	if deps.Port != nil && deps.Player != nil {
		screen.observer = lifecycle.NewObserver(screen.keeper, deps.Player, deps.Logger)
		screen.observer.SetDispatch(fyne.Do)
		events, unsubscribe := deps.Port.Subscribe(4)
		ctx, stop := context.WithCancel(context.Background())
		screen.unsubscribe = unsubscribe
		screen.stopObserver = stop
		go screen.observer.Run(ctx, events)
	}
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

// Observer returns the lifecycle observer, or nil when none was wired.
func (screen *Screen) Observer() *lifecycle.Observer {
	return screen.observer
}

// Duration returns the selected session length in seconds.
func (screen *Screen) Duration() int {
	return model.DurationSeconds(screen.minutes.SelectedIndex(), screen.seconds.SelectedIndex())
}

// Mount resets the session to the selected length.
func (screen *Screen) Mount() {
	screen.blinker.Stop()
	screen.keeper.Reset()
	screen.configure()
}

// Unmount pauses the session and silences the alarm.
func (screen *Screen) Unmount() {
	screen.blinker.Stop()
	screen.keeper.Pause()
	screen.stopAlarm()
}

// Close stops lifecycle observation and releases the TimeKeeper.
func (screen *Screen) Close() {
	if screen.stopObserver != nil {
		screen.stopObserver()
		screen.unsubscribe()
	}
	screen.blinker.Stop()
	screen.keeper.Close()
	screen.stopAlarm()
}

func (screen *Screen) handleToggle() {
	if screen.keeper.Running() {
		screen.keeper.Pause()
		return
	}
	screen.blinker.Stop()
	switch screen.keeper.Phase() {
	case timekeeper.PhaseIdle, timekeeper.PhaseExpired:
		screen.configure()
	}
	screen.keeper.Start()
}

func (screen *Screen) handleReset() {
	screen.blinker.Stop()
	screen.keeper.Reset()
}

func (screen *Screen) handleSelection(string) {
	switch screen.keeper.Phase() {
	case timekeeper.PhaseIdle, timekeeper.PhaseExpired:
		screen.blinker.Stop()
		screen.configure()
	}
}

func (screen *Screen) configure() {
	if err := screen.keeper.Configure(screen.Duration()); err != nil {
		screen.logger.Error("configure pomodoro", "error", err)
	}
}

func (screen *Screen) handleEvent(event timekeeper.Event) {
	screen.display.Set(event.Value)
	timerview.SetToggle(screen.toggle, event.Phase == timekeeper.PhaseRunning)

	if event.Type == timekeeper.EventExpired {
		screen.logger.Info("pomodoro session finished")
		if screen.player != nil && !screen.backgroundAlarm() {
			screen.player.Play(audio.TrackAlarm, false)
		}
		screen.blinker.Start(context.Background())
	}
}

// backgroundAlarm reports whether the looping alarm started on backgrounding
// is still ringing. Expiry leaves it alone until the app returns.
func (screen *Screen) backgroundAlarm() bool {
	return screen.player.State() == model.AlarmState{Playing: true, Track: audio.TrackAlarm, Loop: true}
}

func (screen *Screen) stopAlarm() {
	if screen.player != nil {
		screen.player.Stop()
	}
}

func wheel(last int, format string) []string {
	options := make([]string, 0, last+1)
	for i := 0; i <= last; i++ {
		options = append(options, fmt.Sprintf(format, i))
	}
	return options
}

func clampIndex(value, last int) int {
	if value < 0 {
		return 0
	}
	if value > last {
		return last
	}
	return value
}

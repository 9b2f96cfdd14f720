package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"timeapp/internal/audio"
	"timeapp/internal/logging"
)

// State is the visibility the observer believes the app is in.
type State string

const (
	StateForeground State = "foreground"
	StateBackground State = "background"
)

// RunningReporter reports whether a timer is ticking.
type RunningReporter interface {
	Running() bool
}

// Alarm is the playback side the observer drives.
type Alarm interface {
	Play(track string, loop bool)
	Stop()
}

// Observer rings a looping alarm while the app is hidden during a running
// countdown. Leaving the background always silences the alarm, whether or
// not one was started; only starting it depends on the timer.
type Observer struct {
	timer    RunningReporter
	alarm    Alarm
	track    string
	logger   *slog.Logger
	dispatch func(func())

	mu    sync.Mutex
	state State
}

// NewObserver creates an observer that starts in the foreground.
func NewObserver(timer RunningReporter, alarm Alarm, logger *slog.Logger) *Observer {
	return &Observer{
		timer:  timer,
		alarm:  alarm,
		track:  audio.TrackAlarm,
		logger:   logging.OrDefault(logger).With("component", "lifecycle"),
		dispatch: func(fn func()) { fn() },
		state:    StateForeground,
	}
}

// SetDispatch makes Run hand each transition to dispatch instead of applying
// it inline. UI screens pass fyne.Do so transitions are applied on the same
// goroutine as their timer events.
func (observer *Observer) SetDispatch(dispatch func(func())) {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	observer.mu.Lock()
	defer observer.mu.Unlock()
	observer.dispatch = dispatch
}

// State returns the current visibility state.
func (observer *Observer) State() State {
	observer.mu.Lock()
	defer observer.mu.Unlock()
	return observer.state
}

// Handle applies one transition.
func (observer *Observer) Handle(transition Transition) {
	observer.mu.Lock()
	previous := observer.state
	switch transition {
	case EnteredBackground:
		observer.state = StateBackground
	case EnteredForeground:
		observer.state = StateForeground
	default:
		observer.mu.Unlock()
		return
	}
	observer.mu.Unlock()

	switch transition {
	case EnteredBackground:
		if previous != StateForeground {
			return
		}
		if observer.timer != nil && observer.timer.Running() {
			observer.logger.Info("app hidden during countdown, ringing alarm")
			observer.alarm.Play(observer.track, true)
		}
	case EnteredForeground:
		observer.alarm.Stop()
	}
}

// Run handles transitions until ctx is done or events is closed.
func (observer *Observer) Run(ctx context.Context, events <-chan Transition) {
	for {
		select {
		case <-ctx.Done():
			return
		case transition, ok := <-events:
			if !ok {
				return
			}
			observer.mu.Lock()
			dispatch := observer.dispatch
			observer.mu.Unlock()
			dispatch(func() { observer.Handle(transition) })
		}
	}
}

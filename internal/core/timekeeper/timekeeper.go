package timekeeper

import (
	"errors"
	"sync"
	"time"

	"timeapp/internal/core/model"
)

// ErrRunning indicates the keeper must be paused before it can be reconfigured.
var ErrRunning = errors.New("timekeeper is running")

// Stopper is anything the keeper silences on reset, usually an alarm player.
type Stopper interface {
	Stop()
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	Alarm        Stopper
}

// TimeKeeper is the countdown/stopwatch state machine shared by the timer screens.
type TimeKeeper struct {
	mu         sync.Mutex
	mode       model.Mode
	options    Config
	baseline   int
	value      int
	running    bool
	phase      Phase
	generation uint64
	ticker     Ticker
	stopCh     chan struct{}
	events     []chan Event
	closed     bool
}

// New creates an idle TimeKeeper in the given mode.
func New(mode model.Mode, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = model.TickInterval
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if mode != model.ModeStopwatch {
		mode = model.ModeCountdown
	}

	return &TimeKeeper{
		mode:    mode,
		options: options,
		phase:   PhaseIdle,
	}
}

// SetAlarm attaches the player stopped by Reset.
func (keeper *TimeKeeper) SetAlarm(alarm Stopper) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.options.Alarm = alarm
}

// Subscribe registers a new observer channel.
// Sends never block, so observers must keep draining.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Configure sets the countdown starting value. It is a no-op in stopwatch mode.
func (keeper *TimeKeeper) Configure(durationSeconds int) error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.mode == model.ModeStopwatch || keeper.closed {
		return nil
	}
	if keeper.running {
		return ErrRunning
	}
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	keeper.baseline = durationSeconds
	keeper.value = durationSeconds
	keeper.phase = PhaseIdle
	keeper.emitLocked(keeper.eventLocked(EventStateChange, time.Now()))
	return nil
}

// Start begins ticking from the current value.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.closed || keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.phase = PhaseRunning
	keeper.generation++
	generation := keeper.generation
	ticker := keeper.options.Clock.NewTicker(keeper.options.TickInterval)
	stopCh := make(chan struct{})
	keeper.ticker = ticker
	keeper.stopCh = stopCh
	keeper.emitLocked(keeper.eventLocked(EventStateChange, time.Now()))
	keeper.mu.Unlock()

	go keeper.run(generation, ticker, stopCh)
}

// Pause freezes the timer and keeps its value.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}
	keeper.haltLocked()
	keeper.phase = PhasePaused
	keeper.emitLocked(keeper.eventLocked(EventStateChange, time.Now()))
}

// Reset stops ticking, restores the baseline and silences the alarm.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.haltLocked()
	if keeper.mode == model.ModeCountdown {
		keeper.value = keeper.baseline
	} else {
		keeper.value = 0
	}
	keeper.phase = PhaseIdle
	keeper.emitLocked(keeper.eventLocked(EventReset, time.Now()))
	alarm := keeper.options.Alarm
	keeper.mu.Unlock()

	if alarm != nil {
		alarm.Stop()
	}
}

// Close stops ticking for good and closes every observer channel.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.haltLocked()
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// State returns a snapshot of the timer.
func (keeper *TimeKeeper) State() model.TimerState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return model.TimerState{
		Value:   keeper.value,
		Running: keeper.running,
		Mode:    keeper.mode,
	}
}

// Phase returns the current lifecycle phase.
func (keeper *TimeKeeper) Phase() Phase {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.phase
}

// Running reports whether the keeper is ticking.
func (keeper *TimeKeeper) Running() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.running
}

// Mode returns the keeper mode.
func (keeper *TimeKeeper) Mode() model.Mode {
	return keeper.mode
}

func (keeper *TimeKeeper) run(generation uint64, ticker Ticker, stopCh <-chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			if !keeper.tick(generation, tickTime) {
				return
			}
		}
	}
}

// tick applies one tick and reports whether the loop should keep going.
func (keeper *TimeKeeper) tick(generation uint64, tickTime time.Time) bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.running || generation != keeper.generation {
		return false
	}

	if keeper.mode == model.ModeStopwatch {
		keeper.value++
		keeper.emitLocked(keeper.eventLocked(EventTick, tickTime))
		return true
	}

	if keeper.value > 0 {
		keeper.value--
		keeper.emitLocked(keeper.eventLocked(EventTick, tickTime))
	}
	if keeper.value > 0 {
		return true
	}

	keeper.haltLocked()
	keeper.phase = PhaseExpired
	keeper.emitLocked(keeper.eventLocked(EventExpired, tickTime))
	return false
}

// haltLocked cancels the pending tick. Bumping the generation drops a tick
// that already fired but has not acquired the lock yet.
func (keeper *TimeKeeper) haltLocked() {
	keeper.running = false
	keeper.generation++
	if keeper.stopCh != nil {
		close(keeper.stopCh)
		keeper.stopCh = nil
	}
	if keeper.ticker != nil {
		keeper.ticker.Stop()
		keeper.ticker = nil
	}
}

func (keeper *TimeKeeper) eventLocked(eventType EventType, at time.Time) Event {
	return Event{
		Type:  eventType,
		Phase: keeper.phase,
		Mode:  keeper.mode,
		Value: keeper.value,
		At:    at,
	}
}

// emitLocked never blocks on a slow subscriber. Ticks and state changes are
// dropped when a buffer is full; an expiry evicts the oldest buffered event
// instead, since it fires only once per run.
func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
			continue
		default:
		}
		if event.Type != EventExpired {
			continue
		}
		// The keeper is the only sender and holds mu, so one receive frees a slot.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}

package timekeeper

import (
	"time"

	"timeapp/internal/core/model"
)

// Phase describes where a TimeKeeper is in its lifecycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseExpired Phase = "expired"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventExpired     EventType = "expired"
	EventReset       EventType = "reset"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type  EventType
	Phase Phase
	Mode  model.Mode
	Value int
	At    time.Time
}

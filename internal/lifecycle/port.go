// Package lifecycle delivers app foreground/background transitions to the
// screens that care about them.
package lifecycle

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Transition is a change of app visibility.
type Transition string

const (
	EnteredForeground Transition = "foreground"
	EnteredBackground Transition = "background"
)

// Port fans transitions out to subscribers. Sends never block.
type Port struct {
	mu     sync.Mutex
	subs   map[int]chan Transition
	nextID int
	closed bool
}

// NewPort creates an empty port.
func NewPort() *Port {
	return &Port{subs: make(map[int]chan Transition)}
}

// Publish delivers transition to every subscriber with room in its buffer.
func (port *Port) Publish(transition Transition) {
	port.mu.Lock()
	defer port.mu.Unlock()
	for _, ch := range port.subs {
		select {
		case ch <- transition:
		default:
		}
	}
}

// Subscribe returns a channel of transitions and a function that cancels it.
func (port *Port) Subscribe(buffer int) (<-chan Transition, func()) {
	if buffer <= 0 {
		buffer = 4
	}
	ch := make(chan Transition, buffer)

	port.mu.Lock()
	defer port.mu.Unlock()
	if port.closed {
		close(ch)
		return ch, func() {}
	}
	id := port.nextID
	port.nextID++
	port.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			port.mu.Lock()
			defer port.mu.Unlock()
			if sub, ok := port.subs[id]; ok {
				delete(port.subs, id)
				close(sub)
			}
		})
	}
}

// Close closes every subscription.
func (port *Port) Close() {
	port.mu.Lock()
	defer port.mu.Unlock()
	if port.closed {
		return
	}
	port.closed = true
	for id, ch := range port.subs {
		delete(port.subs, id)
		close(ch)
	}
}

// BindFyne forwards the app's lifecycle hooks into port.
// fyne keeps one hook per event, so bind once per app.
func BindFyne(lifecycle fyne.Lifecycle, port *Port) {
	lifecycle.SetOnEnteredForeground(func() {
		port.Publish(EnteredForeground)
	})
	lifecycle.SetOnExitedForeground(func() {
		port.Publish(EnteredBackground)
	})
}

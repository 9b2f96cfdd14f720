// Package timekeepertest provides a manually driven Clock for tests of code
// built on timekeeper.
package timekeepertest

import (
	"sync"
	"sync/atomic"
	"time"

	"timeapp/internal/core/timekeeper"
)

// FireTimeout bounds how long Fire waits for a run loop to accept a tick.
const FireTimeout = 200 * time.Millisecond

// Ticker is a ticker that only ticks when Fire is called.
type Ticker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

// C implements timekeeper.Ticker.
func (ticker *Ticker) C() <-chan time.Time { return ticker.ch }

// Stop implements timekeeper.Ticker.
func (ticker *Ticker) Stop() { ticker.stopped.Store(true) }

// Stopped reports whether Stop was called.
func (ticker *Ticker) Stopped() bool { return ticker.stopped.Load() }

// Fire delivers one tick and reports whether it was received.
func (ticker *Ticker) Fire() bool {
	select {
	case ticker.ch <- time.Now():
		return true
	case <-time.After(FireTimeout):
		return false
	}
}

// Clock hands out manual tickers and remembers them.
type Clock struct {
	mu      sync.Mutex
	tickers []*Ticker
}

// NewClock creates a clock with no tickers.
func NewClock() *Clock {
	return &Clock{}
}

// NewTicker implements timekeeper.Clock.
func (clock *Clock) NewTicker(time.Duration) timekeeper.Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	ticker := &Ticker{ch: make(chan time.Time)}
	clock.tickers = append(clock.tickers, ticker)
	return ticker
}

// Latest returns the most recently created ticker, or nil.
func (clock *Clock) Latest() *Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if len(clock.tickers) == 0 {
		return nil
	}
	return clock.tickers[len(clock.tickers)-1]
}

// Count returns how many tickers were created.
func (clock *Clock) Count() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tickers)
}

// Tick fires the latest ticker n times and reports whether every tick landed.
func (clock *Clock) Tick(n int) bool {
	ticker := clock.Latest()
	if ticker == nil {
		return false
	}
	for i := 0; i < n; i++ {
		if !ticker.Fire() {
			return false
		}
	}
	return true
}

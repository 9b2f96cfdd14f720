// Package animation blinks a timer readout while its alarm is due.
package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains blink timing values.
type Config struct {
	On  time.Duration
	Off time.Duration
}

// Engine toggles visibility on a background goroutine until stopped.
type Engine struct {
	mu         sync.Mutex
	config     Config
	setVisible func(bool)
	cancel     context.CancelFunc
	done       chan struct{}
}

// New creates an engine that reports visibility changes to setVisible.
func New(config Config, setVisible func(bool)) *Engine {
	defaults := DefaultConfig()
	if config.On <= 0 {
		config.On = defaults.On
	}
	if config.Off <= 0 {
		config.Off = defaults.Off
	}
	return &Engine{
		config:     config,
		setVisible: setVisible,
	}
}

// Start begins blinking, replacing any blink already running.
func (engine *Engine) Start(ctx context.Context) {
	engine.Stop()

	engine.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go engine.run(runCtx, done)
}

// Stop ends blinking and leaves the target visible.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	done := engine.done
	engine.cancel = nil
	engine.done = nil
	engine.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	engine.setVisible(true)
}

// Active reports whether a blink is running.
func (engine *Engine) Active() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	for {
		engine.setVisible(false)
		if !sleepWithContext(ctx, engine.config.Off) {
			return
		}
		engine.setVisible(true)
		if !sleepWithContext(ctx, engine.config.On) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

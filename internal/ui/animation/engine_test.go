package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visibilityLog struct {
	mu     sync.Mutex
	frames []bool
}

func (log *visibilityLog) set(visible bool) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.frames = append(log.frames, visible)
}

func (log *visibilityLog) snapshot() []bool {
	log.mu.Lock()
	defer log.mu.Unlock()
	return append([]bool(nil), log.frames...)
}

func TestEngineBlinksUntilStopped(t *testing.T) {
	log := &visibilityLog{}
	engine := New(Config{On: 5 * time.Millisecond, Off: 5 * time.Millisecond}, log.set)

	engine.Start(context.Background())
	assert.True(t, engine.Active())
	require.Eventually(t, func() bool { return len(log.snapshot()) >= 4 }, time.Second, time.Millisecond)

	engine.Stop()
	assert.False(t, engine.Active())
	frames := log.snapshot()
	assert.False(t, frames[0], "blink starts hidden")
	assert.True(t, frames[len(frames)-1], "stop leaves the target visible")

	count := len(frames)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, log.snapshot(), count, "frames after stop")
}

func TestEngineStopWithoutStart(t *testing.T) {
	log := &visibilityLog{}
	engine := New(Config{}, log.set)
	engine.Stop()
	assert.Empty(t, log.snapshot())
	assert.Equal(t, DefaultConfig(), engine.config)
}

func TestEngineStopsWithParentContext(t *testing.T) {
	log := &visibilityLog{}
	engine := New(Config{On: time.Millisecond, Off: time.Millisecond}, log.set)
	ctx, cancel := context.WithCancel(context.Background())
	engine.Start(ctx)
	cancel()

	engine.Stop()
	frames := log.snapshot()
	require.NotEmpty(t, frames)
	assert.True(t, frames[len(frames)-1])
}

func TestSleepWithContext(t *testing.T) {
	assert.True(t, sleepWithContext(context.Background(), time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleepWithContext(ctx, time.Hour))
}

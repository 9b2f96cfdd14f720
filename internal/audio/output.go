package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// DefaultSampleRate is the rate the speaker is opened at.
const DefaultSampleRate = beep.SampleRate(44100)

// Output is the device streams are mixed into.
type Output interface {
	SampleRate() beep.SampleRate
	Play(streamer beep.Streamer)
	Lock()
	Unlock()
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

type speakerOutput struct {
	rate beep.SampleRate
}

// Speaker opens the system speaker once per process and returns it as an Output.
func Speaker() (Output, error) {
	speakerOnce.Do(func() {
		if err := speaker.Init(DefaultSampleRate, DefaultSampleRate.N(time.Second/10)); err != nil {
			speakerErr = fmt.Errorf("init speaker: %w", err)
		}
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return &speakerOutput{rate: DefaultSampleRate}, nil
}

func (output *speakerOutput) SampleRate() beep.SampleRate {
	return output.rate
}

func (output *speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

func (output *speakerOutput) Lock() {
	speaker.Lock()
}

func (output *speakerOutput) Unlock() {
	speaker.Unlock()
}

// silentPeriod is how much audio the silent output consumes per step.
const silentPeriod = time.Second / 10

// silentOutput mixes streams in real time and discards the samples. Used when
// no audio device is available, so tracks still end when they would on a speaker.
type silentOutput struct {
	mu      sync.Mutex
	mixer   beep.Mixer
	running bool
}

// Silent returns an Output that drains streams at the speaker's pace and discards them.
func Silent() Output {
	return &silentOutput{}
}

func (output *silentOutput) SampleRate() beep.SampleRate { return DefaultSampleRate }
func (output *silentOutput) Lock()                       { output.mu.Lock() }
func (output *silentOutput) Unlock()                     { output.mu.Unlock() }

func (output *silentOutput) Play(streamer beep.Streamer) {
	output.mu.Lock()
	defer output.mu.Unlock()
	output.mixer.Add(streamer)
	if !output.running {
		output.running = true
		go output.drain()
	}
}

// drain pulls one period from the mixer per tick and exits once nothing is left.
func (output *silentOutput) drain() {
	ticker := time.NewTicker(silentPeriod)
	defer ticker.Stop()
	samples := make([][2]float64, DefaultSampleRate.N(silentPeriod))
	for range ticker.C {
		output.mu.Lock()
		output.mixer.Stream(samples)
		if output.mixer.Len() == 0 {
			output.running = false
			output.mu.Unlock()
			return
		}
		output.mu.Unlock()
	}
}

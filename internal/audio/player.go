package audio

import (
	"log/slog"
	"sync"

	"timeapp/internal/core/model"
	"timeapp/internal/logging"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

const resampleQuality = 4

// Player plays one track at a time. Each screen owns its own Player.
type Player struct {
	library *Library
	output  Output
	logger  *slog.Logger

	mu         sync.Mutex
	ctrl       *beep.Ctrl
	state      model.AlarmState
	generation uint64
	volume     float64
}

// NewPlayer creates a player drawing tracks from library into output.
func NewPlayer(library *Library, output Output, logger *slog.Logger) *Player {
	if output == nil {
		output = Silent()
	}
	return &Player{
		library: library,
		output:  output,
		logger:  logging.OrDefault(logger).With("component", "audio"),
	}
}

// SetVolume sets the gain exponent (base 2) for tracks started afterwards.
// Zero leaves samples untouched.
func (player *Player) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.volume = volume
}

// Play stops the current track and starts track from the beginning.
// A track that cannot be loaded is logged and nothing plays. The previous
// track is replaced in the same critical section that installs the new one,
// so concurrent calls leave exactly one track audible.
func (player *Player) Play(track string, loop bool) {
	if player.library == nil {
		player.logger.Warn("no sound library, playback skipped", "track", track)
		player.Stop()
		return
	}
	buffer, err := player.library.Load(track)
	if err != nil {
		player.logger.Warn("track unavailable, playback skipped", "track", track, "error", err)
		player.Stop()
		return
	}

	var streamer beep.Streamer
	if loop {
		streamer = beep.Loop(-1, buffer.Streamer(0, buffer.Len()))
	} else {
		streamer = buffer.Streamer(0, buffer.Len())
	}
	if from, to := buffer.Format().SampleRate, player.output.SampleRate(); from != to {
		streamer = beep.Resample(resampleQuality, from, to, streamer)
	}

	player.mu.Lock()
	player.generation++
	generation := player.generation
	streamer = &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   player.volume,
	}
	ctrl := &beep.Ctrl{Streamer: beep.Seq(streamer, beep.Callback(func() {
		player.finished(generation)
	}))}
	previous := player.ctrl
	player.ctrl = ctrl
	player.state = model.AlarmState{Playing: true, Track: track, Loop: loop}
	player.mu.Unlock()

	player.silence(previous)
	player.logger.Debug("playing track", "track", track, "loop", loop)
	player.output.Play(ctrl)
}

// Stop halts playback immediately. It is safe to call when nothing plays.
func (player *Player) Stop() {
	player.mu.Lock()
	ctrl := player.ctrl
	player.ctrl = nil
	player.generation++
	player.state.Playing = false
	player.mu.Unlock()

	player.silence(ctrl)
}

// silence detaches ctrl from the mixer. The output lock is taken without
// holding player.mu: the mixer holds it while it runs the end-of-track
// callback, which needs player.mu.
func (player *Player) silence(ctrl *beep.Ctrl) {
	if ctrl == nil {
		return
	}
	player.output.Lock()
	ctrl.Streamer = nil
	player.output.Unlock()
}

// State returns a snapshot of the playback state.
func (player *Player) State() model.AlarmState {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.state
}

// Playing reports whether a track is currently audible.
func (player *Player) Playing() bool {
	return player.State().Playing
}

func (player *Player) finished(generation uint64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if generation != player.generation {
		return
	}
	player.ctrl = nil
	player.state.Playing = false
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"
	"timeapp/internal/storage"
	"timeapp/internal/tui"
	"timeapp/resources"

	"github.com/spf13/cobra"
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Run a countdown in the terminal",
	Long: `Run a countdown in the terminal. The alarm sounds once when it reaches zero.

Without flags the countdown length comes from the saved preferences.

Examples:
  # Five minute countdown
  timeapp countdown --minutes 5

  # Ninety seconds
  timeapp countdown -m 1 -s 30`,
	Args: cobra.NoArgs,
	RunE: runCountdown,
}

var stopwatchCmd = &cobra.Command{
	Use:   "stopwatch",
	Short: "Run the music timer in the terminal",
	Long: `Count elapsed time in the terminal while a background track loops.

Available tracks: music1, music2, music3.`,
	Args: cobra.NoArgs,
	RunE: runStopwatch,
}

var (
	countdownMinutes int
	countdownSeconds int
	stopwatchTrack   string
)

func init() {
	rootCmd.AddCommand(countdownCmd)
	rootCmd.AddCommand(stopwatchCmd)

	countdownCmd.Flags().IntVarP(&countdownMinutes, "minutes", "m", 0, "countdown minutes (default from preferences)")
	countdownCmd.Flags().IntVarP(&countdownSeconds, "seconds", "s", 0, "countdown seconds (default from preferences)")
	stopwatchCmd.Flags().StringVarP(&stopwatchTrack, "track", "t", "", "background track (default from preferences)")
}

func runCountdown(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings, using defaults", "error", err)
	}
	minutes, seconds := settings.CountdownMinutes, settings.CountdownSeconds
	if cmd.Flags().Changed("minutes") || cmd.Flags().Changed("seconds") {
		minutes, seconds = countdownMinutes, countdownSeconds
	}
	if minutes < 0 || seconds < 0 {
		return fmt.Errorf("countdown length must not be negative: %dm %ds", minutes, seconds)
	}

	player := terminalPlayer(logger, settings.Volume)
	keeper := timekeeper.New(model.ModeCountdown, timekeeper.Config{Alarm: player})
	if err := keeper.Configure(model.DurationSeconds(minutes, seconds)); err != nil {
		return fmt.Errorf("configure countdown: %w", err)
	}

	logger.Info("terminal countdown", "seconds", model.DurationSeconds(minutes, seconds))
	return tui.Run(cmd.Context(), tui.NewModel(keeper, player, ""))
}

func runStopwatch(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings, using defaults", "error", err)
	}
	track := settings.MusicTrack
	if cmd.Flags().Changed("track") {
		track = stopwatchTrack
	}
	if !slices.Contains(audio.MusicTracks, track) {
		return fmt.Errorf("unknown track %q, choose one of %v", track, audio.MusicTracks)
	}

	player := terminalPlayer(logger, settings.Volume)
	keeper := timekeeper.New(model.ModeStopwatch, timekeeper.Config{Alarm: player})

	logger.Info("terminal stopwatch", "track", track)
	return tui.Run(cmd.Context(), tui.NewModel(keeper, player, track))
}

func terminalPlayer(logger *slog.Logger, volume float64) *audio.Player {
	output, err := audio.Speaker()
	if err != nil {
		logger.Warn("audio unavailable, running silent", "error", err)
		output = audio.Silent()
	}
	player := audio.NewPlayer(audio.NewLibrary(resources.Sounds()), output, logger)
	player.SetVolume(volume)
	return player
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"timeapp/internal/logging"

	"github.com/spf13/cobra"
)

const (
	appName  = "timeapp"
	appID    = "io.timeapp.app"
	appTitle = "Time"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Countdown, music timer and Pomodoro",
	Long: `timeapp opens a four-tab window: a countdown, a stopwatch that plays
background music, a Pomodoro timer that rings when the app is hidden
mid-session, and a local profile.

The countdown and stopwatch subcommands run the same timers in the terminal.`,
	SilenceUsage: true,
	RunE:         runGUI,
}

var (
	logLevel string
	logFile  string
)

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.LevelInfo, "log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file instead of the default destination")
}

// newLogger builds the command's logger. Without --log-file it writes to
// fallback; the terminal commands pass io.Discard so logs never draw over
// the UI.
func newLogger(fallback io.Writer) (*slog.Logger, func(), error) {
	if logFile == "" {
		return logging.New(fallback, logLevel), func() {}, nil
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(file, logLevel), func() { _ = file.Close() }, nil
}

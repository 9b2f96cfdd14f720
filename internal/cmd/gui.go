package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"timeapp/internal/audio"
	"timeapp/internal/lifecycle"
	"timeapp/internal/platform"
	"timeapp/internal/storage"
	"timeapp/internal/ui/countdown"
	"timeapp/internal/ui/pomodoro"
	"timeapp/internal/ui/preferences"
	"timeapp/internal/ui/profile"
	"timeapp/internal/ui/shell"
	"timeapp/internal/ui/stopwatch"
	"timeapp/internal/ui/tray"
	"timeapp/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"
)

const trayRefreshInterval = time.Second

func runGUI(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	guard, err := platform.AcquireSingleInstance(appID)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is running, asked it to come forward", "error", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("load settings, using defaults", "error", err)
	}

	output, err := audio.Speaker()
	if err != nil {
		logger.Warn("audio unavailable, running silent", "error", err)
		output = audio.Silent()
	}
	library := audio.NewLibrary(resources.Sounds())
	var players []*audio.Player
	newPlayer := func() *audio.Player {
		player := audio.NewPlayer(library, output, logger)
		player.SetVolume(settings.Volume)
		players = append(players, player)
		return player
	}

	port := lifecycle.NewPort()
	defer port.Close()
	lifecycle.BindFyne(fyneApp.Lifecycle(), port)

	window := fyneApp.NewWindow(appTitle)

	countdownPlayer, stopwatchPlayer, pomodoroPlayer := newPlayer(), newPlayer(), newPlayer()
	countdownScreen := countdown.New(countdown.Deps{
		Player:  countdownPlayer,
		Minutes: settings.CountdownMinutes,
		Seconds: settings.CountdownSeconds,
		Logger:  logger,
	})
	stopwatchScreen := stopwatch.New(stopwatch.Deps{
		Player: stopwatchPlayer,
		Track:  settings.MusicTrack,
		Logger: logger,
	})
	pomodoroScreen := pomodoro.New(pomodoro.Deps{
		Player:  pomodoroPlayer,
		Port:    port,
		Minutes: settings.PomodoroMinutes,
		Seconds: settings.PomodoroSeconds,
		Logger:  logger,
	})

	prefs := preferences.New(window, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Error("save settings", "error", err)
		}
		for _, player := range players {
			player.SetVolume(updated.Volume)
		}
		logger.Info("preferences saved")
	})
	profileScreen := profile.New(profile.Deps{
		Window:        window,
		OnPreferences: prefs.Show,
		Logger:        logger,
	})

	tabs := shell.New(
		shell.Tab{Title: "Countdown", Icon: theme.HistoryIcon(), Screen: countdownScreen},
		shell.Tab{Title: "Timer", Icon: theme.MediaMusicIcon(), Screen: stopwatchScreen},
		shell.Tab{Title: "Pomodoro", Icon: theme.MediaRecordIcon(), Screen: pomodoroScreen},
		shell.Tab{Title: "Me", Icon: theme.AccountIcon(), Screen: profileScreen},
	)
	defer tabs.Close()

	window.SetContent(tabs.Content())
	window.Resize(fyne.NewSize(390, 720))
	window.SetMaster()

	guard.Serve(func() {
		fyne.Do(func() {
			window.Show()
			window.RequestFocus()
		})
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		sources := []tray.Source{
			{Name: "countdown", Timer: countdownScreen.Keeper(), Sound: countdownPlayer},
			{Name: "timer", Timer: stopwatchScreen.Keeper(), Sound: stopwatchPlayer},
			{Name: "pomodoro", Timer: pomodoroScreen.Keeper(), Sound: pomodoroPlayer},
		}
		startTray(ctx, desktopApp, tray.Callbacks{
			OnShow: func() {
				window.Show()
				window.RequestFocus()
			},
			OnPauseAll: tabs.PauseAll,
			OnSilence: func() {
				for _, player := range players {
					player.Stop()
				}
			},
			OnPreferences: prefs.Show,
			OnQuit:        fyneApp.Quit,
		}, sources)
	} else {
		logger.Debug("system tray unsupported on this platform")
	}

	go func() {
		<-ctx.Done()
		if cmd.Context().Err() != nil {
			fyne.Do(fyneApp.Quit)
		}
	}()

	logger.Info("starting", "app", appID)
	window.ShowAndRun()
	logger.Info("stopped")
	return nil
}

func startTray(ctx context.Context, desktopApp desktop.App, callbacks tray.Callbacks, sources []tray.Source) {
	desktopApp.SetSystemTrayIcon(resources.AppIcon())
	manager := tray.New(desktopApp, callbacks)

	go func() {
		ticker := time.NewTicker(trayRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(func() {
					manager.Refresh(sources)
				})
			}
		}
	}()
}

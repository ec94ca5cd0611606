package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"eyeflow/internal/audio"
	"eyeflow/internal/core/library"
	"eyeflow/internal/core/model"
	"eyeflow/internal/core/motion"
	"eyeflow/internal/core/session"
	"eyeflow/internal/core/trainer"
	"eyeflow/internal/platform"
	"eyeflow/internal/storage"
	librarypanel "eyeflow/internal/ui/library"
	"eyeflow/internal/ui/preferences"
	"eyeflow/internal/ui/training"
	"eyeflow/internal/ui/tray"
	"eyeflow/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName      = "EyeFlow"
	appID        = "com.eyeflow.app"
	historyQuery = 3 * time.Second
)

type options struct {
	speed      string
	pattern    string
	mute       bool
	historyDir string
	logLevel   string
}

func main() {
	opts := parseFlags(flag.CommandLine, os.Args[1:])

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(opts.logLevel)}))
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName, nil)
	if err != nil {
		logger.Info("single instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		logger.Warn("resolve config dir", "error", err)
		configDir = "."
	}

	settingsStore := storage.NewSettingsStore(configDir)
	settings, err := settingsStore.Load()
	if err != nil {
		logger.Warn("load settings", "path", settingsStore.Path(), "error", err)
	}
	settings = applyOptions(storage.ApplyEnv(settings), opts, logger).Sanitized()

	historyDir := opts.historyDir
	if historyDir == "" {
		historyDir = configDir
	}
	history, err := storage.OpenHistory(historyDir)
	if err != nil {
		logger.Warn("open session history", "dir", historyDir, "error", err)
		history = nil
	} else {
		logLastSession(history, logger)
	}

	var player audio.Player = audio.Silent{}
	chime, err := audio.NewChime()
	if err != nil {
		logger.Warn("audio cues disabled", "error", err)
	} else {
		chime.SetEnabled(settings.SoundEnabled && !opts.mute)
		player = chime
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo("eyeflow_active.png"))

	articles := library.New(library.DefaultEntries(), resources.Article)
	trainingWindow := training.New(fyneApp, settings.Speed, settings.Pattern, settings.BallSize)
	trainingWindow.SetArticles(librarypanel.NewPanel(articles, trainingWindow.Window()).Content())
	trainingWindow.Window().SetMaster()

	keeper := trainer.New(model.DefaultSessionConfig(), trainer.Config{Logger: logger}, trainingWindow)
	keeper.SelectSpeed(settings.Speed)
	keeper.SelectPattern(settings.Pattern)
	trainingWindow.SetCallbacks(training.Callbacks{
		OnSpeed:   keeper.SelectSpeed,
		OnPattern: keeper.SelectPattern,
		OnRestart: keeper.Restart,
		OnArea:    keeper.SetArea,
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		previous := settings
		settings = updated
		if err := settingsStore.Save(settings); err != nil {
			logger.Warn("save settings", "path", settingsStore.Path(), "error", err)
		}
		if chime != nil {
			chime.SetEnabled(settings.SoundEnabled && !opts.mute)
		}
		applyMotionDefaults(keeper, previous, settings)
		selected := keeper.Snapshot().Motion
		trainingWindow.ApplySettings(selected.Speed, selected.Pattern, settings.BallSize)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Active: resources.MustLogo("eyeflow_active.png"),
			Paused: resources.MustLogo("eyeflow_paused.png"),
		}, tray.Callbacks{
			OnShow:        trainingWindow.Show,
			OnTogglePause: func() { togglePause(keeper) },
			OnRestart:     keeper.Restart,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trainingWindow.Window().SetCloseIntercept(trainingWindow.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	recorder := &sessionRecorder{
		history: history,
		logger:  logger,
		window:  trainingWindow,
	}

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			handleEvent(event, trainingWindow, trayManager, player, recorder)
		}
	}()

	guard.SetOnActivate(func() {
		fyne.Do(trainingWindow.Show)
	})

	fyneApp.Lifecycle().SetOnStarted(keeper.Start)
	trainingWindow.Show()
	fyneApp.Run()

	keeper.Stop()
	if chime != nil {
		chime.Close()
	}
	if history != nil {
		if err := history.Close(); err != nil {
			logger.Warn("close session history", "error", err)
		}
	}
}

func parseFlags(flagSet *flag.FlagSet, args []string) options {
	var opts options
	flagSet.StringVar(&opts.speed, "speed", "", "initial speed: slow, medium or fast")
	flagSet.StringVar(&opts.pattern, "pattern", "", "initial pattern: random, infinity or circle")
	flagSet.BoolVar(&opts.mute, "mute", false, "disable audio cues")
	flagSet.StringVar(&opts.historyDir, "history", "", "directory for the session history database")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	_ = flagSet.Parse(args)
	return opts
}

func parseLogLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func applyOptions(settings preferences.Settings, opts options, logger *slog.Logger) preferences.Settings {
	if opts.speed != "" {
		speed, err := motion.ParseSpeed(opts.speed)
		if err != nil {
			logger.Warn("ignore -speed", "error", err)
		} else {
			settings.Speed = speed
		}
	}
	if opts.pattern != "" {
		pattern, err := motion.ParsePattern(opts.pattern)
		if err != nil {
			logger.Warn("ignore -pattern", "error", err)
		} else {
			settings.Pattern = pattern
		}
	}
	return settings
}

func logLastSession(history *storage.History, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), historyQuery)
	defer cancel()

	recent, err := history.Recent(ctx, 1)
	if err != nil {
		logger.Warn("read session history", "error", err)
		return
	}
	if len(recent) > 0 {
		logger.Debug("last session", "completed", recent[0].CompletedAt, "pattern", recent[0].Pattern, "speed", recent[0].Speed)
	}
}

// motionSelector is the part of the trainer that saved preferences drive.
type motionSelector interface {
	SelectSpeed(speed motion.Speed)
	SelectPattern(pattern motion.Pattern)
}

// applyMotionDefaults forwards the default speed and pattern only when they
// changed, so a live selection and the pattern phase survive unrelated edits.
func applyMotionDefaults(keeper motionSelector, previous, updated preferences.Settings) {
	if updated.Speed != previous.Speed {
		keeper.SelectSpeed(updated.Speed)
	}
	if updated.Pattern != previous.Pattern {
		keeper.SelectPattern(updated.Pattern)
	}
}

func togglePause(keeper *trainer.Trainer) {
	if keeper.Snapshot().Paused {
		keeper.Resume()
		return
	}
	keeper.Pause()
}

func handleEvent(event trainer.Event, trainingWindow *training.Window, trayManager *tray.Manager, player audio.Player, recorder *sessionRecorder) {
	trainingWindow.Render(event.Snapshot)
	if trayManager != nil {
		snapshot := event.Snapshot
		fyne.Do(func() {
			trayManager.SetSession(snapshot.Session)
			trayManager.SetPaused(snapshot.Paused)
		})
	}

	if event.Type != trainer.EventPhaseChange {
		return
	}
	if cue, ok := audio.ForTransition(event.Previous, event.Snapshot.Session.Phase); ok {
		player.Play(cue)
	}
	if event.Snapshot.Session.Phase == session.PhaseComplete {
		recorder.complete(event)
	}
}

// sessionRecorder stores finished sessions and reports today's total.
type sessionRecorder struct {
	history *storage.History
	logger  *slog.Logger
	window  *training.Window
}

func (recorder *sessionRecorder) complete(event trainer.Event) {
	if recorder.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyQuery)
	defer cancel()

	count, err := recorder.record(ctx, event)
	if err != nil {
		recorder.logger.Warn("record session", "error", err)
		return
	}
	recorder.window.SetCompletedToday(count)
}

func (recorder *sessionRecorder) record(ctx context.Context, event trainer.Event) (int, error) {
	state := event.Snapshot.Session
	saved, err := recorder.history.Record(ctx, storage.SessionRecord{
		StartedAt:   event.Snapshot.StartedAt,
		CompletedAt: event.At,
		Sets:        state.TotalSets,
		Pattern:     string(event.Snapshot.Motion.Pattern),
		Speed:       string(event.Snapshot.Motion.Speed),
	})
	if err != nil {
		return 0, fmt.Errorf("record session: %w", err)
	}
	recorder.logger.Info("session recorded", "id", saved.ID, "sets", saved.Sets)

	count, err := recorder.history.CountSince(ctx, storage.StartOfDay(event.At))
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

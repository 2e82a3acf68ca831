package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mleija/remindd/internal/config"
	"github.com/mleija/remindd/internal/notify"
	"github.com/mleija/remindd/internal/scheduler"
	"github.com/mleija/remindd/internal/storage"
	"github.com/mleija/remindd/internal/update"
)

func main() {
	var (
		configPath string
		dataDir    string
		logFile    string
	)

	root := &cobra.Command{
		Use:           "remindd",
		Short:         "Personal reminders with recurrence, checklists and spoken-style notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, dataDir, logFile)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "settings file (default <data-dir>/config.toml)")
	root.Flags().StringVar(&dataDir, "data-dir", "", "directory for reminder data (default per-user config dir)")
	root.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of discarding them")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "remindd failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dataDir, logFile string) error {
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	if configPath == "" {
		configPath = filepath.Join(dataDir, "config.toml")
	}

	logger, closeLog, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := config.Load(configPath, dataDir)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := storage.Open(settings.Paths.RemindersFile, logger)
	if err != nil {
		return fmt.Errorf("opening reminder store: %w", err)
	}

	notifier := notify.New(
		notify.ExecAnnouncer{},
		notify.ExecSoundPlayer{},
		settings.Notifications.Times,
		settings.Interval(),
		logger,
	)

	engine := scheduler.NewEngine(store, notifier, logger)
	gate := scheduler.NewGate(store)
	engine.Start()
	defer engine.Stop()

	model := update.NewModel(update.Deps{
		Store:        store,
		Engine:       engine,
		Gate:         gate,
		Notifier:     notifier,
		Player:       notify.ExecSoundPlayer{},
		Settings:     settings,
		SettingsPath: configPath,
		Logger:       logger,
	})
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// The TUI owns the terminal, so logs either go to a file or nowhere.
func newLogger(logFile string) (*slog.Logger, func(), error) {
	if logFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

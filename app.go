package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"memorygame/internal/catalog"
	"memorygame/internal/config"
	"memorygame/internal/history"
	"memorygame/internal/persist"
	"memorygame/internal/progress"
)

const (
	profileFile = "profile.json"
	historyFile = "history.db"
	logFile     = "memorygame.log"
)

// app holds the collaborators shared by the commands.
type app struct {
	rules   config.Rules
	catalog *catalog.Catalog
	profile *progress.Profile
	history *history.SQLiteStore
	writer  persist.Writer
	queue   *persist.Queue
	rng     *rand.Rand
	logger  *log.Logger
	logOut  *os.File
}

type appOptions struct {
	// Interactive commands log to a file and write behind a queue.
	interactive bool
	history     bool
	themeFiles  []string
}

func openApp(opts appOptions) (*app, error) {
	dataDir, err := expandHome(viper.GetString("data"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %s: %w", dataDir, err)
	}

	a := &app{}
	if err := a.openLogger(dataDir, opts.interactive); err != nil {
		return nil, err
	}

	a.rules, err = config.Load(viper.GetString("rules"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load rules: %w", err)
	}

	a.catalog = catalog.New()
	if len(opts.themeFiles) > 0 {
		themes, err := catalog.LoadThemeFiles(opts.themeFiles)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := a.catalog.AddThemes(themes); err != nil {
			a.Close()
			return nil, err
		}
		a.logger.Info("theme files loaded", "themes", len(themes))
	}

	if opts.interactive {
		a.queue = persist.NewQueue(a.logger)
		a.writer = a.queue
	} else {
		a.writer = persist.NewInline(a.logger)
	}

	storage, err := progress.NewJSONFileStorage(filepath.Join(dataDir, profileFile))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.profile = progress.Open(storage, a.catalog, a.writer, a.rules.Profile, a.logger)

	if opts.history {
		dbPath := viper.GetString("db")
		if dbPath == "" {
			dbPath = filepath.Join(dataDir, historyFile)
		}
		a.history, err = history.Open(dbPath)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	seed := viper.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.rng = rand.New(rand.NewSource(seed))
	return a, nil
}

func (a *app) openLogger(dataDir string, interactive bool) error {
	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var out io.Writer = os.Stderr
	if interactive {
		f, err := os.OpenFile(filepath.Join(dataDir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		a.logOut = f
		out = f
	} else if !viper.IsSet("log-level") {
		level = log.WarnLevel
	}

	a.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "memorygame",
		Level:           level,
	})
	return nil
}

// Close drains pending writes and releases files.
func (a *app) Close() {
	if a.queue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.queue.Close(ctx); err != nil {
			a.logger.Error("pending writes lost", "err", err)
		}
		cancel()
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Error("failed to close history", "err", err)
		}
	}
	if a.logOut != nil {
		a.logOut.Close()
	}
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

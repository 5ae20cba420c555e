package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"study-planner/services/planner/adapters/db"
	"study-planner/services/planner/config"
	"study-planner/services/planner/core"
)

// app bundles what every command needs: config, logger, storage and service.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	storage *db.DB
	svc     *core.Service
}

func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := mustMakeLogger(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	storage, err := db.New(log, cfg.DBAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		storage: storage,
		svc:     core.NewService(log, storage, loc),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		a.log.Error("failed to close db connection", "error", err)
	}
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

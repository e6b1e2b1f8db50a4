package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"unifiedai/internal/api"
	"unifiedai/internal/config"
	"unifiedai/internal/db"
	"unifiedai/internal/jobs"
	"unifiedai/internal/logging"
	"unifiedai/internal/session"
	"unifiedai/internal/styles"
	"unifiedai/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}

	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = filepath.Join(dir, config.AppName+".log")
	}
	logger, err := logging.New(logPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dbPath := cfg.UI.DBPath
	if dbPath == "" {
		dbPath = db.DefaultPath(dir)
	}
	var conn *sql.DB
	if c, err := db.Open(dbPath); err != nil {
		// Keep going without persistence; login lasts for this run only.
		logger.Warn("session database unavailable", zap.String("path", dbPath), zap.Error(err))
	} else {
		conn = c
		defer conn.Close()
	}

	sess, err := session.New(conn)
	if err != nil {
		logger.Warn("load session", zap.Error(err))
	}

	start := ui.RouteHome
	if len(os.Args) > 1 {
		start = ui.ParseRoute(os.Args[1])
	}

	logger.Info("starting",
		zap.String("api", cfg.API.BaseURL),
		zap.String("jobs", cfg.Jobs.BaseURL),
		zap.String("route", string(start)),
		zap.Bool("logged_in", sess.LoggedIn()),
	)

	styles.InitTheme()
	p := ui.NewProgram(ui.Options{
		API:          api.New(cfg.API.BaseURL, cfg.API.Timeout(), sess, logger.Named("api")),
		Jobs:         jobs.New(cfg.Jobs.BaseURL, cfg.Jobs.Timeout(), logger.Named("jobs")),
		Session:      sess,
		Logger:       logger.Named("ui"),
		GlamourStyle: cfg.UI.GlamourStyle,
		StartRoute:   start,
	})
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}

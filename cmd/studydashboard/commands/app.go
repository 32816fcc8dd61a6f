package commands

import (
	"context"
	"fmt"
	"time"

	"study-dashboard/internal/assistant"
	"study-dashboard/internal/config"
	"study-dashboard/internal/logger"
	"study-dashboard/internal/repository"
	"study-dashboard/internal/schedule"
	"study-dashboard/internal/service"
)

// app is the composition root shared by every command.
type app struct {
	cfg       config.Config
	log       *logger.Logger
	loc       *time.Location
	catalog   *schedule.Catalog
	dashboard *service.DashboardService
	reminders *service.ReminderService
	close     func()
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	catalog, err := schedule.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	closeDB := func() {}
	if sqlDB, err := db.DB(); err == nil {
		closeDB = func() { _ = sqlDB.Close() }
	}

	slots := repository.NewSlotRepository(db)

	var client assistant.Client
	if cfg.Assistant.APIKey != "" {
		gemini, err := assistant.NewGeminiClient(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model, catalog)
		if err != nil {
			log.WithError(err).Warnw("assistant disabled")
		} else {
			client = gemini
			log.Infow("assistant enabled", "model", cfg.Assistant.Model)
		}
	}
	assist := assistant.NewService(client, assistant.NewLimiter(cfg.Assistant.RatePerMinute), cfg.Assistant.Timeout, log.WithFields("component", "assistant"))

	dashboard := service.NewDashboardService(
		repository.NewTaskRepository(slots),
		repository.NewMentoringRepository(slots),
		repository.NewHistoryRepository(slots),
		catalog,
		assist,
		loc,
		log.WithFields("component", "dashboard"),
	)
	dashboard.Load(ctx)

	return &app{
		cfg:       cfg,
		log:       log,
		loc:       loc,
		catalog:   catalog,
		dashboard: dashboard,
		reminders: service.NewReminderService(dashboard),
		close: func() {
			closeDB()
			_ = log.Sync()
		},
	}, nil
}

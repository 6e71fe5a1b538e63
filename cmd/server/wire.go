//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"testhub/internal/config"
	"testhub/internal/domain/apikey"
	"testhub/internal/domain/execution"
	"testhub/internal/domain/jiralink"
	"testhub/internal/domain/report"
	"testhub/internal/domain/testcase"
	"testhub/internal/domain/testplan"
	"testhub/internal/infrastructure/crontab"
	"testhub/internal/infrastructure/database"
	"testhub/internal/infrastructure/database/repository"
	"testhub/internal/infrastructure/dispatch"
	"testhub/internal/infrastructure/jira"
	"testhub/internal/infrastructure/logger"
	"testhub/internal/interfaces/httpserver"
	"testhub/internal/interfaces/httpserver/handlers"
	v1 "testhub/internal/interfaces/httpserver/routes/v1"
)

var domainSet = wire.NewSet(
	testplan.NewService,
	testcase.NewService,
	execution.NewService,
	execution.NewBatchService,
	report.NewAggregator,
	newReportService,
	jiralink.NewService,
	apikey.NewService,
)

var infraSet = wire.NewSet(
	newDatabaseConfig,
	newGormDB,
	newDispatcher,
	wire.Bind(new(execution.Dispatcher), new(*dispatch.Dispatcher)),
	wire.Bind(new(report.Dispatcher), new(*dispatch.Dispatcher)),
	jira.NewIssueClient,
)

// BuildApplication assembles the service with Wire.
func BuildApplication() (*Application, error) {
	wire.Build(
		config.Load,
		newLogger,
		infraSet,
		repository.RepositoryProvider,
		domainSet,
		handlers.HandlerProvider,
		v1.NewRoutes,
		httpserver.New,
		crontab.NewCrontab,
		NewApplication,
	)
	return nil, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	}
}

func newGormDB(cfg database.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newDispatcher(cfg *config.Config, log zerolog.Logger) *dispatch.Dispatcher {
	return dispatch.New(cfg.DispatcherWorkers, cfg.DispatcherQueueSize, log)
}

func newReportService(aggregator *report.Aggregator, plans testplan.Repository, dispatcher report.Dispatcher, cfg *config.Config, log zerolog.Logger) *report.Service {
	return report.NewService(aggregator, plans, dispatcher, cfg.ReportDir, log)
}

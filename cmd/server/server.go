package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
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
	"testhub/internal/infrastructure/database/repository/apikeyrepo"
	"testhub/internal/infrastructure/database/repository/executionrepo"
	"testhub/internal/infrastructure/database/repository/jiralinkrepo"
	"testhub/internal/infrastructure/database/repository/testcaserepo"
	"testhub/internal/infrastructure/database/repository/testplanrepo"
	"testhub/internal/infrastructure/dispatch"
	"testhub/internal/infrastructure/jira"
	"testhub/internal/infrastructure/logger"
	"testhub/internal/infrastructure/observability"
	"testhub/internal/interfaces/httpserver"
	"testhub/internal/interfaces/httpserver/handlers/apikeyhandler"
	"testhub/internal/interfaces/httpserver/handlers/casehandler"
	"testhub/internal/interfaces/httpserver/handlers/executionhandler"
	"testhub/internal/interfaces/httpserver/handlers/integrationhandler"
	"testhub/internal/interfaces/httpserver/handlers/jirahandler"
	"testhub/internal/interfaces/httpserver/handlers/planhandler"
	"testhub/internal/interfaces/httpserver/handlers/reporthandler"
	v1 "testhub/internal/interfaces/httpserver/routes/v1"
)

// @title TestHub API
// @version 1.0
// @description Test case management service with report generation and Jira integration
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	dispatcher *dispatch.Dispatcher
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, cron *crontab.Crontab, dispatcher *dispatch.Dispatcher, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    cron,
		dispatcher: dispatcher,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	a.dispatcher.Start()
	defer a.dispatcher.Stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.crontab.Run(ctx)
	})
	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DatabaseURL: cfg.DatabaseURL,
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	planRepo := testplanrepo.NewTestPlanGormRepository(db)
	caseRepo := testcaserepo.NewTestCaseGormRepository(db)
	executionRepo := executionrepo.NewExecutionGormRepository(db)
	jiraLinkRepo := jiralinkrepo.NewJiraLinkGormRepository(db)
	apiKeyRepo := apikeyrepo.NewAPIKeyGormRepository(db)

	dispatcher := dispatch.New(cfg.DispatcherWorkers, cfg.DispatcherQueueSize, log)

	planService := testplan.NewService(planRepo, log)
	caseService := testcase.NewService(caseRepo, log)
	executionService := execution.NewService(executionRepo, planRepo, caseRepo, log)
	batchService := execution.NewBatchService(executionRepo, planRepo, caseRepo, dispatcher, log)
	aggregator := report.NewAggregator(planRepo, caseRepo, executionRepo)
	reportService := report.NewService(aggregator, planRepo, dispatcher, cfg.ReportDir, log)
	jiraService := jiralink.NewService(jiraLinkRepo, caseRepo, executionRepo, jira.NewIssueClient(cfg), log)
	apiKeyService := apikey.NewService(apiKeyRepo, log)

	routes := v1.NewRoutes(
		planhandler.NewHandler(planService, log),
		casehandler.NewHandler(caseService, log),
		executionhandler.NewHandler(executionService, log),
		reporthandler.NewHandler(reportService, log),
		jirahandler.NewHandler(jiraService, log),
		apikeyhandler.NewHandler(apiKeyService, log),
		integrationhandler.NewHandler(batchService, log),
		apiKeyService,
		log,
	)

	httpServer := httpserver.New(cfg, log, routes)
	cron := crontab.NewCrontab(cfg, reportService, planService)
	app := NewApplication(httpServer, cron, dispatcher, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

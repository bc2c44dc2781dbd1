package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/config"
	"github.com/mamadbah2/agripulse/internal/repository/memory"
	"github.com/mamadbah2/agripulse/internal/repository/mongodb"
	"github.com/mamadbah2/agripulse/internal/repository/sheets"
	"github.com/mamadbah2/agripulse/internal/repository/store"
	"github.com/mamadbah2/agripulse/internal/scheduler"
	"github.com/mamadbah2/agripulse/internal/server/handlers"
	"github.com/mamadbah2/agripulse/internal/server/router"
	advisorsvc "github.com/mamadbah2/agripulse/internal/service/advisor"
	dashboardsvc "github.com/mamadbah2/agripulse/internal/service/dashboard"
	recordsvc "github.com/mamadbah2/agripulse/internal/service/records"
	settingssvc "github.com/mamadbah2/agripulse/internal/service/settings"
	geminiclient "github.com/mamadbah2/agripulse/pkg/clients/gemini"
	"github.com/mamadbah2/agripulse/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var recordStore store.Store
	switch cfg.Store.Driver {
	case config.StoreMemory:
		recordStore = memory.NewStore()
		baseLogger.Info("using in-memory record store")
	default:
		mongoRepo, err := mongodb.NewRepository(context.Background(), cfg.Store.URI, cfg.Store.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		recordStore = mongoRepo
	}
	defer func() {
		if err := recordStore.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close record store", zap.Error(err))
		}
	}()

	recordsSvc := recordsvc.NewService(recordStore, baseLogger.Named("svc.records"))
	resolver := settingssvc.NewResolver(recordsSvc, baseLogger.Named("svc.settings"))

	var advisor advisorsvc.Advisor
	switch cfg.Advisor.Mode {
	case config.AdvisorGemini:
		var aiClient *geminiclient.Client
		if cfg.Advisor.GeminiKey != "" {
			aiClient = geminiclient.NewClient(cfg.Advisor.GeminiKey)
			baseLogger.Info("gemini smart advisor enabled")
		} else {
			baseLogger.Warn("gemini api key missing, smart advisor offline")
		}
		advisor = advisorsvc.NewGemini(aiClient, baseLogger.Named("svc.advisor"))
	default:
		advisor = advisorsvc.NewRules()
	}

	dashboardSvc := dashboardsvc.NewService(recordsSvc, resolver, advisor, baseLogger.Named("svc.dashboard"))

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
	}

	apiHandler := handlers.NewAPIHandler(recordsSvc, resolver, dashboardSvc, baseLogger.Named("handlers.api"))
	engine := router.New(apiHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, dashboardSvc, recordsSvc, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

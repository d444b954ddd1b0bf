package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/config"
	"github.com/mamadbah2/deliciarte/internal/repository"
	"github.com/mamadbah2/deliciarte/internal/repository/memory"
	"github.com/mamadbah2/deliciarte/internal/repository/mongodb"
	"github.com/mamadbah2/deliciarte/internal/repository/sheets"
	"github.com/mamadbah2/deliciarte/internal/scheduler"
	"github.com/mamadbah2/deliciarte/internal/server/handlers"
	"github.com/mamadbah2/deliciarte/internal/server/router"
	advisorsvc "github.com/mamadbah2/deliciarte/internal/service/advisor"
	commandsvc "github.com/mamadbah2/deliciarte/internal/service/commands"
	financesvc "github.com/mamadbah2/deliciarte/internal/service/finance"
	inventorysvc "github.com/mamadbah2/deliciarte/internal/service/inventory"
	ordersvc "github.com/mamadbah2/deliciarte/internal/service/orders"
	recipesvc "github.com/mamadbah2/deliciarte/internal/service/recipes"
	reportingsvc "github.com/mamadbah2/deliciarte/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/deliciarte/internal/service/whatsapp"
	"github.com/mamadbah2/deliciarte/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/deliciarte/pkg/clients/whatsapp"
	"github.com/mamadbah2/deliciarte/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{Level: cfg.Log.Level, Development: cfg.Log.Development}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore := openStore(cfg, baseLogger)
	defer closeStore()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	} else {
		baseLogger.Warn("google sheets not configured, report export disabled")
	}

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey, anthropic.WithModel(cfg.AI.Model))
		baseLogger.Info("anthropic ai client enabled", zap.String("model", cfg.AI.Model))
	} else {
		baseLogger.Warn("anthropic api key missing, advisor answers with fallback messages")
	}

	location, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	inventorySvc := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))
	financeSvc := financesvc.NewService(store, baseLogger.Named("svc.finance"))
	advisorSvc := advisorsvc.NewService(aiClient, baseLogger.Named("svc.advisor"))
	recipeSvc := recipesvc.NewService(store, store, financeSvc, advisorSvc, baseLogger.Named("svc.recipes"))
	orderSvc := ordersvc.NewService(store, location, baseLogger.Named("svc.orders"))
	reportingSvc := reportingsvc.NewService(reportingsvc.Dependencies{
		Orders:         store,
		Recipes:        store,
		Ingredients:    store,
		Snapshots:      store,
		Finance:        financeSvc,
		Sheets:         sheetsRepo,
		CurrencySymbol: cfg.Reporting.CurrencySymbol,
		Location:       location,
	}, baseLogger.Named("svc.reporting"))

	routes := router.Handlers{
		Inventory: handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		Recipes:   handlers.NewRecipeHandler(recipeSvc, inventorySvc, advisorSvc, baseLogger.Named("handlers.recipes")),
		Orders:    handlers.NewOrderHandler(orderSvc, baseLogger.Named("handlers.orders")),
		Finance:   handlers.NewFinanceHandler(financeSvc, baseLogger.Named("handlers.finance")),
		Reports:   handlers.NewReportHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		commandDispatcher := commandsvc.NewService(reportingSvc, orderSvc, inventorySvc, advisorSvc, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))
		routes.Webhook = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
		notifier = messagingSvc
	} else {
		baseLogger.Warn("whatsapp not configured, owner commands and summaries disabled")
	}

	engine := router.New(routes, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
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

func openStore(cfg *config.Config, baseLogger *zap.Logger) (repository.Store, func()) {
	if cfg.Storage.Driver == config.StorageMemory {
		baseLogger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}

	return mongoRepo, func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}

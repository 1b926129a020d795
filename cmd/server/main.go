package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/starterbox/backend/internal/application/assistant"
	appcrm "github.com/starterbox/backend/internal/application/crm"
	"github.com/starterbox/backend/internal/infrastructure/config"
	"github.com/starterbox/backend/internal/infrastructure/logger"
	"github.com/starterbox/backend/internal/infrastructure/mailproxy"
	"github.com/starterbox/backend/internal/infrastructure/persistence"
	"github.com/starterbox/backend/internal/infrastructure/sheets"
	"github.com/starterbox/backend/internal/interfaces/http/handler"
	"github.com/starterbox/backend/internal/interfaces/http/middleware"
	"github.com/starterbox/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

// maxBodyBytes caps request bodies; bulk CSV imports stay well under this.
const maxBodyBytes = 4 << 20

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Starter Box CRM",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Initialize database
	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Storage, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Sheet store over the durable envelope slot
	slot := persistence.NewGormSlot(db.DB, cfg.Storage.EnvelopeKey)
	store := sheets.NewStore(slot, log, sheets.WithReadDelay(cfg.Storage.ReadDelay))

	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		log.Fatal("Failed to initialize sheet store", zap.Error(err))
	}

	// Application services
	crmService := appcrm.NewService(store, log,
		appcrm.WithSettleDelay(cfg.Storage.ImportSettleDelay))
	if err := crmService.Refresh(ctx); err != nil {
		log.Warn("Initial snapshot refresh failed", zap.Error(err))
	}

	// Optional collaborators: mail proxy and assistant
	var mailClient *mailproxy.Client
	var mailHandlerProxy handler.MailProxy
	var mailReader assistant.MailReader
	if cfg.Mail.Enabled {
		mailClient = mailproxy.NewClient(cfg.Mail.BaseURL, cfg.Mail.Timeout, log)
		mailHandlerProxy = mailClient
		mailReader = mailClient
		log.Info("Mail proxy enabled", zap.String("base_url", cfg.Mail.BaseURL))
	}

	var chatService handler.ChatService
	if cfg.Assistant.Enabled {
		executor := assistant.NewExecutor(crmService, mailReader, log)
		svc, err := assistant.NewService(ctx, cfg.Assistant, executor, log)
		if err != nil {
			log.Fatal("Failed to initialize assistant", zap.Error(err))
		}
		chatService = svc
		log.Info("Assistant enabled", zap.String("model", cfg.Assistant.Model))
	}

	// HTTP handlers
	sheetHandler := handler.NewSheetHandler(store, crmService)
	crmHandler := handler.NewCRMHandler(crmService)
	assistantHandler := handler.NewAssistantHandler(chatService)
	mailHandler := handler.NewMailHandler(mailHandlerProxy)
	systemHandler := handler.NewSystemHandler(db, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware stack: request ID first so recovery and logging carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(maxBodyBytes))

	router.NewRouter(engine).
		Register(sheetHandler).
		Register(crmHandler).
		Register(assistantHandler).
		Register(mailHandler).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-scribe/docs"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/handler"
	"github.com/johnquangdev/meeting-scribe/internal/app"
	httpmw "github.com/johnquangdev/meeting-scribe/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"
)

// @title           Meeting Scribe API
// @version         1.0
// @description     Transcribe meeting recordings and turn them into structured minutes and follow-up e-mails.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the SERVER_API_TOKEN value.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Database.AutoMigrate && cfg.IsProduction() {
		zlog.Fatal("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run `scribe migrate` instead.")
	}
	if err := cfg.RequireCredentials(cfg.Transcribe.Provider); err != nil {
		zlog.Warn("⚠️ Upstream credentials missing, API calls will fail until configured", zap.Error(err))
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(zlog)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(httpmw.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	zlog.Info("🔧 Initializing dependencies...")
	a, err := app.New(context.Background(), cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer a.Close()

	// Initialize handlers
	uiHandler := handler.NewUI()
	transcriptionHandler := handler.NewTranscription(
		a.Transcription,
		a.Archive,
		cfg.Server.UploadDir,
		cfg.Server.MaxUploadMB,
		cfg.Transcribe.Model,
		cfg.Transcribe.Format,
		zlog,
	)
	summaryHandler := handler.NewSummary(a.Summary, a.FollowUp, a.Archive, cfg.Transcribe.Language, zlog)
	historyHandler := handler.NewHistory(a.History, zlog)
	archiveHandler := handler.NewArchive(a.Archive, zlog)

	// Setup router with handlers
	zlog.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, uiHandler, transcriptionHandler, summaryHandler, historyHandler, archiveHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		zlog.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.Bool("token_auth", cfg.Server.APIToken != ""))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	zlog.Info("✅ Server stopped gracefully")
}

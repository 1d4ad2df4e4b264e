// File: krib/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"krib/config"
	"krib/cron"
	"krib/database"
	bookingRecordRepo "krib/database/repository/bookingrecord"
	settingsRepo "krib/database/repository/settings"
	"krib/handlers"
	"krib/middleware"
	"krib/routes"
	"krib/services/widget"
	"krib/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitAvailabilityCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// The widget is embedded on arbitrary contractor websites, so the
	// public API must answer cross-origin requests.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// repositories.
	widgetSettingsRepo := settingsRepo.NewMongoSettingsRepo()
	recordsRepo := bookingRecordRepo.NewMongoBookingRecordRepo()

	// remote booking services.
	oracleClient := widget.NewOracleClient(config.AppConfig.OracleBaseURL)
	gatewayClient := widget.NewGatewayClient(config.AppConfig.GatewayBaseURL)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	availabilityModule := widget.NewAvailabilityModule(oracleClient, sessionTTL)

	// background confirmation worker.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	notifier := cron.NewConfirmationNotifier()
	cron.InitConfirmationWorker(workerCtx)

	bookingService := &widget.DefaultBookingSessionService{
		SettingsRepo: widgetSettingsRepo,
		RecordsRepo:  recordsRepo,
		Availability: availabilityModule,
		Gateway:      gatewayClient,
		Notifier:     notifier,
		Cache:        utils.GetSessionCacheClient(),
		SessionTTL:   sessionTTL,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Widget:   handlers.NewWidgetHandler(bookingService, logger),
		Settings: handlers.NewSettingsHandler(widgetSettingsRepo, logger),
		Bookings: handlers.NewBookingRecordsHandler(recordsRepo, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

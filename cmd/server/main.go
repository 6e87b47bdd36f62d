package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/highwaydelite/service-booking-web/internal/adapter"
	"github.com/highwaydelite/service-booking-web/internal/application"
	"github.com/highwaydelite/service-booking-web/internal/config"
	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/internal/events"
	"github.com/highwaydelite/service-booking-web/internal/handler"
	"github.com/highwaydelite/service-booking-web/internal/repository"
	"github.com/highwaydelite/service-booking-web/internal/saga"
	"github.com/highwaydelite/service-booking-web/migrations"
	"github.com/highwaydelite/service-booking-web/pkg/database"
	"github.com/highwaydelite/service-booking-web/pkg/health"
	"github.com/highwaydelite/service-booking-web/pkg/kafka"
	"github.com/highwaydelite/service-booking-web/pkg/logger"
	"github.com/highwaydelite/service-booking-web/pkg/middleware"
)

const serviceName = "service-booking-web"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("session_store", cfg.SessionStore),
		zap.Bool("mock_booking_api", cfg.BookingAPI.Mock),
	)

	// Checkout session storage
	var (
		db          *gorm.DB
		sessionRepo booking.CheckoutSessionRepository
	)
	if cfg.SessionStore == config.SessionStoreMemory {
		sessionRepo = repository.NewMemoryCheckoutSessionRepository()
	} else {
		db, err = database.Connect(cfg.DBConfig, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed to connect to database", zap.Error(err))
		}

		if cfg.AppEnv == "development" {
			if err := repository.AutoMigrate(db); err != nil {
				zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			zapLogger.Info("database migration completed (dev auto-migrate)")
		} else {
			if err := database.RunMigrations(migrations.FS, cfg.DBConfig.DatabaseURL(), zapLogger); err != nil {
				zapLogger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		sessionRepo = repository.NewCheckoutSessionRepository(db)
	}

	// Booking API adapter
	var bookingAPI adapter.BookingAPI
	if cfg.BookingAPI.Mock {
		bookingAPI = adapter.NewMockBookingAPI(zapLogger)
	} else {
		bookingAPI = adapter.NewHTTPBookingAPI(cfg.BookingAPI.BaseURL, cfg.BookingAPI.Timeout, zapLogger)
	}

	// Event publisher
	var publisher events.Publisher
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
		defer kafkaProducer.Close()
		publisher = events.NewKafkaPublisher(kafkaProducer, cfg.KafkaConfig.Topic)
	} else {
		zapLogger.Info("no Kafka brokers configured, booking events are not published")
		publisher = events.NewNopPublisher(zapLogger)
	}

	// Services
	sagaService := saga.NewBookingSagaService(sessionRepo, bookingAPI, publisher, zapLogger)
	experienceService := application.NewExperienceService(bookingAPI, zapLogger)
	checkoutService := application.NewCheckoutService(sessionRepo, bookingAPI, sagaService, zapLogger)

	// Page templates
	templates, err := handler.Templates(cfg.CurrencySymbol)
	if err != nil {
		zapLogger.Fatal("failed to parse templates", zap.Error(err))
	}

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.SetHTMLTemplate(templates)

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register page routes
	webHandler := handler.NewWebHandler(experienceService, checkoutService, cfg.CurrencySymbol, zapLogger)
	webHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	handler.NewExperienceHandler(experienceService).RegisterRoutes(apiV1)
	if cfg.AdminToken != "" {
		handler.NewAdminCheckoutHandler(checkoutService).RegisterRoutes(apiV1, cfg.AdminToken)
	} else {
		zapLogger.Info("ADMIN_TOKEN not set, admin routes disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BookingAPI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down " + serviceName + "...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info(serviceName + " stopped")
}

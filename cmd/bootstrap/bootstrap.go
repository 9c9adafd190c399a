package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-booking-service/config"
	deliveryHttp "clinic-booking-service/internal/delivery/http"
	"clinic-booking-service/internal/delivery/http/handler"
	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/infrastructure/cache"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/repository"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/jwt"
	"clinic-booking-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	lockService *service.ScheduleLockService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = app.initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	clinicRepo := repository.NewCachedClinicRepository(repository.NewClinicRepository(), redisClient, log)
	scheduleRepo := repository.NewClinicScheduleRepository()
	bookingRepo := repository.NewBookingRepository()
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientProfileRepository()
	doctorRepo := repository.NewDoctorProfileRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize domain services
	overlapValidator := service.NewOverlapValidator(log, clinicRepo, scheduleRepo)
	conflictValidator := service.NewBookingConflictValidator()
	auditService := service.NewAuditService(db, log, auditRepo)
	app.lockService = service.NewScheduleLockService(log)

	// Initialize usecases
	scheduleUsecase := usecase.NewClinicScheduleUsecase(db, log, clinicRepo, scheduleRepo, overlapValidator, app.lockService, auditService)
	bookingUsecase := usecase.NewBookingUsecase(db, log, bookingRepo, clinicRepo, userRepo, patientRepo, doctorRepo, conflictValidator, auditService)

	// Initialize handlers
	scheduleHandler := handler.NewClinicScheduleHandler(scheduleUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(scheduleHandler, bookingHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.lockService != nil {
		app.lockService.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

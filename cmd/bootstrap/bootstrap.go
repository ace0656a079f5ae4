package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management/config"
	deliveryHttp "hospital-management/internal/delivery/http"
	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/delivery/report"
	"hospital-management/internal/infrastructure/cache"
	"hospital-management/internal/infrastructure/database"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Lock        *service.SchedulingLockService
	Usecases    deliveryHttp.Usecases
	Reports     *report.Registry
	Server      *http.Server
}

// New loads configuration from configPath and initializes every layer.
func New(configPath string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewConnection(cfg.DB, app.Log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	if cfg.DB.AutoMigrate {
		if err := database.AutoMigrate(db, app.Log); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize Redis, nil when disabled
	redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	app.initializeUsecases()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func (app *App) initializeUsecases() {
	db, log := app.DB, app.Log

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	deptRepo := repository.NewDepartmentRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	insuranceRepo := repository.NewInsuranceRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	surgeryRepo := repository.NewSurgeryRepository()
	relationshipRepo := repository.NewPatientDoctorRepository()

	// Initialize services
	audit := service.NewAuditService(log)
	app.Lock = service.NewSchedulingLockService(app.RedisClient, log, app.Config.Scheduling.LockTTL, app.Config.Scheduling.LockWait)

	// Initialize usecases
	app.Usecases = deliveryHttp.Usecases{
		User:        usecase.NewUserUsecase(db, log, customValidator, userRepo, audit),
		Patient:     usecase.NewPatientUsecase(db, log, customValidator, userRepo, patientRepo, audit),
		Doctor:      usecase.NewDoctorUsecase(db, log, customValidator, userRepo, doctorRepo, deptRepo, audit),
		Department:  usecase.NewDepartmentUsecase(db, log, customValidator, deptRepo, doctorRepo, audit),
		Appointment: usecase.NewAppointmentUsecase(db, log, customValidator, appointmentRepo, audit),
		Record: usecase.NewRecordUsecase(db, log, customValidator,
			insuranceRepo, prescriptionRepo, surgeryRepo, relationshipRepo, appointmentRepo, audit),
		Report:     usecase.NewReportUsecase(db, log, customValidator, usecase.SystemClock, patientRepo, doctorRepo, deptRepo),
		Scheduling: usecase.NewSchedulingUsecase(db, log, customValidator, usecase.SystemClock, appointmentRepo, doctorRepo, app.Lock, audit),
	}
	app.Reports = report.NewRegistry(app.Usecases.Report)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	// Initialize handlers
	reportHandler := handler.NewReportHandler(app.Reports, app.Log)
	schedulingHandler := handler.NewSchedulingHandler(app.Usecases.Scheduling, app.Log)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	requestIDMiddleware := middleware.NewRequestIDMiddleware(app.Log)

	// Initialize router
	router := deliveryHttp.NewRouter(app.Log, app.Usecases, reportHandler, schedulingHandler, corsMiddleware, requestIDMiddleware)

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Config.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	app.Server = app.initializeServer()

	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or a listen failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close releases the lock janitor and closes database and Redis connections.
func (app *App) Close() {
	if app.Lock != nil {
		app.Lock.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

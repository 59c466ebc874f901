package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-sportclub-booking/config"
	deliveryHttp "go-sportclub-booking/internal/delivery/http"
	"go-sportclub-booking/internal/delivery/http/handler"
	"go-sportclub-booking/internal/delivery/http/middleware"
	"go-sportclub-booking/internal/domain/gateway"
	"go-sportclub-booking/internal/infrastructure/cache"
	"go-sportclub-booking/internal/infrastructure/calendar"
	"go-sportclub-booking/internal/infrastructure/database"
	"go-sportclub-booking/internal/infrastructure/payment"
	"go-sportclub-booking/internal/repository"
	"go-sportclub-booking/internal/service"
	"go-sportclub-booking/internal/usecase"
	"go-sportclub-booking/pkg/jwt"
	"go-sportclub-booking/pkg/validator"

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

	// Run migrations before opening the pool
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

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

	// Initialize payment provider
	provider, err := payment.NewStripeProvider(cfg.Stripe)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %w", err)
	}
	if !cfg.Stripe.HasWebhookSecret() {
		logrus.Warn("STRIPE_WEBHOOK_SECRET is missing or a placeholder, webhook endpoint will reject all deliveries")
	}

	// Initialize calendar client, optional
	var calendarClient gateway.CalendarClient
	if cfg.Calendar.Enabled() {
		client, err := calendar.NewGoogleClient(context.Background(), cfg.Calendar)
		if err != nil {
			logrus.Warnf("Failed to initialize calendar client, continuing without it: %+v", err)
		} else {
			calendarClient = client
			logrus.Info("Calendar client initialized")
		}
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, provider, calendarClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, provider gateway.PaymentProvider, calendarClient gateway.CalendarClient) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	eventRepo := repository.NewEventRepository(db)
	coachRepo := repository.NewCoachRepository(db)
	eventBookingRepo := repository.NewEventBookingRepository()
	coachBookingRepo := repository.NewCoachBookingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	calendarService := service.NewCalendarService(calendarClient, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient, auditService)
	eventUsecase := usecase.NewEventUsecase(db, eventRepo, eventBookingRepo)
	coachUsecase := usecase.NewCoachUsecase(coachRepo)
	eventBookingUsecase := usecase.NewEventBookingUsecase(db, log, eventBookingRepo, eventRepo, auditService)
	coachBookingUsecase := usecase.NewCoachBookingUsecase(db, log, coachBookingRepo, coachRepo, auditService)
	paymentUsecase := usecase.NewPaymentUsecase(db, log, cfg.Stripe, provider, eventBookingRepo, coachBookingRepo, eventRepo, coachRepo, userRepo, calendarService, auditService)
	webhookUsecase := usecase.NewWebhookUsecase(db, log, eventBookingRepo, coachBookingRepo, eventRepo, coachRepo, userRepo, calendarService, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	eventHandler := handler.NewEventHandler(eventUsecase, customValidator)
	coachHandler := handler.NewCoachHandler(coachUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(eventBookingUsecase, coachBookingUsecase, customValidator)
	paymentHandler := handler.NewPaymentHandler(paymentUsecase, webhookUsecase, provider, cfg.Stripe, customValidator, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(deliveryHttp.RouterConfig{
		AuthHandler:    authHandler,
		EventHandler:   eventHandler,
		CoachHandler:   coachHandler,
		BookingHandler: bookingHandler,
		PaymentHandler: paymentHandler,
		AuthMiddleware: authMiddleware,
		CORSMiddleware: corsMiddleware,
	})

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: router,
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

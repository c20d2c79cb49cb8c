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

	billingapp "github.com/comunidad/backend/internal/application/billing"
	fiscalapp "github.com/comunidad/backend/internal/application/fiscal"
	funeralapp "github.com/comunidad/backend/internal/application/funeral"
	identityapp "github.com/comunidad/backend/internal/application/identity"
	residentapp "github.com/comunidad/backend/internal/application/resident"
	"github.com/comunidad/backend/internal/infrastructure/auth"
	"github.com/comunidad/backend/internal/infrastructure/config"
	"github.com/comunidad/backend/internal/infrastructure/logger"
	"github.com/comunidad/backend/internal/infrastructure/persistence"
	"github.com/comunidad/backend/internal/infrastructure/scheduler"
	"github.com/comunidad/backend/internal/infrastructure/storage"
	"github.com/comunidad/backend/internal/infrastructure/telemetry"
	"github.com/comunidad/backend/internal/infrastructure/whatsapp"
	"github.com/comunidad/backend/internal/interfaces/http/handler"
	"github.com/comunidad/backend/internal/interfaces/http/middleware"
	"github.com/comunidad/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting community backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to enable database tracing", zap.Error(err))
	}

	// Repositories
	residentRepo := persistence.NewGormResidentRepository(db.DB)
	tokenRepo := persistence.NewGormTokenRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	planRepo := persistence.NewGormFuneralPlanRepository(db.DB)
	clientRepo := persistence.NewGormFuneralClientRepository(db.DB)
	casketRepo := persistence.NewGormCasketRepository(db.DB)
	fiscalRepo := persistence.NewGormFiscalRepository(db.DB)

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	// Object storage for the community logo
	var objectStorage fiscalapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, logo uploads disabled")
	}

	// WhatsApp gateway
	whatsappClient := whatsapp.NewClient(&cfg.WhatsApp, log)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist,
		identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, blacklist, log)
	residentService := residentapp.NewResidentService(residentRepo, log)
	tokenService := residentapp.NewTokenService(tokenRepo, residentRepo, log)
	paymentService := billingapp.NewPaymentService(paymentRepo, residentRepo, tokenRepo, log)
	dunningService := billingapp.NewDunningService(residentRepo, tokenRepo,
		notificationRepo, whatsappClient, cfg.WhatsApp.SendDelay, log)
	planService := funeralapp.NewPlanService(planRepo, clientRepo, log)
	clientService := funeralapp.NewClientService(clientRepo, planRepo, log)
	casketService := funeralapp.NewCasketService(casketRepo, log)
	settingsService := fiscalapp.NewSettingsService(fiscalRepo, objectStorage, log)

	// Daily dunning scheduler
	dunningScheduler, err := scheduler.NewDunningScheduler(cfg.Scheduler, dunningService, log)
	if err != nil {
		log.Fatal("Invalid scheduler configuration", zap.Error(err))
	}
	dunningScheduler.Start(ctx)
	defer dunningScheduler.Stop()

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers := router.Handlers{
		System:        handler.NewSystemHandler(db.DB, log),
		Auth:          handler.NewAuthHandler(authService, log),
		User:          handler.NewUserHandler(userService, log),
		Resident:      handler.NewResidentHandler(residentService, dunningService, log),
		Token:         handler.NewTokenHandler(tokenService, log),
		Payment:       handler.NewPaymentHandler(paymentService, dunningService, log),
		FuneralPlan:   handler.NewFuneralPlanHandler(planService, log),
		FuneralClient: handler.NewFuneralClientHandler(clientService, log),
		Casket:        handler.NewCasketHandler(casketService, log),
		Fiscal:        handler.NewFiscalHandler(settingsService, log),
	}

	loginRateLimit := 0
	if cfg.HTTP.AuthRateLimitEnabled {
		loginRateLimit = cfg.HTTP.AuthRateLimitRequests
	}

	engine := router.New(router.Config{
		Handlers:       handlers,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		CORS:           middleware.DefaultCORSConfig(),
		LoginRateLimit: loginRateLimit,
		Logger:         log,
		TracingEnabled: cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/application/port/outbound"
	authuc "github.com/shopcore/shopcore/application/usecase/auth"
	cataloguc "github.com/shopcore/shopcore/application/usecase/catalog"
	paymentuc "github.com/shopcore/shopcore/application/usecase/payment"
	"github.com/shopcore/shopcore/application/usecase/user_management"
	"github.com/shopcore/shopcore/infrastructure/adapter/postgres"
	"github.com/shopcore/shopcore/infrastructure/config"
	"github.com/shopcore/shopcore/infrastructure/http/handler"
	"github.com/shopcore/shopcore/infrastructure/http/middleware"
	"github.com/shopcore/shopcore/infrastructure/http/router"
	"github.com/shopcore/shopcore/infrastructure/service/blob"
	"github.com/shopcore/shopcore/infrastructure/service/jwt"
	"github.com/shopcore/shopcore/infrastructure/service/logger"
	"github.com/shopcore/shopcore/infrastructure/service/mailer"
	"github.com/shopcore/shopcore/infrastructure/service/password"
	"github.com/shopcore/shopcore/infrastructure/service/payment"
	"github.com/shopcore/shopcore/infrastructure/service/ratelimit"
	"github.com/shopcore/shopcore/infrastructure/service/revocation"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "shopcore",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	// Revocation registry: process-local by default, redis when shared
	// revocation across restarts/instances is wanted.
	var registry outbound.RevocationRegistry
	switch cfg.RevocationBackend {
	case "redis":
		registry, err = revocation.NewRedisRegistry(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize redis revocation registry: %v", err)
		}
	default:
		registry = revocation.NewMemoryRegistry(cfg.RevocationPrune)
	}
	defer registry.Close()

	tokenService, err := jwt.NewJWTService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)

	var mailSink outbound.Mailer
	if cfg.SMTPHost != "" {
		mailSink = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, structuredLogger)
	} else {
		structuredLogger.Warn(ctx, "SMTP not configured, reset mails will be logged only", nil)
		mailSink = mailer.NewNoopMailer(structuredLogger)
	}

	var blobStore outbound.BlobStore
	switch cfg.BlobBackend {
	case "s3":
		blobStore, err = blob.NewS3Store(ctx, blob.S3Options{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 blob store: %v", err)
		}
	default:
		blobStore, err = blob.NewLocalStore(cfg.UploadDir, cfg.FrontendURL)
		if err != nil {
			log.Fatalf("Failed to initialize local blob store: %v", err)
		}
	}

	var limiter inbound.RateLimitService
	if cfg.RateLimitEnabled {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RedisURL, structuredLogger)
		if err != nil {
			structuredLogger.Error(ctx, "Rate limiter unavailable, continuing without", err, nil)
			limiter = ratelimit.NewNoopLimiter()
		}
	} else {
		limiter = ratelimit.NewNoopLimiter()
	}
	defer limiter.Close()

	paymentClient := payment.NewClient(cfg.PaymentSecretKey, cfg.PaymentWebhookSecret, cfg.PaymentBaseURL, structuredLogger)

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)

	authUseCase := authuc.NewUseCase(
		userRepo, tokenService, passwordService, registry, mailSink,
		structuredLogger, cfg.SessionTokenTTL, cfg.ResetTicketTTL, cfg.FrontendURL,
	)
	userManagementUseCase := user_management.NewUserManagementUseCase(userRepo)
	catalogUseCase := cataloguc.NewUseCase(productRepo, blobStore, structuredLogger)
	paymentUseCase := paymentuc.NewUseCase(paymentClient, structuredLogger)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, registry, userRepo)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter, structuredLogger, cfg.RateLimitLogin, cfg.RateLimitWindow)

	h := router.New(router.Options{
		Auth:           handler.NewAuthHandler(authUseCase),
		UserManagement: handler.NewUserManagementHandler(userManagementUseCase),
		Catalog:        handler.NewCatalogHandler(catalogUseCase),
		Payment:        handler.NewPaymentHandler(paymentUseCase),
		AuthMiddleware: authMiddleware,
		RateLimit:      rateLimitMiddleware,
		Config:         cfg,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}

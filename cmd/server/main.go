package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"mira/docs"
	"mira/internal/ai"
	"mira/internal/auth"
	"mira/internal/cache"
	"mira/internal/config"
	"mira/internal/db"
	"mira/internal/events"
	"mira/internal/handler"
	"mira/internal/logging"
	"mira/internal/mail"
	"mira/internal/repository"
	"mira/internal/router"
	"mira/internal/service"
)

// @title Mira Trip Planner API
// @version 1.0
// @description Trip planning API with email verification, Google login, JWT authentication and an AI travel assistant.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()
	for _, w := range cfg.Warnings() {
		logger.Warn(ctx, w)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, logger.Slog())
	if err != nil {
		logger.Error(ctx, "database init", "error", err)
		os.Exit(1)
	}
	if cfg.ResetDB {
		logger.Warn(ctx, "RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Error(ctx, "migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn(ctx, "redis unreachable, refresh tokens and trip cache degraded", "addr", cfg.RedisAddr, "error", err)
	}

	var mailer mail.Sender
	if cfg.SendGridAPIKey != "" {
		mailer = mail.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	} else {
		logger.Warn(ctx, "SENDGRID_API_KEY not set, verification emails are logged only")
		mailer = mail.NewLogSender(logger.With("component", "mail"))
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		publisher = events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventsExchange)
	}
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	codeRepo := repository.NewVerificationCodeRepository(gormDB)
	tripRepo := repository.NewTripRepository(gormDB)
	messageRepo := repository.NewTripMessageRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID)

	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout)

	// Initialize services
	authService := service.NewAuthService(userRepo, codeRepo, jwtService, tokenStore, mailer, googleVerifier, publisher, logger, cfg.Auth())
	tripService := service.NewTripService(tripRepo, cacheClient, publisher, logger)
	chatService := service.NewChatService(tripRepo, messageRepo, aiClient, publisher, logger, cfg.Chat())

	e := echo.New()
	router.Register(
		e,
		jwtService,
		logger,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(authService),
		handler.NewTripHandler(tripService),
		handler.NewChatHandler(chatService),
	)

	docs.SwaggerInfo.Host = swaggerHost(cfg)
	logger.Info(ctx, "starting server",
		"port", cfg.ServerPort,
		"db_driver", cfg.DBDriver,
		"chat_context_mode", cfg.ChatContextMode,
		"swagger", "http://"+docs.SwaggerInfo.Host+"/api/docs/index.html",
	)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "server start", "error", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown", "error", err)
	}
	logger.Info(ctx, "server stopped")
}

// swaggerHost strips any scheme from SWAGGER_HOST; swag wants host[:port].
func swaggerHost(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "localhost:" + cfg.ServerPort
	}
	host := strings.TrimPrefix(cfg.SwaggerHost, "https://")
	return strings.TrimPrefix(host, "http://")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/drishti/command-center-backend/internal/adapters/primary/http"
	mw "github.com/drishti/command-center-backend/internal/adapters/primary/http/middleware"
	"github.com/drishti/command-center-backend/internal/adapters/primary/websocket"
	"github.com/drishti/command-center-backend/internal/adapters/secondary/alerts"
	"github.com/drishti/command-center-backend/internal/adapters/secondary/postgres"
	"github.com/drishti/command-center-backend/internal/adapters/secondary/vision"
	"github.com/drishti/command-center-backend/internal/auth"
	"github.com/drishti/command-center-backend/internal/config"
	"github.com/drishti/command-center-backend/internal/core/domain"
	"github.com/drishti/command-center-backend/internal/core/services"
	"github.com/drishti/command-center-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting command center",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Database Pool
	ctx := context.Background()
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	// 4. Initialize Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret)
	hub := websocket.NewHub(logger)

	// 5. Initialize Rate Limiters
	var generalRateLimiter, authRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})

		authRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.AuthRPS,
			BurstSize:         cfg.RateLimit.AuthBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	txManager := postgres.NewTransactionManager(pool)
	userRepo := postgres.NewUserRepository(pool)
	sourceRepo := postgres.NewSourceRepository(pool)
	frameRepo := postgres.NewFrameRepository(pool)
	analysisRepo := postgres.NewAnalysisRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	incidentRepo := postgres.NewIncidentRepository(pool)
	volunteerRepo := postgres.NewVolunteerRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	helpRequestRepo := postgres.NewHelpRequestRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	lostPersonRepo := postgres.NewLostPersonRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// External collaborators (Secondary Adapters)
	visionClient := vision.NewClient(cfg.Vision.BaseURL, logger)
	alertComposer := alerts.NewTemplateComposer()

	// Services (Core)
	authService := services.NewAuthService(userRepo)
	sourceService := services.NewSourceService(sourceRepo)
	ingestService := services.NewIngestService(sourceRepo, frameRepo, analysisRepo, incidentRepo, visionClient, hub, txManager, logger)
	reportService := services.NewReportService(reportRepo, incidentRepo, visionClient, hub, logger)
	incidentService := services.NewIncidentService(incidentRepo, volunteerRepo, hub)
	alertService := services.NewAlertService(alertComposer, hub)
	notificationService := services.NewNotificationService(notificationRepo, hub)
	helpRequestService := services.NewHelpRequestService(helpRequestRepo, volunteerRepo, hub)
	messageService := services.NewMessageService(messageRepo, userRepo, hub)
	lostPersonService := services.NewLostPersonService(lostPersonRepo, visionClient, logger)
	volunteerService := services.NewVolunteerService(volunteerRepo)
	statsService := services.NewStatsService(statsRepo)

	// Handlers (Primary Adapters)
	authHandler := httpAdapter.NewAuthHandler(authService, tokenManager, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, tokenManager, cfg, logger)
	frameHandler := httpAdapter.NewFrameHandler(ingestService, errorHandler, logger)
	reportHandler := httpAdapter.NewReportHandler(reportService, errorHandler, logger)
	incidentHandler := httpAdapter.NewIncidentHandler(incidentService, errorHandler, logger)
	alertHandler := httpAdapter.NewAlertHandler(alertService, errorHandler, logger)
	notificationHandler := httpAdapter.NewNotificationHandler(notificationService, errorHandler, logger)
	helpRequestHandler := httpAdapter.NewHelpRequestHandler(helpRequestService, errorHandler, logger)
	messageHandler := httpAdapter.NewMessageHandler(messageService, errorHandler, logger)
	volunteerHandler := httpAdapter.NewVolunteerHandler(volunteerService, errorHandler, logger)
	lostPersonHandler := httpAdapter.NewLostPersonHandler(lostPersonService, errorHandler, logger)
	sourceHandler := httpAdapter.NewSourceHandler(sourceService, errorHandler, logger)
	statsHandler := httpAdapter.NewStatsHandler(statsService, errorHandler, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	corsOrigins := cfg.WebSocket.AllowedOrigins
	if cfg.IsDevelopment() {
		corsOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleReadiness)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes with stricter rate limiting
		r.Group(func(r chi.Router) {
			if authRateLimiter != nil {
				r.Use(authRateLimiter.Middleware)
			}
			r.Route("/auth", authHandler.RegisterRoutes)
		})

		// WebSocket route (authentication handled inside the handler)
		r.Get("/ws", wsHandler.ServeHTTP)

		// Report submission accepts anonymous users; a token is attached
		// when present. Listing checks for claims in the handler.
		r.Group(func(r chi.Router) {
			r.Use(mw.OptionalJWT(tokenManager))
			r.Route("/reports", reportHandler.RegisterRoutes)
		})

		// Protected REST routes
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))

			r.Route("/frames", frameHandler.RegisterRoutes)
			r.Route("/incidents", incidentHandler.RegisterRoutes)
			r.Route("/notifications", notificationHandler.RegisterRoutes)
			r.Route("/help-requests", helpRequestHandler.RegisterRoutes)
			r.Route("/messages", messageHandler.RegisterRoutes)
			r.Route("/volunteers", volunteerHandler.RegisterRoutes)
			r.Route("/lost-persons", lostPersonHandler.RegisterRoutes)
			r.Route("/sources", sourceHandler.RegisterRoutes)
			r.Route("/stats", statsHandler.RegisterRoutes)

			// Alert broadcasts are operator-only.
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(domain.RoleAdmin))
				r.Route("/alerts", alertHandler.RegisterRoutes)
			})
		})
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

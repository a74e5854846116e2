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

	httpAdapter "github.com/kellan/jobwire/internal/adapters/primary/http"
	mw "github.com/kellan/jobwire/internal/adapters/primary/http/middleware"
	"github.com/kellan/jobwire/internal/adapters/primary/websocket"
	"github.com/kellan/jobwire/internal/adapters/secondary/postgres"
	"github.com/kellan/jobwire/internal/auth"
	"github.com/kellan/jobwire/internal/config"
	"github.com/kellan/jobwire/internal/core/domain"
	"github.com/kellan/jobwire/internal/core/services"
	"github.com/kellan/jobwire/internal/infrastructure/logging"
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

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Database Pool (identity directory)
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
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	registry := websocket.NewRegistry(websocket.RegistryConfig{
		MaxConnections: cfg.WebSocket.MaxConnections,
		MaxJobRooms:    cfg.WebSocket.MaxJobRooms,
		SendBufferSize: cfg.WebSocket.SendBufferSize,
	}, logger)

	dispatcher := websocket.NewDispatcher(registry, cfg.WebSocket.QueueSize, logger)
	dispatchCtx, stopDispatcher := context.WithCancel(ctx)
	go dispatcher.Run(dispatchCtx)

	// 5. Initialize Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	directoryRepo := postgres.NewDirectoryRepository(pool)

	// Services (Core)
	identityService := services.NewIdentityService(tokenManager, directoryRepo)

	// Handlers (Primary Adapters)
	wsHandler := httpAdapter.NewWebSocketHandler(registry, identityService, cfg, logger)
	eventsHandler := httpAdapter.NewEventsHandler(dispatcher, errorHandler, logger)
	statsHandler := httpAdapter.NewStatsHandler(registry, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, registry, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.WebSocket.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Apply general rate limiting if enabled
	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	healthHandler.RegisterRoutes(r)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket route (Authentication is handled inside the handler)
		r.Get("/ws", wsHandler.ServeHTTP)

		// Admin-only stats
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			r.Use(mw.RequireRole(domain.RoleAdmin))
			r.Get("/realtime/stats", statsHandler.Get)
		})
	})

	// Internal event ingress (service-to-service only)
	r.Route("/internal/v1/events", func(r chi.Router) {
		r.Use(mw.InternalToken(cfg.Internal.Token))
		eventsHandler.RegisterRoutes(r)
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop accepting new connections, then stop the dispatcher
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	stopDispatcher()

	logger.Info("server shutdown complete")
}

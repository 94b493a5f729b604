package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"ctjot-server/internal/auth/providers"
	"ctjot-server/internal/engine/extproc"
	"ctjot-server/internal/middleware"
	"ctjot-server/internal/rando"
	"ctjot-server/internal/seed"
	"ctjot-server/internal/server"
	"ctjot-server/internal/shared/config"
	"ctjot-server/internal/shared/database"
	"ctjot-server/internal/shared/logger"
	"ctjot-server/internal/shared/redis"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	logger.Init()
	log := slog.With("component", "main")
	log.Info("Starting ctjot server",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port)

	db, err := database.Connect()
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", "error", err)
		}
	}()

	if err := db.RunMigrations(); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.Connect()
	if err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close Redis client", "error", err)
		}
	}()

	engineClient := extproc.NewClient(
		cfg.Randomizer.EnginePath,
		cfg.Randomizer.WorkDir,
		cfg.Randomizer.EngineTimeout,
		slog.Default(),
	)
	adapter := rando.New(engineClient, cfg.Randomizer, slog.Default())

	// Fail fast if the vanilla ROM is missing or the wrong size.
	if _, err := adapter.BaseROM(); err != nil {
		log.Error("Base ROM check failed", "error", err)
		os.Exit(1)
	}

	seedRepo := seed.NewRepository(db.DB, slog.Default())

	var cacheBackend *goredis.Client
	if redisClient != nil {
		cacheBackend = redisClient.Client
	}
	spoilerCache := seed.NewSpoilerCache(cacheBackend, cfg.Randomizer.SpoilerCacheTTL, slog.Default())
	seedService := seed.NewService(seedRepo, adapter, spoilerCache, slog.Default())

	discordProvider := providers.NewDiscordProvider(&oauth2.Config{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURL:  cfg.Discord.RedirectURL,
		Scopes:       cfg.Discord.Scopes,
		Endpoint:     providers.DiscordEndpoint,
	})

	routes := server.NewRoutes(db, seedService, discordProvider, cfg.DiscordOAuthConfigured(), slog.Default())
	mux := routes.Setup()

	corsMiddleware := middleware.NewCORS()
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Error("HTTP server failed", "error", err)
		os.Exit(1)
	case sig := <-sigChan:
		log.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}

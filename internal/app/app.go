package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/database"
	"weather-dashboard/internal/handler"
	"weather-dashboard/internal/metrics"
	"weather-dashboard/internal/middleware"
	"weather-dashboard/internal/repository"
	"weather-dashboard/internal/router"
	"weather-dashboard/internal/service"
	"weather-dashboard/internal/weather"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server *http.Server
	db     *database.DB
}

// New builds every dependency once, from the pool up to the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}
	slog.Info("database ready")

	routes, err := buildHandler(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           routes,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func buildHandler(cfg *config.Config, db *database.DB) (http.Handler, error) {
	userRepo := repository.NewUserRepository(db.Pool)
	favoriteRepo := repository.NewFavoriteRepository(db.Pool)

	tokens, err := service.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	authService, err := service.NewAuthService(userRepo, service.NewBcryptHasher(cfg.BcryptCost), tokens, cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	favoriteService := service.NewFavoriteService(favoriteRepo)
	collector := metrics.New()
	weatherClient := weather.NewClient(&http.Client{}, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey, cfg.WeatherTimeout)
	weatherClient.SetObserver(collector)

	webHandler, err := handler.NewWebHandler(authService, favoriteService, weatherClient, handler.NewCookieHelper(cfg.CookieSecure, cfg.CookieSame))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web handler: %w", err)
	}

	return router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		User:     handler.NewUserHandler(authService),
		Favorite: handler.NewFavoriteHandler(favoriteService),
		Weather:  handler.NewWeatherHandler(weatherClient),
		Web:      webHandler,
		Health:   handler.NewHealthHandler(db),
	}, collector), nil
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests before
// closing the pool.
func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		a.db.Close()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(ctx)
	a.db.Close()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

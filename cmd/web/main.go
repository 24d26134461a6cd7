// Package main is the entrypoint for the micropost web server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/micropost/micropost/internal/auth"
	"github.com/micropost/micropost/internal/cache"
	"github.com/micropost/micropost/internal/config"
	"github.com/micropost/micropost/internal/handler"
	"github.com/micropost/micropost/internal/metrics"
	"github.com/micropost/micropost/internal/repository"
	"github.com/micropost/micropost/internal/server"
	"github.com/micropost/micropost/internal/service"
	"github.com/micropost/micropost/internal/view"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	if cfg.SessionSecret == config.DefaultSessionSecret {
		logger.Warn("using the development fallback session secret; set SESSION_SECRET before deploying")
	}

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Initialize views
	views, err := view.New()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	// Initialize services
	codec := auth.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
	recorder := metrics.NewNoop()
	userService := service.NewUserService(repo, cacheClient, codec, recorder, cfg.ProfileCacheTTL)
	postService := service.NewPostService(repo, cacheClient, recorder)

	// Initialize handlers
	secureCookies := cfg.IsProduction()
	r := handler.NewRouter(handler.RouterConfig{
		Auth:               handler.NewAuthHandler(userService, views, logger, secureCookies),
		Profile:            handler.NewProfileHandler(userService, views, logger),
		Posts:              handler.NewPostHandler(postService, views, logger),
		Health:             handler.NewHealthHandler(repo, cacheClient),
		Codec:              codec,
		Logger:             logger,
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("database", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("cache", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

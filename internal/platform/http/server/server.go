// Package server holds the HTTP server settings and the process-wide logger setup.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Config holds the HTTP server settings.
type Config struct {
	Port            string
	AllowedOrigins  []string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	// AuthRateLimit は登録とログインのクライアントごとの毎分上限です。0なら無制限。
	AuthRateLimit int
}

// LoadConfigFromEnv reads the server settings from environment variables.
func LoadConfigFromEnv() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = slog.LevelInfo
	}

	timeout, err := time.ParseDuration(os.Getenv("SHUTDOWN_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	authLimit := 10
	if v, err := strconv.Atoi(os.Getenv("AUTH_RATE_LIMIT")); err == nil && v >= 0 {
		authLimit = v
	}

	return Config{
		Port:            port,
		AllowedOrigins:  origins,
		LogLevel:        level,
		ShutdownTimeout: timeout,
		AuthRateLimit:   authLimit,
	}
}

// NewLogger returns a JSON logger at cfg.LogLevel and installs it as the default.
func NewLogger(cfg Config) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)
	return log
}

// CORS returns the CORS middleware for cfg.AllowedOrigins, or nil when no
// origin is configured.
func CORS(cfg Config) gin.HandlerFunc {
	if len(cfg.AllowedOrigins) == 0 {
		return nil
	}
	c := cors.DefaultConfig()
	c.AllowOrigins = cfg.AllowedOrigins
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID"}
	return cors.New(c)
}

// Run serves h on cfg.Port until ctx is cancelled, then drains in-flight
// requests for at most cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg Config, h http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finance_tracker/internal/app/di"
	"finance_tracker/internal/app/router"
	"finance_tracker/internal/platform/db"
	"finance_tracker/internal/platform/http/handler"
	"finance_tracker/internal/platform/http/server"
	"finance_tracker/internal/platform/instrument"
	jwtmw "finance_tracker/internal/platform/jwt"
	infraredis "finance_tracker/internal/platform/redis"
	"finance_tracker/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	srvCfg := server.LoadConfigFromEnv()
	log := server.NewLogger(srvCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.OpenDB(db.LoadConfigFromEnv(), di.Models()...)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	redisCfg := infraredis.LoadConfigFromEnv()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	rdb, err := infraredis.NewRedisClient(pingCtx, redisCfg)
	cancel()
	if err != nil {
		log.Warn("Redis unavailable. Running without cache and token revocation.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// JWT_SECRETチェック
	jwtCfg := jwtmw.LoadConfigFromEnv()
	if jwtCfg.Secret == "" {
		log.Warn("JWT_SECRET is not set. Authenticated routes answer 500 until it is configured.")
	}

	// Repository / Usecase / Handler
	repos := di.NewRepositories(gdb, rdb, redisCfg.StatsTTL, log)
	mw, revoker := di.NewAuthMiddleware(rdb)
	mw.CORS = server.CORS(srvCfg)
	mw.AuthThrottle = ratelimiter.Middleware(ratelimiter.NewRateLimiter(srvCfg.AuthRateLimit, time.Minute))
	handlers := di.NewHandlers(repos, jwtmw.NewGenerator(jwtCfg.Secret, jwtCfg.Expiration), revoker, log)
	handlers.Ready = handler.Ready(sqlDB)

	// ルータ生成
	r := router.NewRouter(handlers, mw, instrument.NewInterceptor(log, repos.Audit))

	return server.Run(ctx, srvCfg, r)
}

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

	redisv9 "github.com/redis/go-redis/v9"

	"courtside_auth/internal/app/config"
	"courtside_auth/internal/app/di"
	"courtside_auth/internal/app/router"
	authadapters "courtside_auth/internal/feature/auth/adapters"
	authhandler "courtside_auth/internal/feature/auth/transport/handler"
	authusecase "courtside_auth/internal/feature/auth/usecase"
	"courtside_auth/internal/platform/db"
	platformhandler "courtside_auth/internal/platform/http/handler"
	"courtside_auth/internal/platform/password"
	platformredis "courtside_auth/internal/platform/redis"
	"courtside_auth/internal/platform/seed"
	"courtside_auth/internal/shared/ratelimiter"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .envを読み込む
	config.LoadDotEnv(".env")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	gdb, err := db.Open(cfg.DB, authadapters.Models()...)
	if err != nil {
		return err
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	hasher := password.NewBcrypt(cfg.BcryptCost)

	// リポジトリ
	users := di.NewUserDirectory(gdb, rdb, cfg.UserCacheTTL)
	store := di.NewKeyValueStore(rdb, gdb)

	if cfg.SeedUsersFile != "" {
		f, err := seed.LoadFile(cfg.SeedUsersFile)
		if err != nil {
			return err
		}
		if _, err := seed.Apply(ctx, users, hasher, f); err != nil {
			return err
		}
	}

	// ユースケース
	authUC := authusecase.NewAuthUsecase(users, store, hasher, cfg.RedirectPath)

	// ハンドラー
	checks := map[string]platformhandler.Check{
		"database": func(context.Context) error { return db.Ping(gdb) },
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go pruneLoop(ctx, limiter)

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Users:   authhandler.NewUsersHandler(authUC),
		Health:  platformhandler.NewHealth(checks),
		Limiter: limiter,
	}, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr, "redirect", cfg.RedirectPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func pruneLoop(ctx context.Context, rl *ratelimiter.RateLimiter) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rl.Prune()
		}
	}
}

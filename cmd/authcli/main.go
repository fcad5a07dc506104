package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"courtside_auth/internal/app/config"
	"courtside_auth/internal/cli"
	authadapters "courtside_auth/internal/feature/auth/adapters"
	authusecase "courtside_auth/internal/feature/auth/usecase"
	"courtside_auth/internal/platform/db"
	platformhttp "courtside_auth/internal/platform/http"
	"courtside_auth/internal/platform/password"
)

func main() {
	config.LoadDotEnv(".env")
	cfg, err := config.LoadCLI()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// ローカル状態: セッションフラグは再起動後も残る
	gdb, err := db.Open(db.Config{
		Driver:        db.DriverSQLite,
		SQLitePath:    cfg.StatePath,
		RunMigrations: true,
	}, &authadapters.KVModel{})
	if err != nil {
		slog.Error("failed to open local state", "path", cfg.StatePath, "error", err)
		os.Exit(1)
	}

	users := authadapters.NewUserHTTP(platformhttp.NewHTTPClient(platformhttp.DefaultTimeout), cfg.UsersAPIURL)
	flags := authusecase.NewSessionFlags(authadapters.NewKVGorm(gdb), "")

	app := cli.NewApp(users, flags, password.NewBcrypt(cfg.BcryptCost), cfg.RedirectPath, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		slog.Error("authcli exited", "error", err)
		os.Exit(1)
	}
}

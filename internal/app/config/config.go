// Package config は環境変数（.envファイルで補完可能）からプロセスの設定を読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"courtside_auth/internal/platform/db"
	"courtside_auth/internal/platform/password"
	"courtside_auth/internal/platform/redis"
)

// Config はサーバーの設定です。
type Config struct {
	HTTPAddr           string
	LogLevel           slog.Level
	DB                 db.Config
	Redis              redis.Config
	RedirectPath       string
	BcryptCost         int
	UserCacheTTL       time.Duration
	SeedUsersFile      string
	RateLimitPerMinute int
	CORSAllowedOrigins []string
}

// CLIConfig は対話型クライアントの設定です。
type CLIConfig struct {
	LogLevel     slog.Level
	UsersAPIURL  string
	StatePath    string
	RedirectPath string
	BcryptCost   int
}

// LoadDotEnv はpathを環境変数に読み込みます。既に設定済みの変数は上書きしません。
// ファイルが存在しない場合はエラーになりません。
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Info(".env not found; using system environment variables", "path", path)
	}
}

// Load は環境変数からサーバー設定を読み込みます。
func Load() (Config, error) {
	level, err := parseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return Config{}, err
	}
	cost, err := intEnv("BCRYPT_COST", password.DefaultCost)
	if err != nil {
		return Config{}, err
	}
	limit, err := intEnv("RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return Config{}, err
	}
	ttl, err := durationEnv("USER_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr: stringEnv("HTTP_ADDR", ":8080"),
		LogLevel: level,
		DB:       db.LoadConfigFromEnv(),
		Redis: redis.Config{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     stringEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		RedirectPath:       stringEnv("REDIRECT_PATH", "/app"),
		BcryptCost:         cost,
		UserCacheTTL:       ttl,
		SeedUsersFile:      os.Getenv("SEED_USERS_FILE"),
		RateLimitPerMinute: limit,
		CORSAllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}, nil
}

// LoadCLI は環境変数からクライアント設定を読み込みます。
func LoadCLI() (CLIConfig, error) {
	level, err := parseLevel(stringEnv("LOG_LEVEL", "warn"))
	if err != nil {
		return CLIConfig{}, err
	}
	cost, err := intEnv("BCRYPT_COST", password.DefaultCost)
	if err != nil {
		return CLIConfig{}, err
	}
	return CLIConfig{
		LogLevel:     level,
		UsersAPIURL:  stringEnv("USERS_API_URL", "http://localhost:8080"),
		StatePath:    stringEnv("CLI_STATE_PATH", "courtside-cli.db"),
		RedirectPath: stringEnv("REDIRECT_PATH", "/app"),
		BcryptCost:   cost,
	}, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// listEnv はカンマ区切りの変数を分割します。"-" は空リストになります。
func listEnv(key, def string) []string {
	raw := stringEnv(key, def)
	if raw == "-" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	OrderStore        string // file / postgres
	OrdersFile        string // 注文JSONのパス
	AdminPasswordFile string // 管理者パスワードハッシュのパス

	AdminDefaultPassword string // 初回起動時のパスワード
	PasswordHash         string // bcrypt / sha256
	BcryptCost           int

	JWTSecret     string        // JWT署名シークレット
	AdminTokenTTL time.Duration // 管理者トークンの有効期限

	DatabaseURL      string // 指定があれば POSTGRES_* より優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	LogLevel string
	GoEnv    string // dev/prod
}

// LoadDotEnv は .env があれば読み込む（無ければ何もしない）。
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Loadは環境変数
func Load() (Config, error) {
	bcryptCost, err := atoiDefault("BCRYPT_COST", 12)
	if err != nil {
		return Config{}, err
	}
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}

	ttl := 15 * time.Minute
	if v := os.Getenv("ADMIN_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("ADMIN_TOKEN_TTL must be duration: %w", err)
		}
		ttl = d
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		OrderStore:        strings.ToLower(getenv("ORDER_STORE", StoreFile)),
		OrdersFile:        getenv("ORDERS_FILE", "orders.json"),
		AdminPasswordFile: getenv("ADMIN_PASSWORD_FILE", "admin_password.txt"),

		AdminDefaultPassword: getenv("ADMIN_DEFAULT_PASSWORD", "admin123"),
		PasswordHash:         strings.ToLower(getenv("PASSWORD_HASH", "bcrypt")),
		BcryptCost:           bcryptCost,

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminTokenTTL: ttl,

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,

		LogLevel: getenv("LOG_LEVEL", "info"),
		GoEnv:    getenv("GO_ENV", "dev"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminTokenTTL <= 0 {
		return Config{}, fmt.Errorf("ADMIN_TOKEN_TTL must be positive")
	}
	if cfg.AdminDefaultPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_DEFAULT_PASSWORD must not be empty")
	}
	switch cfg.PasswordHash {
	case "bcrypt", "sha256":
	default:
		return Config{}, fmt.Errorf("PASSWORD_HASH must be bcrypt or sha256")
	}

	switch cfg.OrderStore {
	case StoreFile:
		if cfg.OrdersFile == "" || cfg.AdminPasswordFile == "" {
			return Config{}, fmt.Errorf("ORDERS_FILE and ADMIN_PASSWORD_FILE are required")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			if cfg.PostgresUser == "" {
				return Config{}, fmt.Errorf("POSTGRES_USER is required")
			}
			if cfg.PostgresDB == "" {
				return Config{}, fmt.Errorf("POSTGRES_DB is required")
			}
		}
	default:
		return Config{}, fmt.Errorf("ORDER_STORE must be file or postgres")
	}

	return cfg, nil
}

// Addr は ":8080" 形式のリッスンアドレス。
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// DSN は gorm(postgres) 用の接続文字列。
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort,
	)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

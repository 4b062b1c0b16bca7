package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	GuardNone     = "none"
	GuardLocal    = "local"
	GuardPostgres = "postgres"
	GuardRedis    = "redis"
)

type Config struct {
	Environment   string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DBDSN         string `mapstructure:"DB_DSN"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`

	// Предельное время обработки HTTP запроса, включая ожидание write guard
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	AdminPassword  string        `mapstructure:"ADMIN_PASSWORD"`
	AdminJWTSecret string        `mapstructure:"ADMIN_JWT_SECRET"`
	AdminTokenTTL  time.Duration `mapstructure:"ADMIN_TOKEN_TTL"`

	// Зона, в которой определяется "сегодня" для отсечения прошедших дат
	ScheduleTimezone string        `mapstructure:"SCHEDULE_TIMEZONE"`
	ConflictMode     string        `mapstructure:"CONFLICT_MODE"`
	WriteGuard       string        `mapstructure:"WRITE_GUARD"`
	RedisURL         string        `mapstructure:"REDIS_URL"`
	LockTTL          time.Duration `mapstructure:"LOCK_TTL"`

	TelegramToken       string `mapstructure:"TELEGRAM_TOKEN"`
	TelegramAdminChatID int64  `mapstructure:"TELEGRAM_ADMIN_CHAT_ID"`
	DigestCron          string `mapstructure:"DIGEST_CRON"`

	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	location *time.Location
}

var defaults = map[string]any{
	"ENV":                    "development",
	"LOG_LEVEL":              "",
	"HTTP_ADDR":              ":8080",
	"REQUEST_TIMEOUT":        "15s",
	"STORE_DRIVER":           StoreDriverPostgres,
	"DB_DSN":                 "",
	"MIGRATIONS_DIR":         "migrations",
	"ADMIN_PASSWORD":         "",
	"ADMIN_JWT_SECRET":       "",
	"ADMIN_TOKEN_TTL":        "12h",
	"SCHEDULE_TIMEZONE":      "UTC",
	"CONFLICT_MODE":          "exact",
	"WRITE_GUARD":            GuardNone,
	"REDIS_URL":              "",
	"LOCK_TTL":               "10s",
	"TELEGRAM_TOKEN":         "",
	"TELEGRAM_ADMIN_CHAT_ID": 0,
	"DIGEST_CRON":            "0 19 * * *",
	"CORS_ORIGINS":           "*",
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.AdminJWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.AdminJWTSecret = secret
		log.Println("⚠️  ADMIN_JWT_SECRET not set, admin tokens will not survive a restart")
	}

	log.Printf("Config loaded (store=%s, guard=%s, conflict=%s)\n", cfg.StoreDriver, cfg.WriteGuard, cfg.ConflictMode)
	return cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.WriteGuard = strings.ToLower(strings.TrimSpace(c.WriteGuard))
	c.ConflictMode = strings.ToLower(strings.TrimSpace(c.ConflictMode))

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required but not set")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", c.StoreDriver)
	}

	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required but not set")
	}

	switch c.WriteGuard {
	case GuardNone, GuardLocal:
	case GuardPostgres:
		if c.StoreDriver != StoreDriverPostgres {
			return fmt.Errorf("WRITE_GUARD=postgres requires STORE_DRIVER=postgres")
		}
	case GuardRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for WRITE_GUARD=redis")
		}
	default:
		return fmt.Errorf("WRITE_GUARD must be none, local, postgres or redis, got %q", c.WriteGuard)
	}

	switch c.ConflictMode {
	case "exact", "overlap":
	default:
		return fmt.Errorf("CONFLICT_MODE must be exact or overlap, got %q", c.ConflictMode)
	}

	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", c.ScheduleTimezone, err)
	}
	c.location = loc

	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.TelegramToken != "" && c.TelegramAdminChatID == 0 {
		return fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}

// Location зона отсечения прошедших дат
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// TelegramEnabled включены ли уведомления и команды бота
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramAdminChatID != 0
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

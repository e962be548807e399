package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied by envconfig when resolving variables.
const EnvPrefix = "pos2025"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and deploy tooling.
const (
	EnvAppEnv   = "POS2025_APP_ENV"
	EnvPort     = "POS2025_APP_PORT"
	EnvDBDSN    = "POS2025_DB_DSN"
	EnvRedisURL = "POS2025_REDIS_URL"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Register RegisterConfig
	Catalog  CatalogConfig
	Calendar CalendarConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POS2025_APP_ENV" required:"true"`
	Port         string `envconfig:"POS2025_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"POS2025_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POS2025_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"POS2025_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"POS2025_DB_DSN" required:"true"`
	Driver string `envconfig:"POS2025_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"POS2025_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"POS2025_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"POS2025_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POS2025_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"POS2025_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"POS2025_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POS2025_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POS2025_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POS2025_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POS2025_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// RegisterConfig tunes the in-process register session store.
type RegisterConfig struct {
	SessionTTL     time.Duration `envconfig:"POS2025_REGISTER_SESSION_TTL" default:"8h"`
	IdempotencyTTL time.Duration `envconfig:"POS2025_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

type CatalogConfig struct {
	SearchPageSize   int `envconfig:"POS2025_CATALOG_PAGE_SIZE" default:"10"`
	CurrencyDecimals int `envconfig:"POS2025_CURRENCY_DECIMALS" default:"2"`
}

type CalendarConfig struct {
	DefaultEventColor string `envconfig:"POS2025_CALENDAR_DEFAULT_COLOR" default:"#3a87ad"`
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Optimizer OptimizerConfig
	Scoring   ScoringConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LIQUIVERDE_APP_ENV" required:"true"`
	Port         string `envconfig:"LIQUIVERDE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LIQUIVERDE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LIQUIVERDE_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"LIQUIVERDE_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LIQUIVERDE_DB_DSN"`
	Driver string `envconfig:"LIQUIVERDE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"LIQUIVERDE_DB_HOST"`
	Port     int    `envconfig:"LIQUIVERDE_DB_PORT" default:"5432"`
	User     string `envconfig:"LIQUIVERDE_DB_USER"`
	Password string `envconfig:"LIQUIVERDE_DB_PASSWORD"`
	Name     string `envconfig:"LIQUIVERDE_DB_NAME"`
	SSLMode  string `envconfig:"LIQUIVERDE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LIQUIVERDE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LIQUIVERDE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LIQUIVERDE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LIQUIVERDE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds the DSN from discrete connection fields when it is not set directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either LIQUIVERDE_DB_DSN or host/user/name settings are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"LIQUIVERDE_REDIS_URL"`
	Address      string        `envconfig:"LIQUIVERDE_REDIS_ADDR"`
	Password     string        `envconfig:"LIQUIVERDE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LIQUIVERDE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LIQUIVERDE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LIQUIVERDE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LIQUIVERDE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LIQUIVERDE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LIQUIVERDE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig tunes the catalog snapshot served to the recommendation engine.
type CatalogConfig struct {
	CacheTTL       time.Duration `envconfig:"LIQUIVERDE_CATALOG_CACHE_TTL" default:"5m"`
	InStockOnly    bool          `envconfig:"LIQUIVERDE_CATALOG_IN_STOCK_ONLY" default:"true"`
	MaxPerCategory int           `envconfig:"LIQUIVERDE_CATALOG_MAX_PER_CATEGORY" default:"500"`
}

// OptimizerConfig holds the knobs for the shopping list optimizer.
type OptimizerConfig struct {
	Strategy       string  `envconfig:"LIQUIVERDE_OPTIMIZER_STRATEGY" default:"greedy"`
	PopulationSize int     `envconfig:"LIQUIVERDE_OPTIMIZER_POPULATION_SIZE" default:"50"`
	Generations    int     `envconfig:"LIQUIVERDE_OPTIMIZER_GENERATIONS" default:"100"`
	MutationRate   float64 `envconfig:"LIQUIVERDE_OPTIMIZER_MUTATION_RATE" default:"0.15"`
	MaxCandidates  int     `envconfig:"LIQUIVERDE_OPTIMIZER_MAX_CANDIDATES" default:"20"`
}

// RateLimitConfig throttles the optimization endpoint per client IP.
// A zero limit or window disables throttling.
type RateLimitConfig struct {
	Window        time.Duration `envconfig:"LIQUIVERDE_RATELIMIT_WINDOW" default:"1m"`
	OptimizeLimit int           `envconfig:"LIQUIVERDE_RATELIMIT_OPTIMIZE" default:"30"`
}

// ScoringConfig holds the normalization references for the sustainability scorer.
type ScoringConfig struct {
	PriceReference  float64 `envconfig:"LIQUIVERDE_SCORING_PRICE_REFERENCE" default:"5000"`
	CarbonReference float64 `envconfig:"LIQUIVERDE_SCORING_CARBON_REFERENCE" default:"5"`
	WaterReference  float64 `envconfig:"LIQUIVERDE_SCORING_WATER_REFERENCE" default:"100"`
}

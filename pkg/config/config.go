package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every configuration variable read by envconfig.
	EnvPrefix = "MYSALON"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MYSALON_DB_DSN"
	EnvDBHost = "MYSALON_DB_HOST"
	EnvDBUser = "MYSALON_DB_USER"
	EnvDBName = "MYSALON_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Checkout     CheckoutConfig
	Cron         CronConfig
	Line         LineConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"MYSALON_APP_ENV" required:"true"`
	Port         string `envconfig:"MYSALON_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MYSALON_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MYSALON_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"MYSALON_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"MYSALON_DB_DSN"`
	Driver string `envconfig:"MYSALON_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MYSALON_DB_HOST"`
	LegacyPort     int    `envconfig:"MYSALON_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MYSALON_DB_USER"`
	LegacyPassword string `envconfig:"MYSALON_DB_PASSWORD"`
	LegacyName     string `envconfig:"MYSALON_DB_NAME"`
	LegacySSLMode  string `envconfig:"MYSALON_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MYSALON_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MYSALON_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MYSALON_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MYSALON_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MYSALON_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MYSALON_REDIS_ADDR"`
	Password     string        `envconfig:"MYSALON_REDIS_PASSWORD"`
	DB           int           `envconfig:"MYSALON_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MYSALON_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MYSALON_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MYSALON_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MYSALON_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MYSALON_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies access tokens minted by the external auth provider.
type JWTConfig struct {
	Secret string `envconfig:"MYSALON_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"MYSALON_JWT_ISSUER" required:"true"`
}

type CheckoutConfig struct {
	RateLimitWindow time.Duration `envconfig:"MYSALON_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitCount  int           `envconfig:"MYSALON_CHECKOUT_RATE_LIMIT_COUNT" default:"10"`
}

type CronConfig struct {
	Interval            time.Duration `envconfig:"MYSALON_CRON_INTERVAL" default:"15m"`
	PendingOrderMaxWait time.Duration `envconfig:"MYSALON_CRON_PENDING_ORDER_MAX_WAIT" default:"1h"`
}

type LineConfig struct {
	NotifyURL string        `envconfig:"MYSALON_LINE_NOTIFY_URL" default:"https://notify-api.line.me/api/notify"`
	Timeout   time.Duration `envconfig:"MYSALON_LINE_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MYSALON_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"store-pickup/internal/pkg/errs"

	"github.com/kelseyhightower/envconfig"
)

// OrderChangesChannel is the channel the notify_order_change trigger publishes on.
const OrderChangesChannel = "order_changes"

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	Realtime RealtimeConfig
	Pricing  PricingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" required:"true"`
	Password      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone      string `envconfig:"DB_TIMEZONE" default:"America/New_York"`
	MaxConns      int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	RunMigrations bool   `envconfig:"DB_RUN_MIGRATIONS" default:"true"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CartTTL  time.Duration `envconfig:"CART_TTL" default:"72h"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"EST"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-18000"` // -5*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type PaymentConfig struct {
	BaseURL string        `envconfig:"PAYMENT_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"PAYMENT_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`
	// ISO 4217 code sent with every capture
	Currency string `envconfig:"PAYMENT_CURRENCY" default:"USD"`
	// consecutive failures before the breaker opens
	BreakerFailures uint32        `envconfig:"PAYMENT_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"PAYMENT_BREAKER_COOLDOWN" default:"30s"`
}

type RealtimeConfig struct {
	Channel         string        `envconfig:"REALTIME_CHANNEL" default:"order_changes"`
	BufferSize      int           `envconfig:"REALTIME_BUFFER" default:"32"`
	Heartbeat       time.Duration `envconfig:"REALTIME_HEARTBEAT" default:"15s"`
	ReconnectMaxGap time.Duration `envconfig:"REALTIME_RECONNECT_MAX" default:"30s"`
}

type PricingConfig struct {
	// deal start/end dates are calendar dates in this zone
	TimeZone string `envconfig:"PRICING_TIMEZONE" default:"America/New_York"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// BuildMigrateURL returns the DSN in the scheme understood by the golang-migrate pgx/v5 driver.
func (c *DBConfig) BuildMigrateURL() string {
	return strings.Replace(c.BuildDSN(), "postgres://", "pgx5://", 1)
}

func (c PricingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings envconfig accepts but the service cannot run
// correctly with.
func (c Config) Validate() error {
	if _, err := time.LoadLocation(c.Pricing.TimeZone); err != nil {
		return errs.Wrap(err, "PRICING_TIMEZONE")
	}
	if _, err := time.ParseDuration(c.JWT.Duration); err != nil {
		return errs.Wrap(err, "JWT_DURATION")
	}
	if c.Realtime.Channel != OrderChangesChannel {
		return errs.Newf("REALTIME_CHANNEL must be %q to match the order trigger, got %q", OrderChangesChannel, c.Realtime.Channel)
	}
	if c.Realtime.BufferSize <= 0 {
		return errs.Newf("REALTIME_BUFFER must be positive, got %d", c.Realtime.BufferSize)
	}
	if c.Payment.BreakerFailures == 0 {
		return errs.New("PAYMENT_BREAKER_FAILURES must be positive")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Redis: RedisConfig{
			Addr:    "localhost:16379",
			CartTTL: time.Hour,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Payment: PaymentConfig{
			BaseURL:         "http://localhost:18080",
			APIKey:          "test-key",
			Timeout:         2 * time.Second,
			Currency:        "USD",
			BreakerFailures: 3,
			BreakerCooldown: time.Second,
		},
		Realtime: RealtimeConfig{
			Channel:         "order_changes",
			BufferSize:      8,
			Heartbeat:       time.Second,
			ReconnectMaxGap: time.Second,
		},
		Pricing: PricingConfig{
			TimeZone: "UTC",
		},
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   secrets)
// - default: Values common across all environments (timeouts, buffer sizes,
//   standard settings)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Payments PaymentsConfig
	Stream   StreamConfig
	Relay    RelayConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Africa/Nairobi"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Africa/Nairobi"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// PaymentsConfig tunes the reconciliation surface. PendingAlertAfter is the
// window after which a still-pending mobile-money transaction is listed as
// overdue for manual follow-up; overdue transactions are never auto-failed.
type PaymentsConfig struct {
	PendingAlertAfter time.Duration `envconfig:"PAYMENTS_PENDING_ALERT_AFTER" default:"10m"`
	CallbackSecret    string        `envconfig:"PAYMENTS_CALLBACK_SECRET" required:"true"`
}

// StreamConfig bounds the per-subscriber event queue. A viewer that falls
// further behind than Buffer loses its oldest events and is flagged lagged.
type StreamConfig struct {
	Buffer    int           `envconfig:"STREAM_BUFFER" default:"64"`
	KeepAlive time.Duration `envconfig:"STREAM_KEEPALIVE" default:"30s"`
}

// RelayConfig points at the broker that downstream consumers (analytics,
// loyalty) read from. Empty URL disables the relay.
type RelayConfig struct {
	URL      string `envconfig:"RELAY_AMQP_URL" default:""`
	Exchange string `envconfig:"RELAY_EXCHANGE" default:"station.events"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Africa/Nairobi",
		},
		Log: LogConfig{
			Level:          "error",
			TimeZone:       "Africa/Nairobi",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Payments: PaymentsConfig{
			PendingAlertAfter: 10 * time.Minute,
			CallbackSecret:    "test-callback-secret",
		},
		Stream: StreamConfig{
			Buffer:    8,
			KeepAlive: 30 * time.Second,
		},
	}
}

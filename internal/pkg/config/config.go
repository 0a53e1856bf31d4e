package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, store endpoint)
// - default: Values common across all environments (timeouts, booking policy)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Log     LogConfig
	Store   StoreConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// StoreConfig points at the external Reservation Store REST API.
type StoreConfig struct {
	BaseURL string        `envconfig:"STORE_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
}

// BookingConfig holds the seating policy and refresh cadence of the
// availability engine. SeatingWindow is the interval a reservation blocks
// its table; it is deliberately configuration, not a literal.
type BookingConfig struct {
	SeatingWindow time.Duration `envconfig:"BOOKING_SEATING_WINDOW" default:"30m"`
	PollInterval  time.Duration `envconfig:"BOOKING_POLL_INTERVAL" default:"10s"`
	Debounce      time.Duration `envconfig:"BOOKING_DEBOUNCE" default:"500ms"`
	SessionTTL    time.Duration `envconfig:"BOOKING_SESSION_TTL" default:"30m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-User-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Madrid"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
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
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			BaseURL: "http://localhost:18080",
			Timeout: 2 * time.Second,
		},
		Booking: BookingConfig{
			SeatingWindow: 30 * time.Minute,
			PollInterval:  time.Hour, // never fires within a test
			Debounce:      0,         // recompute inline for determinism
			SessionTTL:    time.Hour,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Madrid",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
	}
}

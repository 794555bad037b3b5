package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seamarker/tideface/internal/models"
)

// Canonical calibration for the reference deployment. Everything here is
// overridable per deployment through options or the environment.
const (
	// DefaultHalfTidePeriodSeconds is the dominant semi-diurnal constituent,
	// 12 h 25 m.
	DefaultHalfTidePeriodSeconds = 12*3600 + 25*60

	// DefaultPhaseShiftSeconds is the lunitidal interval of the reference
	// location, 5 h 12 m.
	DefaultPhaseShiftSeconds = 18720

	// DefaultReferenceNewMoonEpoch is the new moon of 2000-01-06 18:14 UTC.
	DefaultReferenceNewMoonEpoch = 947182440

	// DefaultSynodicMonthSeconds is 29.530588853 days.
	DefaultSynodicMonthSeconds = 29.530588853 * 86400

	// DefaultSpringThreshold is cos 45°: spring within ±45° of new or full
	// moon. An empirical cutoff, not a derived one.
	DefaultSpringThreshold = 0.7071067811865476

	// DefaultRefreshIntervalSeconds keeps the face on a one-minute grid.
	DefaultRefreshIntervalSeconds = 60

	// DefaultReportCacheSize bounds the status server's per-slot report
	// cache.
	DefaultReportCacheSize = 64
)

type Config struct {
	Environment            string
	LogLevel               zerolog.Level
	Tidal                  models.TidalConstants
	Lunar                  models.LunarConstants
	RefreshIntervalSeconds int64
	MQTTBroker             string // empty disables publishing
	HTTPAddr               string // empty disables the status server
	ReportCacheSize        int
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithTidalConstants allows setting the semi-diurnal calibration
func WithTidalConstants(tc models.TidalConstants) Option {
	return func(c *Config) {
		c.Tidal = tc
	}
}

// WithLunarConstants allows setting the spring/neap calibration
func WithLunarConstants(lc models.LunarConstants) Option {
	return func(c *Config) {
		c.Lunar = lc
	}
}

// WithRefreshInterval allows setting the recompute grid size
func WithRefreshInterval(seconds int64) Option {
	return func(c *Config) {
		c.RefreshIntervalSeconds = seconds
	}
}

// WithMQTTBroker allows setting the broker address for the MQTT renderer
func WithMQTTBroker(broker string) Option {
	return func(c *Config) {
		c.MQTTBroker = broker
	}
}

// WithHTTPAddr allows setting the status server listen address
func WithHTTPAddr(addr string) Option {
	return func(c *Config) {
		c.HTTPAddr = addr
	}
}

// WithReportCacheSize allows setting the status server's report cache size
func WithReportCacheSize(size int) Option {
	return func(c *Config) {
		c.ReportCacheSize = size
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment: "production",
		LogLevel:    zerolog.InfoLevel,
		Tidal: models.TidalConstants{
			HalfTidePeriodSeconds: DefaultHalfTidePeriodSeconds,
			PhaseShiftSeconds:     DefaultPhaseShiftSeconds,
		},
		Lunar: models.LunarConstants{
			ReferenceNewMoonEpoch: DefaultReferenceNewMoonEpoch,
			SynodicMonthSeconds:   DefaultSynodicMonthSeconds,
			SpringThreshold:       DefaultSpringThreshold,
		},
		RefreshIntervalSeconds: DefaultRefreshIntervalSeconds,
		HTTPAddr:               ":8080",
		ReportCacheSize:        DefaultReportCacheSize,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Validate reports the first invalid constant. Called once at startup; the
// engine itself never sees invalid configuration.
func (c *Config) Validate() error {
	if err := c.Tidal.Validate(); err != nil {
		return err
	}
	if err := c.Lunar.Validate(); err != nil {
		return err
	}
	if c.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("invalid refresh interval: %d", c.RefreshIntervalSeconds)
	}
	if c.ReportCacheSize <= 0 {
		return fmt.Errorf("invalid report cache size: %d", c.ReportCacheSize)
	}
	return nil
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithTidalConstants(models.TidalConstants{
			HalfTidePeriodSeconds: getInt64EnvOrDefault("TIDE_HALF_PERIOD", DefaultHalfTidePeriodSeconds),
			PhaseShiftSeconds:     getInt64EnvOrDefault("TIDE_PHASE_SHIFT", DefaultPhaseShiftSeconds),
		}),
		WithLunarConstants(models.LunarConstants{
			ReferenceNewMoonEpoch: models.EpochSeconds(getInt64EnvOrDefault("LUNAR_REF_NEW_MOON", DefaultReferenceNewMoonEpoch)),
			SynodicMonthSeconds:   getFloatEnvOrDefault("LUNAR_SYNODIC_MONTH", DefaultSynodicMonthSeconds),
			SpringThreshold:       getFloatEnvOrDefault("SPRING_THRESHOLD", DefaultSpringThreshold),
		}),
		WithRefreshInterval(getInt64EnvOrDefault("REFRESH_INTERVAL", DefaultRefreshIntervalSeconds)),
		WithMQTTBroker(getEnvOrDefault("MQTT_BROKER", "")),
		WithHTTPAddr(lookupEnvOrDefault("HTTP_ADDR", ":8080")),
		WithReportCacheSize(getIntEnvOrDefault("REPORT_CACHE_SIZE", DefaultReportCacheSize)),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnvOrDefault keeps an empty value set in the environment, unlike
// getEnvOrDefault. HTTP_ADDR="" is how a deployment disables the status
// server entirely.
func lookupEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64EnvOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

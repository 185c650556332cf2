package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the load matching service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP server (API, health checks and metrics).
// - Lookup: Settings of the public postal code lookup service.
// - Workers: The number of concurrent workers for geocoding.
// - Interval: The duration between polls of the pickup geocoding service.
// - BatchSize: The number of loads fetched per poll.
// - MatchLimit: The number of open loads considered when a match request carries no candidates.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env        string         `mapstructure:"env"`
	Port       int            `mapstructure:"http_port"`
	Lookup     LookupConfig   `mapstructure:"lookup"`
	Workers    int            `mapstructure:"workers"`
	Interval   time.Duration  `mapstructure:"interval"`
	BatchSize  int            `mapstructure:"batch_size"`
	MatchLimit int            `mapstructure:"match_limit"`
	Database   PostgresConfig `mapstructure:"db"`
}

// LookupConfig configures the postal code lookup client.
type LookupConfig struct {
	BaseURL   string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit int           `mapstructure:"rps"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`     // Host is the database server address.
	Port     string `mapstructure:"port"`     // Port is the database server port.
	User     string `mapstructure:"username"` // User is the database user.
	Password string `mapstructure:"password"` // Password is the database user's password.
	Name     string `mapstructure:"name"`     // Name is the name of the database.
}

var defaults = map[string]string{
	"LOADMATCH_ENV":            "production",
	"LOADMATCH_HTTP_PORT":      "8080",
	"LOADMATCH_LOOKUP_URL":     "https://api.zippopotam.us/us",
	"LOADMATCH_LOOKUP_TIMEOUT": "5s",
	"LOADMATCH_LOOKUP_RPS":     "10",
	"LOADMATCH_WORKERS":        "4",
	"LOADMATCH_INTERVAL":       "1m",
	"LOADMATCH_BATCH_SIZE":     "100",
	"LOADMATCH_MATCH_LIMIT":    "200",
	"DB_HOST":                  "",
	"DB_PORT":                  "5432",
	"DB_USERNAME":              "",
	"DB_PASSWORD":              "",
	"DB_NAME":                  "",
}

// MustLoad reads the configuration and panics if a value cannot be parsed.
// Process environment takes precedence over the env file named by LOADMATCH_ENV_FILE (.env by default),
// which takes precedence over built-in defaults.
func MustLoad() *Config {
	vpr := viper.New()
	vpr.AutomaticEnv()

	for key, value := range defaults {
		vpr.SetDefault(key, value)
	}

	vpr.SetDefault("LOADMATCH_ENV_FILE", ".env")
	if fileEnv, err := godotenv.Read(vpr.GetString("LOADMATCH_ENV_FILE")); err == nil {
		for key, value := range fileEnv {
			vpr.SetDefault(key, value)
		}
	}

	interval, err := time.ParseDuration(vpr.GetString("LOADMATCH_INTERVAL"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	lookupTimeout, err := time.ParseDuration(vpr.GetString("LOADMATCH_LOOKUP_TIMEOUT"))
	if err != nil || lookupTimeout <= 0 {
		panic("failed to parse lookup timeout from configuration")
	}

	port, err := strconv.Atoi(vpr.GetString("LOADMATCH_HTTP_PORT"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	workers := mustPositiveInt(vpr, "LOADMATCH_WORKERS",
		"failed to parse workers from configuration, must be a positive integer")
	rps := mustPositiveInt(vpr, "LOADMATCH_LOOKUP_RPS",
		"failed to parse lookup rate limit from configuration, must be a positive integer")
	batchSize := mustPositiveInt(vpr, "LOADMATCH_BATCH_SIZE",
		"failed to parse batch size from configuration, must be a positive integer")
	matchLimit := mustPositiveInt(vpr, "LOADMATCH_MATCH_LIMIT",
		"failed to parse match limit from configuration, must be a positive integer")

	return &Config{
		Env:  vpr.GetString("LOADMATCH_ENV"),
		Port: port,
		Lookup: LookupConfig{
			BaseURL:   strings.TrimSpace(vpr.GetString("LOADMATCH_LOOKUP_URL")),
			Timeout:   lookupTimeout,
			RateLimit: rps,
		},
		Workers:    workers,
		Interval:   interval,
		BatchSize:  batchSize,
		MatchLimit: matchLimit,
		Database: PostgresConfig{
			Host:     vpr.GetString("DB_HOST"),
			Port:     vpr.GetString("DB_PORT"),
			User:     vpr.GetString("DB_USERNAME"),
			Password: vpr.GetString("DB_PASSWORD"),
			Name:     vpr.GetString("DB_NAME"),
		},
	}
}

func mustPositiveInt(vpr *viper.Viper, key, msg string) int {
	value, err := strconv.Atoi(vpr.GetString(key))
	if err != nil || value <= 0 {
		panic(msg)
	}

	return value
}

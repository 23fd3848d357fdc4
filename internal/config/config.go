package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`        // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`          // Telegram API token loaded from environment
	WebAppURL        string    `mapstructure:"webapp_url"` // URL of the mini-app opened from the bot
	DB               DB        `mapstructure:"database"`   // database configuration section
	Redis            Redis     `mapstructure:"redis"`      // cache configuration section
	Backend          Backend   `mapstructure:"backend"`    // remote backend client section
	HTTP             HTTP      `mapstructure:"http"`       // JSON API section
	Reminders        Reminders `mapstructure:"reminders"`  // streak reminders section
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Redis configures the profile cache.
type Redis struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"-"`
	DB         int           `mapstructure:"db"`
	ProfileTTL time.Duration `mapstructure:"profile_ttl"`
}

// Backend configures the client of the remote mini-app backend.
type Backend struct {
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	InitDataTTL time.Duration `mapstructure:"init_data_ttl"` // max age of accepted init data
}

// HTTP configures the JSON API used by the mini-app.
type HTTP struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Reminders configures the streak reminder job.
type Reminders struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"` // cron spec, UTC
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine, real environment wins anyway.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("backend.url", "BACKEND_URL")
	_ = v.BindEnv("webapp_url", "WEBAPP_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("webapp_url", "https://bruno-miniapp.github.io/")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.profile_ttl", "30s")
	v.SetDefault("backend.url", "https://bruno-worker.bruno-miniapp.workers.dev")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("backend.init_data_ttl", "24h")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 * * * *")
}

func decode(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	cfg.Redis.Password = v.GetString("redis_password")

	return &cfg, nil
}

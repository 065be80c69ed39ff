// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Provider ProviderConfig `mapstructure:"provider"`
	Session  SessionConfig  `mapstructure:"session"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Driver    string       `mapstructure:"driver"`
	KeyPrefix string       `mapstructure:"key_prefix"`
	SQLite    SQLiteConfig `mapstructure:"sqlite"`
}

// SQLiteConfig holds the embedded database location.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// GameConfig holds progression tuning.
type GameConfig struct {
	GachaCost       int64  `mapstructure:"gacha_cost"`
	CoinsPerCorrect int64  `mapstructure:"coins_per_correct"`
	Timezone        string `mapstructure:"timezone"`
}

// ProviderConfig selects and configures the question provider.
type ProviderConfig struct {
	Kind    string        `mapstructure:"kind"`
	Timeout time.Duration `mapstructure:"timeout"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
}

// OpenAIConfig holds the generative provider settings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// SessionConfig holds quiz session settings.
type SessionConfig struct {
	ExamSeconds   int `mapstructure:"exam_seconds"`
	QuestionCount int `mapstructure:"question_count"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Location resolves the configured timezone used for the daily reset.
// An empty or "Local" value yields time.Local.
func (g *GameConfig) Location() (*time.Location, error) {
	if g.Timezone == "" || g.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(g.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", g.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory, the working directory and ./config.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// e.g. STORAGE_DRIVER, PROVIDER_OPENAI_API_KEY, GAME_GACHA_COST
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Game.GachaCost <= 0 {
		return fmt.Errorf("game.gacha_cost must be positive, got %d", c.Game.GachaCost)
	}
	if _, err := c.Game.Location(); err != nil {
		return err
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.key_prefix", "quizforge_")
	v.SetDefault("storage.sqlite.path", "quizforge.db")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "quizforge")
	v.SetDefault("database.name", "quizforge")
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	v.SetDefault("game.gacha_cost", 500)
	v.SetDefault("game.coins_per_correct", 10)
	v.SetDefault("game.timezone", "Local")

	v.SetDefault("provider.kind", "bank")
	v.SetDefault("provider.timeout", "60s")
	v.SetDefault("provider.openai.model", "gpt-4o-mini")

	v.SetDefault("session.exam_seconds", 300)
	v.SetDefault("session.question_count", 5)
}

// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot       BotConfig       `mapstructure:"bot"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Announce  AnnounceConfig  `mapstructure:"announce"`
	Games     GamesConfig     `mapstructure:"games"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Trivia    TriviaConfig    `mapstructure:"trivia"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
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

// AdminConfig holds admin user configuration.
type AdminConfig struct {
	IDs []int64 `mapstructure:"ids"`
}

// AnnounceConfig holds announcement defaults. DateFormat decides how users
// submit birthdays ("DD-MM" or "MM-DD"); DefaultTime is used until an admin
// configures an announcement time.
type AnnounceConfig struct {
	DateFormat  string `mapstructure:"date_format"`
	DefaultTime string `mapstructure:"default_time"`
}

// GamesConfig holds game-specific configuration.
type GamesConfig struct {
	NumberGuesser NumberGuesserConfig `mapstructure:"number_guesser"`
	Wordle        WordleConfig        `mapstructure:"wordle"`
	Hangman       HangmanConfig       `mapstructure:"hangman"`
}

// NumberGuesserConfig holds number-guessing game configuration.
type NumberGuesserConfig struct {
	Limit int `mapstructure:"limit"`
}

// WordleConfig points at the word list files. Empty paths use the embedded
// defaults.
type WordleConfig struct {
	AnswersFile string `mapstructure:"answers_file"`
	GuessesFile string `mapstructure:"guesses_file"`
}

// HangmanConfig points at the hangman word pool file.
type HangmanConfig struct {
	WordsFile string `mapstructure:"words_file"`
}

// GeneratorConfig holds text-generation API configuration. An empty API key
// disables generation and every caller uses its local fallback.
type GeneratorConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TriviaConfig holds trivia source configuration.
type TriviaConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Questions int           `mapstructure:"questions"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separators and uppercase,
	// e.g. BOT_TOKEN, DATABASE_HOST, GENERATOR_API_KEY.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can provide everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Secrets default to empty
// strings so their env overrides survive Unmarshal.
func setDefaults(v *viper.Viper) {
	// Bot defaults
	v.SetDefault("bot.token", "")

	// Database defaults
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "celebrationbot")
	v.SetDefault("database.name", "celebrationbot")
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Announcement defaults
	v.SetDefault("announce.date_format", "DD-MM")
	v.SetDefault("announce.default_time", "09:00")

	// Game defaults
	v.SetDefault("games.number_guesser.limit", 7)

	// Generator defaults
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.model", "gemini-1.5-flash")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.timeout", "15s")

	// Trivia defaults
	v.SetDefault("trivia.base_url", "")
	v.SetDefault("trivia.questions", 5)
	v.SetDefault("trivia.timeout", "10s")
}

// IsAdmin checks if a user ID is in the admin list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Admin.IDs {
		if id == userID {
			return true
		}
	}
	return false
}

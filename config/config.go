// Package config loads service settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/drblury/docweaver/router"
)

// MongoURIEnv overrides Mongo.URI when set.
const MongoURIEnv = "DOCWEAVER_MONGO_URI"

// Config is the root of the YAML document.
type Config struct {
	Server ServerConfig  `yaml:"server"`
	Mongo  MongoConfig   `yaml:"mongo"`
	Router router.Config `yaml:"router"`
	Log    LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MongoConfig names the connection and database used by query.Connection.
type MongoConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used for fields a file leaves empty.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Mongo: MongoConfig{
			ConnectTimeout: 10 * time.Second,
		},
		Router: router.Config{
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path on top of Default and applies environment overrides. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if uri, ok := os.LookupEnv(MongoURIEnv); ok {
		cfg.Mongo.URI = uri
	}
	return cfg, nil
}

// SlogLevel maps Level onto slog, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds a slog.Logger writing to stdout in the configured format.
func (c LogConfig) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

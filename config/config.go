package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

type Config struct {
	Listen   string
	Mode     string
	LogLevel string

	CacheDir string
	CacheTTL time.Duration

	CounterEnabled bool
	CounterDB      string
	CounterURL     string
	CounterKey     string

	GitHubOwner string
	GitHubRepo  string
	GitHubToken string

	StatsInterval time.Duration

	ExportStrict bool
	ExportStyle  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("mode", ModeRelease)
	v.SetDefault("log.level", "info")
	v.SetDefault("cache.dir", ".cache")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("counter.enabled", true)
	v.SetDefault("counter.db", "data/counter.db")
	v.SetDefault("counter.url", "http://localhost:8080/api/counter")
	v.SetDefault("counter.key", "exports")
	v.SetDefault("github.owner", "")
	v.SetDefault("github.repo", "")
	v.SetDefault("github.token", "")
	v.SetDefault("stats.interval", "30s")
	v.SetDefault("export.strict", false)
	v.SetDefault("export.style", "classic")
}

// Load reads defaults, then the optional YAML file at path, then KCG_*
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KCG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github.token", "KCG_GITHUB_TOKEN", "git_token"); err != nil {
		return nil, fmt.Errorf("bind github token env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Listen:         v.GetString("server.listen"),
		Mode:           v.GetString("mode"),
		LogLevel:       v.GetString("log.level"),
		CacheDir:       v.GetString("cache.dir"),
		CacheTTL:       v.GetDuration("cache.ttl"),
		CounterEnabled: v.GetBool("counter.enabled"),
		CounterDB:      v.GetString("counter.db"),
		CounterURL:     v.GetString("counter.url"),
		CounterKey:     v.GetString("counter.key"),
		GitHubOwner:    v.GetString("github.owner"),
		GitHubRepo:     v.GetString("github.repo"),
		GitHubToken:    v.GetString("github.token"),
		StatsInterval:  v.GetDuration("stats.interval"),
		ExportStrict:   v.GetBool("export.strict"),
		ExportStyle:    v.GetString("export.style"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeDebug, ModeRelease:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDebug, ModeRelease, c.Mode)
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if c.StatsInterval <= 0 {
		return errors.New("stats.interval must be positive")
	}
	return nil
}

// SetupLogger configures the standard logrus logger shared by all packages.
func SetupLogger(c *Config) error {
	logger := logrus.StandardLogger()
	switch c.Mode {
	case ModeDebug:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetFormatter(&logrus.JSONFormatter{})
		level, err := logrus.ParseLevel(c.LogLevel)
		if err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
		logger.SetLevel(level)
	}
	return nil
}

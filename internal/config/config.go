package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Overpass OverpassConfig `yaml:"overpass" mapstructure:"overpass"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Regions  RegionsConfig  `yaml:"regions" mapstructure:"regions"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// OverpassConfig configures the Overpass API client.
type OverpassConfig struct {
	URL               string  `yaml:"url" mapstructure:"url"`
	UserAgent         string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries        int     `yaml:"max_retries" mapstructure:"max_retries"`
	RateLimitWaitSecs int     `yaml:"ratelimit_wait_secs" mapstructure:"ratelimit_wait_secs"`
	TransientWaitSecs int     `yaml:"transient_wait_secs" mapstructure:"transient_wait_secs"`
	RateLimitRPS      float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// Timeout returns the per-request network deadline.
func (c OverpassConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RateLimitWait returns the base pause after a rate-limited response.
func (c OverpassConfig) RateLimitWait() time.Duration {
	return time.Duration(c.RateLimitWaitSecs) * time.Second
}

// TransientWait returns the base pause after a transient network failure.
func (c OverpassConfig) TransientWait() time.Duration {
	return time.Duration(c.TransientWaitSecs) * time.Second
}

// StoreConfig configures the record log.
type StoreConfig struct {
	Dir  string `yaml:"dir" mapstructure:"dir"`
	File string `yaml:"file" mapstructure:"file"`

	// Append keeps prior runs' records instead of truncating the log at
	// startup. The default (false) discards them.
	Append bool `yaml:"append" mapstructure:"append"`
}

// RegionsConfig points at an optional catalog override.
type RegionsConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// ServerConfig configures the stats HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HOUSEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("overpass.url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("overpass.user_agent", "housefinder/1.0 (github.com/geoforge/housefinder)")
	v.SetDefault("overpass.timeout_secs", 15)
	v.SetDefault("overpass.max_retries", 2)
	v.SetDefault("overpass.ratelimit_wait_secs", 10)
	v.SetDefault("overpass.transient_wait_secs", 3)
	v.SetDefault("overpass.rate_limit_rps", 0.9)
	v.SetDefault("store.dir", "osm_houses")
	v.SetDefault("store.file", "houses_osm.txt")
	v.SetDefault("store.append", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

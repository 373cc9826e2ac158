package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/driftlock/loggifly-sink/internal/sink"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Logging LoggingConfig `mapstructure:"logging"`
	Icon    IconConfig    `mapstructure:"icon"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LogConfig describes the notification sink file, not the process log.
type LogConfig struct {
	File        string `mapstructure:"file"`
	Format      string `mapstructure:"format"`
	Rotation    bool   `mapstructure:"rotation"`
	MaxSize     string `mapstructure:"max_size"`
	BackupCount int    `mapstructure:"backup_count"`

	// MaxSizeBytes is MaxSize resolved at load time.
	MaxSizeBytes int64 `mapstructure:"-"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type IconConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from an optional YAML file and the environment.
// The flat env names of the original deployment surface (PORT, HOST,
// LOG_FILE, LOG_FORMAT, LOG_ROTATION, MAX_LOG_SIZE, BACKUP_COUNT,
// LOG_LEVEL) override file values. A MAX_LOG_SIZE that does not parse is a
// load error: the process refuses to start rather than silently default.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5353)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("log.file", "/logs/loggifly-notifications.log")
	v.SetDefault("log.format", "detailed")
	v.SetDefault("log.rotation", true)
	v.SetDefault("log.max_size", "10MB")
	v.SetDefault("log.backup_count", 5)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("icon.path", "/app/icon.png")

	// Environment variables override, using the documented flat names.
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.port", "PORT")
	v.BindEnv("log.file", "LOG_FILE")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.rotation", "LOG_ROTATION")
	v.BindEnv("log.max_size", "MAX_LOG_SIZE")
	v.BindEnv("log.backup_count", "BACKUP_COUNT")
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("icon.path", "ICON_PATH")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/loggifly-sink")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	maxBytes, err := sink.ParseSize(cfg.Log.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("max log size: %w", err)
	}
	cfg.Log.MaxSizeBytes = maxBytes

	return &cfg, nil
}

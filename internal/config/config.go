// Package config loads tabledine settings from defaults, an optional YAML file,
// and TABLEDINE_* environment variables, in increasing order of precedence.
// Command-line flags bound to the same viper instance win over all of them.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TABLEDINE_DB_PATH.
const EnvPrefix = "TABLEDINE"

var ErrMissingSecret = errors.New("session_secret is required")

// Config holds the server settings.
type Config struct {
	Port          int           `mapstructure:"port"`
	DBPath        string        `mapstructure:"db_path"`
	LogLevel      slog.Level    `mapstructure:"log_level"`
	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`

	// MenuFile is a YAML menu seeded on startup when set.
	MenuFile string `mapstructure:"menu_file"`

	CORSOrigin string `mapstructure:"cors_origin"`
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "./data/tabledine.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("menu_file", "")
	v.SetDefault("cors_origin", "*")
}

// Load reads cfgFile (if non-empty) and the environment into v and decodes the
// result. Keys missing everywhere take their defaults. Load does not call
// Validate since not every command needs a session secret.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return ErrMissingSecret
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	return nil
}

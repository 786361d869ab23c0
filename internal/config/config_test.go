package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.DBPath != "./data/tabledine.db" {
		t.Errorf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("expected 12h session ttl, got %s", cfg.SessionTTL)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("expected cors origin *, got %q", cfg.CORSOrigin)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}

	if err := cfg.Validate(); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabledine.yaml")
	content := `
port: 9090
db_path: /tmp/from-file.db
log_level: debug
session_secret: from-file
session_ttl: 30m
menu_file: menu.yaml
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("TABLEDINE_DB_PATH", "/tmp/from-env.db")
	t.Setenv("TABLEDINE_LOG_LEVEL", "warn")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected port from file, got %d", cfg.Port)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Errorf("expected env to override file, got %q", cfg.DBPath)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("expected warn level, got %v", cfg.LogLevel)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %s", cfg.SessionTTL)
	}
	if cfg.MenuFile != "menu.yaml" {
		t.Errorf("expected menu file, got %q", cfg.MenuFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Port: 8080, DBPath: "x.db", SessionSecret: "s", SessionTTL: time.Hour}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "blank secret", mutate: func(c *Config) { c.SessionSecret = "  " }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: true},
		{name: "no db path", mutate: func(c *Config) { c.DBPath = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

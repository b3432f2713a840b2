// Package daemon manages the pomoflow daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all daemon configuration.
type Config struct {
	User      UserConfig      `toml:"user"`
	API       APIConfig       `toml:"api"`
	Timer     TimerConfig     `toml:"timer"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// UserConfig identifies the local user on the shared backend.
type UserConfig struct {
	ID          string `toml:"id"`
	DisplayName string `toml:"display_name"`
	AvatarRef   string `toml:"avatar_ref"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// TimerConfig holds the default cycle lengths the clients start from.
type TimerConfig struct {
	FocusMinutes      int `toml:"focus_minutes"`
	ShortBreakMinutes int `toml:"short_break_minutes"`
	LongBreakMinutes  int `toml:"long_break_minutes"`
	CyclesPerLongRest int `toml:"cycles_per_long_rest"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := pomoflowHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7292,
			CORSOrigins: []string{"*"},
		},
		Timer: TimerConfig{
			FocusMinutes:      25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			CyclesPerLongRest: 4,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "pomoflow.log"),
		},
	}
}

// LoadConfig reads config from ~/.pomoflow/config.toml, falling back to
// defaults. A .env file in the working directory is loaded first so
// POMOFLOW_HOME can be set per-checkout during development.
func LoadConfig() (Config, error) {
	_ = godotenv.Load() // Missing .env is the normal case

	cfg := DefaultConfig()
	path := filepath.Join(pomoflowHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.pomoflow/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(pomoflowHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// pomoflowHome returns the pomoflow data directory.
func pomoflowHome() string {
	if env := os.Getenv("POMOFLOW_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pomoflow")
}

// PomoflowHome is exported for use by other packages.
func PomoflowHome() string {
	return pomoflowHome()
}

// FocusDuration returns the configured focus cycle length.
func (c TimerConfig) FocusDuration() time.Duration {
	return time.Duration(c.FocusMinutes) * time.Minute
}

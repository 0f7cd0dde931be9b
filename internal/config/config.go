// Package config loads CLI settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Otixa/luajs/logging"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".luajs.yaml"

// Environment variables that override file settings.
const (
	EnvEngine   = "LUAJS_ENGINE"
	EnvLogLevel = "LUAJS_LOG_LEVEL"
)

// Config holds the CLI settings.
type Config struct {
	// Engine is the script engine name (lua, js, tengo).
	Engine string `yaml:"engine"`

	// Libraries lists the standard libraries to open. Empty opens the
	// engine's default set.
	Libraries []string `yaml:"libraries,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`

	// HistoryFile is where the REPL keeps its history. Relative paths are
	// resolved against the home directory.
	HistoryFile string `yaml:"history_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Engine:      "lua",
		LogLevel:    "warn",
		LogFormat:   string(logging.FormatText),
		HistoryFile: ".luajs_history",
	}
}

// Load reads path over the defaults. An empty path reads DefaultFile if it
// exists. Environment overrides are applied last. The result is not
// validated so callers can apply flag overrides before calling Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvEngine); v != "" {
		c.Engine = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the log settings. The engine name is checked by the
// caller against the engines it knows.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Engine) == "" {
		return fmt.Errorf("config: engine is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch logging.Format(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("config: unknown log format: %q (valid options: text, json)", c.LogFormat)
	}
	return nil
}

// HistoryPath resolves HistoryFile against the home directory.
func (c *Config) HistoryPath() string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}

// Logger builds the logger described by the settings.
func (c *Config) Logger() logging.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.New(level, logging.Format(c.LogFormat), os.Stderr)
}

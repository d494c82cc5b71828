// Package config loads wayfinder's layered configuration: built-in
// defaults, then ~/.wayfinder/config.yaml, then ./.wayfinder/config.yaml,
// then WAYFINDER_* environment variables.
package config

import (
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"strings"

	werrors "github.com/odvcencio/wayfinder/pkg/errors"
	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/ui/focus"
	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
)

// Config represents the complete wayfinder configuration
type Config struct {
	Navigation NavigationConfig `yaml:"navigation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// NavigationConfig controls focus movement.
type NavigationConfig struct {
	// FocusRoot makes the scene root wrap at its edges.
	FocusRoot bool `yaml:"focus_root"`
	// Bindings maps key chords ("shift+tab", "ctrl+p", "j") to direction
	// names ("previous", "up", "page_end").
	Bindings map[string]string `yaml:"bindings"`
	// ReplaceDefaultBindings drops the stock arrow/tab/home/end keys.
	ReplaceDefaultBindings bool `yaml:"replace_default_bindings"`
}

// LoggingConfig controls the JSONL session log.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// Dir holds sessions/<id>.jsonl and errors.jsonl. Empty disables file
	// logging.
	Dir string `yaml:"dir"`
}

// TelemetryConfig controls metrics and tracing.
type TelemetryConfig struct {
	// MetricsAddr serves Prometheus metrics on /metrics when set.
	MetricsAddr string `yaml:"metrics_addr"`
	// Trace writes one span per navigation to the trace output.
	Trace       bool   `yaml:"trace"`
	ServiceName string `yaml:"service_name"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Navigation: NavigationConfig{
			Bindings: map[string]string{},
		},
		Logging: LoggingConfig{
			Level: string(logging.LevelInfo),
			Dir:   filepath.Join("~", ".wayfinder", "logs"),
		},
		Telemetry: TelemetryConfig{
			ServiceName: "wayfinder",
		},
	}
}

// Load loads configuration from default locations with proper precedence
func Load() (*Config, error) {
	cfg := DefaultConfig()
	configEnv := loadConfigEnvVars()

	// Load user config (~/.wayfinder/config.yaml)
	if home := homeDir(); home != "" {
		userConfigPath := filepath.Join(home, ".wayfinder", "config.yaml")
		if err := loadOptional(cfg, userConfigPath); err != nil {
			return nil, err
		}
	}

	// Load project config (./.wayfinder/config.yaml)
	if err := loadOptional(cfg, filepath.Join(".", ".wayfinder", "config.yaml")); err != nil {
		return nil, err
	}

	return finish(cfg, configEnv)
}

// LoadFromPath loads defaults merged with a specific file. The file must
// exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	configEnv := loadConfigEnvVars()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, loadError(err, path)
	}
	return finish(cfg, configEnv)
}

func loadOptional(cfg *Config, path string) error {
	err := loadAndMerge(cfg, path)
	if err == nil || stderrors.Is(err, os.ErrNotExist) {
		return nil
	}
	return loadError(err, path)
}

func loadError(err error, path string) error {
	if werrors.IsCode(err, werrors.ErrCodeConfigParse) {
		var coded *werrors.Error
		stderrors.As(err, &coded)
		return coded.WithContext("path", path)
	}
	return werrors.Wrap(err, werrors.ErrCodeConfigLoad, "failed to read config file").
		WithContext("path", path)
}

func finish(cfg *Config, configEnv map[string]string) (*Config, error) {
	applyEnvOverrides(cfg, configEnv)
	cfg.Logging.Dir = expandHomeDir(cfg.Logging.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Process
// environment wins over ~/.wayfinder/config.env.
func applyEnvOverrides(cfg *Config, configEnv map[string]string) {
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return configEnv[key]
	}

	if val, ok := parseBool(lookup("WAYFINDER_FOCUS_ROOT")); ok {
		cfg.Navigation.FocusRoot = val
	}
	if v := lookup("WAYFINDER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := lookup("WAYFINDER_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := lookup("WAYFINDER_METRICS_ADDR"); v != "" {
		cfg.Telemetry.MetricsAddr = v
	}
	if val, ok := parseBool(lookup("WAYFINDER_TRACE")); ok {
		cfg.Telemetry.Trace = val
	}
}

func parseBool(val string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return werrors.Newf(werrors.ErrCodeConfigInvalid, "invalid logging.level %q", c.Logging.Level).
			WithRemediation("use one of: debug, info, warn, error")
	}

	for key, dir := range c.Navigation.Bindings {
		if _, err := runtime.ParseKeyBinding(key); err != nil {
			return werrors.Wrap(err, werrors.ErrCodeConfigInvalid, "invalid navigation binding key").
				WithContext("key", key)
		}
		if _, ok := focus.ParseDirection(dir); !ok {
			return werrors.Newf(werrors.ErrCodeConfigInvalid, "invalid direction %q", dir).
				WithContext("key", key).
				WithRemediation("use one of: " + strings.Join(directionNames(), ", "))
		}
	}
	if c.Navigation.ReplaceDefaultBindings && len(c.Navigation.Bindings) == 0 {
		return werrors.New(werrors.ErrCodeConfigInvalid, "replace_default_bindings requires at least one binding")
	}

	if addr := strings.TrimSpace(c.Telemetry.MetricsAddr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return werrors.Wrap(err, werrors.ErrCodeConfigInvalid, "invalid telemetry.metrics_addr").
				WithContext("addr", addr).
				WithRemediation("use host:port, for example 127.0.0.1:9464")
		}
	}
	if c.Telemetry.Trace && strings.TrimSpace(c.Telemetry.ServiceName) == "" {
		return werrors.New(werrors.ErrCodeConfigInvalid, "telemetry.service_name is required when tracing")
	}
	return nil
}

// Bindings builds the key table described by the navigation section.
func (c *Config) Bindings() (*runtime.Bindings, error) {
	b := runtime.DefaultBindings()
	if c.Navigation.ReplaceDefaultBindings {
		b = runtime.NewBindings()
	}
	if err := b.Apply(c.Navigation.Bindings); err != nil {
		return nil, werrors.Wrap(err, werrors.ErrCodeConfigInvalid, "invalid navigation bindings")
	}
	return b, nil
}

// LogLevel returns the parsed logging level, defaulting to info.
func (c *Config) LogLevel() logging.Level {
	if level, ok := logging.ParseLevel(c.Logging.Level); ok {
		return level
	}
	return logging.LevelInfo
}

func directionNames() []string {
	dirs := focus.Directions()
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return names
}

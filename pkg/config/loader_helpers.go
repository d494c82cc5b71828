package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	werrors "github.com/odvcencio/wayfinder/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config. Read
// errors are returned unwrapped so callers can test for a missing file.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return werrors.Wrap(err, werrors.ErrCodeConfigParse, "failed to parse config YAML")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return werrors.Wrap(err, werrors.ErrCodeConfigParse, "failed to parse config YAML")
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Booleans only override when the
// file sets them explicitly; bindings are merged key by key.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if boolFieldSet(raw, "navigation", "focus_root") {
		base.Navigation.FocusRoot = override.Navigation.FocusRoot
	}
	if boolFieldSet(raw, "navigation", "replace_default_bindings") {
		base.Navigation.ReplaceDefaultBindings = override.Navigation.ReplaceDefaultBindings
	}
	if len(override.Navigation.Bindings) > 0 && base.Navigation.Bindings == nil {
		base.Navigation.Bindings = make(map[string]string, len(override.Navigation.Bindings))
	}
	for key, dir := range override.Navigation.Bindings {
		base.Navigation.Bindings[key] = dir
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if boolFieldSet(raw, "logging", "dir") {
		base.Logging.Dir = override.Logging.Dir
	}

	if override.Telemetry.MetricsAddr != "" {
		base.Telemetry.MetricsAddr = override.Telemetry.MetricsAddr
	}
	if boolFieldSet(raw, "telemetry", "trace") {
		base.Telemetry.Trace = override.Telemetry.Trace
	}
	if override.Telemetry.ServiceName != "" {
		base.Telemetry.ServiceName = override.Telemetry.ServiceName
	}
}

// boolFieldSet reports whether the nested key path is present in raw,
// which distinguishes an explicit zero value from an absent one.
func boolFieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		// Fall back to HOME env var if UserHomeDir fails
		return os.Getenv("HOME")
	}
	return home
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	home := homeDir()
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// loadConfigEnvVars reads KEY=value lines from ~/.wayfinder/config.env.
func loadConfigEnvVars() map[string]string {
	home := homeDir()
	if home == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(home, ".wayfinder", "config.env"))
	if err != nil {
		return nil
	}

	vars := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	return vars
}

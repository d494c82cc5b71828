package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/wayfinder/pkg/config"
	werrors "github.com/odvcencio/wayfinder/pkg/errors"
	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/ui/focus"
	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
	"github.com/odvcencio/wayfinder/pkg/ui/terminal"
)

func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"WAYFINDER_FOCUS_ROOT", "WAYFINDER_LOG_LEVEL", "WAYFINDER_LOG_DIR",
		"WAYFINDER_METRICS_ADDR", "WAYFINDER_TRACE",
	} {
		t.Setenv(key, "")
	}

	oldWD, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	require.NoError(t, os.Chdir(project))
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.False(t, cfg.Navigation.FocusRoot)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "wayfinder", cfg.Telemetry.ServiceName)
	assert.Empty(t, cfg.Telemetry.MetricsAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadHierarchy(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".wayfinder", "config.yaml"), `
navigation:
  focus_root: true
  bindings:
    j: down
    k: up
logging:
  level: debug
`)
	writeFile(t, filepath.Join(project, ".wayfinder", "config.yaml"), `
navigation:
  bindings:
    k: previous
telemetry:
  metrics_addr: 127.0.0.1:9464
`)
	t.Setenv("WAYFINDER_LOG_LEVEL", "warn")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Navigation.FocusRoot, "user focus_root survives the project file")
	assert.Equal(t, "down", cfg.Navigation.Bindings["j"])
	assert.Equal(t, "previous", cfg.Navigation.Bindings["k"], "project binding overrides user binding")
	assert.Equal(t, "127.0.0.1:9464", cfg.Telemetry.MetricsAddr)
	assert.Equal(t, logging.LevelWarn, cfg.LogLevel(), "env wins over files")
	assert.Equal(t, filepath.Join(home, ".wayfinder", "logs"), cfg.Logging.Dir)
}

func TestLoadProjectCanDisableBooleans(t *testing.T) {
	home, project := isolate(t)
	writeFile(t, filepath.Join(home, ".wayfinder", "config.yaml"), "telemetry:\n  trace: true\n")
	writeFile(t, filepath.Join(project, ".wayfinder", "config.yaml"), "telemetry:\n  trace: false\n")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Telemetry.Trace)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WAYFINDER_FOCUS_ROOT", "yes")
	t.Setenv("WAYFINDER_TRACE", "1")
	t.Setenv("WAYFINDER_METRICS_ADDR", ":9000")
	t.Setenv("WAYFINDER_LOG_DIR", "/tmp/wayfinder-logs")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Navigation.FocusRoot)
	assert.True(t, cfg.Telemetry.Trace)
	assert.Equal(t, ":9000", cfg.Telemetry.MetricsAddr)
	assert.Equal(t, "/tmp/wayfinder-logs", cfg.Logging.Dir)
}

func TestConfigEnvFile(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".wayfinder", "config.env"), `
# comment
export WAYFINDER_LOG_LEVEL="debug"
WAYFINDER_FOCUS_ROOT=true
`)
	t.Setenv("WAYFINDER_FOCUS_ROOT", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Navigation.FocusRoot, "process env wins over config.env")
}

func TestLoadFromPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "navigation:\n  focus_root: true\n")

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.True(t, cfg.Navigation.FocusRoot)

	_, err = config.LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, werrors.IsCode(err, werrors.ErrCodeConfigLoad))
}

func TestLoadParseError(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".wayfinder", "config.yaml"), "navigation: [")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, werrors.IsCode(err, werrors.ErrCodeConfigParse))
	assert.Contains(t, err.Error(), "config.yaml")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"bad key", func(c *config.Config) { c.Navigation.Bindings["hyper+x"] = "up" }},
		{"bad direction", func(c *config.Config) { c.Navigation.Bindings["x"] = "sideways" }},
		{"bad metrics addr", func(c *config.Config) { c.Telemetry.MetricsAddr = "localhost" }},
		{"replace without bindings", func(c *config.Config) { c.Navigation.ReplaceDefaultBindings = true }},
		{"trace without service", func(c *config.Config) {
			c.Telemetry.Trace = true
			c.Telemetry.ServiceName = " "
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, werrors.ErrCodeConfigInvalid, werrors.GetCode(err))
		})
	}
}

func TestBindings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Navigation.Bindings = map[string]string{"ctrl+n": "next"}

	b, err := cfg.Bindings()
	require.NoError(t, err)

	dir, ok := b.Lookup(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'n', Ctrl: true})
	assert.True(t, ok)
	assert.Equal(t, focus.Next, dir)
	_, ok = b.Lookup(runtime.KeyMsg{Key: terminal.KeyTab})
	assert.True(t, ok, "defaults are kept")

	cfg.Navigation.ReplaceDefaultBindings = true
	b, err = cfg.Bindings()
	require.NoError(t, err)
	_, ok = b.Lookup(runtime.KeyMsg{Key: terminal.KeyTab})
	assert.False(t, ok, "defaults are dropped")
}

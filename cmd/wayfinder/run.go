package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/wayfinder/pkg/config"
	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/telemetry"
	"github.com/odvcencio/wayfinder/pkg/ui/backend"
	tcellbackend "github.com/odvcencio/wayfinder/pkg/ui/backend/tcell"
	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
	"github.com/odvcencio/wayfinder/pkg/ui/scene"
	"github.com/odvcencio/wayfinder/pkg/ui/terminal"
)

// newBackendFn allows tests to substitute a simulation backend.
var newBackendFn = func() (backend.Backend, error) {
	return tcellbackend.New()
}

func runRunCommand(args []string, stderr io.Writer) error {
	opts, rest, err := parseOptions("run", args, stderr)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return withExitCode(errors.New("usage: wayfinder run [flags] <scene.yaml>"), exitUsage)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runInteractive(ctx, rest[0], opts.watch, cfg)
}

// runInteractive runs the navigator until the user quits or ctx ends. The
// metrics server and the scene watcher share the app's lifetime.
func runInteractive(ctx context.Context, path string, watch bool, cfg *config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	s, err := loadScene(path, cfg)
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	be, err := newBackendFn()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	var (
		observers []runtime.NavigationObserver
		metrics   *telemetry.Metrics
		registry  *prometheus.Registry
	)
	if cfg.Telemetry.MetricsAddr != "" {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		metrics = telemetry.NewMetrics(registry)
		observers = append(observers, metrics)
	}
	if cfg.Telemetry.Trace {
		out, err := openTraceOutput(cfg)
		if err != nil {
			return err
		}
		defer out.Close()
		tracer, err := telemetry.NewTracer(cfg.Telemetry.ServiceName, out)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = tracer.Shutdown(shutdownCtx)
		}()
		observers = append(observers, tracer)
	}

	app := runtime.NewApp(runtime.AppConfig{
		Backend:   be,
		Root:      s.Root,
		Bindings:  bindings,
		Logger:    logger,
		Observers: observers,
		Update:    navigatorUpdate,
		CommandHandler: func(cmd runtime.Command) bool {
			if a, ok := cmd.(runtime.Activated); ok {
				logger.Info(logging.CategoryInput, "activated", "widget activated", map[string]any{"id": a.ID})
			}
			return false
		},
		TickRate: time.Second,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if registry != nil {
		g.Go(func() error {
			return telemetry.Serve(ctx, cfg.Telemetry.MetricsAddr, registry, logger)
		})
	}
	if watch {
		g.Go(func() error {
			return scene.Watch(ctx, path, func(next *scene.Scene, err error) {
				if metrics != nil {
					metrics.SceneReloaded(err)
				}
				if err != nil {
					logger.Warn(logging.CategoryScene, "reload_failed", err.Error(), map[string]any{"path": path})
					return
				}
				applySceneConfig(next, cfg)
				logger.Info(logging.CategoryScene, "reload", "scene reloaded", map[string]any{"path": path})
				app.Post(runtime.SceneMsg{Root: next.Root})
			})
		})
	}
	return g.Wait()
}

// navigatorUpdate adds quit keys on top of the default update: Ctrl+C
// quits, Escape closes the top overlay or quits on the base layer.
func navigatorUpdate(app *runtime.App, msg runtime.Message) bool {
	if key, ok := msg.(runtime.KeyMsg); ok {
		switch {
		case key.Key == terminal.KeyRune && key.Ctrl && key.Rune == 'c':
			app.Stop()
			return false
		case key.Key == terminal.KeyEscape:
			if screen := app.Screen(); screen != nil && screen.LayerCount() > 1 {
				screen.PopLayer()
				return true
			}
			app.Stop()
			return false
		}
	}
	return runtime.DefaultUpdate(app, msg)
}

func openTraceOutput(cfg *config.Config) (*os.File, error) {
	dir := cfg.Logging.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "traces.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

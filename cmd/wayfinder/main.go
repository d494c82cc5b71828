package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/wayfinder/pkg/config"
	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/ui/scene"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	os.Exit(dispatch(os.Args[1:], os.Stdout, os.Stderr))
}

func dispatch(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printHelp(stderr)
		return exitUsage
	}
	switch args[0] {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "wayfinder %s (commit %s, built %s)\n", version, commit, buildDate)
		return exitOK
	case "--help", "-h", "help":
		printHelp(stdout)
		return exitOK
	case "run":
		return runCommand(func(a []string) error { return runRunCommand(a, stderr) }, args[1:], stderr)
	case "walk":
		return runCommand(func(a []string) error { return runWalkCommand(a, stdout, stderr) }, args[1:], stderr)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		printHelp(stderr)
		return exitUsage
	}
}

func runCommand(handler func([]string) error, args []string, stderr io.Writer) int {
	if err := handler(args); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitCodeForError(err)
	}
	return exitOK
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `wayfinder - keyboard focus navigator for nested widget scenes

Usage:
  wayfinder run [flags] <scene.yaml>
  wayfinder walk [flags] <scene.yaml> <direction>...
  wayfinder version

Directions:
  up, down, left, right, next, previous, home, page_home, end, page_end

Flags:
  -config string        config file (default: ~/.wayfinder and ./.wayfinder)
  -focus-root           wrap focus at the edges of the scene root
  -watch                reload the scene when the file changes (run only)
  -metrics-addr string  serve Prometheus metrics on host:port
  -trace                write one span per navigation
`)
}

type options struct {
	configPath  string
	focusRoot   bool
	watch       bool
	metricsAddr string
	trace       bool

	set map[string]bool
}

func parseOptions(name string, args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file path")
	fs.BoolVar(&opts.focusRoot, "focus-root", false, "wrap focus at the edges of the scene root")
	fs.BoolVar(&opts.watch, "watch", false, "reload the scene on change")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on host:port")
	fs.BoolVar(&opts.trace, "trace", false, "write one span per navigation")
	if err := fs.Parse(args); err != nil {
		return nil, nil, withExitCode(err, exitUsage)
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, fs.Args(), nil
}

// loadConfig loads the layered config and applies flags on top.
func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.set["focus-root"] {
		cfg.Navigation.FocusRoot = opts.focusRoot
	}
	if opts.set["metrics-addr"] {
		cfg.Telemetry.MetricsAddr = opts.metricsAddr
	}
	if opts.set["trace"] {
		cfg.Telemetry.Trace = opts.trace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if cfg.Logging.Dir == "" {
		return nil, nil
	}
	logger, err := logging.NewLogger(cfg.Logging.Dir, ulid.Make().String())
	if err != nil {
		return nil, err
	}
	logger.SetMinLevel(cfg.LogLevel())
	return logger, nil
}

// loadScene loads the scene file. A configured focus root forces the
// scene root to wrap; otherwise the file decides.
func loadScene(path string, cfg *config.Config) (*scene.Scene, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	applySceneConfig(s, cfg)
	return s, nil
}

func applySceneConfig(s *scene.Scene, cfg *config.Config) {
	if cfg.Navigation.FocusRoot {
		s.Root.SetFocusRoot(true)
	}
}

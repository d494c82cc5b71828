package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/odvcencio/wayfinder/pkg/telemetry"
	"github.com/odvcencio/wayfinder/pkg/ui/focus"
	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
)

// runWalkCommand navigates a scene headlessly and prints one line per
// step: the direction and the id of the focused widget afterwards.
func runWalkCommand(args []string, stdout, stderr io.Writer) error {
	opts, rest, err := parseOptions("walk", args, stderr)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return withExitCode(errors.New("usage: wayfinder walk [flags] <scene.yaml> <direction>..."), exitUsage)
	}

	dirs := make([]focus.Direction, 0, len(rest)-1)
	for _, name := range rest[1:] {
		dir, ok := focus.ParseDirection(name)
		if !ok {
			return withExitCode(fmt.Errorf("unknown direction %q", name), exitUsage)
		}
		dirs = append(dirs, dir)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	s, err := loadScene(rest[0], cfg)
	if err != nil {
		return err
	}

	fm := runtime.NewFocusManager(s.Root)
	fm.SetLogger(logger)
	if cfg.Telemetry.Trace {
		tracer, err := telemetry.NewTracer(cfg.Telemetry.ServiceName, stderr)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := tracer.Shutdown(ctx); err != nil {
				fmt.Fprintf(stderr, "Warning: trace shutdown: %v\n", err)
			}
		}()
		fm.AddObserver(tracer)
	}

	fm.FocusDefault()
	fmt.Fprintf(stdout, "start\t%s\n", focusName(fm.Current()))
	for _, dir := range dirs {
		fm.Navigate(dir)
		fmt.Fprintf(stdout, "%s\t%s\n", dir, focusName(fm.Current()))
	}
	return nil
}

func focusName(e focus.Element) string {
	if e == nil {
		return "(none)"
	}
	return runtime.Describe(e)
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flight/internal/config"
	"github.com/vovakirdan/tui-flight/internal/registry"
)

// fail prints an infrastructure error and exits 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates a logger. Logs go to --log-file when set, otherwise to
// fallback (nil discards, for interactive play).
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func()) {
	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			fail("%v", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger, closeFn
}

// loadConfig loads flight.yaml by the usual search order and applies
// --theme. It also returns the file path so servers can watch it.
func loadConfig() (config.FlightConfig, string) {
	custom, err := config.ExpandHome(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	cfg, err := config.LoadFlight(custom)
	if err != nil {
		fail("%v", err)
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	return cfg, config.ResolvePath(custom)
}

// resolveTheme looks up a theme, exiting with a hint if it is unknown.
func resolveTheme(id string) registry.Theme {
	theme, err := registry.Get(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'flight themes' to see available themes.")
		os.Exit(1)
	}
	return theme
}

// seed returns --seed, or a time-based seed when it is 0.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

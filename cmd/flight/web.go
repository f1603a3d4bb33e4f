package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flight/internal/config"
	"github.com/vovakirdan/tui-flight/internal/httpapi"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

var (
	flagHTTPAddr  string
	flagWebNoRuns bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server with headless simulation and journal access.

Endpoints:
  GET  /                     - Hello, World!
  POST /echo                 - Echo the request body
  GET  /hello/{name}         - Greeting
  GET  /users, /users/{id}   - Demo user data
  GET  /delayed/{seconds}    - Wait up to 5 seconds, then answer
  GET  /themes               - Glyph themes
  GET  /sim?seed=&ticks=&jumps=&theme=
                             - Run headlessly, return the final frame as JSON
  GET  /sim.png?...&scale=N  - Same, as a PNG
  GET  /runs, /runs/{id}     - Journaled runs and replay verification

Examples:
  flight web
  flight web --http :9090
  curl 'localhost:8080/sim?seed=7&ticks=120&jumps=60'`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address")
	webCmd.Flags().BoolVar(&flagWebNoRuns, "no-runs", false, "Disable the /runs endpoints")
}

func runWeb(cmd *cobra.Command, _ []string) {
	if env.HTTPAddr != "" && !cmd.Flags().Changed("http") {
		flagHTTPAddr = env.HTTPAddr
	}

	logger, closeLog := newLogger("flight-http", os.Stderr)
	defer closeLog()

	cfg, path := loadConfig()
	resolveTheme(cfg.Theme)
	holder := config.NewHolder(path, cfg, logger)

	var store *storage.Store
	if !flagWebNoRuns {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open run journal", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if path != "" {
		go func() {
			if err := holder.Watch(ctx); err != nil {
				logger.Warn("config watch stopped", "error", err)
			}
		}()
	}

	srv := httpapi.New(httpapi.Options{Store: store, Config: holder, Theme: flagTheme, Logger: logger})
	fmt.Printf("Starting flight HTTP server on %s\n", flagHTTPAddr)
	if err := srv.ListenAndServe(ctx, flagHTTPAddr); err != nil {
		fail("server: %v", err)
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flight/internal/config"
	"github.com/vovakirdan/tui-flight/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flight SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent run. Finished runs are
written to the journal with the SSH user name as the player.

The config file is watched while serving: new connections use the
latest version, running ones keep the settings they started with.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flight/host_key

Examples:
  flight serve                           # Listen on :23234 with auto-generated key
  flight serve --ssh :2222               # Listen on port 2222
  flight serve --host-key ./my_host_key  # Use specific host key
  flight serve --db ./runs.db            # Use specific journal

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	if env.SSHAddr != "" && !cmd.Flags().Changed("ssh") {
		flagSSHAddr = env.SSHAddr
	}

	logger, closeLog := newLogger("flight-ssh", os.Stderr)
	defer closeLog()

	cfg, path := loadConfig()
	resolveTheme(cfg.Theme)
	holder := config.NewHolder(path, cfg, logger)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Config:      holder,
		Theme:       flagTheme,
		Logger:      logger,
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting flight SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}

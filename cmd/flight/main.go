// flight is a terminal endless runner: keep the plane over the town by
// jumping over buildings as they scroll past.
//
// Usage:
//
//	flight play              - Play in this terminal
//	flight serve             - Start SSH server for remote play
//	flight web               - Start the HTTP API
//	flight themes            - List glyph themes
//	flight runs              - List journaled runs
//	flight replay <id>       - Re-simulate a journaled run
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set journal path (default: ~/.flight/runs.db)
//	--config <path>    - Use a specific flight.yaml
//	--theme <id>       - Override the configured theme
//	--log-file <path>  - Write logs to a file
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flight/internal/config"

	// Import themes to register them
	_ "github.com/vovakirdan/tui-flight/internal/themes"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagTheme    string
	flagLogFile  string
	flagLogLevel string

	// Settings from the environment and .env
	env config.Env
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flight",
	Short: "Flight - jump your plane over a scrolling town",
	Long: `Flight is a terminal endless runner. A plane flies over a town;
buildings scroll in from the right and you jump to clear them.
Your score is the number of ticks you survive.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start the HTTP API
  themes   - Show glyph themes
  runs     - List journaled runs
  replay   - Re-simulate a journaled run

Settings can also come from FLIGHT_DB, FLIGHT_CONFIG, FLIGHT_THEME,
FLIGHT_SSH_ADDR and FLIGHT_HTTP_ADDR, or a .env file.

Examples:
  flight play
  flight play --seed 42 --theme ascii
  flight serve --ssh :2222
  flight web --http :8080
  flight replay 3`,
	PersistentPreRun: applyEnv,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flight/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom flight.yaml")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Theme ID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// applyEnv fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command, _ []string) {
	env = config.LoadEnv()

	flags := cmd.Flags()
	if env.DBPath != "" && !flags.Changed("db") {
		flagDBPath = env.DBPath
	}
	if env.ConfigPath != "" && !flags.Changed("config") {
		flagConfig = env.ConfigPath
	}
	if env.Theme != "" && !flags.Changed("theme") {
		flagTheme = env.Theme
	}
}

// tactics is a terminal turn-based strategy game: three hot-seat players,
// five units each, on an 11x11 board.
//
// Usage:
//
//	tactics list              - List available games
//	tactics play <game>       - Play a game
//	tactics menu              - Start menu to pick games interactively
//	tactics history [game]    - Show recorded matches
//	tactics serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible games
//	--db <path>     - Set database path (default: ~/.tactics/matches.db)
//	--trace         - Export OpenTelemetry spans over OTLP/HTTP
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tactics/internal/telemetry"

	// Import games to register them
	_ "github.com/vovakirdan/tui-tactics/internal/games/skirmish"
	_ "github.com/vovakirdan/tui-tactics/internal/games/widgets"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagTrace  bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tactics"})

	shutdownTelemetry = func(context.Context) error { return nil }
)

func main() {
	err := rootCmd.Execute()

	if shutdownErr := shutdownTelemetry(context.Background()); shutdownErr != nil {
		logger.Warn("telemetry shutdown failed", "error", shutdownErr)
	}

	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tactics",
	Short: "Battle Strategy - turn-based tactics in your terminal",
	Long: `Battle Strategy is a hot-seat strategy game for three players.
Each player commands five units on an 11x11 board; the game ends as soon
as one player has lost every unit.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  history  - Show recorded matches
  serve    - Start SSH server for remote play

Examples:
  tactics list
  tactics play skirmish
  tactics play skirmish --config ./skirmish.yaml
  tactics menu
  tactics history
  tactics serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tactics/matches.db", "Path to match history database")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false, "Export traces via OTLP (configure with OTEL_* variables)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads .env and starts tracing before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	// .env is optional; OTEL_* variables may be set directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn(".env not loaded", "error", err)
	}

	if !flagTrace {
		return nil
	}

	shutdown, err := telemetry.Setup(cmd.Context())
	if err != nil {
		logger.Warn("telemetry setup failed, continuing without traces", "error", err)
		return nil
	}
	shutdownTelemetry = shutdown
	return nil
}
